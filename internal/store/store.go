package store

import (
	"context"
	"errors"

	"workshop-registration-api/internal/model"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// Store is the persistence contract the handlers run against. Postgres is
// the production implementation; Memory backs tests and database-less dev
// runs. Both honor the same semantics: reads of an unknown id return
// ErrNotFound, deleting a workshop removes its attendees atomically, and
// duplicate usernames return ErrDuplicate.
type Store interface {
	CreateWorkshop(ctx context.Context, w *model.Workshop) error
	ListWorkshops(ctx context.Context) ([]model.Workshop, error)
	GetWorkshop(ctx context.Context, id string) (*model.Workshop, error)
	UpdateWorkshop(ctx context.Context, w *model.Workshop) error
	DeleteWorkshop(ctx context.Context, id string) error

	CreateAttendee(ctx context.Context, a *model.Attendee) error
	ListAttendees(ctx context.Context, workshopID string) ([]model.Attendee, error)

	CreateUser(ctx context.Context, u *model.User) error
	UserByUsername(ctx context.Context, username string) (*model.User, error)
	UserByID(ctx context.Context, id string) (*model.User, error)

	// EnsureAdmin seeds the bootstrap admin once; concurrent or repeated
	// calls are no-ops (unique-constraint guarded).
	EnsureAdmin(ctx context.Context, username, passwordHash string) error
}
