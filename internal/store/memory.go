package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"workshop-registration-api/internal/model"
)

// Memory keeps everything in maps behind one mutex. It backs the tests and
// a database-less dev run; semantics mirror the Postgres implementation.
type Memory struct {
	mu        sync.Mutex
	workshops map[string]model.Workshop
	attendees map[string]model.Attendee
	users     map[string]model.User
	userNames map[string]string // username -> id
}

func NewMemory() *Memory {
	return &Memory{
		workshops: make(map[string]model.Workshop),
		attendees: make(map[string]model.Attendee),
		users:     make(map[string]model.User),
		userNames: make(map[string]string),
	}
}

func (s *Memory) CreateWorkshop(_ context.Context, w *model.Workshop) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	w.CreatedAt = now
	w.UpdatedAt = now
	s.workshops[w.ID] = *w
	return nil
}

func (s *Memory) ListWorkshops(_ context.Context) ([]model.Workshop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Workshop
	for _, w := range s.workshops {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Memory) GetWorkshop(_ context.Context, id string) (*model.Workshop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.workshops[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &w, nil
}

func (s *Memory) UpdateWorkshop(_ context.Context, w *model.Workshop) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.workshops[w.ID]
	if !ok {
		return ErrNotFound
	}
	w.CreatedAt = old.CreatedAt
	w.UpdatedAt = time.Now()
	s.workshops[w.ID] = *w
	return nil
}

func (s *Memory) DeleteWorkshop(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.workshops[id]; !ok {
		return ErrNotFound
	}
	delete(s.workshops, id)
	// cascade under the same lock, so no orphan is ever observable
	for aid, a := range s.attendees {
		if a.WorkshopID == id {
			delete(s.attendees, aid)
		}
	}
	return nil
}

func (s *Memory) CreateAttendee(_ context.Context, a *model.Attendee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.workshops[a.WorkshopID]; !ok {
		return ErrNotFound
	}
	a.CreatedAt = time.Now()
	s.attendees[a.ID] = *a
	return nil
}

func (s *Memory) ListAttendees(_ context.Context, workshopID string) ([]model.Attendee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Attendee
	for _, a := range s.attendees {
		if a.WorkshopID == workshopID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Memory) CreateUser(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.userNames[u.Username]; ok {
		return ErrDuplicate
	}
	u.CreatedAt = time.Now()
	s.users[u.ID] = *u
	s.userNames[u.Username] = u.ID
	return nil
}

func (s *Memory) UserByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.userNames[username]
	if !ok {
		return nil, ErrNotFound
	}
	u := s.users[id]
	return &u, nil
}

func (s *Memory) UserByID(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *Memory) EnsureAdmin(_ context.Context, username, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.userNames[username]; ok {
		return nil
	}
	u := model.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		IsAdmin:      true,
		CreatedAt:    time.Now(),
	}
	s.users[u.ID] = u
	s.userNames[u.Username] = u.ID
	return nil
}
