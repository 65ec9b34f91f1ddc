package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"workshop-registration-api/internal/model"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func (s *Postgres) CreateWorkshop(ctx context.Context, w *model.Workshop) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO workshops (id, name, description, date, time, location, category)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		w.ID, w.Name, w.Description, w.Date, w.Time, w.Location, w.Category,
	)
	return err
}

func (s *Postgres) ListWorkshops(ctx context.Context) ([]model.Workshop, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, description, date, time, location, category, created_at, updated_at
		 FROM workshops
		 ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Workshop
	for rows.Next() {
		var w model.Workshop
		if err := rows.Scan(
			&w.ID, &w.Name, &w.Description, &w.Date, &w.Time,
			&w.Location, &w.Category, &w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *Postgres) GetWorkshop(ctx context.Context, id string) (*model.Workshop, error) {
	w := &model.Workshop{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, description, date, time, location, category, created_at, updated_at
		 FROM workshops WHERE id = $1`, id,
	).Scan(&w.ID, &w.Name, &w.Description, &w.Date, &w.Time,
		&w.Location, &w.Category, &w.CreatedAt, &w.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Postgres) UpdateWorkshop(ctx context.Context, w *model.Workshop) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE workshops
		 SET name=$1, description=$2, date=$3, time=$4, location=$5, category=$6, updated_at=NOW()
		 WHERE id=$7`,
		w.Name, w.Description, w.Date, w.Time, w.Location, w.Category, w.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteWorkshop removes the workshop and its attendees in one transaction
// so no attendee row can ever reference a missing workshop.
func (s *Postgres) DeleteWorkshop(ctx context.Context, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `DELETE FROM attendees WHERE workshop_id = $1`, id)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM workshops WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

func (s *Postgres) CreateAttendee(ctx context.Context, a *model.Attendee) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO attendees (id, student_name, workshop_id) VALUES ($1,$2,$3)`,
		a.ID, a.StudentName, a.WorkshopID,
	)
	// the workshop vanished between the handler's existence check and here
	if pgCode(err) == pgForeignKeyViolation {
		return ErrNotFound
	}
	return err
}

func (s *Postgres) ListAttendees(ctx context.Context, workshopID string) ([]model.Attendee, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, student_name, workshop_id, created_at
		 FROM attendees WHERE workshop_id = $1
		 ORDER BY created_at, id`, workshopID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Attendee
	for rows.Next() {
		var a model.Attendee
		if err := rows.Scan(&a.ID, &a.StudentName, &a.WorkshopID, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Postgres) CreateUser(ctx context.Context, u *model.User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, username, password_hash, is_admin) VALUES ($1,$2,$3,$4)`,
		u.ID, u.Username, u.PasswordHash, u.IsAdmin,
	)
	if pgCode(err) == pgUniqueViolation {
		return ErrDuplicate
	}
	return err
}

func (s *Postgres) UserByUsername(ctx context.Context, username string) (*model.User, error) {
	u := &model.User{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, is_admin, created_at
		 FROM users WHERE username = $1`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Postgres) UserByID(ctx context.Context, id string) (*model.User, error) {
	u := &model.User{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, is_admin, created_at
		 FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Postgres) EnsureAdmin(ctx context.Context, username, passwordHash string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, username, password_hash, is_admin)
		 VALUES ($1,$2,$3,TRUE)
		 ON CONFLICT (username) DO NOTHING`,
		uuid.New().String(), username, passwordHash,
	)
	return err
}
