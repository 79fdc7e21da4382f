package profiles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores profiles in the relational database.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository initializes a repo backed by pgx.
func NewPostgresRepository(db DB) *PostgresRepository {
	if db == nil {
		panic("profiles: pgx pool required")
	}
	return &PostgresRepository{db: db}
}

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *UpsertProfileRequest) (*Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO profiles (id, name, age, gender, blood_type, conditions, medications, allergies)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	var createdAt, updatedAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		req.Name,
		req.Age,
		req.Gender,
		req.BloodType,
		req.Conditions,
		req.Medications,
		req.Allergies,
	).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("profiles: insert failed: %w", err)
	}

	return &Profile{
		ID:          id.String(),
		Name:        req.Name,
		Age:         req.Age,
		Gender:      req.Gender,
		BloodType:   req.BloodType,
		Conditions:  req.Conditions,
		Medications: req.Medications,
		Allergies:   req.Allergies,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// GetByID fetches a single profile.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Profile, error) {
	query := `
		SELECT id, name, age, gender, blood_type, conditions, medications, allergies, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`
	row := r.db.QueryRow(ctx, query, id)
	var p Profile
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Age,
		&p.Gender,
		&p.BloodType,
		&p.Conditions,
		&p.Medications,
		&p.Allergies,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("profiles: select failed: %w", err)
	}
	return &p, nil
}

// Update rewrites the writable columns.
func (r *PostgresRepository) Update(ctx context.Context, id string, req *UpsertProfileRequest) (*Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := `
		UPDATE profiles
		SET name = $2, age = $3, gender = $4, blood_type = $5,
		    conditions = $6, medications = $7, allergies = $8, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at
	`
	var createdAt, updatedAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		req.Name,
		req.Age,
		req.Gender,
		req.BloodType,
		req.Conditions,
		req.Medications,
		req.Allergies,
	).Scan(&createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("profiles: update failed: %w", err)
	}

	return &Profile{
		ID:          id,
		Name:        req.Name,
		Age:         req.Age,
		Gender:      req.Gender,
		BloodType:   req.BloodType,
		Conditions:  req.Conditions,
		Medications: req.Medications,
		Allergies:   req.Allergies,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// Delete removes a row.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("profiles: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// List returns all profiles, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*Profile, error) {
	query := `
		SELECT id, name, age, gender, blood_type, conditions, medications, allergies, created_at, updated_at
		FROM profiles
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("profiles: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Age,
			&p.Gender,
			&p.BloodType,
			&p.Conditions,
			&p.Medications,
			&p.Allergies,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("profiles: scan failed: %w", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("profiles: rows failed: %w", err)
	}
	return out, nil
}
