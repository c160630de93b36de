package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cabinet/internal/session/models"
	"cabinet/pkg/platform/sentinel"
)

// PostgresStore persists documents in a single JSONB-backed table.
//
// Schema:
//
//	CREATE TABLE IF NOT EXISTS profile_documents (
//	    uid        TEXT PRIMARY KEY,
//	    doc        JSONB NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Get(ctx context.Context, uid string) (*models.UserProfile, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM profile_documents WHERE uid = $1`, uid,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile document: %w", err)
	}
	return unmarshalDocument(data)
}

func (s *PostgresStore) Set(ctx context.Context, uid string, profile *models.UserProfile) error {
	data, err := marshalDocument(profile)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO profile_documents (uid, doc, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (uid) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`,
		uid, data,
	)
	if err != nil {
		return fmt.Errorf("set profile document: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, uid string, profile *models.UserProfile) error {
	data, err := marshalDocument(profile)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE profile_documents SET doc = $2, updated_at = now() WHERE uid = $1`,
		uid, data,
	)
	if err != nil {
		return fmt.Errorf("update profile document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
