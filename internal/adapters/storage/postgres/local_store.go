package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"petcare-companion/internal/ports/storage"
)

var ErrEmptyKey = errors.New("key required")

// LocalStore guarda el store local en la tabla local_items. El namespace
// separa perfiles (p.ej. un usuario del sistema operativo) que comparten base.
type LocalStore struct {
	db        *sql.DB
	namespace string
	now       func() time.Time
}

var _ storage.Local = (*LocalStore)(nil)

func NewLocalStore(db *sql.DB, namespace string) *LocalStore {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		namespace = "default"
	}
	return &LocalStore{db: db, namespace: namespace, now: time.Now}
}

func (s *LocalStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM local_items
		WHERE namespace = $1 AND key = $2
	`, s.namespace, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *LocalStore) SetItem(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO local_items (namespace, key, value, updated_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (namespace, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, s.namespace, key, value, s.now().UTC())
	return err
}

func (s *LocalStore) RemoveItem(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM local_items WHERE namespace = $1 AND key = $2
	`, s.namespace, key)
	return err
}

func (s *LocalStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key FROM local_items
		WHERE namespace = $1
		ORDER BY key ASC
	`, s.namespace)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}
