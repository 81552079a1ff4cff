package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/crudkit/pkg/pg"
	"github.com/dmitrymomot/crudkit/schema"
)

// Store persists users. Values are insert arrays: column name to non-empty
// posted value.
type Store interface {
	Insert(ctx context.Context, values map[string]string) (User, error)
	Update(ctx context.Context, id uuid.UUID, values map[string]string) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Lookup(ctx context.Context, conds schema.Conditions, limit int) ([]User, error)
}

var columns = []string{"id", "name", "email", "role", "created_at"}

// PGStore is a Store backed by PostgreSQL.
type PGStore struct {
	db    pg.DB
	table string
}

// NewPGStore returns a store reading and writing table through db.
func NewPGStore(db pg.DB, table string) *PGStore {
	if table == "" {
		table = TableKey
	}
	return &PGStore{db: db, table: table}
}

// Insert implements Store.
func (s *PGStore) Insert(ctx context.Context, values map[string]string) (User, error) {
	q, err := pg.InsertSQL(s.table, values, columns...)
	if err != nil {
		return User{}, err
	}
	return s.one(ctx, q)
}

// Update implements Store.
func (s *PGStore) Update(ctx context.Context, id uuid.UUID, values map[string]string) (User, error) {
	q, err := pg.UpdateSQL(s.table, "id", id, values, columns...)
	if err != nil {
		return User{}, err
	}
	return s.one(ctx, q)
}

// Delete implements Store.
func (s *PGStore) Delete(ctx context.Context, id uuid.UUID) error {
	q, err := pg.DeleteSQL(s.table, "id", id)
	if err != nil {
		return err
	}
	tag, err := s.db.Exec(ctx, q.SQL, q.Args...)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Lookup implements Store. Without conditions it lists users by name.
func (s *PGStore) Lookup(ctx context.Context, conds schema.Conditions, limit int) ([]User, error) {
	q, err := pg.LookupSQL(pg.Select{Table: s.table, Columns: columns, OrderBy: "name", Limit: limit}, conds)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (User, error) {
		return scanUser(row)
	})
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}
	return list, nil
}

func (s *PGStore) one(ctx context.Context, q pg.Query) (User, error) {
	u, err := scanUser(s.db.QueryRow(ctx, q.SQL, q.Args...))
	switch {
	case err == nil:
		return u, nil
	case pg.IsNotFoundError(err):
		return User{}, ErrNotFound
	case pg.IsDuplicateKeyError(err):
		return User{}, ErrDuplicate
	default:
		return User{}, errors.Join(ErrStoreFailure, err)
	}
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt)
	return u, err
}
