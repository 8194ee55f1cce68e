package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AferriDaniel/coaster/core/naming"
)

// NameStore checks and claims names against one table's unique name
// column. It implements naming.Checker, so a naming.Strategy backed by a
// NameStore generates slugs that are unique per table, or per scope when a
// scope column is configured.
type NameStore struct {
	pool        *pgxpool.Pool
	table       string
	nameColumn  string
	scopeColumn string
	idColumn    string
}

var _ naming.Checker = (*NameStore)(nil)

// NameStoreOption configures a NameStore.
type NameStoreOption func(*NameStore)

// WithNameColumn overrides the name column. Default is "name".
func WithNameColumn(column string) NameStoreOption {
	return func(s *NameStore) {
		if column != "" {
			s.nameColumn = column
		}
	}
}

// WithScopeColumn enables per-scope uniqueness keyed by the given column.
func WithScopeColumn(column string) NameStoreOption {
	return func(s *NameStore) {
		s.scopeColumn = column
	}
}

// WithIDColumn overrides the integer identifier column used by
// NextScopedID. Default is "url_id".
func WithIDColumn(column string) NameStoreOption {
	return func(s *NameStore) {
		if column != "" {
			s.idColumn = column
		}
	}
}

// NewNameStore builds a store over the given table.
func NewNameStore(pool *pgxpool.Pool, table string, opts ...NameStoreOption) *NameStore {
	s := &NameStore{
		pool:       pool,
		table:      table,
		nameColumn: "name",
		idColumn:   "url_id",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NameTaken reports whether name already exists in the table, within the
// scope when a scope column is configured.
func (s *NameStore) NameTaken(ctx context.Context, scope naming.ScopeKey, name string) (bool, error) {
	sql, args := s.takenQuery(scope, name)
	var taken bool
	if err := resolveQuerier(ctx, s.pool).QueryRow(ctx, sql, args...).Scan(&taken); err != nil {
		return false, fmt.Errorf("name store: check %q: %w", name, err)
	}
	return taken, nil
}

// ClaimName inserts a row holding the name. A unique constraint violation
// maps to naming.ErrNameConflict, so callers racing for one name can
// regenerate and retry.
func (s *NameStore) ClaimName(ctx context.Context, scope naming.ScopeKey, name string) error {
	sql, args := s.claimStatement(scope, name)
	if _, err := resolveQuerier(ctx, s.pool).Exec(ctx, sql, args...); err != nil {
		if IsUniqueViolation(err) {
			return errors.Join(naming.ErrNameConflict, err)
		}
		return fmt.Errorf("name store: claim %q: %w", name, err)
	}
	return nil
}

// NextScopedID returns the next integer identifier within a scope, for
// identifiers that count up per parent instead of globally.
func (s *NameStore) NextScopedID(ctx context.Context, scope naming.ScopeKey) (int64, error) {
	if s.scopeColumn == "" {
		return 0, errors.Join(naming.ErrScopeRequired, errors.New("name store has no scope column"))
	}
	sql := fmt.Sprintf("SELECT COALESCE(MAX(%s), 0) + 1 FROM %s WHERE %s = $1",
		s.ident(s.idColumn), s.ident(s.table), s.ident(s.scopeColumn))
	var next int64
	if err := resolveQuerier(ctx, s.pool).QueryRow(ctx, sql, string(scope)).Scan(&next); err != nil {
		return 0, fmt.Errorf("name store: next scoped id: %w", err)
	}
	return next, nil
}

func (s *NameStore) takenQuery(scope naming.ScopeKey, name string) (string, []any) {
	if s.scopeColumn == "" || scope == naming.GlobalScope {
		return fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)",
			s.ident(s.table), s.ident(s.nameColumn)), []any{name}
	}
	return fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)",
		s.ident(s.table), s.ident(s.scopeColumn), s.ident(s.nameColumn)), []any{string(scope), name}
}

func (s *NameStore) claimStatement(scope naming.ScopeKey, name string) (string, []any) {
	if s.scopeColumn == "" || scope == naming.GlobalScope {
		return fmt.Sprintf("INSERT INTO %s (%s) VALUES ($1)",
			s.ident(s.table), s.ident(s.nameColumn)), []any{name}
	}
	return fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		s.ident(s.table), s.ident(s.scopeColumn), s.ident(s.nameColumn)), []any{string(scope), name}
}

func (s *NameStore) ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}
