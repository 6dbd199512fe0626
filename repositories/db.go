package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"
)

// DB is the subset of *pgxpool.Pool the repositories use. pgxmock's pool
// satisfies it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate record")
	ErrForeignKey = errors.New("referenced record does not exist")
)

// wrap translates driver errors into the package sentinels and attaches
// the operation name.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return oops.In("repository").With("operation", op).With("constraint", pgErr.ConstraintName).Wrap(errors.Join(ErrDuplicate, err))
		case pgerrcode.ForeignKeyViolation:
			return oops.In("repository").With("operation", op).With("constraint", pgErr.ConstraintName).Wrap(errors.Join(ErrForeignKey, err))
		}
	}
	return oops.In("repository").With("operation", op).Wrap(err)
}
