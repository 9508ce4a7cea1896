package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrReferenceNotFound = errors.New("referenced record not found")
	ErrOwnerHasStores    = errors.New("user still owns stores")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// wrap 將 driver 錯誤轉成 sentinel error，並帶上呼叫的函式名稱
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, ErrReferenceNotFound)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
