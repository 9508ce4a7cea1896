package store

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	require.NoError(t, wrap("Op", nil))

	err := wrap("GetStoreByID", pgx.ErrNoRows)
	require.ErrorIs(t, err, ErrNotFound)
	require.EqualError(t, err, "GetStoreByID: record not found")

	require.ErrorIs(t, wrap("CreateUser", &pgconn.PgError{Code: "23505"}), ErrDuplicateEmail)
	require.ErrorIs(t, wrap("UpsertRating", &pgconn.PgError{Code: "23503"}), ErrReferenceNotFound)

	other := errors.New("boom")
	err = wrap("ListUsers", other)
	require.ErrorIs(t, err, other)
	require.EqualError(t, err, "ListUsers: boom")
}
