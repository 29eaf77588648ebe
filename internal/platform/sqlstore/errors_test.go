package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/flashdeck/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	plain := errors.New("connection refused")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil", err: nil, want: nil},
		{name: "no rows", err: sql.ErrNoRows, want: store.ErrNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: uniqueViolationCode}, want: store.ErrDuplicate},
		{
			name: "foreign key violation",
			err:  &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "deck_cards_deck_id_fkey"},
			want: store.ErrInvalidEntity,
		},
		{
			name: "check violation",
			err:  &pgconn.PgError{Code: checkViolationCode, ConstraintName: "decks_name_check"},
			want: store.ErrInvalidEntity,
		},
		{
			name: "not null violation",
			err:  fmt.Errorf("insert: %w", &pgconn.PgError{Code: notNullViolationCode, ColumnName: "front"}),
			want: store.ErrInvalidEntity,
		},
		{name: "unmapped pg error", err: &pgconn.PgError{Code: "42P01"}, want: nil},
		{name: "plain error", err: plain, want: plain},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := MapError(tc.err)
			switch {
			case tc.err == nil:
				assert.NoError(t, got)
			case tc.want == nil:
				assert.Equal(t, tc.err, got, "unmapped errors pass through unchanged")
			default:
				assert.ErrorIs(t, got, tc.want)
			}
		})
	}
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckRowsAffected(sqlmock.NewResult(0, 1), store.ErrDeckNotFound))
	assert.ErrorIs(t, CheckRowsAffected(sqlmock.NewResult(0, 0), store.ErrDeckNotFound), store.ErrDeckNotFound)
	assert.Error(t, CheckRowsAffected(nil, store.ErrDeckNotFound))

	resultErr := errors.New("driver cannot count rows")
	err := CheckRowsAffected(sqlmock.NewErrorResult(resultErr), store.ErrDeckNotFound)
	require.Error(t, err)
	assert.ErrorIs(t, err, resultErr)
}
