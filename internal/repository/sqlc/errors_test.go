package sqlc

import (
	"errors"
	"math"
	"testing"

	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertErr(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "no rows", err: pgx.ErrNoRows, wantErr: domain.ErrRecordNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505", Message: "dup"}, wantErr: domain.ErrDuplicateKey},
		{name: "fk violation", err: &pgconn.PgError{Code: "23503", Message: "fk"}, wantErr: domain.ErrRecordNotFound},
		{name: "check violation", err: &pgconn.PgError{Code: "23514", Message: "check"}, wantErr: domain.ErrInvalidAmount},
		{name: "numeric overflow", err: &pgconn.PgError{Code: "22003", Message: "overflow"}, wantErr: domain.ErrInvalidAmount},
		{name: "other pg error", err: &pgconn.PgError{Code: "42P01", Message: "no table"}, wantErr: domain.ErrUnknown},
		{name: "plain error", err: errors.New("conn reset"), wantErr: domain.ErrUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := convertErr(tc.err, "doing %s", "stuff")
			require.ErrorIs(t, err, tc.wantErr)
			assert.Contains(t, err.Error(), "[repository/doing stuff]")
		})
	}

	require.NoError(t, convertErr(nil, "nothing"))
}

func TestSafeConvertUintToInt32(t *testing.T) {
	v, err := safeConvertUintToInt32(50)
	require.NoError(t, err)
	assert.Equal(t, int32(50), v)

	_, err = safeConvertUintToInt32(uint(math.MaxInt32) + 1)
	require.Error(t, err)
}
