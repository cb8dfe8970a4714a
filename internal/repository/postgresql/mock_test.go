package postgresql

import (
	"testing"

	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/database"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*database.DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return database.NewFromPool(mock), mock
}

func strPtr(s string) *string { return &s }
