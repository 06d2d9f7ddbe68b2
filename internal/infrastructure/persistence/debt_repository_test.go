package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/audicob/backend/internal/domain/collection"
	"github.com/audicob/backend/internal/domain/shared"
)

func TestGormDebtRepository_FindByID(t *testing.T) {
	t.Run("finds existing debt", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormDebtRepository(db)

		debtID := uuid.New()
		clientID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "client_id", "principal", "penalty", "total", "version"}).
			AddRow(debtID, clientID, decimal.NewFromInt(1000), decimal.Zero, decimal.NewFromInt(1000), 1)

		mock.ExpectQuery(`SELECT \* FROM "debts" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(debtID, 1).
			WillReturnRows(rows)

		debt, err := repo.FindByID(context.Background(), debtID)

		require.NoError(t, err)
		assert.Equal(t, clientID, debt.ClientID)
		assert.True(t, debt.Principal.Equal(decimal.NewFromInt(1000)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to not found", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormDebtRepository(db)

		debtID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "debts" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(debtID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByID(context.Background(), debtID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormDebtRepository_SumPrincipalByClient(t *testing.T) {
	t.Run("returns summed principal", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormDebtRepository(db)

		clientID := uuid.New()
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(principal\), 0\) FROM "debts" WHERE client_id = \$1`).
			WithArgs(clientID).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("2500.50"))

		sum, err := repo.SumPrincipalByClient(context.Background(), clientID)

		require.NoError(t, err)
		assert.Equal(t, "2500.5", sum.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns zero for client without debts", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormDebtRepository(db)

		clientID := uuid.New()
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(principal\), 0\) FROM "debts" WHERE client_id = \$1`).
			WithArgs(clientID).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("0"))

		sum, err := repo.SumPrincipalByClient(context.Background(), clientID)

		require.NoError(t, err)
		assert.True(t, sum.IsZero())
	})
}

func TestGormDebtRepository_FindByClient_AppliesFilter(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormDebtRepository(db)

	clientID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "client_id", "principal"}).
		AddRow(uuid.New(), clientID, decimal.NewFromInt(800))

	mock.ExpectQuery(`SELECT \* FROM "debts" WHERE client_id = \$1 ORDER BY due_date ASC`).
		WithArgs(clientID).
		WillReturnRows(rows)

	debts, err := repo.FindByClient(context.Background(), clientID, collection.DebtFilter{})

	require.NoError(t, err)
	require.Len(t, debts, 1)
	assert.Equal(t, clientID, debts[0].ClientID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
