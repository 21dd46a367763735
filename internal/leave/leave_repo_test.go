package leave

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGormOverMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return db, mock
}

func TestRepositoryWithTxWritesThroughTransaction(t *testing.T) {
	db, poolMock := newGormOverMock(t)
	repo := NewRepository(db)

	txDB, txMock, err := sqlmock.New()
	require.NoError(t, err)
	defer txDB.Close()

	txMock.ExpectBegin()
	tx, err := txDB.Begin()
	require.NoError(t, err)

	txMock.ExpectExec(`UPDATE "leave_applications"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	txMock.ExpectRollback()

	l := &LeaveApplication{
		ID:         uuid.New(),
		CompanyID:  uuid.New(),
		EmployeeID: uuid.New(),
		LeaveType:  LeaveTypeAnnual,
		StartDate:  time.Now().AddDate(0, 0, 7),
		EndDate:    time.Now().AddDate(0, 0, 9),
		DaysCount:  3,
		Status:     StatusAppPending,
		CreatedBy:  uuid.New(),
	}
	require.NoError(t, repo.WithTx(tx).Update(context.Background(), l))
	require.NoError(t, tx.Rollback())

	// The update must ride the transaction, so the rollback discards it. The
	// pooled connection stays untouched.
	require.NoError(t, txMock.ExpectationsWereMet())
	require.NoError(t, poolMock.ExpectationsWereMet())
}
