package holiday_test

import (
	"context"
	"testing"

	"go-workschedule/internal/holiday"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// The insert has to land on the caller's transaction, not the gorm pool, so
// the service's exists-check and insert commit or roll back together.
func TestRepository_CreateJoinsInjectedTx(t *testing.T) {
	poolDB, poolMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer poolDB.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: poolDB}), &gorm.Config{})
	assert.NoError(t, err)

	txDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer txDB.Close()

	txMock.ExpectBegin()
	tx, err := txDB.Begin()
	assert.NoError(t, err)

	id := uuid.New()
	txMock.ExpectQuery(`INSERT INTO "holidays"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow(id.String(), holiday.StatusActive))
	txMock.ExpectRollback()

	repo := holiday.NewRepository(gormDB)
	err = repo.WithTx(tx).Create(context.Background(), &holiday.Holiday{
		ID:     id,
		Date:   kstDate(2026, 3, 2),
		Name:   "삼일절 (대체공휴일)",
		Year:   2026,
		Status: holiday.StatusActive,
	})

	assert.NoError(t, err)
	assert.NoError(t, tx.Rollback())
	assert.NoError(t, txMock.ExpectationsWereMet())
	assert.NoError(t, poolMock.ExpectationsWereMet())
}
