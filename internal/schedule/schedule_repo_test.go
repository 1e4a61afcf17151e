package schedule_test

import (
	"context"
	"testing"

	"go-workschedule/internal/schedule"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// The upsert has to land on the caller's transaction, not the gorm pool, so
// the service's employee check and save commit or roll back together.
func TestRepository_SaveAssignmentJoinsInjectedTx(t *testing.T) {
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
	txMock.ExpectQuery(`INSERT INTO "schedule_assignments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))
	txMock.ExpectRollback()

	encoded, err := schedule.EncodeRotation(schedule.Rotation{"0": {"FRIDAY"}})
	assert.NoError(t, err)

	repo := schedule.NewRepository(gormDB)
	err = repo.WithTx(tx).SaveAssignment(context.Background(), &schedule.ScheduleAssignment{
		ID:         id,
		EmployeeID: uuid.New(),
		AnchorDate: date(2026, 1, 5),
		Rotation:   encoded,
	})

	assert.NoError(t, err)
	assert.NoError(t, tx.Rollback())
	assert.NoError(t, txMock.ExpectationsWereMet())
	assert.NoError(t, poolMock.ExpectationsWereMet())
}
