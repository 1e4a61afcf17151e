package kafka_test

import (
	"context"
	"testing"

	"go-workschedule/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func stagedEvent() kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:          uuid.New().String(),
		AggregateID: uuid.New().String(),
		EventType:   "schedule_request.approved",
		Topic:       "backoffice.schedule_request.decided.v1",
		Payload:     []byte(`{"status":"APPROVED"}`),
		Status:      kafka.OutboxStatusPending,
	}
}

func TestOutboxRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("insert joins the injected transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		txDB, txMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer txDB.Close()

		txMock.ExpectBegin()
		tx, err := txDB.Begin()
		assert.NoError(t, err)

		txMock.ExpectExec(`INSERT INTO outbox_events`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		txMock.ExpectRollback()

		repo := kafka.NewOutboxRepository(db)
		assert.NoError(t, repo.WithTx(tx).Create(ctx, stagedEvent()))

		assert.NoError(t, tx.Rollback())
		assert.NoError(t, txMock.ExpectationsWereMet())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative empty payload never reaches the database", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		event := stagedEvent()
		event.Payload = nil

		repo := kafka.NewOutboxRepository(db)
		assert.Error(t, repo.Create(ctx, event))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative unknown status rejected", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		event := stagedEvent()
		event.Status = "queued"

		repo := kafka.NewOutboxRepository(db)
		assert.Error(t, repo.Create(ctx, event))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
