package holiday

import (
	"errors"

	holidayerrors "go-workschedule/internal/holiday/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapPersistError translates a unique violation on the active-date index
// into the conflict error the API contract promises. Concurrent inserts on
// the same date race to the index; the loser lands here.
func mapPersistError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_holidays_active_date" {
			return holidayerrors.ErrDuplicateDate
		}
	}

	return err
}
