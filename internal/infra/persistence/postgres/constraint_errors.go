package postgres

import (
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// SQLSTATE codes of the integrity violations the repositories translate.
// With gorm's TranslateError on, the gorm sentinels arrive instead.
const (
	sqlStateNotNull    = "23502"
	sqlStateForeignKey = "23503"
	sqlStateUnique     = "23505"
	sqlStateCheck      = "23514"
)

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}

	return nil, false
}

func hasSQLState(err error, code string) bool {
	pgErr, ok := pgError(err)

	return ok && pgErr.Code == code
}

// isUniqueConstraintViolation covers the one grant per request and the one
// device row per (user_id, device_id).
func isUniqueConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || hasSQLState(err, sqlStateUnique)
}

func isForeignKeyConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated) || hasSQLState(err, sqlStateForeignKey)
}

func isNotNullConstraintViolation(err error) bool {
	return hasSQLState(err, sqlStateNotNull)
}

// isCheckConstraintViolation covers discount_requests.percentage BETWEEN 0 AND 100.
func isCheckConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrCheckConstraintViolated) || hasSQLState(err, sqlStateCheck)
}
