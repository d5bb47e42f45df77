package store

import (
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	userTableName     = "foodforall.users"
	donationTableName = "foodforall.fooddonations"
	requestTableName  = "foodforall.requests"
	feedbackTableName = "foodforall.feedback"
	referralTableName = "foodforall.referrals"
)

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
