package store

import (
	"context"
	"fmt"
	"time"

	"foodforall/internal/utils"
	"foodforall/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

var feedbackColumns = utils.StructTagValues(types.Feedback{})

type FeedbackRepository struct {
	pool *pgxpool.Pool
}

func NewFeedbackRepository(pool *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{pool: pool}
}

func (r *FeedbackRepository) Create(ctx context.Context, feedback *types.Feedback) error {
	feedback.ID = utils.NanoID()
	feedback.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(feedbackTableName).
		SetMap(utils.StructToMap(feedback)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert feedback query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create feedback")
}

// AllFeedback returns every feedback row joined with its author, newest
// first. Admin listing.
func (r *FeedbackRepository) AllFeedback(ctx context.Context) ([]*types.FeedbackWithUser, error) {
	columns := utils.PrefixSliceOfStrings("f", feedbackColumns)
	columns = append(columns, "u.full_name", "u.email", "u.role")

	query, args, err := psql().
		Select(columns...).
		From(feedbackTableName + " f").
		Join(userTableName + " u ON u.id = f.user_id").
		OrderBy("f.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate all feedback query: %w", err)
	}

	feedback := make([]*types.FeedbackWithUser, 0)
	err = pgxscan.Select(ctx, r.pool, &feedback, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feedback: %w", err)
	}

	return feedback, nil
}

func (r *FeedbackRepository) FeedbackByUser(ctx context.Context, userID string) ([]*types.Feedback, error) {
	query, args, err := psql().
		Select(feedbackColumns...).
		From(feedbackTableName).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate feedback-by-user query: %w", err)
	}

	feedback := make([]*types.Feedback, 0)
	err = pgxscan.Select(ctx, r.pool, &feedback, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feedback by user: %w", err)
	}

	return feedback, nil
}
