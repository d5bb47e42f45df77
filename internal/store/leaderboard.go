package store

import (
	"context"
	"fmt"

	"foodforall/pkg/types"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LeaderboardRepository struct {
	pool *pgxpool.Pool
}

func NewLeaderboardRepository(pool *pgxpool.Pool) *LeaderboardRepository {
	return &LeaderboardRepository{pool: pool}
}

// TopDonors ranks donors by donation count, then total quantity donated.
// When monthly is set, only donations created in the current calendar month
// count.
func (r *LeaderboardRepository) TopDonors(ctx context.Context, limit int, monthly bool) ([]*types.LeaderboardEntry, error) {
	builder := psql().
		Select(
			"u.id AS user_id",
			"u.full_name",
			"u.profile_picture",
			"COUNT(d.id) AS donation_count",
			"COALESCE(SUM(d.quantity), 0) AS total_quantity",
		).
		From(userTableName + " u").
		Join(donationTableName + " d ON d.donor_id = u.id").
		GroupBy("u.id", "u.full_name", "u.profile_picture").
		OrderBy("donation_count DESC", "total_quantity DESC").
		Limit(uint64(limit))

	if monthly {
		builder = builder.Where("date_trunc('month', d.created_at) = date_trunc('month', now())")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate leaderboard query: %w", err)
	}

	entries := make([]*types.LeaderboardEntry, 0)
	err = pgxscan.Select(ctx, r.pool, &entries, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}

	return entries, nil
}
