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

var referralColumns = utils.StructTagValues(types.Referral{})

type ReferralRepository struct {
	pool *pgxpool.Pool
}

func NewReferralRepository(pool *pgxpool.Pool) *ReferralRepository {
	return &ReferralRepository{pool: pool}
}

func (r *ReferralRepository) Create(ctx context.Context, referral *types.Referral) error {
	referral.ID = utils.NanoID()
	referral.Status = types.ReferralStatusPending
	referral.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(referralTableName).
		SetMap(utils.StructToMap(referral)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert referral query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return types.NewDuplicateError("You have already referred this email")
		}
		return fmt.Errorf("failed to create referral: %w", err)
	}

	return nil
}

// ExistsForReferrer reports whether the referrer already referred this
// email. The unique constraint is the authoritative guard; this powers the
// friendlier pre-check.
func (r *ReferralRepository) ExistsForReferrer(ctx context.Context, referrerID, referredEmail string) (bool, error) {
	query, args, err := psql().
		Select("COUNT(*)").
		From(referralTableName).
		Where(sq.Eq{"referrer_id": referrerID, "referred_email": referredEmail}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate referral exists query: %w", err)
	}

	var count int
	err = pgxscan.Get(ctx, r.pool, &count, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to check referral existence: %w", err)
	}

	return count > 0, nil
}

func (r *ReferralRepository) ReferralsByReferrer(ctx context.Context, referrerID string) ([]*types.Referral, error) {
	query, args, err := psql().
		Select(referralColumns...).
		From(referralTableName).
		Where(sq.Eq{"referrer_id": referrerID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate referrals-by-referrer query: %w", err)
	}

	referrals := make([]*types.Referral, 0)
	err = pgxscan.Select(ctx, r.pool, &referrals, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch referrals: %w", err)
	}

	return referrals, nil
}

// AllReferrals returns every referral joined with its referrer, newest
// first. Admin listing.
func (r *ReferralRepository) AllReferrals(ctx context.Context) ([]*types.ReferralWithReferrer, error) {
	columns := utils.PrefixSliceOfStrings("r", referralColumns)
	columns = append(columns, "u.full_name AS referrer_name", "u.email AS referrer_email")

	query, args, err := psql().
		Select(columns...).
		From(referralTableName + " r").
		Join(userTableName + " u ON u.id = r.referrer_id").
		OrderBy("r.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate all referrals query: %w", err)
	}

	referrals := make([]*types.ReferralWithReferrer, 0)
	err = pgxscan.Select(ctx, r.pool, &referrals, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch all referrals: %w", err)
	}

	return referrals, nil
}
