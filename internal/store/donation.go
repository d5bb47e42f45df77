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

var donationColumns = utils.StructTagValues(types.Donation{})

type DonationRepository struct {
	pool *pgxpool.Pool
}

func NewDonationRepository(pool *pgxpool.Pool) *DonationRepository {
	return &DonationRepository{pool: pool}
}

func (r *DonationRepository) Create(ctx context.Context, donation *types.Donation) error {
	now := time.Now()
	donation.ID = utils.NanoID()
	donation.Status = types.DonationStatusAvailable
	donation.CreatedAt = now
	donation.UpdatedAt = now

	query, args, err := psql().
		Insert(donationTableName).
		SetMap(utils.StructToMap(donation)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert donation query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create donation")
}

func (r *DonationRepository) Donation(ctx context.Context, donationID string) (*types.Donation, error) {
	query, args, err := psql().
		Select(donationColumns...).
		From(donationTableName).
		Where(sq.Eq{"id": donationID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donation query: %w", err)
	}

	var donation types.Donation
	err = pgxscan.Get(ctx, r.pool, &donation, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrDonationNotFound
		}
		return nil, fmt.Errorf("failed to fetch donation: %w", err)
	}

	return &donation, nil
}

func (r *DonationRepository) DonationWithDonor(ctx context.Context, donationID string) (*types.DonationWithDonor, error) {
	query, args, err := r.joinedSelect().
		Where(sq.Eq{"d.id": donationID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donation-with-donor query: %w", err)
	}

	var donation types.DonationWithDonor
	err = pgxscan.Get(ctx, r.pool, &donation, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrDonationNotFound
		}
		return nil, fmt.Errorf("failed to fetch donation with donor: %w", err)
	}

	return &donation, nil
}

func (r *DonationRepository) Donations(ctx context.Context, filter types.DonationFilter) ([]*types.DonationWithDonor, error) {
	builder := r.joinedSelect().OrderBy("d.created_at DESC")

	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"d.status": filter.Status})
	}
	if filter.DonorID != "" {
		builder = builder.Where(sq.Eq{"d.donor_id": filter.DonorID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donations query: %w", err)
	}

	donations := make([]*types.DonationWithDonor, 0)
	err = pgxscan.Select(ctx, r.pool, &donations, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch donations: %w", err)
	}

	return donations, nil
}

func (r *DonationRepository) UpdateStatus(ctx context.Context, donationID string, status types.DonationStatus) (*types.Donation, error) {
	query, args, err := psql().
		Update(donationTableName).
		SetMap(map[string]any{
			"status":     status,
			"updated_at": time.Now(),
		}).
		Where(sq.Eq{"id": donationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate update donation status query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update donation status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return nil, types.ErrDonationNotFound
	}

	return r.Donation(ctx, donationID)
}

func (r *DonationRepository) joinedSelect() sq.SelectBuilder {
	columns := utils.PrefixSliceOfStrings("d", donationColumns)
	columns = append(columns, "u.full_name AS donor_name")

	return psql().
		Select(columns...).
		From(donationTableName + " d").
		Join(userTableName + " u ON u.id = d.donor_id")
}
