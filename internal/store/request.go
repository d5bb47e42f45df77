package store

import (
	"context"
	"fmt"
	"time"

	"foodforall/internal/utils"
	"foodforall/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var requestColumns = utils.StructTagValues(types.Request{})

type RequestRepository struct {
	pool *pgxpool.Pool
}

func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

func (r *RequestRepository) Create(ctx context.Context, request *types.Request) error {
	now := time.Now()
	request.ID = utils.NanoID()
	request.Status = types.RequestStatusPending
	request.CreatedAt = now
	request.UpdatedAt = now

	query, args, err := psql().
		Insert(requestTableName).
		SetMap(utils.StructToMap(request)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert request query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create request")
}

func (r *RequestRepository) Request(ctx context.Context, requestID string) (*types.Request, error) {
	query, args, err := psql().
		Select(requestColumns...).
		From(requestTableName).
		Where(sq.Eq{"id": requestID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate request query: %w", err)
	}

	var request types.Request
	err = pgxscan.Get(ctx, r.pool, &request, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to fetch request: %w", err)
	}

	return &request, nil
}

// Requests returns one page of joined request rows newest first, plus the
// total number of rows matching the filter.
func (r *RequestRepository) Requests(ctx context.Context, filter types.RequestFilter, page, limit int) ([]*types.RequestWithDetails, int, error) {
	where := sq.And{}
	if filter.Status != "" {
		where = append(where, sq.Eq{"r.status": filter.Status})
	}
	if filter.RequesterID != "" {
		where = append(where, sq.Eq{"r.requester_id": filter.RequesterID})
	}
	if filter.DonorID != "" {
		where = append(where, sq.Eq{"d.donor_id": filter.DonorID})
	}

	countQuery, countArgs, err := psql().
		Select("COUNT(*)").
		From(requestTableName + " r").
		Join(donationTableName + " d ON d.id = r.donation_id").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to generate count requests query: %w", err)
	}

	var total int
	err = pgxscan.Get(ctx, r.pool, &total, countQuery, countArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count requests: %w", err)
	}

	columns := utils.PrefixSliceOfStrings("r", requestColumns)
	columns = append(columns,
		"u.full_name AS requester_name",
		"u.email AS requester_email",
		"d.food_item",
		"d.donor_id",
		"du.full_name AS donor_name",
		"d.donation_image",
	)

	query, args, err := psql().
		Select(columns...).
		From(requestTableName + " r").
		Join(userTableName + " u ON u.id = r.requester_id").
		Join(donationTableName + " d ON d.id = r.donation_id").
		Join(userTableName + " du ON du.id = d.donor_id").
		Where(where).
		OrderBy("r.created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to generate requests query: %w", err)
	}

	requests := make([]*types.RequestWithDetails, 0)
	err = pgxscan.Select(ctx, r.pool, &requests, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch requests: %w", err)
	}

	return requests, total, nil
}

// Accept approves a pending request and decrements the donation quantity as
// one transaction. The request row and then the donation row are locked FOR
// UPDATE so that concurrent accepts against the same donation serialize and
// each re-check sees the previous decrement. When the quantity reaches zero
// the donation is marked claimed.
func (r *RequestRepository) Accept(ctx context.Context, requestID, actingUserID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return types.NewStorageError("failed to begin accept transaction", err)
	}
	defer tx.Rollback(ctx)

	request, donation, err := lockRequestAndDonation(ctx, tx, requestID)
	if err != nil {
		return err
	}

	outcome, err := request.Accept(donation, actingUserID)
	if err != nil {
		return err
	}

	now := time.Now()

	query, args, err := psql().
		Update(requestTableName).
		SetMap(map[string]any{
			"status":     types.RequestStatusApproved,
			"updated_at": now,
		}).
		Where(sq.Eq{"id": request.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate approve request query: %w", err)
	}

	if _, err = tx.Exec(ctx, query, args...); err != nil {
		return types.NewStorageError("failed to approve request", err)
	}

	query, args, err = psql().
		Update(donationTableName).
		SetMap(map[string]any{
			"quantity":   outcome.RemainingQuantity,
			"status":     outcome.DonationStatus,
			"updated_at": now,
		}).
		Where(sq.Eq{"id": donation.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate decrement donation query: %w", err)
	}

	if _, err = tx.Exec(ctx, query, args...); err != nil {
		return types.NewStorageError("failed to decrement donation quantity", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return types.NewStorageError("failed to commit accept transaction", err)
	}

	return nil
}

// Reject moves a pending request to rejected. The donation quantity is not
// touched, but the same request lock is taken so a reject cannot interleave
// with an accept of the same request.
func (r *RequestRepository) Reject(ctx context.Context, requestID, actingUserID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return types.NewStorageError("failed to begin reject transaction", err)
	}
	defer tx.Rollback(ctx)

	request, donation, err := lockRequestAndDonation(ctx, tx, requestID)
	if err != nil {
		return err
	}

	if err = request.Reject(donation, actingUserID); err != nil {
		return err
	}

	query, args, err := psql().
		Update(requestTableName).
		SetMap(map[string]any{
			"status":     types.RequestStatusRejected,
			"updated_at": time.Now(),
		}).
		Where(sq.Eq{"id": request.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate reject request query: %w", err)
	}

	if _, err = tx.Exec(ctx, query, args...); err != nil {
		return types.NewStorageError("failed to reject request", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return types.NewStorageError("failed to commit reject transaction", err)
	}

	return nil
}

// lockRequestAndDonation loads the request and its donation inside tx,
// locking the request row first and the donation row second. Every
// accept/reject takes the locks in this order.
func lockRequestAndDonation(ctx context.Context, tx pgx.Tx, requestID string) (*types.Request, *types.Donation, error) {
	query, args, err := psql().
		Select(requestColumns...).
		From(requestTableName).
		Where(sq.Eq{"id": requestID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate lock request query: %w", err)
	}

	var request types.Request
	err = pgxscan.Get(ctx, tx, &request, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil, types.ErrRequestNotFound
		}
		return nil, nil, fmt.Errorf("failed to lock request: %w", err)
	}

	query, args, err = psql().
		Select(donationColumns...).
		From(donationTableName).
		Where(sq.Eq{"id": request.DonationID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate lock donation query: %w", err)
	}

	var donation types.Donation
	err = pgxscan.Get(ctx, tx, &donation, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil, types.ErrDonationNotFound
		}
		return nil, nil, fmt.Errorf("failed to lock donation: %w", err)
	}

	return &request, &donation, nil
}
