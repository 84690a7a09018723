package pgrepo

import (
	"context"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
	"github.com/fsdevblog/groupbuy/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const listingColumns = `id, created_at, updated_at, seller_id, title, unit_price, currency, total_quantity,
	quantity_available, status`

type ListingRepository struct {
	conn uow.DBTX
}

func NewListingRepository(conn uow.DBTX) *ListingRepository {
	return &ListingRepository{conn: conn}
}

func (l *ListingRepository) Create(ctx context.Context, args repoargs.CreateListing) (*domain.Listing, error) {
	row := l.conn.QueryRow(ctx, `
		INSERT INTO listings (seller_id, title, unit_price, currency, total_quantity, quantity_available, status)
		VALUES ($1, $2, $3, $4, $5, $5, $6)
		RETURNING `+listingColumns,
		args.SellerID, args.Title, args.UnitPrice, args.Currency, args.TotalQuantity,
		string(domain.ListingStatusAvailable),
	)
	listing, err := scanListing(row)
	if err != nil {
		return nil, convertErr(err, "creating listing for seller %d", args.SellerID)
	}
	return listing, nil
}

func (l *ListingRepository) FindByID(ctx context.Context, id int64) (*domain.Listing, error) {
	listing, err := scanListing(l.conn.QueryRow(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = $1`, id))
	if err != nil {
		return nil, convertErr(err, "finding listing %d", id)
	}
	return listing, nil
}

func (l *ListingRepository) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Listing, error) {
	listing, err := scanListing(
		l.conn.QueryRow(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = $1 FOR UPDATE`, id),
	)
	if err != nil {
		return nil, convertErr(err, "locking listing %d", id)
	}
	return listing, nil
}

// ListByStatus возвращает листинги в статусе status, новые первыми.
func (l *ListingRepository) ListByStatus(
	ctx context.Context,
	status domain.ListingStatusType,
	limit uint,
) ([]domain.Listing, error) {
	safeLimit, safeLimitErr := safeConvertUintToInt32(limit)
	if safeLimitErr != nil {
		return nil, convertErr(safeLimitErr, "converting limit to int32")
	}
	rows, err := l.conn.Query(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE status = $1 ORDER BY id DESC LIMIT $2`,
		string(status), safeLimit,
	)
	if err != nil {
		return nil, convertErr(err, "listing listings with status `%s`", status)
	}
	listings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Listing, error) {
		listing, scanErr := scanListing(row)
		if scanErr != nil {
			return domain.Listing{}, scanErr
		}
		return *listing, nil
	})
	if err != nil {
		return nil, convertErr(err, "scanning listings with status `%s`", status)
	}
	return listings, nil
}

func (l *ListingRepository) DecrementAvailable(ctx context.Context, id int64, quantity int64) (*domain.Listing, error) {
	row := l.conn.QueryRow(ctx, `
		UPDATE listings SET quantity_available = quantity_available - $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+listingColumns,
		id, quantity,
	)
	listing, err := scanListing(row)
	if err != nil {
		return nil, convertErr(err, "decrementing listing %d by %d", id, quantity)
	}
	return listing, nil
}

func (l *ListingRepository) UpdateStatus(
	ctx context.Context,
	id int64,
	status domain.ListingStatusType,
) (*domain.Listing, error) {
	row := l.conn.QueryRow(ctx, `
		UPDATE listings SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+listingColumns,
		id, string(status),
	)
	listing, err := scanListing(row)
	if err != nil {
		return nil, convertErr(err, "updating listing %d status to `%s`", id, status)
	}
	return listing, nil
}

func scanListing(row pgx.Row) (*domain.Listing, error) {
	var listing domain.Listing
	var status string
	if err := row.Scan(
		&listing.ID,
		&listing.CreatedAt,
		&listing.UpdatedAt,
		&listing.SellerID,
		&listing.Title,
		&listing.UnitPrice,
		&listing.Currency,
		&listing.TotalQuantity,
		&listing.QuantityAvailable,
		&status,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	listing.Status = domain.ListingStatusType(status)
	return &listing, nil
}
