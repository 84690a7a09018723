package pgrepo

import (
	"context"
	"time"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
	"github.com/fsdevblog/groupbuy/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const orderColumns = `id, created_at, updated_at, buyer_id, listing_id, group_id, quantity, total_price,
	external_payment_ref, status, paid_at, completed_at`

type OrderRepository struct {
	conn uow.DBTX
}

func NewOrderRepository(conn uow.DBTX) *OrderRepository {
	return &OrderRepository{conn: conn}
}

func (o *OrderRepository) Create(ctx context.Context, args repoargs.CreateOrder) (*domain.Order, error) {
	order, err := scanOrder(o.conn.QueryRow(ctx, `
		INSERT INTO orders (buyer_id, listing_id, group_id, quantity, total_price, external_payment_ref, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+orderColumns,
		args.BuyerID, args.ListingID, args.GroupID, args.Quantity, args.TotalPrice, args.ExternalPaymentRef,
		string(domain.OrderStatusPendingPayment),
	))
	if err != nil {
		return nil, convertErr(err, "creating order for buyer %d in group %d", args.BuyerID, args.GroupID)
	}
	return order, nil
}

func (o *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := scanOrder(o.conn.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, convertErr(err, "finding order %d", id)
	}
	return order, nil
}

func (o *OrderRepository) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := scanOrder(
		o.conn.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id),
	)
	if err != nil {
		return nil, convertErr(err, "locking order %d", id)
	}
	return order, nil
}

func (o *OrderRepository) FindActiveByBuyerAndGroup(ctx context.Context, buyerID, groupID int64) (*domain.Order, error) {
	order, err := scanOrder(o.conn.QueryRow(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE buyer_id = $1 AND group_id = $2 AND status <> $3
		FOR UPDATE`,
		buyerID, groupID, string(domain.OrderStatusCancelled),
	))
	if err != nil {
		return nil, convertErr(err, "finding order of buyer %d in group %d", buyerID, groupID)
	}
	return order, nil
}

// AddQuantity увеличивает количество заказа на args.Quantity и выставляет новую сумму args.TotalPrice.
func (o *OrderRepository) AddQuantity(ctx context.Context, args repoargs.AddOrderQuantity) (*domain.Order, error) {
	order, err := scanOrder(o.conn.QueryRow(ctx, `
		UPDATE orders SET quantity = quantity + $2, total_price = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING `+orderColumns,
		args.ID, args.Quantity, args.TotalPrice,
	))
	if err != nil {
		return nil, convertErr(err, "adding %d to order %d", args.Quantity, args.ID)
	}
	return order, nil
}

// UpdateStatus меняет статус заказа. Переходы в paid и completed проставляют соответствующую метку времени.
func (o *OrderRepository) UpdateStatus(ctx context.Context, args repoargs.UpdateOrderStatus) (*domain.Order, error) {
	order, err := scanOrder(o.conn.QueryRow(ctx, `
		UPDATE orders SET
			status       = $2::order_status_type,
			paid_at      = CASE WHEN $2::order_status_type = 'paid' THEN NOW() ELSE paid_at END,
			completed_at = CASE WHEN $2::order_status_type = 'completed' THEN NOW() ELSE completed_at END,
			updated_at   = NOW()
		WHERE id = $1
		RETURNING `+orderColumns,
		args.ID, string(args.Status),
	))
	if err != nil {
		return nil, convertErr(err, "updating order %d status to `%s`", args.ID, args.Status)
	}
	return order, nil
}

func (o *OrderRepository) GetByGroupID(ctx context.Context, groupID int64) ([]domain.Order, error) {
	return o.list(ctx, "getting orders of group",
		`SELECT `+orderColumns+` FROM orders WHERE group_id = $1 ORDER BY id`, groupID)
}

// GetByBuyerID возвращает заказы покупателя, отсортированные по дате создания по убыванию.
func (o *OrderRepository) GetByBuyerID(ctx context.Context, buyerID int64) ([]domain.Order, error) {
	return o.list(ctx, "getting orders of buyer",
		`SELECT `+orderColumns+` FROM orders WHERE buyer_id = $1 ORDER BY created_at DESC, id DESC`, buyerID)
}

func (o *OrderRepository) CancelPendingByGroupID(ctx context.Context, groupID int64) (int64, error) {
	tag, err := o.conn.Exec(ctx, `
		UPDATE orders SET status = $2, updated_at = NOW()
		WHERE group_id = $1 AND status = $3`,
		groupID, string(domain.OrderStatusCancelled), string(domain.OrderStatusPendingPayment),
	)
	if err != nil {
		return 0, convertErr(err, "cancelling pending orders of group %d", groupID)
	}
	return tag.RowsAffected(), nil
}

func (o *OrderRepository) GetPendingCreatedBefore(
	ctx context.Context,
	before time.Time,
	limit uint,
) ([]domain.Order, error) {
	safeLimit, safeLimitErr := safeConvertUintToInt32(limit)
	if safeLimitErr != nil {
		return nil, convertErr(safeLimitErr, "converting limit to int32")
	}
	return o.list(ctx, "getting pending orders", `
		SELECT `+orderColumns+` FROM orders
		WHERE status = $1 AND created_at < $2
			AND NOT EXISTS (
				SELECT 1 FROM payment_events e
				WHERE e.external_payment_ref = orders.external_payment_ref
					AND e.order_id = orders.id
					AND e.status IN ($4, $5)
			)
		ORDER BY created_at, id
		LIMIT $3`,
		string(domain.OrderStatusPendingPayment), before, safeLimit,
		string(domain.PaymentStatusFailed), string(domain.PaymentStatusCancelled),
	)
}

func (o *OrderRepository) list(ctx context.Context, op string, query string, args ...any) ([]domain.Order, error) {
	rows, err := o.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, convertErr(err, "%s `%v`", op, args[0])
	}
	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Order, error) {
		order, scanErr := scanOrder(row)
		if scanErr != nil {
			return domain.Order{}, scanErr
		}
		return *order, nil
	})
	if err != nil {
		return nil, convertErr(err, "%s `%v`", op, args[0])
	}
	return orders, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var order domain.Order
	var status string
	if err := row.Scan(
		&order.ID,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.BuyerID,
		&order.ListingID,
		&order.GroupID,
		&order.Quantity,
		&order.TotalPrice,
		&order.ExternalPaymentRef,
		&status,
		&order.PaidAt,
		&order.CompletedAt,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	order.Status = domain.OrderStatusType(status)
	return &order, nil
}
