package pgrepo

import (
	"context"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
	"github.com/fsdevblog/groupbuy/pkg/uow"
)

type PaymentEventRepository struct {
	conn uow.DBTX
}

func NewPaymentEventRepository(conn uow.DBTX) *PaymentEventRepository {
	return &PaymentEventRepository{conn: conn}
}

func (p *PaymentEventRepository) Create(ctx context.Context, args repoargs.CreatePaymentEvent) (*domain.PaymentEvent, error) {
	var event domain.PaymentEvent
	var status string
	err := p.conn.QueryRow(ctx, `
		INSERT INTO payment_events (external_payment_ref, order_id, status, outcome)
		VALUES ($1, $2, $3, $4)
		RETURNING id, received_at, external_payment_ref, order_id, status, outcome`,
		args.ExternalPaymentRef, args.OrderID, string(args.Status), args.Outcome,
	).Scan(&event.ID, &event.ReceivedAt, &event.ExternalPaymentRef, &event.OrderID, &status, &event.Outcome)
	if err != nil {
		return nil, convertErr(err, "recording payment event for order %d", args.OrderID)
	}
	event.Status = domain.PaymentStatusType(status)
	return &event, nil
}
