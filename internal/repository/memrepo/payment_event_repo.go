package memrepo

import (
	"context"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
)

type PaymentEventRepository struct {
	s store
}

func (p *PaymentEventRepository) Create(_ context.Context, args repoargs.CreatePaymentEvent) (*domain.PaymentEvent, error) {
	var event domain.PaymentEvent
	err := p.s.write(func(st *state) error {
		event = domain.PaymentEvent{
			ID:                 st.nextID("payment_events"),
			ReceivedAt:         p.s.clock(),
			ExternalPaymentRef: args.ExternalPaymentRef,
			OrderID:            args.OrderID,
			Status:             args.Status,
			Outcome:            args.Outcome,
		}
		st.paymentEvents[event.ID] = event
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// PaymentEvents возвращает журнал колбэков по ссылке платежа.
func (d *DB) PaymentEvents(ref string) []domain.PaymentEvent {
	d.mu.Lock()
	defer d.mu.Unlock()
	var events []domain.PaymentEvent
	for _, event := range d.st.paymentEvents {
		if event.ExternalPaymentRef == ref {
			events = append(events, event)
		}
	}
	return events
}
