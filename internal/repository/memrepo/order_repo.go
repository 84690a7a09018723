package memrepo

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
)

type OrderRepository struct {
	s store
}

func (o *OrderRepository) Create(_ context.Context, args repoargs.CreateOrder) (*domain.Order, error) {
	var order domain.Order
	err := o.s.write(func(st *state) error {
		for _, existing := range st.orders {
			if existing.ExternalPaymentRef == args.ExternalPaymentRef {
				return duplicate("order with payment ref", args.ExternalPaymentRef)
			}
			if existing.BuyerID == args.BuyerID && existing.GroupID == args.GroupID &&
				existing.Status != domain.OrderStatusCancelled {
				return duplicate("order of buyer in group", [2]int64{args.BuyerID, args.GroupID})
			}
		}
		now := o.s.clock()
		order = domain.Order{
			ID:                 st.nextID("orders"),
			CreatedAt:          now,
			UpdatedAt:          now,
			BuyerID:            args.BuyerID,
			ListingID:          args.ListingID,
			GroupID:            args.GroupID,
			Quantity:           args.Quantity,
			TotalPrice:         args.TotalPrice,
			ExternalPaymentRef: args.ExternalPaymentRef,
			Status:             domain.OrderStatusPendingPayment,
		}
		st.orders[order.ID] = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (o *OrderRepository) FindByID(_ context.Context, id int64) (*domain.Order, error) {
	var order domain.Order
	err := o.s.read(func(st *state) error {
		found, ok := st.orders[id]
		if !ok {
			return notFound("order", id)
		}
		order = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (o *OrderRepository) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	return o.FindByID(ctx, id)
}

func (o *OrderRepository) FindActiveByBuyerAndGroup(_ context.Context, buyerID, groupID int64) (*domain.Order, error) {
	var order *domain.Order
	err := o.s.read(func(st *state) error {
		for _, candidate := range st.orders {
			if candidate.BuyerID == buyerID && candidate.GroupID == groupID &&
				candidate.Status != domain.OrderStatusCancelled {
				order = &candidate
				return nil
			}
		}
		return notFound("order of buyer in group", groupID)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (o *OrderRepository) AddQuantity(_ context.Context, args repoargs.AddOrderQuantity) (*domain.Order, error) {
	return o.update(args.ID, func(order *domain.Order, _ time.Time) {
		order.Quantity += args.Quantity
		order.TotalPrice = args.TotalPrice
	})
}

func (o *OrderRepository) UpdateStatus(_ context.Context, args repoargs.UpdateOrderStatus) (*domain.Order, error) {
	return o.update(args.ID, func(order *domain.Order, now time.Time) {
		order.Status = args.Status
		switch args.Status {
		case domain.OrderStatusPaid:
			order.PaidAt = &now
		case domain.OrderStatusCompleted:
			order.CompletedAt = &now
		case domain.OrderStatusPendingPayment, domain.OrderStatusCancelled:
		}
	})
}

func (o *OrderRepository) GetByGroupID(_ context.Context, groupID int64) ([]domain.Order, error) {
	orders := o.filter(func(order domain.Order) bool { return order.GroupID == groupID })
	slices.SortFunc(orders, func(a, b domain.Order) int { return cmp.Compare(a.ID, b.ID) })
	return orders, nil
}

func (o *OrderRepository) GetByBuyerID(_ context.Context, buyerID int64) ([]domain.Order, error) {
	orders := o.filter(func(order domain.Order) bool { return order.BuyerID == buyerID })
	slices.SortFunc(orders, func(a, b domain.Order) int { return cmp.Compare(b.ID, a.ID) })
	return orders, nil
}

func (o *OrderRepository) CancelPendingByGroupID(_ context.Context, groupID int64) (int64, error) {
	var cancelled int64
	err := o.s.write(func(st *state) error {
		now := o.s.clock()
		for id, order := range st.orders {
			if order.GroupID == groupID && order.Status == domain.OrderStatusPendingPayment {
				order.Status = domain.OrderStatusCancelled
				order.UpdatedAt = now
				st.orders[id] = order
				cancelled++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return cancelled, nil
}

func (o *OrderRepository) GetPendingCreatedBefore(
	_ context.Context,
	before time.Time,
	limit uint,
) ([]domain.Order, error) {
	var orders []domain.Order
	_ = o.s.read(func(st *state) error {
		type paymentKey struct {
			ref     string
			orderID int64
		}
		declined := make(map[paymentKey]struct{})
		for _, event := range st.paymentEvents {
			if event.Status.IsDeclined() {
				declined[paymentKey{ref: event.ExternalPaymentRef, orderID: event.OrderID}] = struct{}{}
			}
		}
		for _, order := range st.orders {
			if order.Status != domain.OrderStatusPendingPayment || !order.CreatedAt.Before(before) {
				continue
			}
			if _, ok := declined[paymentKey{ref: order.ExternalPaymentRef, orderID: order.ID}]; ok {
				continue
			}
			orders = append(orders, order)
		}
		return nil
	})
	slices.SortFunc(orders, func(a, b domain.Order) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return truncate(orders, limit), nil
}

func (o *OrderRepository) filter(match func(domain.Order) bool) []domain.Order {
	var orders []domain.Order
	_ = o.s.read(func(st *state) error {
		for _, order := range st.orders {
			if match(order) {
				orders = append(orders, order)
			}
		}
		return nil
	})
	return orders
}

func (o *OrderRepository) update(id int64, fn func(*domain.Order, time.Time)) (*domain.Order, error) {
	var order domain.Order
	err := o.s.write(func(st *state) error {
		found, ok := st.orders[id]
		if !ok {
			return notFound("order", id)
		}
		now := o.s.clock()
		fn(&found, now)
		found.UpdatedAt = now
		st.orders[id] = found
		order = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
