package service

import (
	"context"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
	"github.com/fsdevblog/groupbuy/pkg/uow"
)

type OrderService struct {
	orderRepo OrderRepository
}

func NewOrderService(u uow.UOW) (*OrderService, error) {
	orderRepo, err := getDirectRepo[OrderRepository](u, repoargs.OrderRepoName)
	if err != nil {
		return nil, err
	}
	return &OrderService{orderRepo: orderRepo}, nil
}

func (o *OrderService) GetByBuyerID(ctx context.Context, buyerID int64) ([]domain.Order, error) {
	orders, err := o.orderRepo.GetByBuyerID(ctx, buyerID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return orders, nil
}
