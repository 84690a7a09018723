package payment

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/service"
	"github.com/fsdevblog/groupbuy/internal/transport/payment/client"
)

type Client interface {
	GetPayment(ctx context.Context, externalPaymentRef string) (*client.Response, error)
}

type Servicer interface {
	OrdersForReconciliation(ctx context.Context, limit uint) ([]domain.Order, error)
	HandleGatewayCallback(ctx context.Context, args service.PaymentCallbackArgs) (*service.CallbackResult, error)
}
