package repoargs

import "github.com/fsdevblog/groupbuy/internal/domain"

type CreatePaymentEvent struct {
	ExternalPaymentRef string
	OrderID            int64
	Status             domain.PaymentStatusType
	Outcome            string
}
