package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/service"
	"github.com/fsdevblog/groupbuy/internal/transport/api/middlewares"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type PaymentsHandlerTestSuite struct {
	handlerSuite
}

func TestPaymentsHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentsHandlerTestSuite))
}

func (s *PaymentsHandlerTestSuite) TestCallback() {
	ref := testOrder(domain.OrderStatusPaid).ExternalPaymentRef
	callback := func(orderID int64, status domain.PaymentStatusType) service.PaymentCallbackArgs {
		return service.PaymentCallbackArgs{ExternalPaymentRef: ref, OrderID: orderID, Status: status}
	}

	s.paymentSvs.EXPECT().HandleGatewayCallback(gomock.Any(), callback(11, domain.PaymentStatusSuccessful)).
		Return(&service.CallbackResult{
			Outcome: service.OutcomeSettled,
			Settle:  &service.SettleResult{Order: testOrder(domain.OrderStatusPaid)},
		}, nil)
	s.paymentSvs.EXPECT().HandleGatewayCallback(gomock.Any(), callback(11, domain.PaymentStatusFailed)).
		Return(&service.CallbackResult{Outcome: service.OutcomeIgnored}, nil)
	s.paymentSvs.EXPECT().HandleGatewayCallback(gomock.Any(), callback(11, domain.PaymentStatusPending)).
		Return(nil, fmt.Errorf("payment callback: %w", domain.ErrInvalidArgument))
	s.paymentSvs.EXPECT().HandleGatewayCallback(gomock.Any(), callback(12, domain.PaymentStatusSuccessful)).
		Return(nil, fmt.Errorf("settling payment: %w", domain.ErrInvalidTransition))

	secret := map[string]string{middlewares.WebhookSecretHeader: string(s.webhookSecret)}
	body := func(orderID int64, status string) string {
		return fmt.Sprintf(`{"externalPaymentRef":%q,"orderId":%d,"status":%q}`, ref, orderID, status)
	}

	cases := []struct {
		name        string
		headers     map[string]string
		body        string
		wantStatus  int
		wantOutcome string
	}{
		{
			name:        "successful",
			headers:     secret,
			body:        body(11, "successful"),
			wantStatus:  http.StatusOK,
			wantOutcome: service.OutcomeSettled,
		}, {
			name:        "failed is only recorded",
			headers:     secret,
			body:        body(11, "failed"),
			wantStatus:  http.StatusOK,
			wantOutcome: service.OutcomeIgnored,
		}, {
			name:       "non terminal status",
			headers:    secret,
			body:       body(11, "pending"),
			wantStatus: http.StatusBadRequest,
		}, {
			name:       "order can not be settled",
			headers:    secret,
			body:       body(12, "successful"),
			wantStatus: http.StatusConflict,
		}, {
			name:       "missing fields",
			headers:    secret,
			body:       `{"status":"successful"}`,
			wantStatus: http.StatusBadRequest,
		}, {
			name:       "no secret",
			body:       body(11, "successful"),
			wantStatus: http.StatusUnauthorized,
		}, {
			name:       "wrong secret",
			headers:    map[string]string{middlewares.WebhookSecretHeader: "guess"},
			body:       body(11, "successful"),
			wantStatus: http.StatusUnauthorized,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res, resBody := s.do(apiRequest{
				method: http.MethodPost, url: PaymentsCallbackRoute, headers: t.headers, body: t.body,
			})
			s.Require().Equal(t.wantStatus, res.StatusCode, string(resBody))
			if t.wantOutcome != "" {
				var got PaymentCallbackResponse
				s.decode(resBody, &got)
				s.Equal(t.wantOutcome, got.Outcome)
			}
		})
	}
}
