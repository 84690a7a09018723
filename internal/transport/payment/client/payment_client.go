// Package client HTTP клиент платежного шлюза, используется для сверки неоплаченных заказов.
package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/pkg/errors"
)

const RoutePayment = "/api/payments/"

// Константы минимального и максимально значения в заголовке Retry-After.
const (
	minRetryAfter     = 1
	maxRetryAfter     = 120
	defaultRetryAfter = 60 * time.Second
)

// Response состояние платежа на стороне шлюза. Формат совпадает с телом колбэка.
type Response struct {
	ExternalPaymentRef string                   `json:"externalPaymentRef"`
	OrderID            int64                    `json:"orderId"`
	Status             domain.PaymentStatusType `json:"status"`
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) HTTPClient {
	return HTTPClient{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
}

// GetPayment запрашивает состояние платежа по внешней ссылке.
// При ответе сервера со статусом отличным от http.StatusOK, возвращает ошибку StatusCodeError, или
// TooManyRequestError в случае http.StatusTooManyRequests.
//
//nolint:nonamedreturns
func (c HTTPClient) GetPayment(ctx context.Context, externalPaymentRef string) (response *Response, err error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.baseURL+RoutePayment+url.PathEscape(externalPaymentRef), nil,
	)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "get payment %s", externalPaymentRef)
	}

	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = errors.Wrap(closeErr, "close response body")
		}
	}()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, NewTooManyRequestError(parseRetryAfter(resp.Header.Get("Retry-After")))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.WithStack(NewStatusCodeError(resp.StatusCode, externalPaymentRef))
	}

	if decodeErr := json.NewDecoder(resp.Body).Decode(&response); decodeErr != nil {
		return nil, errors.Wrap(decodeErr, "parse response")
	}
	if response == nil {
		return nil, errors.New("empty response")
	}
	if response.ExternalPaymentRef != externalPaymentRef {
		return nil, errors.Errorf("payment ref mismatch: want %s, got %s", externalPaymentRef, response.ExternalPaymentRef)
	}

	return response, nil
}

// parseRetryAfter в случае ошибки или значения вне допустимого диапазона возвращает 60 секунд.
func parseRetryAfter(value string) time.Duration {
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < minRetryAfter || seconds > maxRetryAfter {
		return defaultRetryAfter
	}
	return time.Duration(seconds) * time.Second
}
