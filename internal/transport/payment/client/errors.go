package client

import (
	"fmt"
	"net/http"
	"time"
)

// StatusCodeError шлюз ответил на запрос о платеже Ref неожиданным статусом Code.
type StatusCodeError struct {
	Code int
	Ref  string
}

func NewStatusCodeError(code int, ref string) *StatusCodeError {
	return &StatusCodeError{Code: code, Ref: ref}
}

func (e *StatusCodeError) Error() string {
	return fmt.Sprintf("payment gateway answered %d for payment %s", e.Code, e.Ref)
}

// PaymentUnknown шлюз не знает о платеже: покупатель еще не начинал оплату.
func (e *StatusCodeError) PaymentUnknown() bool {
	return e.Code == http.StatusNotFound
}

// TooManyRequestError шлюз ограничил частоту запросов, повторять не раньше RetryAfter.
type TooManyRequestError struct {
	RetryAfter time.Duration
}

func NewTooManyRequestError(retryAfter time.Duration) *TooManyRequestError {
	return &TooManyRequestError{RetryAfter: retryAfter}
}

func (e *TooManyRequestError) Error() string {
	return fmt.Sprintf("payment gateway rate limit, retry after %s", e.RetryAfter)
}
