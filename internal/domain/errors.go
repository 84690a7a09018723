package domain

import (
	"errors"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrUnknown        = errors.New("unknown error")

	// ErrNotFound сущность отсутствует (или недоступна, как приостановленный листинг).
	ErrNotFound = ErrRecordNotFound
	// ErrForbidden у актора нет прав на сущность.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidTransition нарушено правило машины состояний.
	ErrInvalidTransition = errors.New("invalid state transition")
	// ErrInsufficientQuantity попытка продать больше, чем осталось.
	ErrInsufficientQuantity = errors.New("insufficient quantity")
	// ErrContention исчерпан бюджет повторов транзакции.
	ErrContention = errors.New("contention, try again later")
	// ErrAlreadyProcessed операция уже была выполнена ранее. Это успешный исход, а не сбой.
	ErrAlreadyProcessed = errors.New("already processed")
	// ErrAlreadyReviewed отзыв на этот заказ уже оставлен.
	ErrAlreadyReviewed = errors.New("order already reviewed")
	// ErrInvalidArgument входные данные не прошли проверку.
	ErrInvalidArgument = errors.New("invalid argument")
)
