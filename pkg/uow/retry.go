package uow

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// RetryPolicy описывает бюджет повторов транзакции при конфликтах.
type RetryPolicy struct {
	MaxAttempts uint
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryPolicy 3 попытки, пауза 50ms с удвоением, но не более 1s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,                      //nolint:mnd
		BaseDelay:   50 * time.Millisecond,  //nolint:mnd
		MaxDelay:    1000 * time.Millisecond, //nolint:mnd
	}
}

// DoWithRetry выполняет fn через u.Do. Если транзакция завершилась ErrConflict, вся функция выполняется заново
// (с повторным чтением данных) после паузы с экспоненциальным ростом. После исчерпания попыток возвращается
// ErrRetryExhausted, обернутый вместе с последней ошибкой. Любая другая ошибка возвращается сразу.
//
// fn может быть вызвана несколько раз, поэтому она не должна иметь побочных эффектов вне tx.
func DoWithRetry(ctx context.Context, u UOW, p RetryPolicy, fn func(context.Context, TX) error) error {
	attempts := p.MaxAttempts
	if attempts == 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := range attempts {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return errors.Join(ctx.Err(), lastErr)
			case <-time.After(p.backoff(attempt)):
			}
		}

		err := u.Do(ctx, fn)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrConflict) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("%w after %d attempts: %w", ErrRetryExhausted, attempts, lastErr)
}

// backoff пауза перед попыткой attempt (attempt >= 1).
func (p RetryPolicy) backoff(attempt uint) time.Duration {
	if p.BaseDelay <= 0 {
		return 0
	}
	delay := p.BaseDelay << (attempt - 1)
	if p.MaxDelay > 0 && (delay > p.MaxDelay || delay <= 0) {
		delay = p.MaxDelay
	}
	return time.Duration(jitter(float64(delay), 0.15, 0.15)) //nolint:mnd
}

// jitter возвращает число, рассыпавшееся относительно value на случайный процент в пределах
// [1-minPercent, 1+maxPercent].
// Например, если minPercent=0.15, maxPercent=0.15, получим диапазон [0.85*value, 1.15*value].
//
// minPercent и maxPercent должны быть >= 0 (0.1 = 10%). Если указано иное, значение выставится в 0.15.
func jitter(value, minPercent, maxPercent float64) float64 {
	if minPercent < 0 || maxPercent < 0 {
		minPercent = 0.15
		maxPercent = 0.15
	}
	factor := 1 - minPercent + rand.Float64()*(minPercent+maxPercent) // nolint:gosec
	return value * factor
}
