// Package payment сверяет с платежным шлюзом заказы, колбэк по которым так и не пришел.
package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/service"
	"github.com/fsdevblog/groupbuy/internal/transport/payment/client"
	"github.com/sirupsen/logrus"
)

const (
	defaultServiceTimeout         = 3 * time.Second
	defaultAPITimeout             = 10 * time.Second
	defaultIdleInterval           = 30 * time.Second
	defaultLimitPerIteration uint = 100
	defaultWorkers           uint = 10
)

// Processor периодически опрашивает шлюз о заказах в статусе pending_payment и передает окончательные статусы
// в тот же путь, что и колбэк. Повторная обработка безопасна, поэтому гонка с настоящим колбэком не страшна.
type Processor struct {
	client            Client
	svs               Servicer
	l                 *logrus.Entry
	limitPerIteration uint
	workers           uint
	idleInterval      time.Duration
}

func New(svs Servicer, apiBaseURL string, l *logrus.Logger) *Processor {
	loggerEntry := l.WithFields(logrus.Fields{
		"component": "payment",
		"module":    "processor",
	})

	return &Processor{
		svs:               svs,
		client:            client.New(apiBaseURL),
		l:                 loggerEntry,
		limitPerIteration: defaultLimitPerIteration,
		workers:           defaultWorkers,
		idleInterval:      defaultIdleInterval,
	}
}

// SetLimitPerIteration устанавливает кол-во заказов, обрабатываемых в одной итерации.
func (p *Processor) SetLimitPerIteration(limit uint) *Processor {
	p.limitPerIteration = limit
	return p
}

// SetWorkers устанавливает кол-во воркеров, опрашивающих шлюз.
func (p *Processor) SetWorkers(workers uint) *Processor {
	if workers > 0 {
		p.workers = workers
	}
	return p
}

// SetIdleInterval пауза между итерациями.
func (p *Processor) SetIdleInterval(d time.Duration) *Processor {
	p.idleInterval = d
	return p
}

// Run запускает сверку в цикле до отмены контекста.
//
// Алгоритм работы:
//  1. В каждой итерации запрашивает через сервисный слой заказы, ждущие оплаты дольше допустимого.
//  2. N воркеров запрашивают у шлюза состояние каждого платежа.
//  3. Окончательные статусы передаются в PaymentService.HandleGatewayCallback, pending пропускается до
//     следующей итерации.
func (p *Processor) Run(ctx context.Context) {
	p.l.WithFields(logrus.Fields{
		"limitPerIteration": p.limitPerIteration,
		"workers":           p.workers,
	}).Info("Starting")

	for {
		err := p.process(ctx)
		if err != nil && !errors.Is(err, ErrNoOrders) {
			p.l.WithError(err).Error("process error")
		}

		select {
		case <-ctx.Done():
			p.l.Info("Got stop signal, exiting...")
			return
		case <-time.After(p.idleInterval):
		}
	}
}

// process одна итерация сверки. Возвращает ErrNoOrders если сверять нечего.
func (p *Processor) process(ctx context.Context) error {
	orders, err := p.produce(ctx)
	if err != nil {
		return fmt.Errorf("process: %w", err)
	}

	results := p.runWorkers(ctx, orders)
	for _, result := range results {
		l := p.l.WithFields(logrus.Fields{
			"worker":  result.WorkerID,
			"orderID": result.Order.ID,
		})
		if result.Error != nil {
			l.WithError(result.Error).Error("get payment for order")
			continue
		}
		if !result.Status.IsTerminal() {
			l.WithField("status", result.Status).Debug("payment still pending")
			continue
		}
		p.apply(ctx, l, result)
	}
	return nil
}

func (p *Processor) apply(ctx context.Context, l *logrus.Entry, result workerResult) {
	reqCtx, cancel := context.WithTimeout(ctx, defaultServiceTimeout)
	defer cancel()

	res, err := p.svs.HandleGatewayCallback(reqCtx, service.PaymentCallbackArgs{
		ExternalPaymentRef: result.Order.ExternalPaymentRef,
		OrderID:            result.Order.ID,
		Status:             result.Status,
	})
	if err != nil {
		l.WithError(err).Warn("reconcile payment")
		return
	}
	l.WithField("outcome", res.Outcome).Info("payment reconciled")
}

// workerResult результат опроса шлюза по одному заказу.
type workerResult struct {
	WorkerID uint
	Order    *domain.Order
	Status   domain.PaymentStatusType
	Error    error
}

// runWorkers запускает параллельных воркеров и ожидает конца их работы (fan-out/fan-in).
func (p *Processor) runWorkers(ctx context.Context, orders []domain.Order) []workerResult {
	var taskCh = make(chan *domain.Order, len(orders))
	for i := range orders {
		taskCh <- &orders[i]
	}
	close(taskCh)

	wg := new(sync.WaitGroup)
	wg.Add(int(p.workers)) // nolint:gosec

	var resultCh = make(chan workerResult, len(orders))
	for i := range p.workers {
		go p.worker(ctx, wg, i+1, taskCh, resultCh)
	}
	wg.Wait()
	close(resultCh)

	var results = make([]workerResult, 0, len(orders))
	for result := range resultCh {
		results = append(results, result)
	}
	return results
}

func (p *Processor) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	workerID uint,
	taskCh <-chan *domain.Order,
	resultCh chan<- workerResult,
) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-taskCh:
			if !ok {
				return
			}
			resultCh <- p.processWorkerTask(ctx, workerID, task)
		}
	}
}

// processWorkerTask запрашивает состояние платежа. На 429 ждет время из заголовка Retry-After и повторяет запрос.
// Платеж, о котором шлюз не знает, считается еще не начатым.
func (p *Processor) processWorkerTask(ctx context.Context, workerID uint, task *domain.Order) workerResult {
	result := workerResult{WorkerID: workerID, Order: task}
	for {
		reqCtx, cancel := context.WithTimeout(ctx, defaultAPITimeout)
		resp, err := p.client.GetPayment(reqCtx, task.ExternalPaymentRef)
		cancel()

		if err == nil {
			result.Status = resp.Status
			return result
		}

		var statusErr *client.StatusCodeError
		if errors.As(err, &statusErr) && statusErr.PaymentUnknown() {
			result.Status = domain.PaymentStatusPending
			return result
		}
		var tooManyReq *client.TooManyRequestError
		if !errors.As(err, &tooManyReq) {
			result.Error = err
			return result
		}
		select {
		case <-ctx.Done():
			result.Error = ctx.Err()
			return result
		case <-time.After(tooManyReq.RetryAfter):
		}
	}
}

// produce возвращает ErrNoOrders, если заказов для сверки нет.
func (p *Processor) produce(ctx context.Context) ([]domain.Order, error) {
	produceCtx, cancel := context.WithTimeout(ctx, defaultServiceTimeout)
	defer cancel()

	orders, err := p.svs.OrdersForReconciliation(produceCtx, p.limitPerIteration)
	if err != nil {
		return nil, fmt.Errorf("produce: %w", err)
	}
	if len(orders) == 0 {
		return nil, ErrNoOrders
	}
	return orders, nil
}
