package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsdevblog/groupbuy/internal/config"
	"github.com/fsdevblog/groupbuy/internal/repository/memrepo"
	"github.com/fsdevblog/groupbuy/internal/repository/pgrepo"
	"github.com/fsdevblog/groupbuy/internal/service"
	"github.com/fsdevblog/groupbuy/internal/transport/api"
	"github.com/fsdevblog/groupbuy/internal/transport/notifysink"
	"github.com/fsdevblog/groupbuy/internal/transport/payment"
	"github.com/fsdevblog/groupbuy/pkg/uow"
	"github.com/sirupsen/logrus"
)

const (
	shutdownTimeout          = 5 * time.Second
	reconcileLimit      uint = 50
	reconcileIdleDelay       = 30 * time.Second
	readHeaderTimeout        = 5 * time.Second
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.Infof("Starting app with config: %s", a.Config)

	unitOfWork, closeStorage, err := a.initStorage(notifyCtx)
	if err != nil {
		return fmt.Errorf("app run: %s", err.Error())
	}
	defer closeStorage()

	sink, closeSink, err := a.initSink(notifyCtx)
	if err != nil {
		return fmt.Errorf("app run: %s", err.Error())
	}
	defer closeSink()

	retry := uow.DefaultRetryPolicy()
	retry.MaxAttempts = a.Config.TxMaxAttempts

	services, sErr := service.Factory(unitOfWork, service.Options{
		RetryPolicy:       retry,
		CommissionRate:    a.Config.CommissionRate,
		PlatformAccountID: a.Config.PlatformAccountID,
		Currency:          a.Config.Currency,
		Sink:              sink,
		Logger:            a.Logger,
	})
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	router := api.New(api.RouterArgs{
		Logger:              a.Logger,
		ListingService:      services.ListingService,
		GroupService:        services.GroupService,
		LogisticsService:    services.LogisticsService,
		OrderService:        services.OrderService,
		ReceiptService:      services.ReceiptService,
		ReviewService:       services.ReviewService,
		NotificationService: services.NotificationService,
		PaymentService:      services.PaymentService,
		JWTSecretKey:        []byte(a.Config.JWTSecret),
		WebhookSecret:       []byte(a.Config.WebhookSecret),
	})

	srv := &http.Server{
		Addr:              a.Config.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		if runErr := srv.ListenAndServe(); runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
			errChan <- runErr
		}
	}()

	if a.Config.PaymentSystemAddress != "" {
		processor := payment.New(services.PaymentService, a.Config.PaymentSystemAddress, a.Logger).
			SetWorkers(a.Config.ReconcileWorkers).
			SetLimitPerIteration(reconcileLimit).
			SetIdleInterval(reconcileIdleDelay)
		go processor.Run(notifyCtx)
	} else {
		a.Logger.Warn("payment system address is not set, reconciliation disabled")
	}

	select {
	case <-notifyCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.WithError(err).Error("http server shutdown")
		}
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return err
	}
}

// initStorage выбирает хранилище по конфигурации. Возвращает функцию закрытия соединений.
func (a *App) initStorage(ctx context.Context) (uow.UOW, func(), error) {
	if a.Config.StorageDriver == config.StorageDriverMemory {
		a.Logger.Warn("using in-memory storage, data will be lost on restart")
		return memrepo.NewUnitOfWork(memrepo.NewDB()), func() {}, nil
	}

	conn, err := pgrepo.Connect(ctx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("init storage: %w", err)
	}

	unitOfWork := uow.NewUnitOfWork(conn)
	if err := pgrepo.Register(unitOfWork); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("init storage: %w", err)
	}
	return unitOfWork, conn.Close, nil
}

// initSink redis, если задан адрес, иначе уведомления только пишутся в журнал.
func (a *App) initSink(ctx context.Context) (service.NotificationSink, func(), error) {
	if a.Config.RedisAddr == "" {
		return notifysink.NewLogSink(a.Logger), func() {}, nil
	}

	rdb, err := notifysink.Connect(ctx, a.Config.RedisAddr, a.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("init sink: %w", err)
	}
	closeFn := func() {
		if closeErr := rdb.Close(); closeErr != nil {
			a.Logger.WithError(closeErr).Error("close redis")
		}
	}
	return notifysink.NewRedisSink(rdb, notifysink.DefaultChannelPrefix), closeFn, nil
}
