package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsdevblog/paydesk/internal/config"
	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/fsdevblog/paydesk/internal/notification"
	"github.com/fsdevblog/paydesk/internal/processing"
	"github.com/fsdevblog/paydesk/internal/repository/filestore"
	"github.com/fsdevblog/paydesk/internal/repository/pgrepo"
	"github.com/fsdevblog/paydesk/internal/repository/redisrepo"
	"github.com/fsdevblog/paydesk/internal/repository/repoargs"
	"github.com/fsdevblog/paydesk/internal/repository/sqlc"
	"github.com/fsdevblog/paydesk/internal/service"
	"github.com/fsdevblog/paydesk/internal/service/psswd"
	"github.com/fsdevblog/paydesk/internal/transport/api"
	"github.com/fsdevblog/paydesk/internal/transport/gateway"
	"github.com/fsdevblog/paydesk/pkg/uow"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
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

	gin.SetMode(a.Config.GinMode)
	a.Logger.WithFields(logrus.Fields{
		"address":  a.Config.RunAddress,
		"gateway":  a.Config.GatewayURL,
		"kafka":    a.Config.KafkaBrokers,
		"methods":  a.Config.PaymentMethodsFile,
		"adminKey": a.Config.AdminAPIKey != "",
	}).Info("starting app")

	conn, connErr := pgrepo.Connect(notifyCtx, pgrepo.ConnectOptions{
		MigrationsDir: a.Config.MigrationsDir,
		DSN:           a.Config.DatabaseDSN,
	}, a.Logger)
	if connErr != nil {
		return fmt.Errorf("app run: %s", connErr.Error())
	}
	defer conn.Close()

	unitOfWork, uowErr := initUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("app run: %s", uowErr.Error())
	}

	redisClient, redisErr := initRedis(notifyCtx, a.Config.RedisURL)
	if redisErr != nil {
		return fmt.Errorf("app run: %s", redisErr.Error())
	}
	defer redisClient.Close()

	methodsStore := filestore.NewPaymentMethodStore(a.Config.PaymentMethodsFile)
	if err := methodsStore.EnsureExists(filestore.DefaultPaymentMethods()); err != nil {
		return fmt.Errorf("app run: %s", err.Error())
	}

	sink, closeSink, sinkErr := a.initNotificationSink()
	if sinkErr != nil {
		return fmt.Errorf("app run: %s", sinkErr.Error())
	}
	defer closeSink()
	dispatcher := service.NewDispatcher(sink, a.Logger)

	services, sErr := service.Factory(service.FactoryArgs{
		UOW:            unitOfWork,
		JWTSecret:      []byte(a.Config.JWTSecret),
		JWTExpire:      a.Config.JWTExpiresIn,
		PasswordHasher: psswd.PasswordHash{},
		PaymentMethods: methodsStore,
		Intents:        redisrepo.NewIntentRepository(redisClient),
		Processor:      a.initProcessor(),
		Dispatcher:     dispatcher,
		Logger:         a.Logger,
	})
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	var corsOrigins []string
	if a.Config.IsRelease() {
		corsOrigins = a.Config.CORSAllowedOrigins
	}
	router, routerErr := api.New(api.RouterArgs{
		Logger:                 a.Logger,
		UserService:            services.UserService,
		BalanceService:         services.BalanceService,
		TransactionService:     services.TransactionService,
		PaymentMethodService:   services.PaymentMethodService,
		PaymentService:         services.PaymentService,
		JWTSecretKey:           []byte(a.Config.JWTSecret),
		AdminAPIKey:            a.Config.AdminAPIKey,
		Redis:                  redisClient,
		LoginAttemptsPerMinute: a.Config.LoginAttemptsPerMinute,
		CORSAllowedOrigins:     corsOrigins,
	})
	if routerErr != nil {
		return fmt.Errorf("app run: %s", routerErr.Error())
	}

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

	var runErr error
	select {
	case <-notifyCtx.Done():
		runErr = notifyCtx.Err()
	case runErr = <-errChan:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.Logger.WithError(err).Error("http server shutdown")
	}
	// дожидаемся отправки уведомлений, поставленных в очередь до остановки.
	dispatcher.Wait()

	return runErr
}

func initUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	// user repo
	userRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return sqlc.NewUserRepository(dbtx)
	}
	if regErr := unitOfWork.Register(uow.RepositoryName(repoargs.UserRepoName), userRepoFactoryFn); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	// balance repo
	balanceRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return sqlc.NewBalanceRepository(dbtx)
	}
	if regErr := unitOfWork.Register(uow.RepositoryName(repoargs.BalanceRepoName), balanceRepoFactoryFn); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	// transaction repo
	transRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return sqlc.NewTransactionRepository(dbtx)
	}
	if regErr := unitOfWork.Register(uow.RepositoryName(repoargs.TransactionRepoName), transRepoFactoryFn); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	// saved card repo
	cardRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return sqlc.NewSavedCardRepository(dbtx)
	}
	if regErr := unitOfWork.Register(uow.RepositoryName(repoargs.SavedCardRepoName), cardRepoFactoryFn); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	return unitOfWork, nil
}

func initRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, parseErr := redis.ParseURL(url)
	if parseErr != nil {
		return nil, fmt.Errorf("parse redis url: %s", parseErr.Error())
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %s", err.Error())
	}
	return client, nil
}

// initProcessor выбирает процессор платежей: внешний шлюз, если задан его адрес, иначе симулятор.
func (a *App) initProcessor() *processing.Registry {
	if a.Config.GatewayURL == "" {
		a.Logger.Warn("GATEWAY_URL is not set, payments are simulated")
		return processing.NewSimulatedRegistry()
	}

	gw := processing.NewGateway(gateway.New(a.Config.GatewayURL))
	registry := processing.NewRegistry()
	for _, method := range domain.PaymentMethods() {
		registry.Register(method, gw)
	}
	return registry
}

// initNotificationSink всегда пишет события в лог и дополнительно в kafka, если заданы брокеры.
func (a *App) initNotificationSink() (service.Notifier, func(), error) {
	logSink := notification.NewLoggerSink(a.Logger)
	if len(a.Config.KafkaBrokers) == 0 {
		return logSink, func() {}, nil
	}

	producer, err := notification.NewKafkaProducer(a.Config.KafkaBrokers)
	if err != nil {
		return nil, nil, err
	}
	kafkaSink := notification.NewKafkaSink(producer, a.Config.KafkaTopic)
	closeFn := func() {
		if closeErr := kafkaSink.Close(); closeErr != nil {
			a.Logger.WithError(closeErr).Error("close kafka producer")
		}
	}
	return notification.Multi{logSink, kafkaSink}, closeFn, nil
}
