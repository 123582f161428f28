package api

import (
	"time"

	"github.com/fsdevblog/paydesk/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	HealthRoute = "/health"

	RouteGroup       = "/api"
	RegisterRoute    = "/auth/register"
	LoginRoute       = "/auth/login"
	ProfileRoute     = "/auth/profile"
	AuthBalanceRoute = "/auth/balance"

	UsersRoute    = "/users"
	UserRoute     = "/users/:id"
	BalancesRoute = "/balances"
	BalanceRoute  = "/balances/:userId"

	TransactionsRoute      = "/transactions"
	UserTransactionsRoute  = "/transactions/user"
	TransactionStatsRoute  = "/transactions/stats/summary"
	TransactionRoute       = "/transactions/:id"
	TransactionStatusRoute = "/transactions/:id/status"

	PaymentMethodsRoute     = "/payment-methods"
	PaymentMethodRoute      = "/payment-methods/:id"
	PaymentCredentialsRoute = "/payment/credentials/:method"
	IntentsRoute            = "/payment/intents"
	IntentRoute             = "/payment/intents/:id"
	IntentConfirmRoute      = "/payment/intents/:id/confirm"
	CardsRoute              = "/payment/cards"
	CardRoute               = "/payment/cards/:id"
)

type RouterArgs struct {
	Logger               *logrus.Logger
	UserService          UserServicer
	BalanceService       BalanceServicer
	TransactionService   TransactionServicer
	PaymentMethodService PaymentMethodServicer
	PaymentService       PaymentServicer
	JWTSecretKey         []byte
	// AdminAPIKey пустой ключ отключает проверку админских роутов.
	AdminAPIKey string
	// Redis nil отключает ограничение попыток входа и идемпотентность.
	Redis                  redis.Cmdable
	LoginAttemptsPerMinute int
	IdempotencyTTL         time.Duration
	CORSAllowedOrigins     []string
}

func New(args RouterArgs) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.CORS(args.CORSAllowedOrigins))
	r.Use(middlewares.Errors())

	authHandler := NewAuthHandler(args.UserService, args.BalanceService)
	userHandler := NewUserHandler(args.UserService)
	balanceHandler := NewBalanceHandler(args.BalanceService)
	transactionHandler := NewTransactionHandler(args.TransactionService)
	paymentMethodHandler := NewPaymentMethodHandler(args.PaymentMethodService)
	paymentHandler := NewPaymentHandler(args.PaymentService)

	r.GET(HealthRoute, Health)

	api := r.Group(RouteGroup)

	api.POST(RegisterRoute, authHandler.Register)
	api.POST(LoginRoute,
		middlewares.LoginRateLimit(args.Redis, args.LoginAttemptsPerMinute, args.Logger),
		authHandler.Login,
	)
	api.GET(PaymentCredentialsRoute, paymentMethodHandler.Credentials)

	// роуты юзера.
	user := api.Group("", middlewares.AuthRequired(args.JWTSecretKey))
	user.GET(ProfileRoute, authHandler.Profile)
	user.GET(AuthBalanceRoute, authHandler.Balance)
	user.POST(TransactionsRoute,
		middlewares.Idempotency(args.Redis, args.IdempotencyTTL, args.Logger),
		transactionHandler.Create,
	)
	user.GET(UserTransactionsRoute, transactionHandler.UserIndex)
	user.POST(IntentsRoute, paymentHandler.CreateIntent)
	user.GET(IntentRoute, paymentHandler.ShowIntent)
	user.POST(IntentConfirmRoute,
		middlewares.Idempotency(args.Redis, args.IdempotencyTTL, args.Logger),
		paymentHandler.ConfirmIntent,
	)
	user.GET(CardsRoute, paymentHandler.Cards)
	user.DELETE(CardRoute, paymentHandler.DeleteCard)

	// админка.
	admin := api.Group("", middlewares.AdminKeyRequired(args.AdminAPIKey))
	admin.GET(UsersRoute, userHandler.Index)
	admin.GET(UserRoute, userHandler.Show)
	admin.GET(BalancesRoute, balanceHandler.Index)
	admin.PUT(BalanceRoute, balanceHandler.Update)
	admin.GET(TransactionsRoute, transactionHandler.Index)
	admin.GET(TransactionStatsRoute, transactionHandler.Stats)
	admin.GET(TransactionRoute, transactionHandler.Show)
	admin.PATCH(TransactionStatusRoute, transactionHandler.UpdateStatus)
	admin.DELETE(TransactionRoute, transactionHandler.Delete)
	admin.GET(PaymentMethodsRoute, paymentMethodHandler.Index)
	admin.PUT(PaymentMethodRoute, paymentMethodHandler.Update)

	return r, nil
}
