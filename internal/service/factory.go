package service

import (
	"fmt"
	"time"

	"github.com/fsdevblog/paydesk/internal/repository/repoargs"
	"github.com/fsdevblog/paydesk/pkg/uow"
	"github.com/sirupsen/logrus"
)

type AppServices struct {
	UserService          *UserService
	BalanceService       *BalanceService
	TransactionService   *TransactionService
	PaymentMethodService *PaymentMethodService
	PaymentService       *PaymentService
}

type FactoryArgs struct {
	UOW            uow.UOW
	JWTSecret      []byte
	JWTExpire      time.Duration
	PasswordHasher PasswordHasher
	PaymentMethods PaymentMethodStore
	Intents        IntentStore
	Processor      PaymentProcessor
	Dispatcher     *Dispatcher
	Logger         *logrus.Logger
}

func Factory(args FactoryArgs) (*AppServices, error) {
	userService, userServiceErr := NewUserService(args.UOW, args.JWTSecret, args.JWTExpire, args.PasswordHasher)
	if userServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", userServiceErr.Error())
	}

	balanceService, balanceServiceErr := NewBalanceService(args.UOW, args.Dispatcher)
	if balanceServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", balanceServiceErr.Error())
	}

	transService, transServiceErr := NewTransactionService(args.UOW, args.Dispatcher)
	if transServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", transServiceErr.Error())
	}

	rName := uow.RepositoryName(repoargs.SavedCardRepoName)
	cardRepo, cardRepoErr := uow.GetRepositoryAs[SavedCardRepository](args.UOW, rName)
	if cardRepoErr != nil {
		return nil, fmt.Errorf("service factory: %s", cardRepoErr.Error())
	}

	paymentService := NewPaymentService(
		args.PaymentMethods,
		args.Intents,
		args.Processor,
		transService,
		cardRepo,
		args.Logger,
	)

	return &AppServices{
		UserService:          userService,
		BalanceService:       balanceService,
		TransactionService:   transService,
		PaymentMethodService: NewPaymentMethodService(args.PaymentMethods),
		PaymentService:       paymentService,
	}, nil
}
