package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/fsdevblog/paydesk/internal/repository/repoargs"
	"github.com/fsdevblog/paydesk/internal/service/tokens"
	"github.com/fsdevblog/paydesk/pkg/uow"
)

const DefaultJWTTokenExpire = 24 * time.Hour

type UserService struct {
	uow            uow.UOW
	userRepo       UserRepository
	jwtTokenSecret []byte
	jwtTokenExpire time.Duration
	psswd          PasswordHasher
}

func NewUserService(
	u uow.UOW,
	jwtTokenSecret []byte,
	jwtTokenExpire time.Duration,
	psswd PasswordHasher,
) (*UserService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr //nolint:wrapcheck
	}
	if jwtTokenExpire <= 0 {
		jwtTokenExpire = DefaultJWTTokenExpire
	}
	return &UserService{
		uow:            u,
		userRepo:       userRepo,
		jwtTokenSecret: jwtTokenSecret,
		jwtTokenExpire: jwtTokenExpire,
		psswd:          psswd,
	}, nil
}

type RegisterUserArgs struct {
	Username string
	Password string
	Profile  domain.Profile
}

type LoginUserArgs struct {
	Username string
	Password string
}

type AuthResult struct {
	User      *domain.User
	Token     string
	IsNewUser bool
}

// Register создает юзера вместе со стартовым балансом и выдает jwt токен. Если юзернейм занят,
// вернется domain.ErrDuplicateKey.
func (s *UserService) Register(ctx context.Context, args RegisterUserArgs) (*AuthResult, error) {
	user, createErr := s.create(ctx, args)
	if createErr != nil {
		return nil, fmt.Errorf("registering user: %w", createErr)
	}
	return s.authResult(user, true)
}

// Login аутентифицирует юзера. Неизвестный юзернейм регистрируется с переданным паролем
// (IsNewUser=true). Неверный пароль возвращает domain.ErrPasswordMissMatch.
func (s *UserService) Login(ctx context.Context, args LoginUserArgs) (*AuthResult, error) {
	user, findErr := s.userRepo.FindUserByUsername(ctx, args.Username)
	if findErr != nil {
		if !errors.Is(findErr, domain.ErrRecordNotFound) {
			return nil, fmt.Errorf("login: %w", findErr)
		}

		created, createErr := s.create(ctx, RegisterUserArgs{
			Username: args.Username,
			Password: args.Password,
		})
		if createErr == nil {
			return s.authResult(created, true)
		}
		if !errors.Is(createErr, domain.ErrDuplicateKey) {
			return nil, fmt.Errorf("login: %w", createErr)
		}

		// юзера успел создать параллельный запрос, проверяем пароль как обычно.
		user, findErr = s.userRepo.FindUserByUsername(ctx, args.Username)
		if findErr != nil {
			return nil, fmt.Errorf("login: %w", findErr)
		}
	}

	if !s.psswd.ComparePassword(args.Password, user.EncryptedPassword) {
		return nil, domain.ErrPasswordMissMatch
	}
	return s.authResult(user, false)
}

// Profile возвращает юзера по id.
func (s *UserService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user profile: %w", err)
	}
	return user, nil
}

// List возвращает всех юзеров, новые первыми.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return users, nil
}

func (s *UserService) create(ctx context.Context, args RegisterUserArgs) (*domain.User, error) {
	password, hashErr := s.psswd.HashPassword(args.Password)
	if hashErr != nil {
		return nil, hashErr //nolint:wrapcheck
	}
	profile := args.Profile
	if profile.Country == "" {
		profile.Country = domain.DefaultCountry
	}

	var user *domain.User
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}
		balanceRepo, balanceRepoErr := uow.GetAs[BalanceRepository](tx, uow.RepositoryName(repoargs.BalanceRepoName))
		if balanceRepoErr != nil {
			return balanceRepoErr //nolint:wrapcheck
		}

		var userErr error
		user, userErr = userRepo.CreateUser(c, repoargs.CreateUser{
			Username: args.Username,
			Password: password,
			Profile:  profile,
		})
		if userErr != nil {
			return userErr //nolint:wrapcheck
		}

		return balanceRepo.CreateIfNotExists(c, repoargs.BalanceSet{ //nolint:wrapcheck
			UserID:   user.ID,
			Balance:  seedBalance(),
			Currency: domain.DefaultCurrency,
		})
	})
	if txErr != nil {
		return nil, txErr //nolint:wrapcheck
	}
	return user, nil
}

func (s *UserService) authResult(user *domain.User, isNew bool) (*AuthResult, error) {
	token, tokenErr := tokens.GenerateUserJWT(user.ID, user.Username, s.jwtTokenExpire, s.jwtTokenSecret)
	if tokenErr != nil {
		return nil, tokenErr //nolint:wrapcheck
	}
	return &AuthResult{User: user, Token: token, IsNewUser: isNew}, nil
}
