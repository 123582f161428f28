package sqlc

import (
	"context"

	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/fsdevblog/paydesk/internal/repository/repoargs"
	"github.com/fsdevblog/paydesk/internal/repository/sqlc/sqlcgen"
)

type UserRepository struct {
	q *sqlcgen.Queries
}

func NewUserRepository(conn sqlcgen.DBTX) *UserRepository {
	return &UserRepository{q: sqlcgen.New(conn)}
}

// CreateUser создает юзера в базе данных. В случае конфликта юзернейма возвращает ошибку domain.ErrDuplicateKey,
// во всех других случаях - domain.ErrUnknown.
func (u *UserRepository) CreateUser(ctx context.Context, user repoargs.CreateUser) (*domain.User, error) {
	country := user.Profile.Country
	if country == "" {
		country = domain.DefaultCountry
	}
	dbUser, err := u.q.Users_Create(ctx, sqlcgen.Users_CreateParams{
		Username:          user.Username,
		EncryptedPassword: user.Password,
		Email:             nullText(user.Profile.Email),
		Name:              nullText(user.Profile.Name),
		Surname:           nullText(user.Profile.Surname),
		Mobile:            nullText(user.Profile.Mobile),
		Country:           country,
		City:              nullText(user.Profile.City),
		Address:           nullText(user.Profile.Address),
		BirthDate:         nullDate(user.Profile.BirthDate),
	})
	if err != nil {
		return nil, convertErr(err, "creating user `%s`", user.Username)
	}

	return convertUserModel(dbUser), nil
}

// FindUserByUsername ищет юзера по его юзернейму. Возвращает ошибку domain.ErrRecordNotFound если запись не найдена,
// во всех других случаях - domain.ErrUnknown.
func (u *UserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	dbUser, err := u.q.Users_FindByUsername(ctx, username)
	if err != nil {
		return nil, convertErr(err, "finding user by username `%s`", username)
	}
	return convertUserModel(dbUser), nil
}

func (u *UserRepository) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	dbUser, err := u.q.Users_FindByID(ctx, id)
	if err != nil {
		return nil, convertErr(err, "finding user by id %d", id)
	}
	return convertUserModel(dbUser), nil
}

// List возвращает всех юзеров, новые первыми.
func (u *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	dbUsers, err := u.q.Users_List(ctx)
	if err != nil {
		return nil, convertErr(err, "listing users")
	}
	var users = make([]domain.User, len(dbUsers))
	for i, dbUser := range dbUsers {
		users[i] = *convertUserModel(dbUser)
	}
	return users, nil
}

func convertUserModel(dbModel sqlcgen.User) *domain.User {
	return &domain.User{
		ID:                dbModel.ID,
		CreatedAt:         dbModel.CreatedAt.Time,
		UpdatedAt:         dbModel.UpdatedAt.Time,
		Username:          dbModel.Username,
		EncryptedPassword: dbModel.EncryptedPassword,
		Profile: domain.Profile{
			Email:     dbModel.Email.String,
			Name:      dbModel.Name.String,
			Surname:   dbModel.Surname.String,
			Mobile:    dbModel.Mobile.String,
			Country:   dbModel.Country,
			City:      dbModel.City.String,
			Address:   dbModel.Address.String,
			BirthDate: dateFromPg(dbModel.BirthDate),
		},
	}
}
