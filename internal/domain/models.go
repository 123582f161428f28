package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Profile struct {
	Email     string
	Name      string
	Surname   string
	Mobile    string
	Country   string
	City      string
	Address   string
	BirthDate *time.Time
}

type User struct {
	ID                int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Username          string
	EncryptedPassword string
	Profile           Profile
}

func (u User) Identity() UserIdentity {
	return UserIdentity{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Profile.Email,
		Name:     u.Profile.Name,
		Surname:  u.Profile.Surname,
	}
}

// UserIdentity минимальный набор полей юзера, подтягиваемый к балансам и транзакциям.
type UserIdentity struct {
	ID       int64
	Username string
	Email    string
	Name     string
	Surname  string
}

// DisplayName возвращает "Имя Фамилия", если имя заполнено, иначе юзернейм.
func (u UserIdentity) DisplayName() string {
	if u.Name == "" {
		return u.Username
	}
	return strings.TrimSpace(u.Name + " " + u.Surname)
}

type Balance struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    int64
	Balance   decimal.Decimal
	Currency  string
}

type BalanceWithUser struct {
	Balance
	User UserIdentity
}

type Transaction struct {
	ID                 int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
	UserID             int64
	Amount             decimal.Decimal
	PaymentMethod      PaymentMethod
	Status             TransactionStatus
	PaymentCredentials json.RawMessage
	ReceiptURL         string
	Reference          string
	Notes              string
	User               *UserIdentity
}

type MethodStats struct {
	PaymentMethod PaymentMethod
	Count         int64
	TotalAmount   decimal.Decimal
}

type TransactionStats struct {
	Timeframe       Timeframe
	Total           int64
	Pending         int64
	Completed       int64
	Failed          int64
	CompletedAmount decimal.Decimal
	ByMethod        []MethodStats
}

type PaymentMethodLimits struct {
	MinAmount  decimal.Decimal
	MaxAmount  decimal.Decimal
	Commission decimal.Decimal
	Currency   string
}

// PaymentMethodConfig настройки метода оплаты, которые хранятся в json файле, а не в БД.
type PaymentMethodConfig struct {
	ID            string
	Name          string
	Type          PaymentMethodType
	AccountNumber string
	CardNumber    string
	ExpiryDate    string
	QRCode        string
	// Settings произвольные настройки для фронта, хранятся как есть.
	Settings json.RawMessage
	Limits   PaymentMethodLimits
}

// DisplayAccount номер счета для показа. У карточных методов он хранится в CardNumber.
func (p PaymentMethodConfig) DisplayAccount() string {
	if p.AccountNumber != "" {
		return p.AccountNumber
	}
	return p.CardNumber
}

// AllowsAmount проверяет, что сумма попадает в лимиты метода.
func (p PaymentMethodConfig) AllowsAmount(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(p.Limits.MinAmount) && amount.LessThanOrEqual(p.Limits.MaxAmount)
}

// SavedCard карта, сохраненная юзером при пополнении. Хранится только безопасное представление.
type SavedCard struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    int64
	Card      StoredCard
}

// DepositIntent намерение пополнения: метод и сумма, выбранные до ввода платежных данных.
type DepositIntent struct {
	ID        string
	UserID    int64
	Method    PaymentMethod
	Amount    decimal.Decimal
	CreatedAt time.Time
	ExpiresAt time.Time
}

// AuthSession идентичность текущего юзера, извлеченная из токена.
type AuthSession struct {
	UserID   int64
	Username string
}
