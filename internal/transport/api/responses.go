package api

import (
	"encoding/json"
	"time"

	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/fsdevblog/paydesk/internal/service"
)

const dateLayout = "2006-01-02"

type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name,omitempty"`
	Surname   string    `json:"surname,omitempty"`
	Mobile    string    `json:"mobile,omitempty"`
	Country   string    `json:"country,omitempty"`
	City      string    `json:"city,omitempty"`
	Address   string    `json:"address,omitempty"`
	BirthDate string    `json:"birthDate,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newUserResponse(u domain.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Profile.Email,
		Name:      u.Profile.Name,
		Surname:   u.Profile.Surname,
		Mobile:    u.Profile.Mobile,
		Country:   u.Profile.Country,
		City:      u.Profile.City,
		Address:   u.Profile.Address,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.Profile.BirthDate != nil {
		resp.BirthDate = u.Profile.BirthDate.Format(dateLayout)
	}
	return resp
}

type UserIdentityResponse struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
	Name        string `json:"name,omitempty"`
	Surname     string `json:"surname,omitempty"`
}

func newUserIdentityResponse(u domain.UserIdentity) UserIdentityResponse {
	return UserIdentityResponse{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName(),
		Email:       u.Email,
		Name:        u.Name,
		Surname:     u.Surname,
	}
}

type TransactionResponse struct {
	ID                   int64                 `json:"id"`
	UserID               int64                 `json:"userId"`
	Amount               float64               `json:"amount"`
	PaymentMethod        string                `json:"paymentMethod"`
	Status               string                `json:"status"`
	PaymentCredentials   json.RawMessage       `json:"paymentCredentials,omitempty"`
	ReceiptURL           string                `json:"receiptUrl,omitempty"`
	TransactionReference string                `json:"transactionReference"`
	Notes                string                `json:"notes,omitempty"`
	CreatedAt            time.Time             `json:"createdAt"`
	UpdatedAt            time.Time             `json:"updatedAt"`
	User                 *UserIdentityResponse `json:"user,omitempty"`
}

func newTransactionResponse(t domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:                   t.ID,
		UserID:               t.UserID,
		Amount:               t.Amount.InexactFloat64(),
		PaymentMethod:        string(t.PaymentMethod),
		Status:               string(t.Status),
		PaymentCredentials:   t.PaymentCredentials,
		ReceiptURL:           t.ReceiptURL,
		TransactionReference: t.Reference,
		Notes:                t.Notes,
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
	}
	if t.User != nil {
		u := newUserIdentityResponse(*t.User)
		resp.User = &u
	}
	return resp
}

type PaginationResponse struct {
	Total      int64 `json:"total"`
	Page       uint  `json:"page"`
	Limit      uint  `json:"limit"`
	TotalPages uint  `json:"totalPages"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   PaginationResponse    `json:"pagination"`
}

func newTransactionListResponse(page *service.TransactionPage) TransactionListResponse {
	items := make([]TransactionResponse, len(page.Items))
	for i, t := range page.Items {
		items[i] = newTransactionResponse(t)
	}
	return TransactionListResponse{
		Transactions: items,
		Pagination: PaginationResponse{
			Total:      page.Total,
			Page:       page.Page,
			Limit:      page.Limit,
			TotalPages: page.TotalPages,
		},
	}
}

type StatsSummaryResponse struct {
	TotalTransactions     int64   `json:"totalTransactions"`
	CompletedTransactions int64   `json:"completedTransactions"`
	PendingTransactions   int64   `json:"pendingTransactions"`
	FailedTransactions    int64   `json:"failedTransactions"`
	TotalAmount           float64 `json:"totalAmount"`
}

type MethodStatsResponse struct {
	PaymentMethod string  `json:"paymentMethod"`
	Count         int64   `json:"count"`
	TotalAmount   float64 `json:"totalAmount"`
}

type StatsResponse struct {
	Summary   StatsSummaryResponse  `json:"summary"`
	ByMethod  []MethodStatsResponse `json:"byMethod"`
	Timeframe string                `json:"timeframe"`
}

func newStatsResponse(s *domain.TransactionStats) StatsResponse {
	byMethod := make([]MethodStatsResponse, len(s.ByMethod))
	for i, m := range s.ByMethod {
		byMethod[i] = MethodStatsResponse{
			PaymentMethod: string(m.PaymentMethod),
			Count:         m.Count,
			TotalAmount:   m.TotalAmount.InexactFloat64(),
		}
	}
	return StatsResponse{
		Summary: StatsSummaryResponse{
			TotalTransactions:     s.Total,
			CompletedTransactions: s.Completed,
			PendingTransactions:   s.Pending,
			FailedTransactions:    s.Failed,
			TotalAmount:           s.CompletedAmount.InexactFloat64(),
		},
		ByMethod:  byMethod,
		Timeframe: string(s.Timeframe),
	}
}

type BalanceResponse struct {
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}

type BalanceListItemResponse struct {
	UserID    int64                `json:"userId"`
	Balance   float64              `json:"balance"`
	Currency  string               `json:"currency"`
	UpdatedAt time.Time            `json:"updatedAt"`
	User      UserIdentityResponse `json:"user"`
}

type LimitsResponse struct {
	MinAmount  float64 `json:"minAmount"`
	MaxAmount  float64 `json:"maxAmount"`
	Commission float64 `json:"commission"`
	Currency   string  `json:"currency"`
}

func newLimitsResponse(l domain.PaymentMethodLimits) LimitsResponse {
	return LimitsResponse{
		MinAmount:  l.MinAmount.InexactFloat64(),
		MaxAmount:  l.MaxAmount.InexactFloat64(),
		Commission: l.Commission.InexactFloat64(),
		Currency:   l.Currency,
	}
}

// PaymentMethodResponse представление метода оплаты для админки.
type PaymentMethodResponse struct {
	ID            string          `json:"id"`
	Provider      string          `json:"provider"`
	Type          string          `json:"type"`
	Status        string          `json:"status"`
	AccountNumber string          `json:"accountNumber"`
	ExpiryDate    string          `json:"expiryDate"`
	QRCode        string          `json:"qrCode"`
	Settings      json.RawMessage `json:"settings,omitempty"`
	Credentials   LimitsResponse  `json:"credentials"`
	LimitsResponse
}

func newPaymentMethodResponse(p domain.PaymentMethodConfig) PaymentMethodResponse {
	limits := newLimitsResponse(p.Limits)
	return PaymentMethodResponse{
		ID:             p.ID,
		Provider:       p.Name,
		Type:           string(p.Type),
		Status:         "Active",
		AccountNumber:  p.DisplayAccount(),
		ExpiryDate:     p.ExpiryDate,
		QRCode:         p.QRCode,
		Settings:       p.Settings,
		Credentials:    limits,
		LimitsResponse: limits,
	}
}

// PublicPaymentMethodResponse то, что видит юзер на странице пополнения.
type PublicPaymentMethodResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	AccountNumber string `json:"accountNumber,omitempty"`
	ExpiryDate    string `json:"expiryDate,omitempty"`
	QRCode        string `json:"qrCode,omitempty"`
	LimitsResponse
}

func newPublicPaymentMethodResponse(p domain.PaymentMethodConfig) PublicPaymentMethodResponse {
	return PublicPaymentMethodResponse{
		ID:             p.ID,
		Name:           p.Name,
		Type:           string(p.Type),
		AccountNumber:  p.DisplayAccount(),
		ExpiryDate:     p.ExpiryDate,
		QRCode:         p.QRCode,
		LimitsResponse: newLimitsResponse(p.Limits),
	}
}

type IntentResponse struct {
	ID            string    `json:"id"`
	PaymentMethod string    `json:"paymentMethod"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"createdAt"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

func newIntentResponse(i domain.DepositIntent) IntentResponse {
	return IntentResponse{
		ID:            i.ID,
		PaymentMethod: string(i.Method),
		Amount:        i.Amount.InexactFloat64(),
		Currency:      domain.DefaultCurrency,
		CreatedAt:     i.CreatedAt,
		ExpiresAt:     i.ExpiresAt,
	}
}

type SavedCardResponse struct {
	ID           int64     `json:"id"`
	CardHolder   string    `json:"cardHolder"`
	MaskedNumber string    `json:"maskedNumber"`
	Brand        string    `json:"brand"`
	Expiry       string    `json:"expiry"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func newSavedCardResponse(c domain.SavedCard) SavedCardResponse {
	return SavedCardResponse{
		ID:           c.ID,
		CardHolder:   c.Card.CardHolder,
		MaskedNumber: c.Card.MaskedNumber,
		Brand:        string(c.Card.Brand),
		Expiry:       c.Card.Expiry,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
