package backend

import "github.com/student-spending/spendboard/internal/transaction"

type UploadRequest struct {
	Transactions []transaction.Transaction `json:"transactions"`
}

// UploadResult is relayed verbatim from the remote service.
type UploadResult struct {
	Accepted int            `json:"accepted" yaml:"accepted"`
	Rejected int            `json:"rejected" yaml:"rejected"`
	Reasons  []RejectReason `json:"reasons" yaml:"reasons"`
}

type RejectReason struct {
	Row    int    `json:"row" yaml:"row"`
	Reason string `json:"reason" yaml:"reason"`
}

type ClassifyResult struct {
	TotalClassified  int            `json:"total_classified"`
	ByCategory       map[string]int `json:"by_category"`
	NeedsReviewCount int            `json:"needs_review_count"`
}

// Range is the bucket size of an aggregation.
type Range string

const (
	RangeDay   Range = "day"
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
)

type AggregateResult struct {
	TotalAmount  float64            `json:"total_amount"`
	ByCategory   map[string]float64 `json:"by_category"`
	TopMerchants []MerchantTotal    `json:"top_merchants"`
	DailyTotals  []DailyTotal       `json:"daily_totals"`
}

type MerchantTotal struct {
	Merchant string  `json:"merchant"`
	Amount   float64 `json:"amount"`
}

type DailyTotal struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name,omitempty"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}
