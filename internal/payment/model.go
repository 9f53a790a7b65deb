package payment

import "time"

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

type Payment struct {
	ID          int        `db:"id" json:"id"`
	MemberID    int        `db:"member_id" json:"member_id"`
	ClassID     *int       `db:"class_id" json:"class_id,omitempty"`
	SessionID   *int       `db:"session_id" json:"session_id,omitempty"`
	AmountCents int64      `db:"amount_cents" json:"amount_cents"`
	Status      string     `db:"status" json:"status"`
	Description string     `db:"description" json:"description"`
	PaidAt      *time.Time `db:"paid_at" json:"paid_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

type CreatePaymentRequest struct {
	MemberID    int    `json:"member_id" binding:"required"`
	ClassID     *int   `json:"class_id,omitempty"`
	SessionID   *int   `json:"session_id,omitempty"`
	AmountCents int64  `json:"amount_cents" binding:"required,min=1"`
	Description string `json:"description"`
}

// EarningsReport sums paid payments attributable to one trainer over an
// inclusive date range. Amounts are integer cents.
type EarningsReport struct {
	TrainerID            int       `json:"trainer_id"`
	StartDate            time.Time `json:"start_date"`
	EndDate              time.Time `json:"end_date"`
	ClassPaymentsCents   int64     `json:"class_payments_cents"`
	SessionPaymentsCents int64     `json:"session_payments_cents"`
	TotalEarningsCents   int64     `json:"total_earnings_cents"`
	Payments             []Payment `json:"payments"`
}
