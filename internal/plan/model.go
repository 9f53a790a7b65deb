package plan

import "time"

const (
	MembershipActive    = "active"
	MembershipExpired   = "expired"
	MembershipCancelled = "cancelled"
)

type MembershipPlan struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Description  string    `db:"description" json:"description"`
	PriceCents   int64     `db:"price_cents" json:"price_cents"`
	DurationDays int       `db:"duration_days" json:"duration_days"`
	VisitsLimit  *int      `db:"visits_limit" json:"visits_limit,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type Membership struct {
	ID         int       `db:"id" json:"id"`
	MemberID   int       `db:"member_id" json:"member_id"`
	PlanID     int       `db:"plan_id" json:"plan_id"`
	Status     string    `db:"status" json:"status"`
	ValidFrom  time.Time `db:"valid_from" json:"valid_from"`
	ValidUntil time.Time `db:"valid_until" json:"valid_until"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// MembershipWithPlan joins the plan name in for listing endpoints.
type MembershipWithPlan struct {
	Membership
	PlanName string `db:"plan_name" json:"plan_name"`
}

type CreatePlanRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	PriceCents   int64  `json:"price_cents" binding:"required,min=1"`
	DurationDays int    `json:"duration_days" binding:"required,min=1"`
	VisitsLimit  *int   `json:"visits_limit,omitempty"`
}

// PurchaseRequest is optional for members buying for themselves; staff
// name the member they are selling to.
type PurchaseRequest struct {
	MemberID int `json:"member_id,omitempty"`
}
