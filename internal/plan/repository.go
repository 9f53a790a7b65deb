package plan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrPlanNotFound = errors.New("membership plan not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreatePlan(ctx context.Context, req CreatePlanRequest) (*MembershipPlan, error) {
	query := `
		INSERT INTO membership_plans (name, description, price_cents, duration_days, visits_limit)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, description, price_cents, duration_days, visits_limit, created_at
	`

	var p MembershipPlan
	err := r.db.GetContext(ctx, &p, query, req.Name, req.Description, req.PriceCents, req.DurationDays, req.VisitsLimit)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *Repository) GetPlanByID(ctx context.Context, id int) (*MembershipPlan, error) {
	query := `
		SELECT id, name, description, price_cents, duration_days, visits_limit, created_at
		FROM membership_plans
		WHERE id = $1
	`

	var p MembershipPlan
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *Repository) ListPlans(ctx context.Context) ([]MembershipPlan, error) {
	query := `
		SELECT id, name, description, price_cents, duration_days, visits_limit, created_at
		FROM membership_plans
		ORDER BY price_cents ASC
	`

	var plans []MembershipPlan
	err := r.db.SelectContext(ctx, &plans, query)
	if err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *Repository) DeletePlan(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM membership_plans WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrPlanNotFound
	}

	return nil
}

// PurchaseMembership records the paid payment and the resulting
// membership in one transaction so a crash cannot leave a membership
// without its payment or the other way around.
func (r *Repository) PurchaseMembership(ctx context.Context, memberID int, plan *MembershipPlan) (*Membership, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin purchase tx: %w", err)
	}
	defer tx.Rollback()

	paymentQuery := `
		INSERT INTO payments (member_id, amount_cents, status, description, paid_at)
		VALUES ($1, $2, 'paid', $3, NOW())
	`
	description := fmt.Sprintf("Membership: %s", plan.Name)
	if _, err := tx.ExecContext(ctx, paymentQuery, memberID, plan.PriceCents, description); err != nil {
		return nil, fmt.Errorf("insert membership payment: %w", err)
	}

	now := time.Now()
	validUntil := now.AddDate(0, 0, plan.DurationDays)

	membershipQuery := `
		INSERT INTO memberships (member_id, plan_id, status, valid_from, valid_until)
		VALUES ($1, $2, 'active', $3, $4)
		RETURNING id, member_id, plan_id, status, valid_from, valid_until, created_at
	`

	var m Membership
	if err := tx.GetContext(ctx, &m, membershipQuery, memberID, plan.ID, now, validUntil); err != nil {
		return nil, fmt.Errorf("insert membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit purchase tx: %w", err)
	}

	return &m, nil
}

func (r *Repository) ListMembershipsByMember(ctx context.Context, memberID int) ([]MembershipWithPlan, error) {
	query := `
		SELECT
			ms.id, ms.member_id, ms.plan_id, ms.status, ms.valid_from, ms.valid_until, ms.created_at,
			mp.name AS plan_name
		FROM memberships ms
		JOIN membership_plans mp ON ms.plan_id = mp.id
		WHERE ms.member_id = $1
		ORDER BY ms.valid_until DESC
	`

	var memberships []MembershipWithPlan
	err := r.db.SelectContext(ctx, &memberships, query, memberID)
	if err != nil {
		return nil, err
	}

	return memberships, nil
}

// GetActiveMembership returns the member's current membership, if any.
func (r *Repository) GetActiveMembership(ctx context.Context, memberID int) (*MembershipWithPlan, error) {
	query := `
		SELECT
			ms.id, ms.member_id, ms.plan_id, ms.status, ms.valid_from, ms.valid_until, ms.created_at,
			mp.name AS plan_name
		FROM memberships ms
		JOIN membership_plans mp ON ms.plan_id = mp.id
		WHERE ms.member_id = $1
		  AND ms.status = 'active'
		  AND ms.valid_until > NOW()
		ORDER BY ms.valid_until DESC
		LIMIT 1
	`

	var m MembershipWithPlan
	err := r.db.GetContext(ctx, &m, query, memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &m, nil
}
