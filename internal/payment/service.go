package payment

import (
	"context"
	"time"

	"gymdesk/internal/email"
	"gymdesk/internal/logger"
	"gymdesk/internal/member"
	"gymdesk/internal/metrics"
)

// defaultEarningsWindow is used when the caller omits the date range.
const defaultEarningsWindow = 14 * 24 * time.Hour

type Service interface {
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (*Payment, error)
	MarkPaid(ctx context.Context, id int) (*Payment, error)
	GetPayment(ctx context.Context, id int) (*Payment, error)
	ListByMember(ctx context.Context, memberID int) ([]Payment, error)
	ListAll(ctx context.Context) ([]Payment, error)
	GetTrainerEarnings(ctx context.Context, trainerID int, start, end *time.Time) (*EarningsReport, error)
}

type service struct {
	repo         Repository
	memberRepo   member.Repository
	emailService *email.Service
}

func NewService(repo Repository, memberRepo member.Repository, emailService *email.Service) Service {
	return &service{
		repo:         repo,
		memberRepo:   memberRepo,
		emailService: emailService,
	}
}

func (s *service) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*Payment, error) {
	p, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	metrics.RecordPayment(StatusPending)
	return p, nil
}

func (s *service) MarkPaid(ctx context.Context, id int) (*Payment, error) {
	p, err := s.repo.MarkPaid(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.Info("payment settled",
		"payment_id", p.ID,
		"member_id", p.MemberID,
		"amount_cents", p.AmountCents,
	)
	metrics.RecordPayment(StatusPaid)

	if m, err := s.memberRepo.GetByID(ctx, p.MemberID); err == nil {
		s.emailService.SendPaymentReceipt(ctx, m.UserEmail, m.UserName, p.Description, p.AmountCents)
	}

	return p, nil
}

func (s *service) GetPayment(ctx context.Context, id int) (*Payment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByMember(ctx context.Context, memberID int) ([]Payment, error) {
	return s.repo.ListByMember(ctx, memberID)
}

func (s *service) ListAll(ctx context.Context) ([]Payment, error) {
	return s.repo.ListAll(ctx)
}

// GetTrainerEarnings sums paid payments linked to the trainer's classes
// and training sessions over an inclusive date range. The two sources
// are queried independently and combined in memory.
func (s *service) GetTrainerEarnings(ctx context.Context, trainerID int, start, end *time.Time) (*EarningsReport, error) {
	now := time.Now()

	to := now
	if end != nil {
		to = *end
	}
	from := to.Add(-defaultEarningsWindow)
	if start != nil {
		from = *start
	}

	classPayments, err := s.repo.ListPaidClassPaymentsByTrainer(ctx, trainerID, from, to)
	if err != nil {
		return nil, err
	}

	sessionPayments, err := s.repo.ListPaidSessionPaymentsByTrainer(ctx, trainerID, from, to)
	if err != nil {
		return nil, err
	}

	report := &EarningsReport{
		TrainerID: trainerID,
		StartDate: from,
		EndDate:   to,
		Payments:  make([]Payment, 0, len(classPayments)+len(sessionPayments)),
	}

	for _, p := range classPayments {
		report.ClassPaymentsCents += p.AmountCents
		report.Payments = append(report.Payments, p)
	}
	for _, p := range sessionPayments {
		report.SessionPaymentsCents += p.AmountCents
		report.Payments = append(report.Payments, p)
	}

	report.TotalEarningsCents = report.ClassPaymentsCents + report.SessionPaymentsCents

	return report, nil
}
