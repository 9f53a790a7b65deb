package member

import "time"

// Member is the gym-side profile of a user with the member role. It is
// distinct from the auth identity: bookings, payments and check-ins
// reference this row.
type Member struct {
	ID          int        `db:"id" json:"id"`
	UserID      int        `db:"user_id" json:"user_id"`
	Phone       string     `db:"phone" json:"phone"`
	BirthDate   *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	CheckinCode string     `db:"checkin_code" json:"checkin_code"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

type MemberWithUser struct {
	Member
	UserName  string `db:"user_name" json:"user_name"`
	UserEmail string `db:"user_email" json:"user_email"`
}

type CreateMemberRequest struct {
	UserID    int    `json:"user_id" binding:"required"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birth_date"`
}

type UpdateMemberRequest struct {
	Phone     string `json:"phone"`
	BirthDate string `json:"birth_date"`
}
