package checkin

import "time"

type CheckIn struct {
	ID          int       `db:"id" json:"id"`
	MemberID    int       `db:"member_id" json:"member_id"`
	GymID       int       `db:"gym_id" json:"gym_id"`
	CheckedInAt time.Time `db:"checked_in_at" json:"checked_in_at"`
}

// CheckInWithMember joins the member's name in for front-desk listings.
type CheckInWithMember struct {
	CheckIn
	MemberName string `db:"member_name" json:"member_name"`
}

type CreateCheckInRequest struct {
	MemberID int `json:"member_id" binding:"required"`
	GymID    int `json:"gym_id" binding:"required"`
}

type CodeCheckInRequest struct {
	GymID int `json:"gym_id" binding:"required"`
}
