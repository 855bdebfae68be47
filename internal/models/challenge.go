package models

import "time"

const (
	ChallengeLengthDays = 200
	// FinalExpectedTotal is the sum of every day's amount over a full challenge (1 + 2 + ... + 200).
	FinalExpectedTotal = ChallengeLengthDays * (ChallengeLengthDays + 1) / 2
)

// Challenge dates are calendar days stored as UTC midnight. WindowEnd is
// derived from StartDate and kept in sync by the repository.
type Challenge struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;index:idx_challenges_user_window" json:"user_id"`
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	WindowEnd time.Time `gorm:"type:date;not null;index:idx_challenges_user_window" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
