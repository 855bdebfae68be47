package models

import "time"

type Deposit struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ChallengeID uint      `gorm:"not null;uniqueIndex:uidx_deposits_challenge_day" json:"challenge_id"`
	DayNumber   int       `gorm:"not null;uniqueIndex:uidx_deposits_challenge_day" json:"day_number"`
	Amount      int       `gorm:"not null" json:"amount"`
	DepositedAt time.Time `gorm:"not null" json:"deposited_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}
