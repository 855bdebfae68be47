package services

import (
	"time"

	"github.com/terraincognita07/paaga/internal/models"
)

type ChallengeCalendarDay struct {
	DayNumber int    `json:"dayNumber"`
	Date      string `json:"date"`
	Amount    int    `json:"amount"`
	Deposited bool   `json:"deposited"`
	DepositID uint   `json:"depositId,omitempty"`
	IsToday   bool   `json:"isToday"`
	IsPast    bool   `json:"isPast"`
	IsFuture  bool   `json:"isFuture"`
}

// BuildChallengeCalendar lays out every day of the challenge window with the
// calendar date that day number maps to under the current start date.
func BuildChallengeCalendar(challenge models.Challenge, deposits []models.Deposit, now time.Time, location *time.Location) []ChallengeCalendarDay {
	depositByDay := make(map[int]models.Deposit, len(deposits))
	for _, deposit := range deposits {
		depositByDay[deposit.DayNumber] = deposit
	}

	today := Today(now, location)
	days := make([]ChallengeCalendarDay, 0, models.ChallengeLengthDays)
	for dayNumber := 1; dayNumber <= models.ChallengeLengthDays; dayNumber++ {
		date := DateForDay(challenge.StartDate, dayNumber)
		deposit, deposited := depositByDay[dayNumber]

		days = append(days, ChallengeCalendarDay{
			DayNumber: dayNumber,
			Date:      date.Format(calendarDateLayout),
			Amount:    dayNumber,
			Deposited: deposited,
			DepositID: deposit.ID,
			IsToday:   date.Equal(today),
			IsPast:    date.Before(today),
			IsFuture:  date.After(today),
		})
	}
	return days
}
