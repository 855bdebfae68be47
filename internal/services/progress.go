package services

import (
	"math"
	"sort"
	"time"

	"github.com/terraincognita07/paaga/internal/models"
)

type ProgressSnapshot struct {
	Challenge             models.Challenge `json:"challenge"`
	CurrentDay            int              `json:"currentDay"`
	StartDate             string           `json:"startDate"`
	EndDate               string           `json:"endDate"`
	TotalDeposited        int              `json:"totalDeposited"`
	DaysCompleted         int              `json:"daysCompleted"`
	DaysRemaining         int              `json:"daysRemaining"`
	ExpectedTotal         int              `json:"expectedTotal"`
	FinalExpectedTotal    int              `json:"finalExpectedTotal"`
	ProgressPercent       float64          `json:"progressPercent"`
	AmountProgressPercent float64          `json:"amountProgressPercent"`
	DepositedDays         []int            `json:"depositedDays"`
	IsActive              bool             `json:"isActive"`
	IsCompleted           bool             `json:"isCompleted"`
}

// ComputeProgress derives the snapshot from the challenge, its deposits and
// the calendar day now falls on in location. It reads nothing else.
func ComputeProgress(challenge models.Challenge, deposits []models.Deposit, now time.Time, location *time.Location) ProgressSnapshot {
	startDate := DateOnly(challenge.StartDate)
	endDate := WindowEnd(startDate)
	today := Today(now, location)

	currentDay := clampInt(NormalizeDay(today, startDate), 1, models.ChallengeLengthDays)

	totalDeposited := 0
	depositedDays := make([]int, 0, len(deposits))
	for _, deposit := range deposits {
		totalDeposited += deposit.Amount
		depositedDays = append(depositedDays, deposit.DayNumber)
	}
	sort.Ints(depositedDays)

	daysCompleted := len(deposits)

	return ProgressSnapshot{
		Challenge:             challenge,
		CurrentDay:            currentDay,
		StartDate:             FormatCalendarDate(startDate),
		EndDate:               FormatCalendarDate(endDate),
		TotalDeposited:        totalDeposited,
		DaysCompleted:         daysCompleted,
		DaysRemaining:         models.ChallengeLengthDays - daysCompleted,
		ExpectedTotal:         currentDay * (currentDay + 1) / 2,
		FinalExpectedTotal:    models.FinalExpectedTotal,
		ProgressPercent:       roundPercent(float64(daysCompleted) / float64(models.ChallengeLengthDays) * 100),
		AmountProgressPercent: roundPercent(float64(totalDeposited) / float64(models.FinalExpectedTotal) * 100),
		DepositedDays:         depositedDays,
		IsActive:              !today.After(endDate),
		IsCompleted:           daysCompleted == models.ChallengeLengthDays,
	}
}

// roundPercent rounds half away from zero to two decimals.
func roundPercent(value float64) float64 {
	return math.Round(value*100) / 100
}

func clampInt(value int, minimum int, maximum int) int {
	if value < minimum {
		return minimum
	}
	if value > maximum {
		return maximum
	}
	return value
}
