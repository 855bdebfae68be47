package services

import (
	"reflect"
	"testing"
	"time"

	"github.com/terraincognita07/paaga/internal/models"
)

func depositsForDays(challengeID uint, days ...int) []models.Deposit {
	deposits := make([]models.Deposit, 0, len(days))
	for index, day := range days {
		deposits = append(deposits, models.Deposit{
			ID:          uint(index + 1),
			ChallengeID: challengeID,
			DayNumber:   day,
			Amount:      day,
		})
	}
	return deposits
}

func TestComputeProgressFirstDayExample(t *testing.T) {
	challenge := models.Challenge{ID: 1, UserID: "user-1", StartDate: mustDate(t, "2024-01-01")}
	now := time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)

	snapshot := ComputeProgress(challenge, depositsForDays(1, 1), now, time.UTC)

	if snapshot.CurrentDay != 1 {
		t.Fatalf("CurrentDay = %d, want 1", snapshot.CurrentDay)
	}
	if snapshot.ExpectedTotal != 1 {
		t.Fatalf("ExpectedTotal = %d, want 1", snapshot.ExpectedTotal)
	}
	if snapshot.TotalDeposited != 1 || snapshot.DaysCompleted != 1 || snapshot.DaysRemaining != 199 {
		t.Fatalf("unexpected totals: %+v", snapshot)
	}
	if snapshot.ProgressPercent != 0.5 {
		t.Fatalf("ProgressPercent = %v, want 0.5", snapshot.ProgressPercent)
	}
	if snapshot.AmountProgressPercent != 0 {
		t.Fatalf("AmountProgressPercent = %v, want 0", snapshot.AmountProgressPercent)
	}
	if snapshot.StartDate != "2024-01-01" || snapshot.EndDate != "2024-07-18" {
		t.Fatalf("unexpected window %s..%s", snapshot.StartDate, snapshot.EndDate)
	}
	if !snapshot.IsActive || snapshot.IsCompleted {
		t.Fatalf("expected active and not completed, got %+v", snapshot)
	}
}

func TestComputeProgressCurrentDayBoundaries(t *testing.T) {
	challenge := models.Challenge{StartDate: mustDate(t, "2024-01-01")}
	tests := []struct {
		name       string
		now        time.Time
		wantDay    int
		wantActive bool
	}{
		{name: "before start", now: mustDate(t, "2023-11-15"), wantDay: 1, wantActive: true},
		{name: "day before start", now: mustDate(t, "2023-12-31"), wantDay: 1, wantActive: true},
		{name: "second day", now: mustDate(t, "2024-01-02"), wantDay: 2, wantActive: true},
		{name: "last day late evening", now: time.Date(2024, 7, 18, 23, 59, 0, 0, time.UTC), wantDay: 200, wantActive: true},
		{name: "day after end", now: mustDate(t, "2024-07-19"), wantDay: 200, wantActive: false},
		{name: "long after end", now: mustDate(t, "2026-01-01"), wantDay: 200, wantActive: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := ComputeProgress(challenge, nil, tt.now, time.UTC)
			if snapshot.CurrentDay != tt.wantDay {
				t.Fatalf("CurrentDay = %d, want %d", snapshot.CurrentDay, tt.wantDay)
			}
			if snapshot.IsActive != tt.wantActive {
				t.Fatalf("IsActive = %v, want %v", snapshot.IsActive, tt.wantActive)
			}
			if snapshot.ExpectedTotal != tt.wantDay*(tt.wantDay+1)/2 {
				t.Fatalf("ExpectedTotal = %d for day %d", snapshot.ExpectedTotal, tt.wantDay)
			}
		})
	}
}

func TestComputeProgressUsesLocationForToday(t *testing.T) {
	challenge := models.Challenge{StartDate: mustDate(t, "2024-01-01")}
	now := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	tokyo := time.FixedZone("UTC+9", 9*60*60)

	if got := ComputeProgress(challenge, nil, now, time.UTC).CurrentDay; got != 1 {
		t.Fatalf("UTC CurrentDay = %d, want 1", got)
	}
	if got := ComputeProgress(challenge, nil, now, tokyo).CurrentDay; got != 2 {
		t.Fatalf("UTC+9 CurrentDay = %d, want 2", got)
	}
}

func TestComputeProgressFinalExpectedTotalIsConstant(t *testing.T) {
	for _, start := range []string{"2020-02-29", "2024-01-01", "2031-12-31"} {
		snapshot := ComputeProgress(models.Challenge{StartDate: mustDate(t, start)}, nil, mustDate(t, "2025-06-01"), time.UTC)
		if snapshot.FinalExpectedTotal != 20100 {
			t.Fatalf("FinalExpectedTotal = %d for start %s", snapshot.FinalExpectedTotal, start)
		}
	}
}

func TestComputeProgressDaysRemainingAndSortedDays(t *testing.T) {
	challenge := models.Challenge{StartDate: mustDate(t, "2024-01-01")}
	now := mustDate(t, "2024-02-01")

	for _, days := range [][]int{nil, {3, 1, 2}, {200, 150, 7, 99}} {
		snapshot := ComputeProgress(challenge, depositsForDays(1, days...), now, time.UTC)
		if snapshot.DaysRemaining != 200-snapshot.DaysCompleted {
			t.Fatalf("DaysRemaining = %d with DaysCompleted = %d", snapshot.DaysRemaining, snapshot.DaysCompleted)
		}
		if snapshot.DepositedDays == nil {
			t.Fatalf("expected non-nil DepositedDays")
		}
		for index := 1; index < len(snapshot.DepositedDays); index++ {
			if snapshot.DepositedDays[index-1] >= snapshot.DepositedDays[index] {
				t.Fatalf("DepositedDays not sorted: %v", snapshot.DepositedDays)
			}
		}
	}

	snapshot := ComputeProgress(challenge, depositsForDays(1, 3, 1, 2), now, time.UTC)
	if !reflect.DeepEqual(snapshot.DepositedDays, []int{1, 2, 3}) {
		t.Fatalf("DepositedDays = %v, want [1 2 3]", snapshot.DepositedDays)
	}
	if snapshot.TotalDeposited != 6 {
		t.Fatalf("TotalDeposited = %d, want 6", snapshot.TotalDeposited)
	}
	if snapshot.ProgressPercent != 1.5 {
		t.Fatalf("ProgressPercent = %v, want 1.5", snapshot.ProgressPercent)
	}
	if snapshot.AmountProgressPercent != 0.03 {
		t.Fatalf("AmountProgressPercent = %v, want 0.03", snapshot.AmountProgressPercent)
	}
}

func TestComputeProgressCompletedIsIndependentOfWindow(t *testing.T) {
	all := make([]int, 0, 200)
	for day := 1; day <= 200; day++ {
		all = append(all, day)
	}
	challenge := models.Challenge{StartDate: mustDate(t, "2024-01-01")}

	during := ComputeProgress(challenge, depositsForDays(1, all...), mustDate(t, "2024-03-01"), time.UTC)
	if !during.IsCompleted || !during.IsActive {
		t.Fatalf("expected completed and active, got completed=%v active=%v", during.IsCompleted, during.IsActive)
	}
	if during.TotalDeposited != 20100 || during.AmountProgressPercent != 100 || during.ProgressPercent != 100 {
		t.Fatalf("unexpected full totals: %+v", during)
	}
	if during.DaysRemaining != 0 {
		t.Fatalf("DaysRemaining = %d, want 0", during.DaysRemaining)
	}

	after := ComputeProgress(challenge, depositsForDays(1, 1, 2), mustDate(t, "2025-01-01"), time.UTC)
	if after.IsCompleted || after.IsActive {
		t.Fatalf("expected expired and incomplete, got completed=%v active=%v", after.IsCompleted, after.IsActive)
	}
}

func TestRoundPercentHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		value float64
		want  float64
	}{
		{value: 0.004975, want: 0},
		{value: 0.125, want: 0.13},
		{value: 33.333333, want: 33.33},
		{value: 66.666666, want: 66.67},
		{value: -0.125, want: -0.13},
	}
	for _, tt := range tests {
		if got := roundPercent(tt.value); got != tt.want {
			t.Fatalf("roundPercent(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
