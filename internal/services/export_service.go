package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/terraincognita07/paaga/internal/models"
)

var ExportCSVHeaders = []string{
	"Day",
	"Date",
	"Amount",
	"Deposited At",
}

type ExportRow struct {
	DayNumber   int    `json:"day_number"`
	Date        string `json:"date"`
	Amount      int    `json:"amount"`
	DepositedAt string `json:"deposited_at"`
}

type ExportSummary struct {
	ChallengeID    uint   `json:"challenge_id"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	TotalDeposits  int    `json:"total_deposits"`
	TotalDeposited int    `json:"total_deposited"`
}

type ExportDocument struct {
	ExportedAt string        `json:"exported_at"`
	Summary    ExportSummary `json:"summary"`
	Deposits   []ExportRow   `json:"deposits"`
}

// BuildExportRows lists deposits in day order with the calendar date each day
// maps to under the challenge's current start date.
func BuildExportRows(challenge models.Challenge, deposits []models.Deposit) []ExportRow {
	rows := make([]ExportRow, 0, len(deposits))
	for _, deposit := range deposits {
		rows = append(rows, ExportRow{
			DayNumber:   deposit.DayNumber,
			Date:        DateForDay(challenge.StartDate, deposit.DayNumber).Format(calendarDateLayout),
			Amount:      deposit.Amount,
			DepositedAt: deposit.DepositedAt.UTC().Format(time.RFC3339),
		})
	}
	return rows
}

func BuildExportDocument(challenge models.Challenge, deposits []models.Deposit, now time.Time) ExportDocument {
	rows := BuildExportRows(challenge, deposits)
	total := 0
	for _, row := range rows {
		total += row.Amount
	}
	return ExportDocument{
		ExportedAt: now.UTC().Format(time.RFC3339),
		Summary: ExportSummary{
			ChallengeID:    challenge.ID,
			StartDate:      FormatCalendarDate(challenge.StartDate),
			EndDate:        FormatCalendarDate(WindowEnd(challenge.StartDate)),
			TotalDeposits:  len(rows),
			TotalDeposited: total,
		},
		Deposits: rows,
	}
}

func BuildExportCSV(rows []ExportRow) ([]byte, error) {
	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(ExportCSVHeaders); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write([]string{
			strconv.Itoa(row.DayNumber),
			row.Date,
			strconv.Itoa(row.Amount),
			row.DepositedAt,
		}); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return output.Bytes(), nil
}

func BuildExportFilename(challengeID uint, now time.Time, extension string) string {
	return fmt.Sprintf("paaga-challenge-%d-%s.%s", challengeID, now.UTC().Format(calendarDateLayout), extension)
}
