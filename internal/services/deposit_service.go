package services

import (
	"time"

	"github.com/terraincognita07/paaga/internal/models"
)

type DepositRepository interface {
	Upsert(deposit *models.Deposit) (bool, error)
	FindByID(depositID uint) (models.Deposit, bool, error)
	DeleteByID(depositID uint) (bool, error)
	ListByChallenge(challengeID uint) ([]models.Deposit, error)
}

type DepositChallengeReader interface {
	FindByID(challengeID uint) (models.Challenge, bool, error)
}

type DepositService struct {
	deposits   DepositRepository
	challenges DepositChallengeReader
	guard      OwnershipGuard
	audit      AuditSink
}

func NewDepositService(deposits DepositRepository, challenges DepositChallengeReader, guard OwnershipGuard, audit AuditSink) *DepositService {
	if guard == nil {
		guard = IdentityOwnershipGuard{}
	}
	if audit == nil {
		audit = NopAuditSink{}
	}
	return &DepositService{
		deposits:   deposits,
		challenges: challenges,
		guard:      guard,
		audit:      audit,
	}
}

// RecordDeposit upserts the deposit for dayNumber. The amount is always the
// day number. The returned flag is true when a new row was created.
func (service *DepositService) RecordDeposit(caller string, challengeID uint, dayNumber int, depositedAt *time.Time, now time.Time) (models.Deposit, bool, error) {
	if !IsValidDayNumber(dayNumber) {
		return models.Deposit{}, false, ErrDayNumberOutOfRange
	}

	challenge, found, err := service.challenges.FindByID(challengeID)
	if err != nil {
		return models.Deposit{}, false, internalError("load challenge", err)
	}
	if !found {
		return models.Deposit{}, false, ErrChallengeUnresolved
	}
	if err := authorize(service.guard, caller, challenge.UserID); err != nil {
		return models.Deposit{}, false, err
	}

	at := now.UTC()
	if depositedAt != nil && !depositedAt.IsZero() {
		at = depositedAt.UTC()
	}

	deposit := models.Deposit{
		ChallengeID: challenge.ID,
		DayNumber:   dayNumber,
		Amount:      dayNumber,
		DepositedAt: at,
	}
	created, err := service.deposits.Upsert(&deposit)
	if err != nil {
		return models.Deposit{}, false, internalError("upsert deposit", err)
	}

	action := models.AuditActionUpdated
	if created {
		action = models.AuditActionCreated
	}
	for _, event := range depositAuditEvents(action, challenge.UserID, deposit) {
		service.audit.Record(event)
	}
	return deposit, created, nil
}

// RemoveDeposit deletes a deposit by id and returns the removed row. Losing
// a race against a concurrent delete reports ErrDepositNotFound.
func (service *DepositService) RemoveDeposit(caller string, depositID uint) (models.Deposit, error) {
	deposit, found, err := service.deposits.FindByID(depositID)
	if err != nil {
		return models.Deposit{}, internalError("load deposit", err)
	}
	if !found {
		return models.Deposit{}, ErrDepositNotFound
	}

	challenge, found, err := service.challenges.FindByID(deposit.ChallengeID)
	if err != nil {
		return models.Deposit{}, internalError("load challenge", err)
	}
	if !found {
		return models.Deposit{}, ErrDepositNotFound
	}
	if err := authorize(service.guard, caller, challenge.UserID); err != nil {
		return models.Deposit{}, err
	}

	deleted, err := service.deposits.DeleteByID(depositID)
	if err != nil {
		return models.Deposit{}, internalError("delete deposit", err)
	}
	if !deleted {
		return models.Deposit{}, ErrDepositNotFound
	}

	for _, event := range depositAuditEvents(models.AuditActionDeleted, challenge.UserID, deposit) {
		service.audit.Record(event)
	}
	return deposit, nil
}

func (service *DepositService) List(caller string, challengeID uint) ([]models.Deposit, error) {
	challenge, found, err := service.challenges.FindByID(challengeID)
	if err != nil {
		return nil, internalError("load challenge", err)
	}
	if !found {
		return nil, ErrChallengeNotFound
	}
	if err := authorize(service.guard, caller, challenge.UserID); err != nil {
		return nil, err
	}

	deposits, err := service.deposits.ListByChallenge(challengeID)
	if err != nil {
		return nil, internalError("list deposits", err)
	}
	return deposits, nil
}
