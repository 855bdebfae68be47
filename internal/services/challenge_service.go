package services

import (
	"strings"
	"time"

	"github.com/terraincognita07/paaga/internal/models"
)

type ChallengeRepository interface {
	CreateUnlessOpen(challenge *models.Challenge, today time.Time) (bool, error)
	FindByID(challengeID uint) (models.Challenge, bool, error)
	FindLatestByUser(userID string) (models.Challenge, bool, error)
	ListByUser(userID string) ([]models.Challenge, error)
	UpdateStartDate(challengeID uint, startDate time.Time, windowEnd time.Time) (models.Challenge, bool, error)
}

type ChallengeService struct {
	challenges ChallengeRepository
	guard      OwnershipGuard
	audit      AuditSink
	location   *time.Location
}

func NewChallengeService(challenges ChallengeRepository, guard OwnershipGuard, audit AuditSink, location *time.Location) *ChallengeService {
	if guard == nil {
		guard = IdentityOwnershipGuard{}
	}
	if audit == nil {
		audit = NopAuditSink{}
	}
	if location == nil {
		location = time.UTC
	}
	return &ChallengeService{
		challenges: challenges,
		guard:      guard,
		audit:      audit,
		location:   location,
	}
}

// Create starts a challenge for userID. It fails with a conflict while any
// challenge of the user still has a window ending today or later, which
// includes a challenge whose start date is in the future.
func (service *ChallengeService) Create(caller string, userID string, rawStartDate string, now time.Time) (models.Challenge, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return models.Challenge{}, ErrUserIDRequired
	}
	if err := authorize(service.guard, caller, userID); err != nil {
		return models.Challenge{}, err
	}

	startDate, err := ParseCalendarDate(rawStartDate, service.location)
	if err != nil {
		return models.Challenge{}, ErrInvalidStartDate
	}

	challenge := models.Challenge{
		UserID:    userID,
		StartDate: startDate,
		WindowEnd: WindowEnd(startDate),
	}
	created, err := service.challenges.CreateUnlessOpen(&challenge, Today(now, service.location))
	if err != nil {
		return models.Challenge{}, internalError("create challenge", err)
	}
	if !created {
		return models.Challenge{}, ErrActiveChallengeExists
	}

	service.audit.Record(challengeAuditEvent(models.AuditActionCreated, challenge))
	return challenge, nil
}

func (service *ChallengeService) GetForUser(caller string, userID string) (models.Challenge, bool, error) {
	if err := authorize(service.guard, caller, userID); err != nil {
		return models.Challenge{}, false, err
	}
	challenge, found, err := service.challenges.FindLatestByUser(userID)
	if err != nil {
		return models.Challenge{}, false, internalError("load latest challenge", err)
	}
	return challenge, found, nil
}

func (service *ChallengeService) ListForUser(caller string, userID string) ([]models.Challenge, error) {
	if err := authorize(service.guard, caller, userID); err != nil {
		return nil, err
	}
	challenges, err := service.challenges.ListByUser(userID)
	if err != nil {
		return nil, internalError("list challenges", err)
	}
	return challenges, nil
}

func (service *ChallengeService) Get(caller string, challengeID uint) (models.Challenge, error) {
	challenge, found, err := service.challenges.FindByID(challengeID)
	if err != nil {
		return models.Challenge{}, internalError("load challenge", err)
	}
	if !found {
		return models.Challenge{}, ErrChallengeNotFound
	}
	if err := authorize(service.guard, caller, challenge.UserID); err != nil {
		return models.Challenge{}, err
	}
	return challenge, nil
}

// UpdateStartDate moves the challenge anchor. Recorded deposits keep their day
// numbers, so the calendar dates they map to move with the new start date.
func (service *ChallengeService) UpdateStartDate(caller string, challengeID uint, rawStartDate string) (models.Challenge, error) {
	if _, err := service.Get(caller, challengeID); err != nil {
		return models.Challenge{}, err
	}

	startDate, err := ParseCalendarDate(rawStartDate, service.location)
	if err != nil {
		return models.Challenge{}, ErrInvalidStartDate
	}

	updated, found, err := service.challenges.UpdateStartDate(challengeID, startDate, WindowEnd(startDate))
	if err != nil {
		return models.Challenge{}, internalError("update challenge start date", err)
	}
	if !found {
		return models.Challenge{}, ErrChallengeNotFound
	}

	service.audit.Record(challengeAuditEvent(models.AuditActionUpdated, updated))
	return updated, nil
}
