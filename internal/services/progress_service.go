package services

import (
	"time"

	"github.com/terraincognita07/paaga/internal/models"
)

type ProgressRepository interface {
	LoadWithDeposits(challengeID uint) (models.Challenge, []models.Deposit, bool, error)
}

type ProgressService struct {
	challenges ProgressRepository
	guard      OwnershipGuard
	location   *time.Location
}

func NewProgressService(challenges ProgressRepository, guard OwnershipGuard, location *time.Location) *ProgressService {
	if guard == nil {
		guard = IdentityOwnershipGuard{}
	}
	if location == nil {
		location = time.UTC
	}
	return &ProgressService{
		challenges: challenges,
		guard:      guard,
		location:   location,
	}
}

func (service *ProgressService) ForChallenge(caller string, challengeID uint, now time.Time) (ProgressSnapshot, error) {
	challenge, deposits, err := service.load(caller, challengeID)
	if err != nil {
		return ProgressSnapshot{}, err
	}
	return ComputeProgress(challenge, deposits, now, service.location), nil
}

func (service *ProgressService) Calendar(caller string, challengeID uint, now time.Time) ([]ChallengeCalendarDay, error) {
	challenge, deposits, err := service.load(caller, challengeID)
	if err != nil {
		return nil, err
	}
	return BuildChallengeCalendar(challenge, deposits, now, service.location), nil
}

// Snapshot returns the challenge with its deposits read in one transaction.
func (service *ProgressService) Snapshot(caller string, challengeID uint) (models.Challenge, []models.Deposit, error) {
	return service.load(caller, challengeID)
}

func (service *ProgressService) load(caller string, challengeID uint) (models.Challenge, []models.Deposit, error) {
	challenge, deposits, found, err := service.challenges.LoadWithDeposits(challengeID)
	if err != nil {
		return models.Challenge{}, nil, internalError("load challenge progress", err)
	}
	if !found {
		return models.Challenge{}, nil, ErrChallengeNotFound
	}
	if err := authorize(service.guard, caller, challenge.UserID); err != nil {
		return models.Challenge{}, nil, err
	}
	return challenge, deposits, nil
}
