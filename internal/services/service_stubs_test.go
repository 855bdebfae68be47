package services

import (
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/terraincognita07/paaga/internal/models"
)

var errStubStorage = errors.New("stub storage failure")

type challengeRepositoryStub struct {
	challenges map[uint]models.Challenge
	nextID     uint
	clock      time.Time
	createErr  error
}

func newChallengeRepositoryStub() *challengeRepositoryStub {
	return &challengeRepositoryStub{
		challenges: make(map[uint]models.Challenge),
		nextID:     1,
		clock:      time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (stub *challengeRepositoryStub) CreateUnlessOpen(challenge *models.Challenge, today time.Time) (bool, error) {
	if stub.createErr != nil {
		return false, stub.createErr
	}
	for _, existing := range stub.challenges {
		if existing.UserID == challenge.UserID && !existing.WindowEnd.Before(today) {
			return false, nil
		}
	}
	stub.clock = stub.clock.Add(time.Second)
	challenge.ID = stub.nextID
	challenge.CreatedAt = stub.clock
	challenge.UpdatedAt = stub.clock
	stub.challenges[challenge.ID] = *challenge
	stub.nextID++
	return true, nil
}

func (stub *challengeRepositoryStub) FindByID(challengeID uint) (models.Challenge, bool, error) {
	challenge, ok := stub.challenges[challengeID]
	return challenge, ok, nil
}

func (stub *challengeRepositoryStub) FindLatestByUser(userID string) (models.Challenge, bool, error) {
	challenges, _ := stub.ListByUser(userID)
	if len(challenges) == 0 {
		return models.Challenge{}, false, nil
	}
	return challenges[0], true, nil
}

func (stub *challengeRepositoryStub) ListByUser(userID string) ([]models.Challenge, error) {
	challenges := make([]models.Challenge, 0)
	for _, challenge := range stub.challenges {
		if challenge.UserID == userID {
			challenges = append(challenges, challenge)
		}
	}
	sort.Slice(challenges, func(i, j int) bool {
		if challenges[i].CreatedAt.Equal(challenges[j].CreatedAt) {
			return challenges[i].ID > challenges[j].ID
		}
		return challenges[i].CreatedAt.After(challenges[j].CreatedAt)
	})
	return challenges, nil
}

func (stub *challengeRepositoryStub) UpdateStartDate(challengeID uint, startDate time.Time, windowEnd time.Time) (models.Challenge, bool, error) {
	challenge, ok := stub.challenges[challengeID]
	if !ok {
		return models.Challenge{}, false, nil
	}
	challenge.StartDate = startDate
	challenge.WindowEnd = windowEnd
	stub.challenges[challengeID] = challenge
	return challenge, true, nil
}

type depositRepositoryStub struct {
	mu        sync.Mutex
	deposits  map[uint]models.Deposit
	nextID    uint
	upsertErr error
}

func newDepositRepositoryStub() *depositRepositoryStub {
	return &depositRepositoryStub{
		deposits: make(map[uint]models.Deposit),
		nextID:   1,
	}
}

func (stub *depositRepositoryStub) Upsert(deposit *models.Deposit) (bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.upsertErr != nil {
		return false, stub.upsertErr
	}

	for id, existing := range stub.deposits {
		if existing.ChallengeID == deposit.ChallengeID && existing.DayNumber == deposit.DayNumber {
			existing.Amount = deposit.Amount
			existing.DepositedAt = deposit.DepositedAt
			stub.deposits[id] = existing
			*deposit = existing
			return false, nil
		}
	}

	deposit.ID = stub.nextID
	deposit.CreatedAt = deposit.DepositedAt
	stub.deposits[deposit.ID] = *deposit
	stub.nextID++
	return true, nil
}

func (stub *depositRepositoryStub) FindByID(depositID uint) (models.Deposit, bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	deposit, ok := stub.deposits[depositID]
	return deposit, ok, nil
}

func (stub *depositRepositoryStub) DeleteByID(depositID uint) (bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if _, ok := stub.deposits[depositID]; !ok {
		return false, nil
	}
	delete(stub.deposits, depositID)
	return true, nil
}

func (stub *depositRepositoryStub) ListByChallenge(challengeID uint) ([]models.Deposit, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	deposits := make([]models.Deposit, 0)
	for _, deposit := range stub.deposits {
		if deposit.ChallengeID == challengeID {
			deposits = append(deposits, deposit)
		}
	}
	sort.Slice(deposits, func(i, j int) bool {
		return deposits[i].DayNumber < deposits[j].DayNumber
	})
	return deposits, nil
}

// progressRepositoryStub joins the two stubs the way the database read does.
type progressRepositoryStub struct {
	challenges *challengeRepositoryStub
	deposits   *depositRepositoryStub
}

func (stub progressRepositoryStub) LoadWithDeposits(challengeID uint) (models.Challenge, []models.Deposit, bool, error) {
	challenge, ok := stub.challenges.challenges[challengeID]
	if !ok {
		return models.Challenge{}, nil, false, nil
	}
	deposits, _ := stub.deposits.ListByChallenge(challengeID)
	return challenge, deposits, true, nil
}

type auditSinkStub struct {
	mu     sync.Mutex
	events []AuditEvent
}

func (stub *auditSinkStub) Record(event AuditEvent) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.events = append(stub.events, event)
}

func (stub *auditSinkStub) actions() []string {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	actions := make([]string, 0, len(stub.events))
	for _, event := range stub.events {
		actions = append(actions, event.EntityType+":"+event.Action)
	}
	return actions
}

type guardStub struct {
	allow bool
	calls int
}

func (stub *guardStub) IsOwner(string, string) bool {
	stub.calls++
	return stub.allow
}

func mustDate(t testing.TB, raw string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		t.Fatalf("parse date %q: %v", raw, err)
	}
	return parsed
}
