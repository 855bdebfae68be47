package services

import (
	"strconv"
	"sync"
	"time"

	"github.com/terraincognita07/paaga/internal/models"
	"go.uber.org/zap"
)

const LargeDepositThreshold = 100

type AuditEvent struct {
	EntityType string
	Action     string
	UserID     string
	EntityID   uint
	Amount     *int
	Metadata   map[string]string
}

// AuditSink receives events after a mutation has been committed. Record must
// not block and must not report failures back to the caller.
type AuditSink interface {
	Record(event AuditEvent)
}

type NopAuditSink struct{}

func (NopAuditSink) Record(AuditEvent) {}

type AuditLogWriter interface {
	Create(entry *models.AuditLog) error
}

// AuditRecorder persists events from a bounded queue on a single worker
// goroutine. Events that arrive while the queue is full are dropped.
type AuditRecorder struct {
	logs   AuditLogWriter
	logger *zap.Logger
	now    func() time.Time

	mu     sync.RWMutex
	closed bool
	events chan AuditEvent
	done   chan struct{}
}

func NewAuditRecorder(logs AuditLogWriter, logger *zap.Logger, buffer int) *AuditRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if buffer <= 0 {
		buffer = 1
	}
	recorder := &AuditRecorder{
		logs:   logs,
		logger: logger.Named("audit"),
		now:    func() time.Time { return time.Now().UTC() },
		events: make(chan AuditEvent, buffer),
		done:   make(chan struct{}),
	}
	go recorder.run()
	return recorder
}

func (recorder *AuditRecorder) Record(event AuditEvent) {
	recorder.mu.RLock()
	defer recorder.mu.RUnlock()
	if recorder.closed {
		return
	}

	select {
	case recorder.events <- event:
	default:
		recorder.logger.Warn("audit queue full, event dropped",
			zap.String("action", event.Action),
			zap.String("entity_type", event.EntityType),
			zap.Uint("entity_id", event.EntityID),
		)
	}
}

// Close stops accepting events and waits until queued ones are written.
func (recorder *AuditRecorder) Close() {
	recorder.mu.Lock()
	if recorder.closed {
		recorder.mu.Unlock()
		<-recorder.done
		return
	}
	recorder.closed = true
	close(recorder.events)
	recorder.mu.Unlock()
	<-recorder.done
}

func (recorder *AuditRecorder) run() {
	defer close(recorder.done)
	for event := range recorder.events {
		recorder.write(event)
	}
}

func (recorder *AuditRecorder) write(event AuditEvent) {
	defer func() {
		if recovered := recover(); recovered != nil {
			recorder.logger.Error("audit write panicked", zap.Any("panic", recovered))
		}
	}()

	fields := []zap.Field{
		zap.String("action", event.Action),
		zap.String("entity_type", event.EntityType),
		zap.Uint("entity_id", event.EntityID),
		zap.String("user_id", event.UserID),
	}
	if event.Amount != nil {
		fields = append(fields, zap.Int("amount", *event.Amount))
	}

	entry := models.AuditLog{
		UserID:     event.UserID,
		Action:     event.Action,
		EntityType: event.EntityType,
		EntityID:   event.EntityID,
		Amount:     event.Amount,
		Metadata:   event.Metadata,
		CreatedAt:  recorder.now(),
	}
	if err := recorder.logs.Create(&entry); err != nil {
		recorder.logger.Error("persist audit event", append(fields, zap.Error(err))...)
		return
	}
	recorder.logger.Info("audit event", fields...)
}

func depositAuditEvents(action string, userID string, deposit models.Deposit) []AuditEvent {
	amount := deposit.Amount
	metadata := map[string]string{
		"challenge_id": strconv.FormatUint(uint64(deposit.ChallengeID), 10),
		"day_number":   strconv.Itoa(deposit.DayNumber),
	}
	events := []AuditEvent{{
		EntityType: models.AuditEntityDeposit,
		Action:     action,
		UserID:     userID,
		EntityID:   deposit.ID,
		Amount:     &amount,
		Metadata:   metadata,
	}}
	if action == models.AuditActionCreated && amount >= LargeDepositThreshold {
		events = append(events, AuditEvent{
			EntityType: models.AuditEntityDeposit,
			Action:     models.AuditActionLargeDeposit,
			UserID:     userID,
			EntityID:   deposit.ID,
			Amount:     &amount,
			Metadata:   metadata,
		})
	}
	return events
}

func challengeAuditEvent(action string, challenge models.Challenge) AuditEvent {
	return AuditEvent{
		EntityType: models.AuditEntityChallenge,
		Action:     action,
		UserID:     challenge.UserID,
		EntityID:   challenge.ID,
		Metadata: map[string]string{
			"start_date": FormatCalendarDate(challenge.StartDate),
		},
	}
}
