package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/terraincognita07/paaga/internal/models"
	"go.uber.org/zap"
)

type auditLogWriterStub struct {
	mu      sync.Mutex
	entries []models.AuditLog
	err     error
	block   chan struct{}
}

func (stub *auditLogWriterStub) Create(entry *models.AuditLog) error {
	if stub.block != nil {
		<-stub.block
	}
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.err != nil {
		return stub.err
	}
	entry.ID = uint(len(stub.entries) + 1)
	stub.entries = append(stub.entries, *entry)
	return nil
}

func TestAuditRecorderPersistsQueuedEvents(t *testing.T) {
	writer := &auditLogWriterStub{}
	recorder := NewAuditRecorder(writer, zap.NewNop(), 16)

	amount := 120
	recorder.Record(AuditEvent{EntityType: models.AuditEntityDeposit, Action: models.AuditActionCreated, UserID: "user-1", EntityID: 5, Amount: &amount})
	recorder.Record(AuditEvent{EntityType: models.AuditEntityChallenge, Action: models.AuditActionUpdated, UserID: "user-1", EntityID: 2})
	recorder.Close()

	if len(writer.entries) != 2 {
		t.Fatalf("expected 2 persisted entries, got %d", len(writer.entries))
	}
	first := writer.entries[0]
	if first.Action != "created" || first.EntityType != "deposit" || first.Amount == nil || *first.Amount != 120 {
		t.Fatalf("unexpected first entry %+v", first)
	}
	if first.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be set")
	}
}

func TestAuditRecorderSwallowsWriteErrors(t *testing.T) {
	writer := &auditLogWriterStub{err: errors.New("disk full")}
	recorder := NewAuditRecorder(writer, zap.NewNop(), 4)

	recorder.Record(AuditEvent{EntityType: models.AuditEntityDeposit, Action: models.AuditActionDeleted})
	recorder.Close()

	if len(writer.entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(writer.entries))
	}
}

func TestAuditRecorderDropsWhenQueueIsFull(t *testing.T) {
	writer := &auditLogWriterStub{block: make(chan struct{})}
	recorder := NewAuditRecorder(writer, zap.NewNop(), 1)

	for index := 0; index < 10; index++ {
		recorder.Record(AuditEvent{EntityType: models.AuditEntityDeposit, Action: models.AuditActionCreated, EntityID: uint(index)})
	}
	close(writer.block)
	recorder.Close()

	// At most one event is in the worker and one in the queue.
	if got := len(writer.entries); got == 0 || got > 2 {
		t.Fatalf("expected 1 or 2 persisted entries, got %d", got)
	}
}

func TestAuditRecorderIgnoresEventsAfterClose(t *testing.T) {
	writer := &auditLogWriterStub{}
	recorder := NewAuditRecorder(writer, zap.NewNop(), 2)
	recorder.Close()
	recorder.Close()

	recorder.Record(AuditEvent{Action: models.AuditActionCreated})
	if len(writer.entries) != 0 {
		t.Fatalf("expected nothing recorded after close")
	}
}
