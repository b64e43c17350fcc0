package services

import (
	"context"
	"time"
)

// ServiceContainer holds instances of all the application services. This is
// the main entry point for accessing service functionality and is what the
// handlers receive.
type ServiceContainer struct {
	JournalEntry JournalEntrySvcFacade
	Account      AccountSvcFacade
	Structure    AccountStructureSvcFacade
	AutoJournal  AutoJournalSvcFacade
	Ledger       LedgerSvcFacade
	Reporting    ReportingSvcFacade
}

// Clock supplies the current time so services stay deterministic under test.
type Clock interface {
	Now() time.Time
}

// AuditAction names a journal-entry lifecycle event.
type AuditAction string

const (
	AuditCreated   AuditAction = "CREATED"
	AuditUpdated   AuditAction = "UPDATED"
	AuditSubmitted AuditAction = "SUBMITTED"
	AuditApproved  AuditAction = "APPROVED"
	AuditRejected  AuditAction = "REJECTED"
	AuditConfirmed AuditAction = "CONFIRMED"
	AuditDeleted   AuditAction = "DELETED"
)

// AuditEvent is a fire-and-forget notification of a lifecycle event.
type AuditEvent struct {
	Action         AuditAction
	JournalEntryID string
	ActorUserID    string
	Detail         string
	OccurredAt     time.Time
}

// AuditRecorder receives lifecycle notifications. Implementations are
// best-effort: they must never block or fail the business operation.
type AuditRecorder interface {
	Record(ctx context.Context, event AuditEvent)
}
