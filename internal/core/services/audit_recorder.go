package services

import (
	"context"
	"log/slog"

	portssvc "github.com/finbooks/general_ledger_app/internal/core/ports/services"
)

// slogAuditRecorder emits journal-entry lifecycle events to the structured
// log. Recording is best-effort: it never returns an error and never blocks
// the business operation beyond a log write.
type slogAuditRecorder struct {
	logger *slog.Logger
}

// NewSlogAuditRecorder creates an AuditRecorder writing to the given logger.
func NewSlogAuditRecorder(logger *slog.Logger) portssvc.AuditRecorder {
	return &slogAuditRecorder{logger: logger}
}

var _ portssvc.AuditRecorder = (*slogAuditRecorder)(nil)

func (r *slogAuditRecorder) Record(_ context.Context, event portssvc.AuditEvent) {
	r.logger.Info("audit",
		slog.String("action", string(event.Action)),
		slog.String("journal_entry_id", event.JournalEntryID),
		slog.String("actor", event.ActorUserID),
		slog.String("detail", event.Detail),
		slog.Time("occurred_at", event.OccurredAt),
	)
}
