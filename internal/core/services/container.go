package services

import (
	"log/slog"

	portsrepo "github.com/finbooks/general_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/general_ledger_app/internal/core/ports/services"
)

// NewServiceContainer wires all services from the repository provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider, logger *slog.Logger) *portssvc.ServiceContainer {
	clock := NewSystemClock()
	audit := NewSlogAuditRecorder(logger)

	journalEntrySvc := NewJournalEntryService(repos.JournalEntryRepo, repos.AccountRepo, clock, audit)

	return &portssvc.ServiceContainer{
		JournalEntry: journalEntrySvc,
		Account:      NewAccountService(repos.AccountRepo, clock),
		Structure:    NewStructureService(repos.StructureRepo, repos.AccountRepo, clock),
		AutoJournal:  NewAutoJournalService(repos.PatternRepo, repos.AccountRepo, journalEntrySvc, clock),
		Ledger:       NewLedgerService(repos.JournalEntryRepo, repos.AccountRepo),
		Reporting:    NewReportingService(repos.JournalEntryRepo, repos.AccountRepo),
	}
}
