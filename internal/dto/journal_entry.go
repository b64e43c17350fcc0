package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/general_ledger_app/internal/core/domain"
)

// JournalEntryLineRequest is one line of a create/update request.
type JournalEntryLineRequest struct {
	LineNumber     int                    `json:"lineNumber" binding:"required,min=1"`
	AccountID      string                 `json:"accountID" binding:"required"`
	Side           domain.TransactionType `json:"side" binding:"required,oneof=DEBIT CREDIT"`
	Amount         decimal.Decimal        `json:"amount" binding:"required"`
	SubAccountCode string                 `json:"subAccountCode"`
	Description    string                 `json:"description"`
}

// CreateJournalEntryRequest creates a DRAFT entry.
type CreateJournalEntryRequest struct {
	JournalDate time.Time                 `json:"journalDate" binding:"required"`
	Description string                    `json:"description" binding:"required"`
	Lines       []JournalEntryLineRequest `json:"lines"`
}

// UpdateJournalEntryRequest edits a DRAFT entry. Version is the optimistic
// concurrency token read by the caller; nil fields are left unchanged.
type UpdateJournalEntryRequest struct {
	Version     int64                      `json:"version"`
	JournalDate *time.Time                 `json:"journalDate"`
	Description *string                    `json:"description"`
	Lines       *[]JournalEntryLineRequest `json:"lines"`
}

// EntryActionRequest carries the version token for lifecycle verbs
// (submit/approve/reopen/confirm).
type EntryActionRequest struct {
	Version int64 `json:"version"`
}

// RejectEntryRequest carries the version token and the mandatory reason.
type RejectEntryRequest struct {
	Version int64  `json:"version"`
	Reason  string `json:"reason" binding:"required"`
}

// ListEntriesParams filters the entry listing.
type ListEntriesParams struct {
	Status *domain.EntryStatus
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

// JournalEntryResponse is the API shape of an entry.
type JournalEntryResponse struct {
	JournalEntryID  string                      `json:"journalEntryID"`
	JournalDate     time.Time                   `json:"journalDate"`
	Description     string                      `json:"description"`
	Status          domain.EntryStatus          `json:"status"`
	Version         int64                       `json:"version"`
	Lines           []domain.JournalEntryLine   `json:"lines"`
	DebitTotal      decimal.Decimal             `json:"debitTotal"`
	CreditTotal     decimal.Decimal             `json:"creditTotal"`
	CreatedBy       string                      `json:"createdBy"`
	ApprovedBy      string                      `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time                  `json:"approvedAt,omitempty"`
	RejectionReason string                      `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time                   `json:"createdAt"`
	UpdatedAt       time.Time                   `json:"updatedAt"`
}

// ToJournalEntryResponse maps a domain entry to its API shape.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		JournalEntryID:  e.JournalEntryID,
		JournalDate:     e.JournalDate,
		Description:     e.Description,
		Status:          e.Status,
		Version:         e.Version,
		Lines:           e.Lines,
		DebitTotal:      e.DebitTotal(),
		CreditTotal:     e.CreditTotal(),
		CreatedBy:       e.CreatedBy,
		ApprovedBy:      e.ApprovedBy,
		ApprovedAt:      e.ApprovedAt,
		RejectionReason: e.RejectionReason,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

// ToJournalEntryResponses maps a slice of domain entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	out := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToJournalEntryResponse(&entries[i])
	}
	return out
}
