package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/general_ledger_app/internal/apperrors"
)

// TransactionType indicates whether a line is a debit or a credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// EntryStatus is the lifecycle state of a journal entry.
type EntryStatus string

const (
	StatusDraft           EntryStatus = "DRAFT"
	StatusPendingApproval EntryStatus = "PENDING_APPROVAL"
	StatusApproved        EntryStatus = "APPROVED"
	StatusRejected        EntryStatus = "REJECTED"
	StatusConfirmed       EntryStatus = "CONFIRMED"
)

// allowedTransitions is the explicit status transition table. CONFIRMED is
// terminal. REJECTED keeps the rejection on record but allows the creator to
// reopen the entry as a draft.
var allowedTransitions = map[EntryStatus][]EntryStatus{
	StatusDraft:           {StatusPendingApproval},
	StatusPendingApproval: {StatusApproved, StatusRejected},
	StatusApproved:        {StatusConfirmed},
	StatusRejected:        {StatusDraft},
	StatusConfirmed:       {},
}

// Valid reports whether s is a known lifecycle status.
func (s EntryStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransitionTo consults the transition table.
func (s EntryStatus) CanTransitionTo(target EntryStatus) bool {
	for _, t := range allowedTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// JournalEntryLine is one debit or credit movement against a single account.
// Lines are immutable; replacing the line set produces a new entry value.
type JournalEntryLine struct {
	LineNumber     int             `json:"lineNumber"` // 1-based, contiguous within the entry
	AccountID      string          `json:"accountID"`
	SubAccountCode string          `json:"subAccountCode,omitempty"` // Optional subsidiary-ledger dimension
	Side           TransactionType `json:"side"`                     // DEBIT or CREDIT
	Amount         Money           `json:"amount"`                   // Strictly positive
	Description    string          `json:"description,omitempty"`    // Falls back to the entry header in ledgers
}

// NewJournalEntryLine validates and builds a line. A line carries a strictly
// positive amount on exactly one side; Side+Amount encodes that directly
// instead of a nullable debit/credit pair.
func NewJournalEntryLine(lineNumber int, accountID string, side TransactionType, amount Money, subAccountCode, description string) (JournalEntryLine, error) {
	if lineNumber < 1 {
		return JournalEntryLine{}, fmt.Errorf("%w: line number must be >= 1, got %d", apperrors.ErrValidation, lineNumber)
	}
	if accountID == "" {
		return JournalEntryLine{}, fmt.Errorf("%w: line %d has no account", apperrors.ErrValidation, lineNumber)
	}
	if side != Debit && side != Credit {
		return JournalEntryLine{}, fmt.Errorf("%w: line %d side must be DEBIT or CREDIT", apperrors.ErrValidation, lineNumber)
	}
	if !amount.IsPositive() {
		return JournalEntryLine{}, fmt.Errorf("%w: line %d amount must be positive", apperrors.ErrValidation, lineNumber)
	}
	return JournalEntryLine{
		LineNumber:     lineNumber,
		AccountID:      accountID,
		SubAccountCode: subAccountCode,
		Side:           side,
		Amount:         amount,
		Description:    description,
	}, nil
}

// JournalEntry is the aggregate: a dated, described set of balanced
// debit/credit lines plus approval metadata. All mutations are pure and return
// a new value; Version is the optimistic-concurrency token and is bumped only
// by a successful persisted save, never at candidate-construction time.
type JournalEntry struct {
	JournalEntryID  string             `json:"journalEntryID,omitempty"` // Empty until first persisted
	JournalDate     time.Time          `json:"journalDate"`
	Description     string             `json:"description"`
	Status          EntryStatus        `json:"status"`
	Version         int64              `json:"version"`
	Lines           []JournalEntryLine `json:"lines"`
	CreatedBy       string             `json:"createdBy"`
	ApprovedBy      string             `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time         `json:"approvedAt,omitempty"`
	RejectionReason string             `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// NewJournalEntry creates a DRAFT entry with no lines at version 0.
func NewJournalEntry(journalDate time.Time, description, createdBy string, now time.Time) (JournalEntry, error) {
	if strings.TrimSpace(description) == "" {
		return JournalEntry{}, fmt.Errorf("%w: description must not be blank", apperrors.ErrValidation)
	}
	if createdBy == "" {
		return JournalEntry{}, fmt.Errorf("%w: creator is required", apperrors.ErrValidation)
	}
	return JournalEntry{
		JournalDate: journalDate,
		Description: description,
		Status:      StatusDraft,
		Version:     0,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// DebitTotal sums the debit side.
func (e JournalEntry) DebitTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		if l.Side == Debit {
			total = total.Add(l.Amount.Decimal())
		}
	}
	return total
}

// CreditTotal sums the credit side.
func (e JournalEntry) CreditTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		if l.Side == Credit {
			total = total.Add(l.Amount.Decimal())
		}
	}
	return total
}

// BalanceDifference is |Σdebit − Σcredit|.
func (e JournalEntry) BalanceDifference() decimal.Decimal {
	return e.DebitTotal().Sub(e.CreditTotal()).Abs()
}

// IsBalanced reports whether the debit and credit sides match.
func (e JournalEntry) IsBalanced() bool {
	return e.DebitTotal().Equal(e.CreditTotal())
}

// validateBalance is re-checked on every transition out of DRAFT.
func (e JournalEntry) validateBalance() error {
	if len(e.Lines) < 2 {
		return fmt.Errorf("%w: entry must have at least two lines", apperrors.ErrValidation)
	}
	if !e.IsBalanced() {
		return fmt.Errorf("%w: unbalanced, debits %s credits %s difference %s",
			apperrors.ErrValidation, e.DebitTotal().String(), e.CreditTotal().String(), e.BalanceDifference().String())
	}
	return nil
}

// validateLineSequence enforces unique, contiguous 1..N line numbers.
func validateLineSequence(lines []JournalEntryLine) error {
	seen := make(map[int]struct{}, len(lines))
	for _, l := range lines {
		if _, dup := seen[l.LineNumber]; dup {
			return fmt.Errorf("%w: duplicate line number %d", apperrors.ErrValidation, l.LineNumber)
		}
		seen[l.LineNumber] = struct{}{}
	}
	for n := 1; n <= len(lines); n++ {
		if _, ok := seen[n]; !ok {
			return fmt.Errorf("%w: line numbers must be contiguous 1..%d, missing %d", apperrors.ErrValidation, len(lines), n)
		}
	}
	return nil
}

// IsEditable reports whether the entry may be modified or deleted.
func (e JournalEntry) IsEditable() bool {
	return e.Status == StatusDraft
}

func (e JournalEntry) requireStatus(want EntryStatus, op string) error {
	if e.Status != want {
		return fmt.Errorf("%w: cannot %s entry in status %s", apperrors.ErrInvalidState, op, e.Status)
	}
	return nil
}

// WithLine appends a line to a DRAFT entry. The line number must extend the
// sequence, i.e. equal len(lines)+1.
func (e JournalEntry) WithLine(line JournalEntryLine, now time.Time) (JournalEntry, error) {
	if err := e.requireStatus(StatusDraft, "add a line to"); err != nil {
		return JournalEntry{}, err
	}
	next := append(append([]JournalEntryLine(nil), e.Lines...), line)
	if err := validateLineSequence(next); err != nil {
		return JournalEntry{}, err
	}
	e.Lines = next
	e.UpdatedAt = now
	return e, nil
}

// WithLines replaces the whole line set of a DRAFT entry.
func (e JournalEntry) WithLines(lines []JournalEntryLine, now time.Time) (JournalEntry, error) {
	if err := e.requireStatus(StatusDraft, "replace lines of"); err != nil {
		return JournalEntry{}, err
	}
	if err := validateLineSequence(lines); err != nil {
		return JournalEntry{}, err
	}
	e.Lines = append([]JournalEntryLine(nil), lines...)
	e.UpdatedAt = now
	return e, nil
}

// WithDescription updates the description of a DRAFT entry.
func (e JournalEntry) WithDescription(description string, now time.Time) (JournalEntry, error) {
	if err := e.requireStatus(StatusDraft, "edit"); err != nil {
		return JournalEntry{}, err
	}
	if strings.TrimSpace(description) == "" {
		return JournalEntry{}, fmt.Errorf("%w: description must not be blank", apperrors.ErrValidation)
	}
	e.Description = description
	e.UpdatedAt = now
	return e, nil
}

// WithJournalDate updates the journal date of a DRAFT entry.
func (e JournalEntry) WithJournalDate(journalDate time.Time, now time.Time) (JournalEntry, error) {
	if err := e.requireStatus(StatusDraft, "edit"); err != nil {
		return JournalEntry{}, err
	}
	e.JournalDate = journalDate
	e.UpdatedAt = now
	return e, nil
}

func (e JournalEntry) transition(target EntryStatus, now time.Time) (JournalEntry, error) {
	if !e.Status.CanTransitionTo(target) {
		return JournalEntry{}, fmt.Errorf("%w: transition %s -> %s is not allowed", apperrors.ErrInvalidState, e.Status, target)
	}
	e.Status = target
	e.UpdatedAt = now
	return e, nil
}

// Submit moves DRAFT -> PENDING_APPROVAL after re-checking the balance invariant.
func (e JournalEntry) Submit(now time.Time) (JournalEntry, error) {
	if err := e.requireStatus(StatusDraft, "submit"); err != nil {
		return JournalEntry{}, err
	}
	if err := e.validateBalance(); err != nil {
		return JournalEntry{}, err
	}
	return e.transition(StatusPendingApproval, now)
}

// Approve moves PENDING_APPROVAL -> APPROVED, recording the approver.
func (e JournalEntry) Approve(approverID string, now time.Time) (JournalEntry, error) {
	if approverID == "" {
		return JournalEntry{}, fmt.Errorf("%w: approver is required", apperrors.ErrValidation)
	}
	next, err := e.transition(StatusApproved, now)
	if err != nil {
		return JournalEntry{}, err
	}
	next.ApprovedBy = approverID
	approvedAt := now
	next.ApprovedAt = &approvedAt
	return next, nil
}

// Reject moves PENDING_APPROVAL -> REJECTED, recording the reason.
func (e JournalEntry) Reject(reason string, now time.Time) (JournalEntry, error) {
	if strings.TrimSpace(reason) == "" {
		return JournalEntry{}, fmt.Errorf("%w: rejection reason is required", apperrors.ErrValidation)
	}
	next, err := e.transition(StatusRejected, now)
	if err != nil {
		return JournalEntry{}, err
	}
	next.RejectionReason = reason
	return next, nil
}

// Reopen returns a REJECTED entry to DRAFT so the creator regains authoring
// control. The rejection reason stays on record until the next submission.
func (e JournalEntry) Reopen(now time.Time) (JournalEntry, error) {
	if err := e.requireStatus(StatusRejected, "reopen"); err != nil {
		return JournalEntry{}, err
	}
	return e.transition(StatusDraft, now)
}

// Confirm moves APPROVED -> CONFIRMED. Confirmed entries are immutable and are
// the only ones visible to ledger aggregation.
func (e JournalEntry) Confirm(now time.Time) (JournalEntry, error) {
	next, err := e.transition(StatusConfirmed, now)
	if err != nil {
		return JournalEntry{}, err
	}
	if err := next.validateBalance(); err != nil {
		return JournalEntry{}, err
	}
	return next, nil
}

// ValidateForPersist is the last-line-of-defence check run by the save path:
// any entry outside DRAFT must hold the balance and sequence invariants.
func (e JournalEntry) ValidateForPersist() error {
	if err := validateLineSequence(e.Lines); err != nil {
		return err
	}
	if e.Status != StatusDraft {
		return e.validateBalance()
	}
	return nil
}
