package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbooks/general_ledger_app/internal/apperrors"
	"github.com/finbooks/general_ledger_app/internal/core/domain"
)

var testTime = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

func money(t *testing.T, s string) domain.Money {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	m, err := domain.NewMoney(d)
	require.NoError(t, err)
	return m
}

func line(t *testing.T, n int, accountID string, side domain.TransactionType, amount string) domain.JournalEntryLine {
	t.Helper()
	l, err := domain.NewJournalEntryLine(n, accountID, side, money(t, amount), "", "")
	require.NoError(t, err)
	return l
}

func draftEntry(t *testing.T, lines ...domain.JournalEntryLine) domain.JournalEntry {
	t.Helper()
	entry, err := domain.NewJournalEntry(testTime, "Office supplies purchase", "user-1", testTime)
	require.NoError(t, err)
	if len(lines) > 0 {
		entry, err = entry.WithLines(lines, testTime)
		require.NoError(t, err)
	}
	return entry
}

func TestNewJournalEntry(t *testing.T) {
	entry, err := domain.NewJournalEntry(testTime, "Opening balances", "user-1", testTime)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, entry.Status)
	assert.Equal(t, int64(0), entry.Version)
	assert.Empty(t, entry.Lines)

	_, err = domain.NewJournalEntry(testTime, "   ", "user-1", testTime)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.NewJournalEntry(testTime, "No creator", "", testTime)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestNewJournalEntryLine_Validation(t *testing.T) {
	_, err := domain.NewJournalEntryLine(0, "acc-1", domain.Debit, money(t, "10"), "", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.NewJournalEntryLine(1, "", domain.Debit, money(t, "10"), "", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.NewJournalEntryLine(1, "acc-1", "SIDEWAYS", money(t, "10"), "", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.NewJournalEntryLine(1, "acc-1", domain.Debit, domain.ZeroMoney(), "", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestJournalEntry_BalanceTotals(t *testing.T) {
	// One debit of 1000 split against two credits of 600 and 400.
	entry := draftEntry(t,
		line(t, 1, "acc-cash", domain.Debit, "1000"),
		line(t, 2, "acc-sales", domain.Credit, "600"),
		line(t, 3, "acc-fees", domain.Credit, "400"),
	)

	assert.True(t, entry.DebitTotal().Equal(decimal.NewFromInt(1000)))
	assert.True(t, entry.CreditTotal().Equal(decimal.NewFromInt(1000)))
	assert.True(t, entry.IsBalanced())
	assert.True(t, entry.BalanceDifference().IsZero())
}

func TestJournalEntry_SubmitRequiresBalance(t *testing.T) {
	unbalanced := draftEntry(t,
		line(t, 1, "acc-cash", domain.Debit, "1000"),
		line(t, 2, "acc-sales", domain.Credit, "999.99"),
	)

	_, err := unbalanced.Submit(testTime)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "0.01")

	offByHundred := draftEntry(t,
		line(t, 1, "acc-cash", domain.Debit, "1000"),
		line(t, 2, "acc-sales", domain.Credit, "900"),
	)
	_, err = offByHundred.Submit(testTime)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "100")

	single := draftEntry(t, line(t, 1, "acc-cash", domain.Debit, "1000"))
	_, err = single.Submit(testTime)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestJournalEntry_LineSequence(t *testing.T) {
	entry := draftEntry(t)

	// Gap in numbering.
	_, err := entry.WithLines([]domain.JournalEntryLine{
		line(t, 1, "acc-cash", domain.Debit, "100"),
		line(t, 3, "acc-sales", domain.Credit, "100"),
	}, testTime)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Duplicate number.
	_, err = entry.WithLines([]domain.JournalEntryLine{
		line(t, 1, "acc-cash", domain.Debit, "100"),
		line(t, 1, "acc-sales", domain.Credit, "100"),
	}, testTime)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// WithLine must extend the sequence.
	entry = draftEntry(t, line(t, 1, "acc-cash", domain.Debit, "100"))
	_, err = entry.WithLine(line(t, 5, "acc-sales", domain.Credit, "100"), testTime)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	next, err := entry.WithLine(line(t, 2, "acc-sales", domain.Credit, "100"), testTime)
	require.NoError(t, err)
	assert.Len(t, next.Lines, 2)
	assert.Len(t, entry.Lines, 1, "mutations must not touch the receiver")
}

func TestJournalEntry_Lifecycle(t *testing.T) {
	entry := draftEntry(t,
		line(t, 1, "acc-cash", domain.Debit, "250"),
		line(t, 2, "acc-sales", domain.Credit, "250"),
	)

	pending, err := entry.Submit(testTime)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingApproval, pending.Status)

	approved, err := pending.Approve("approver-1", testTime)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, approved.Status)
	assert.Equal(t, "approver-1", approved.ApprovedBy)
	require.NotNil(t, approved.ApprovedAt)

	confirmed, err := approved.Confirm(testTime)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, confirmed.Status)

	// CONFIRMED is terminal.
	_, err = confirmed.Submit(testTime)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
	_, err = confirmed.WithDescription("too late", testTime)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestJournalEntry_RejectAndReopen(t *testing.T) {
	entry := draftEntry(t,
		line(t, 1, "acc-cash", domain.Debit, "250"),
		line(t, 2, "acc-sales", domain.Credit, "250"),
	)
	pending, err := entry.Submit(testTime)
	require.NoError(t, err)

	_, err = pending.Reject("  ", testTime)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	rejected, err := pending.Reject("wrong account", testTime)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, rejected.Status)
	assert.Equal(t, "wrong account", rejected.RejectionReason)

	// A rejected entry cannot be approved, only reopened.
	_, err = rejected.Approve("approver-1", testTime)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)

	reopened, err := rejected.Reopen(testTime)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, reopened.Status)
	assert.Equal(t, "wrong account", reopened.RejectionReason, "reason stays on record")
	assert.True(t, reopened.IsEditable())
}

func TestJournalEntry_EditsOnlyInDraft(t *testing.T) {
	entry := draftEntry(t,
		line(t, 1, "acc-cash", domain.Debit, "250"),
		line(t, 2, "acc-sales", domain.Credit, "250"),
	)
	pending, err := entry.Submit(testTime)
	require.NoError(t, err)

	_, err = pending.WithJournalDate(testTime.AddDate(0, 0, 1), testTime)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
	_, err = pending.WithLines(entry.Lines, testTime)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
	assert.False(t, pending.IsEditable())
}

func TestJournalEntry_ValidateForPersist(t *testing.T) {
	// Drafts may be unbalanced, anything else may not.
	draft := draftEntry(t, line(t, 1, "acc-cash", domain.Debit, "100"))
	assert.NoError(t, draft.ValidateForPersist())

	draft.Status = domain.StatusPendingApproval
	assert.ErrorIs(t, draft.ValidateForPersist(), apperrors.ErrValidation)
}

func TestEntryStatus_Valid(t *testing.T) {
	assert.True(t, domain.StatusDraft.Valid())
	assert.True(t, domain.StatusConfirmed.Valid())
	assert.False(t, domain.EntryStatus("POSTED").Valid())
}
