package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance returns the side on which balances of this account type grow:
// debit for ASSET/EXPENSE, credit for LIABILITY/EQUITY/REVENUE.
func (t AccountType) NormalBalance() TransactionType {
	switch t {
	case Asset, Expense:
		return Debit
	default:
		return Credit
	}
}

// Valid reports whether t is one of the five known account types.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Account represents a ledger account within the core domain.
type Account struct {
	AccountID   string      `json:"accountID"`   // Primary key (UUID)
	AccountCode string      `json:"accountCode"` // Chart-of-accounts code, unique
	Name        string      `json:"name"`        // User-defined name
	AccountType AccountType `json:"accountType"` // ASSET, LIABILITY, etc.
	Description string      `json:"description"` // Nullable user description
	IsActive    bool        `json:"isActive"`    // Inactive accounts reject new lines
	AuditFields
}
