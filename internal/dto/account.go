package dto

import (
	"github.com/finbooks/general_ledger_app/internal/core/domain"
)

// CreateAccountRequest registers a new ledger account.
type CreateAccountRequest struct {
	AccountCode string             `json:"accountCode" binding:"required"`
	Name        string             `json:"name" binding:"required"`
	AccountType domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Description string             `json:"description"`
}

// UpdateAccountRequest edits account metadata. Nil fields are left unchanged.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}
