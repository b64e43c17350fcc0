package domain

import (
	"fmt"
	"strings"

	"github.com/finbooks/general_ledger_app/internal/apperrors"
)

// PathSeparator joins account codes in a materialized path, e.g. "1000/1100/1110".
const PathSeparator = "/"

// AccountStructure is one node of the chart-of-accounts tree. AccountPath is
// the parent's path with the own code appended and HierarchyLevel is
// parent level + 1 (1 for roots); both are maintained on registration and
// re-parenting, never recomputed lazily.
type AccountStructure struct {
	AccountCode       string  `json:"accountCode"`
	AccountPath       string  `json:"accountPath"`
	HierarchyLevel    int     `json:"hierarchyLevel"`
	ParentAccountCode *string `json:"parentAccountCode,omitempty"`
	DisplayOrder      int     `json:"displayOrder"`
	AuditFields
}

// NewRootStructure builds a level-1 node with no parent.
func NewRootStructure(accountCode string, displayOrder int, audit AuditFields) (AccountStructure, error) {
	if strings.TrimSpace(accountCode) == "" {
		return AccountStructure{}, fmt.Errorf("%w: account code must not be blank", apperrors.ErrValidation)
	}
	return AccountStructure{
		AccountCode:    accountCode,
		AccountPath:    accountCode,
		HierarchyLevel: 1,
		DisplayOrder:   displayOrder,
		AuditFields:    audit,
	}, nil
}

// NewChildStructure builds a node attached under parent, deriving path and level.
func NewChildStructure(accountCode string, parent AccountStructure, displayOrder int, audit AuditFields) (AccountStructure, error) {
	if strings.TrimSpace(accountCode) == "" {
		return AccountStructure{}, fmt.Errorf("%w: account code must not be blank", apperrors.ErrValidation)
	}
	parentCode := parent.AccountCode
	return AccountStructure{
		AccountCode:       accountCode,
		AccountPath:       parent.AccountPath + PathSeparator + accountCode,
		HierarchyLevel:    parent.HierarchyLevel + 1,
		ParentAccountCode: &parentCode,
		DisplayOrder:      displayOrder,
		AuditFields:       audit,
	}, nil
}

// Reparent returns a copy of s attached under newParent (nil for root),
// recomputing path and level.
func (s AccountStructure) Reparent(newParent *AccountStructure, displayOrder int, audit AuditFields) AccountStructure {
	s.DisplayOrder = displayOrder
	s.LastUpdatedAt = audit.LastUpdatedAt
	s.LastUpdatedBy = audit.LastUpdatedBy
	if newParent == nil {
		s.ParentAccountCode = nil
		s.AccountPath = s.AccountCode
		s.HierarchyLevel = 1
		return s
	}
	parentCode := newParent.AccountCode
	s.ParentAccountCode = &parentCode
	s.AccountPath = newParent.AccountPath + PathSeparator + s.AccountCode
	s.HierarchyLevel = newParent.HierarchyLevel + 1
	return s
}

// IsRoot reports whether the node has no parent.
func (s AccountStructure) IsRoot() bool {
	return s.ParentAccountCode == nil
}
