package dto

// RegisterStructureRequest registers a chart-of-accounts node. A nil parent
// creates a root.
type RegisterStructureRequest struct {
	AccountCode       string  `json:"accountCode" binding:"required"`
	ParentAccountCode *string `json:"parentAccountCode"`
	DisplayOrder      int     `json:"displayOrder"`
}

// ReparentStructureRequest moves a node under a new parent (nil makes it a root).
type ReparentStructureRequest struct {
	NewParentAccountCode *string `json:"newParentAccountCode"`
	DisplayOrder         int     `json:"displayOrder"`
}
