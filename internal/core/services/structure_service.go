package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/finbooks/general_ledger_app/internal/apperrors"
	"github.com/finbooks/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/general_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/general_ledger_app/internal/core/ports/services"
	"github.com/finbooks/general_ledger_app/internal/dto"
	"github.com/finbooks/general_ledger_app/internal/middleware"
)

// maxHierarchyDepth caps the ancestor walk. The hierarchy is a forest, so any
// chain longer than this indicates corrupted data rather than a legal tree.
const maxHierarchyDepth = 64

// structureService manages the chart-of-accounts tree. The cycle check plus
// the following write must be atomic; the repository implementations run each
// write inside a transaction and this service performs the check immediately
// before delegating.
type structureService struct {
	structureRepo portsrepo.AccountStructureRepositoryFacade
	accountRepo   portsrepo.AccountReader
	clock         portssvc.Clock
}

// NewStructureService creates the account structure service.
func NewStructureService(structureRepo portsrepo.AccountStructureRepositoryFacade, accountRepo portsrepo.AccountReader, clock portssvc.Clock) portssvc.AccountStructureSvcFacade {
	return &structureService{structureRepo: structureRepo, accountRepo: accountRepo, clock: clock}
}

var _ portssvc.AccountStructureSvcFacade = (*structureService)(nil)

// HasCircularReference walks the proposed parent's ancestor chain looking for
// candidateCode. The chain terminates at a root; each node has at most one
// parent so a bounded walk suffices.
func (s *structureService) HasCircularReference(ctx context.Context, candidateCode, proposedParentCode string) (bool, error) {
	if candidateCode == proposedParentCode {
		return true, nil
	}
	currentCode := proposedParentCode
	for depth := 0; depth < maxHierarchyDepth; depth++ {
		node, err := s.structureRepo.FindStructureByCode(ctx, currentCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				// Chain ends at a node with no stored structure; no cycle.
				return false, nil
			}
			return false, err
		}
		if node.AccountCode == candidateCode {
			return true, nil
		}
		if node.ParentAccountCode == nil {
			return false, nil
		}
		currentCode = *node.ParentAccountCode
	}
	return false, fmt.Errorf("%w: ancestor chain exceeds %d levels for %s", apperrors.ErrInternal, maxHierarchyDepth, proposedParentCode)
}

// Register creates a node, deriving path and level from the parent.
func (s *structureService) Register(ctx context.Context, req dto.RegisterStructureRequest, userID string) (*domain.AccountStructure, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := s.clock.Now()

	if _, err := s.structureRepo.FindStructureByCode(ctx, req.AccountCode); err == nil {
		return nil, fmt.Errorf("%w: structure %s already registered", apperrors.ErrDuplicate, req.AccountCode)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	audit := domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID}

	var structure domain.AccountStructure
	var err error
	if req.ParentAccountCode == nil {
		structure, err = domain.NewRootStructure(req.AccountCode, req.DisplayOrder, audit)
		if err != nil {
			return nil, err
		}
	} else {
		cyclic, err := s.HasCircularReference(ctx, req.AccountCode, *req.ParentAccountCode)
		if err != nil {
			return nil, err
		}
		if cyclic {
			return nil, fmt.Errorf("%w: %s cannot attach under %s", apperrors.ErrCircularReference, req.AccountCode, *req.ParentAccountCode)
		}
		parent, err := s.structureRepo.FindStructureByCode(ctx, *req.ParentAccountCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent structure %s", apperrors.ErrNotFound, *req.ParentAccountCode)
			}
			return nil, err
		}
		structure, err = domain.NewChildStructure(req.AccountCode, *parent, req.DisplayOrder, audit)
		if err != nil {
			return nil, err
		}
	}

	if err = s.structureRepo.SaveStructure(ctx, structure); err != nil {
		logger.Error("Failed to save account structure", slog.String("error", err.Error()), slog.String("account_code", req.AccountCode))
		return nil, err
	}

	logger.Info("Account structure registered",
		slog.String("account_code", structure.AccountCode),
		slog.String("path", structure.AccountPath),
		slog.Int("level", structure.HierarchyLevel))
	return &structure, nil
}

// Reparent moves a node under a new parent and rewrites descendant paths and
// levels so the materialized path invariant keeps holding below the node.
func (s *structureService) Reparent(ctx context.Context, accountCode string, req dto.ReparentStructureRequest, userID string) (*domain.AccountStructure, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := s.clock.Now()

	node, err := s.structureRepo.FindStructureByCode(ctx, accountCode)
	if err != nil {
		return nil, err
	}

	var newParent *domain.AccountStructure
	if req.NewParentAccountCode != nil {
		cyclic, err := s.HasCircularReference(ctx, accountCode, *req.NewParentAccountCode)
		if err != nil {
			return nil, err
		}
		if cyclic {
			return nil, fmt.Errorf("%w: %s cannot move under %s", apperrors.ErrCircularReference, accountCode, *req.NewParentAccountCode)
		}
		newParent, err = s.structureRepo.FindStructureByCode(ctx, *req.NewParentAccountCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent structure %s", apperrors.ErrNotFound, *req.NewParentAccountCode)
			}
			return nil, err
		}
	}

	audit := domain.AuditFields{LastUpdatedAt: now, LastUpdatedBy: userID}
	oldPath := node.AccountPath
	oldLevel := node.HierarchyLevel
	updated := node.Reparent(newParent, req.DisplayOrder, audit)

	descendants, err := s.rewriteDescendants(ctx, oldPath, oldLevel, updated, audit)
	if err != nil {
		return nil, err
	}

	if err := s.structureRepo.UpdateStructure(ctx, updated, descendants); err != nil {
		logger.Error("Failed to update account structure", slog.String("error", err.Error()), slog.String("account_code", accountCode))
		return nil, err
	}

	logger.Info("Account structure re-parented",
		slog.String("account_code", accountCode),
		slog.String("new_path", updated.AccountPath),
		slog.Int("descendants_rewritten", len(descendants)))
	return &updated, nil
}

// rewriteDescendants recomputes path and level for every node under oldPath.
func (s *structureService) rewriteDescendants(ctx context.Context, oldPath string, oldLevel int, moved domain.AccountStructure, audit domain.AuditFields) ([]domain.AccountStructure, error) {
	all, err := s.structureRepo.ListStructures(ctx)
	if err != nil {
		return nil, err
	}
	prefix := oldPath + domain.PathSeparator
	levelDelta := moved.HierarchyLevel - oldLevel
	descendants := make([]domain.AccountStructure, 0)
	for _, node := range all {
		if !strings.HasPrefix(node.AccountPath, prefix) {
			continue
		}
		node.AccountPath = moved.AccountPath + domain.PathSeparator + strings.TrimPrefix(node.AccountPath, prefix)
		node.HierarchyLevel += levelDelta
		node.LastUpdatedAt = audit.LastUpdatedAt
		node.LastUpdatedBy = audit.LastUpdatedBy
		descendants = append(descendants, node)
	}
	return descendants, nil
}

// Remove deletes a childless node.
func (s *structureService) Remove(ctx context.Context, accountCode string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.structureRepo.FindStructureByCode(ctx, accountCode); err != nil {
		return err
	}

	children, err := s.structureRepo.FindChildren(ctx, accountCode)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return fmt.Errorf("%w: %s has %d children", apperrors.ErrChildrenExist, accountCode, len(children))
	}

	if err := s.structureRepo.DeleteStructure(ctx, accountCode); err != nil {
		logger.Error("Failed to delete account structure", slog.String("error", err.Error()), slog.String("account_code", accountCode))
		return err
	}

	logger.Info("Account structure removed", slog.String("account_code", accountCode))
	return nil
}

// GetByCode retrieves one node.
func (s *structureService) GetByCode(ctx context.Context, accountCode string) (*domain.AccountStructure, error) {
	return s.structureRepo.FindStructureByCode(ctx, accountCode)
}

// List retrieves the whole tree in path order.
func (s *structureService) List(ctx context.Context) ([]domain.AccountStructure, error) {
	return s.structureRepo.ListStructures(ctx)
}
