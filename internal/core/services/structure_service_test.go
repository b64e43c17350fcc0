package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/finbooks/general_ledger_app/internal/apperrors"
	"github.com/finbooks/general_ledger_app/internal/core/domain"
	portssvc "github.com/finbooks/general_ledger_app/internal/core/ports/services"
	"github.com/finbooks/general_ledger_app/internal/core/services"
	"github.com/finbooks/general_ledger_app/internal/dto"
)

type StructureServiceTestSuite struct {
	suite.Suite
	mockStructureRepo *MockStructureRepository
	mockAccountRepo   *MockAccountRepository
	service           portssvc.AccountStructureSvcFacade
	now               time.Time
	userID            string
}

func (s *StructureServiceTestSuite) SetupTest() {
	s.mockStructureRepo = new(MockStructureRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.now = time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	s.service = services.NewStructureService(s.mockStructureRepo, s.mockAccountRepo, fixedClock{t: s.now})
	s.userID = "user-1"
}

func (s *StructureServiceTestSuite) node(code, path string, level int, parent *string) *domain.AccountStructure {
	return &domain.AccountStructure{
		AccountCode:       code,
		AccountPath:       path,
		HierarchyLevel:    level,
		ParentAccountCode: parent,
	}
}

func strPtr(v string) *string { return &v }

func (s *StructureServiceTestSuite) TestRegister_Root() {
	s.mockStructureRepo.On("FindStructureByCode", mock.Anything, "1000").
		Return(nil, apperrors.ErrNotFound).Once()
	s.mockStructureRepo.On("SaveStructure", mock.Anything, mock.MatchedBy(func(n domain.AccountStructure) bool {
		return n.AccountPath == "1000" && n.HierarchyLevel == 1 && n.IsRoot()
	})).Return(nil).Once()

	structure, err := s.service.Register(context.Background(), dto.RegisterStructureRequest{AccountCode: "1000"}, s.userID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "1000", structure.AccountPath)
	s.mockStructureRepo.AssertExpectations(s.T())
}

func (s *StructureServiceTestSuite) TestRegister_Child() {
	s.mockStructureRepo.On("FindStructureByCode", mock.Anything, "1100").
		Return(nil, apperrors.ErrNotFound).Once()
	// Cycle walk over the proposed parent, then the parent fetch itself.
	s.mockStructureRepo.On("FindStructureByCode", mock.Anything, "1000").
		Return(s.node("1000", "1000", 1, nil), nil).Twice()
	s.mockStructureRepo.On("SaveStructure", mock.Anything, mock.MatchedBy(func(n domain.AccountStructure) bool {
		return n.AccountPath == "1000/1100" && n.HierarchyLevel == 2
	})).Return(nil).Once()

	structure, err := s.service.Register(context.Background(), dto.RegisterStructureRequest{
		AccountCode:       "1100",
		ParentAccountCode: strPtr("1000"),
	}, s.userID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 2, structure.HierarchyLevel)
}

func (s *StructureServiceTestSuite) TestRegister_Duplicate() {
	s.mockStructureRepo.On("FindStructureByCode", mock.Anything, "1000").
		Return(s.node("1000", "1000", 1, nil), nil).Once()

	_, err := s.service.Register(context.Background(), dto.RegisterStructureRequest{AccountCode: "1000"}, s.userID)
	assert.ErrorIs(s.T(), err, apperrors.ErrDuplicate)
}

func (s *StructureServiceTestSuite) TestHasCircularReference_SelfParent() {
	cyclic, err := s.service.HasCircularReference(context.Background(), "1000", "1000")
	require.NoError(s.T(), err)
	assert.True(s.T(), cyclic)
}

func (s *StructureServiceTestSuite) TestHasCircularReference_Ancestor() {
	// 1000 -> 1100 -> 1110; attaching 1000 under 1110 closes a loop.
	s.mockStructureRepo.On("FindStructureByCode", mock.Anything, "1110").
		Return(s.node("1110", "1000/1100/1110", 3, strPtr("1100")), nil).Once()
	s.mockStructureRepo.On("FindStructureByCode", mock.Anything, "1100").
		Return(s.node("1100", "1000/1100", 2, strPtr("1000")), nil).Once()
	s.mockStructureRepo.On("FindStructureByCode", mock.Anything, "1000").
		Return(s.node("1000", "1000", 1, nil), nil).Once()

	cyclic, err := s.service.HasCircularReference(context.Background(), "1000", "1110")
	require.NoError(s.T(), err)
	assert.True(s.T(), cyclic)
}

func (s *StructureServiceTestSuite) TestHasCircularReference_CleanChain() {
	s.mockStructureRepo.On("FindStructureByCode", mock.Anything, "2000").
		Return(s.node("2000", "2000", 1, nil), nil).Once()

	cyclic, err := s.service.HasCircularReference(context.Background(), "1000", "2000")
	require.NoError(s.T(), err)
	assert.False(s.T(), cyclic)
}

func (s *StructureServiceTestSuite) TestReparent_RewritesDescendants() {
	// Move 1100 (under 1000) to become a child of 2000; 1110 under it follows.
	s.mockStructureRepo.On("FindStructureByCode", mock.Anything, "1100").
		Return(s.node("1100", "1000/1100", 2, strPtr("1000")), nil).Once()
	s.mockStructureRepo.On("FindStructureByCode", mock.Anything, "2000").
		Return(s.node("2000", "2000", 1, nil), nil).Twice()
	s.mockStructureRepo.On("ListStructures", mock.Anything).Return([]domain.AccountStructure{
		*s.node("1000", "1000", 1, nil),
		*s.node("1100", "1000/1100", 2, strPtr("1000")),
		*s.node("1110", "1000/1100/1110", 3, strPtr("1100")),
		*s.node("2000", "2000", 1, nil),
	}, nil).Once()
	s.mockStructureRepo.On("UpdateStructure", mock.Anything,
		mock.MatchedBy(func(n domain.AccountStructure) bool {
			return n.AccountCode == "1100" && n.AccountPath == "2000/1100" && n.HierarchyLevel == 2
		}),
		mock.MatchedBy(func(descendants []domain.AccountStructure) bool {
			return len(descendants) == 1 &&
				descendants[0].AccountCode == "1110" &&
				descendants[0].AccountPath == "2000/1100/1110" &&
				descendants[0].HierarchyLevel == 3
		})).Return(nil).Once()

	moved, err := s.service.Reparent(context.Background(), "1100", dto.ReparentStructureRequest{
		NewParentAccountCode: strPtr("2000"),
	}, s.userID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "2000/1100", moved.AccountPath)
	s.mockStructureRepo.AssertExpectations(s.T())
}

func (s *StructureServiceTestSuite) TestReparent_CycleRejected() {
	// Fetched once by Reparent itself and once more by the ancestor walk.
	s.mockStructureRepo.On("FindStructureByCode", mock.Anything, "1000").
		Return(s.node("1000", "1000", 1, nil), nil).Twice()
	// 1110's ancestor chain reaches 1000.
	s.mockStructureRepo.On("FindStructureByCode", mock.Anything, "1110").
		Return(s.node("1110", "1000/1100/1110", 3, strPtr("1100")), nil).Once()
	s.mockStructureRepo.On("FindStructureByCode", mock.Anything, "1100").
		Return(s.node("1100", "1000/1100", 2, strPtr("1000")), nil).Once()

	_, err := s.service.Reparent(context.Background(), "1000", dto.ReparentStructureRequest{
		NewParentAccountCode: strPtr("1110"),
	}, s.userID)
	assert.ErrorIs(s.T(), err, apperrors.ErrCircularReference)
	s.mockStructureRepo.AssertNotCalled(s.T(), "UpdateStructure", mock.Anything, mock.Anything, mock.Anything)
}

func (s *StructureServiceTestSuite) TestRemove_ChildrenExist() {
	s.mockStructureRepo.On("FindStructureByCode", mock.Anything, "1000").
		Return(s.node("1000", "1000", 1, nil), nil).Once()
	s.mockStructureRepo.On("FindChildren", mock.Anything, "1000").Return([]domain.AccountStructure{
		*s.node("1100", "1000/1100", 2, strPtr("1000")),
	}, nil).Once()

	err := s.service.Remove(context.Background(), "1000")
	assert.ErrorIs(s.T(), err, apperrors.ErrChildrenExist)
	s.mockStructureRepo.AssertNotCalled(s.T(), "DeleteStructure", mock.Anything, mock.Anything)
}

func (s *StructureServiceTestSuite) TestRemove_Leaf() {
	s.mockStructureRepo.On("FindStructureByCode", mock.Anything, "1110").
		Return(s.node("1110", "1000/1100/1110", 3, strPtr("1100")), nil).Once()
	s.mockStructureRepo.On("FindChildren", mock.Anything, "1110").Return([]domain.AccountStructure{}, nil).Once()
	s.mockStructureRepo.On("DeleteStructure", mock.Anything, "1110").Return(nil).Once()

	require.NoError(s.T(), s.service.Remove(context.Background(), "1110"))
	s.mockStructureRepo.AssertExpectations(s.T())
}

func TestStructureServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StructureServiceTestSuite))
}
