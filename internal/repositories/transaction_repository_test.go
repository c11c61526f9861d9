package repositories

import (
	"testing"
	"time"

	"github.com/NixySoftware/ns-flex-insights/internal/database"
	"github.com/NixySoftware/ns-flex-insights/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type TransactionRepositoryTestSuite struct {
	suite.Suite
	db         *database.DB
	repo       TransactionRepositoryInterface
	importRepo ImportRepositoryInterface
	importID   uuid.UUID
}

func TestTransactionRepositorySuite(t *testing.T) {
	suite.Run(t, new(TransactionRepositoryTestSuite))
}

func (s *TransactionRepositoryTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewTransactionRepository(s.db.DB)
	s.importRepo = NewImportRepository(s.db.DB)

	base := time.Date(2023, time.June, 7, 10, 0, 0, 0, time.UTC)

	// Stored deliberately out of order; reads must come back canonical.
	transactions := []models.Transaction{
		testTransaction(base.Add(4*time.Hour), 2),
		testTransaction(base, 0),
		testTransaction(base, 1),
		testTransaction(base.AddDate(0, 1, 0), 3),
	}

	imp := &models.Import{FileName: "reishistorie.csv", RowCount: len(transactions)}
	s.Require().NoError(s.importRepo.Create(imp, transactions))
	s.importID = imp.ID
}

func (s *TransactionRepositoryTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *TransactionRepositoryTestSuite) TestGetByImportID_CanonicalOrder() {
	transactions, err := s.repo.GetByImportID(s.importID)
	s.Require().NoError(err)
	s.Require().Len(transactions, 4)

	for i := 1; i < len(transactions); i++ {
		prev, curr := transactions[i-1], transactions[i]
		if prev.Start.Equal(curr.Start) {
			s.Less(prev.RowIndex, curr.RowIndex, "ties must keep row order")
		} else {
			s.True(prev.Start.Before(curr.Start))
		}
	}
	s.Equal(0, transactions[0].RowIndex)
	s.Equal(1, transactions[1].RowIndex)
}

func (s *TransactionRepositoryTestSuite) TestGetByImportID_UnknownImport() {
	transactions, err := s.repo.GetByImportID(uuid.New())
	s.Require().NoError(err)
	s.Empty(transactions)
}

func (s *TransactionRepositoryTestSuite) TestGetByImportIDAndRange() {
	from := time.Date(2023, time.June, 7, 0, 0, 0, 0, time.UTC)
	to := time.Date(2023, time.June, 7, 23, 59, 0, 0, time.UTC)

	transactions, err := s.repo.GetByImportIDAndRange(s.importID, from, to)
	s.Require().NoError(err)
	s.Len(transactions, 3, "the July journey falls outside the window")

	for _, tx := range transactions {
		s.False(tx.Start.Before(from))
		s.False(tx.Start.After(to))
	}
}

func (s *TransactionRepositoryTestSuite) TestGetByImportIDAndRange_OpenUpperBound() {
	from := time.Date(2023, time.June, 8, 0, 0, 0, 0, time.UTC)

	transactions, err := s.repo.GetByImportIDAndRange(s.importID, from, time.Time{})
	s.Require().NoError(err)
	s.Len(transactions, 1, "only the July journey starts after 8 June")
}

func (s *TransactionRepositoryTestSuite) TestGetByImportIDAndRange_OpenLowerBound() {
	to := time.Date(2023, time.June, 7, 23, 59, 0, 0, time.UTC)

	transactions, err := s.repo.GetByImportIDAndRange(s.importID, time.Time{}, to)
	s.Require().NoError(err)
	s.Len(transactions, 3)
}
