package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/gamiempire/sovereign/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestSaveAndGetAccount() {
	account := &model.Account{Username: "alice", Wealth: 10000, Assets: []string{"starter_package"}}
	s.Require().NoError(s.storage.SaveAccount(s.ctx, account))

	got, err := s.storage.GetAccount(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(float64(10000), got.Wealth)
	s.Equal([]string{"starter_package"}, got.Assets)
}

func (s *StorageSuite) TestGetAccountNotFound() {
	_, err := s.storage.GetAccount(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *StorageSuite) TestGetAccountReturnsCopy() {
	s.Require().NoError(s.storage.SaveAccount(s.ctx, &model.Account{Username: "alice", Wealth: 10000}))

	got, _ := s.storage.GetAccount(s.ctx, "alice")
	got.Wealth = 0

	again, _ := s.storage.GetAccount(s.ctx, "alice")
	s.Equal(float64(10000), again.Wealth)
}

func (s *StorageSuite) TestAppendTransactionAssignsSequence() {
	first := &model.TransactionRecord{Type: model.TxnCrowRental, Username: "alice"}
	second := &model.TransactionRecord{Type: model.TxnTreeRental, Username: "alice"}

	s.Require().NoError(s.storage.AppendTransaction(s.ctx, first))
	s.Require().NoError(s.storage.AppendTransaction(s.ctx, second))

	s.Equal(int64(1), first.Sequence)
	s.Equal(int64(2), second.Sequence)
}

func (s *StorageSuite) TestListTransactionsNewestFirstWithFilterAndLimit() {
	s.Require().NoError(s.storage.AppendTransaction(s.ctx, &model.TransactionRecord{Type: model.TxnCrowRental, Username: "alice"}))
	s.Require().NoError(s.storage.AppendTransaction(s.ctx, &model.TransactionRecord{Type: model.TxnTreeRental, Username: "bobby"}))
	s.Require().NoError(s.storage.AppendTransaction(s.ctx, &model.TransactionRecord{Type: model.TxnShopPurchase, Username: "alice"}))

	records, err := s.storage.ListTransactions(s.ctx, "alice", 10)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal(model.TxnShopPurchase, records[0].Type)

	limited, err := s.storage.ListTransactions(s.ctx, "alice", 1)
	s.Require().NoError(err)
	s.Len(limited, 1)
}

func (s *StorageSuite) TestAppendAndListAuditEvents() {
	s.Require().NoError(s.storage.AppendAuditEvent(s.ctx, &model.AuditEvent{Kind: model.AuditUserCreated}))
	s.Require().NoError(s.storage.AppendAuditEvent(s.ctx, &model.AuditEvent{Kind: model.AuditSessionEnded}))

	events, err := s.storage.ListAuditEvents(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal(model.AuditSessionEnded, events[0].Kind)
}

func (s *StorageSuite) TestSnapshotRoundTrip() {
	_, err := s.storage.GetSnapshot(s.ctx)
	s.ErrorIs(err, model.ErrSnapshotNotFound)

	s.Require().NoError(s.storage.SaveSnapshot(s.ctx, &model.Snapshot{ActiveSessions: 4}))

	got, err := s.storage.GetSnapshot(s.ctx)
	s.Require().NoError(err)
	s.Equal(4, got.ActiveSessions)
}
