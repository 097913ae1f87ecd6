//go:build integration

package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	id "vetgate/pkg/domain"
	"vetgate/pkg/testutil/containers"
)

type PostgresAuditSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *PostgresStore
	ctx   context.Context
	now   time.Time
}

func (s *PostgresAuditSuite) SetupSuite() {
	s.pg = containers.GetManager().GetPostgres(s.T())
	s.store = NewPostgres(s.pg.DB)
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *PostgresAuditSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateTables(s.ctx, "compliance_audit"))
}

func TestPostgresAuditSuite(t *testing.T) {
	suite.Run(t, new(PostgresAuditSuite))
}

func (s *PostgresAuditSuite) TestAppendAndList() {
	carerID := id.NewCarerID()
	other := id.NewCarerID()

	events := []Event{
		{
			Timestamp: s.now,
			CarerID:   carerID,
			Actor:     ActorCarer,
			Action:    ActionDocumentSubmitted,
			Subject:   "identity",
			FromState: "not_submitted",
			ToState:   "pending",
			ClientIP:  "203.0.113.7",
			UserAgent: "vetgate-mobile/2.4",
			RequestID: "req-1",
		},
		{
			Timestamp: s.now.Add(time.Minute),
			CarerID:   carerID,
			Actor:     "8ba9ed46-5bbb-4f3c-8001-9e1f56d520cf",
			Action:    ActionDocumentReviewed,
			Subject:   "identity",
			FromState: "pending",
			ToState:   "rejected",
			Reason:    "photo unreadable",
			RequestID: "req-2",
		},
		{
			Timestamp: s.now.Add(2 * time.Minute),
			CarerID:   other,
			Actor:     ActorCarer,
			Action:    ActionReferralSubmitted,
			Subject:   "slot-1",
			ToState:   "pending",
		},
	}
	for _, e := range events {
		s.Require().NoError(s.store.Append(s.ctx, e))
	}

	got, err := s.store.ListByCarer(s.ctx, carerID)
	s.Require().NoError(err)
	s.Require().Len(got, 2, "trails are per carer")

	s.Run("events come back in order with every field intact", func() {
		s.Equal(ActionDocumentSubmitted, got[0].Action)
		s.Equal("203.0.113.7", got[0].ClientIP)
		s.Equal("vetgate-mobile/2.4", got[0].UserAgent)

		s.Equal(ActionDocumentReviewed, got[1].Action)
		s.Equal("photo unreadable", got[1].Reason)
		s.Equal("req-2", got[1].RequestID)
		s.True(got[1].Timestamp.After(got[0].Timestamp))
	})
}

func (s *PostgresAuditSuite) TestListEmptyTrail() {
	got, err := s.store.ListByCarer(s.ctx, id.NewCarerID())
	s.Require().NoError(err)
	s.Empty(got)
}
