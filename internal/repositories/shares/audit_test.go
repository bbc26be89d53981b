package shares_test

import (
	"time"

	"github.com/KirkDiggler/cosmo-api/internal/errors"
	"github.com/KirkDiggler/cosmo-api/internal/repositories/shares"
)

func (s *RedisSharesTestSuite) seedAuditData() {
	_, err := s.repo.Create(s.ctx, shares.CreateInput{ShortCode: testCode, Team: s.team})
	s.Require().NoError(err)

	// a record that lost its TTL but still has a day left
	_, err = s.repo.Create(s.ctx, shares.CreateInput{ShortCode: "Keep01", Team: s.team})
	s.Require().NoError(err)
	raw, err := s.mr.Get("shared_team:Keep01")
	s.Require().NoError(err)
	s.Require().NoError(s.mr.Set("shared_team:Keep01", raw))

	// a record that lost its TTL and is already past its expiry
	s.Require().NoError(s.mr.Set("shared_team:Old001",
		`{"shortCode":"Old001","team":{},"expiresAt":"2025-02-01T00:00:00Z"}`))

	s.Require().NoError(s.mr.Set("shared_team:Bad001", `{"shortCode":`))
	s.Require().NoError(s.mr.Set("shared_team:NoTeam", `{"shortCode":"NoTeam"}`))
	s.Require().NoError(s.mr.Set("roster:all", `not a share`))
}

func (s *RedisSharesTestSuite) TestAuditReports() {
	s.seedAuditData()

	report, err := shares.Audit(s.ctx, shares.AuditInput{Client: s.client, Clock: s.clock})
	s.Require().NoError(err)

	s.Equal(5, report.Checked)
	s.ElementsMatch([]string{"shared_team:Bad001", "shared_team:NoTeam"}, report.Corrupt)
	s.ElementsMatch([]string{"shared_team:Keep01", "shared_team:Old001"}, report.NoExpiry)
	s.Zero(report.Fixed)
	s.True(s.mr.Exists("shared_team:Bad001"))
}

func (s *RedisSharesTestSuite) TestAuditFixes() {
	s.seedAuditData()

	report, err := shares.Audit(s.ctx, shares.AuditInput{Client: s.client, Clock: s.clock, Fix: true})
	s.Require().NoError(err)
	s.Equal(4, report.Fixed)

	s.False(s.mr.Exists("shared_team:Bad001"))
	s.False(s.mr.Exists("shared_team:NoTeam"))
	s.False(s.mr.Exists("shared_team:Old001"))
	s.Equal(48*time.Hour, s.mr.TTL("shared_team:Keep01"))
	s.True(s.mr.Exists("roster:all"))

	again, err := shares.Audit(s.ctx, shares.AuditInput{Client: s.client, Clock: s.clock})
	s.Require().NoError(err)
	s.Empty(again.Corrupt)
	s.Empty(again.NoExpiry)
}

func (s *RedisSharesTestSuite) TestAuditRequiresClient() {
	_, err := shares.Audit(s.ctx, shares.AuditInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisSharesTestSuite) TestAuditOutage() {
	s.mr.Close()

	_, err := shares.Audit(s.ctx, shares.AuditInput{Client: s.client})
	s.True(errors.IsUnavailable(err), "got %v", err)
}
