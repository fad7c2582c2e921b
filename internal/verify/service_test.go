package verify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"veriname/internal/audit"
	"veriname/internal/nickname"
	"veriname/internal/scoring"
	"veriname/internal/translit"
)

// fakeDirectory returns canned records keyed by normalized phone number.
type fakeDirectory struct {
	records map[string][]scoring.CandidateRecord
	err     error
	queried []string
}

func (d *fakeDirectory) Gather(_ context.Context, phone string) ([]scoring.CandidateRecord, error) {
	d.queried = append(d.queried, phone)
	if d.err != nil {
		return nil, d.err
	}
	return d.records[phone], nil
}

type ServiceSuite struct {
	suite.Suite
	engine *scoring.Engine
	logger *slog.Logger
	ctx    context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	store := nickname.NewInMemory()
	nickname.Seed(store)

	src, err := scoring.NewStaticSource(scoring.DefaultConfig())
	s.Require().NoError(err)

	s.engine, err = scoring.NewEngine(src,
		scoring.WithNicknameResolver(store),
		scoring.WithTransliterator(translit.NewMapper(translit.DefaultCommonNames())),
	)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestVerifyNormalizesPhoneBeforeLookup() {
	dir := &fakeDirectory{records: map[string][]scoring.CandidateRecord{
		"972541234567": {{Source: scoring.SourceME, GivenName: "דוד", Surname: "לוי"}},
	}}
	svc, err := NewService(s.engine, dir, s.logger)
	s.Require().NoError(err)

	b, err := svc.Verify(s.ctx, "054-123-4567", "דוד לוי")
	s.Require().NoError(err)

	s.Require().Len(dir.queried, 1)
	s.Equal("972541234567", dir.queried[0])
	s.Equal(100, b.FinalScore)
	s.Equal(scoring.TierHigh, b.RiskTier)
}

func (s *ServiceSuite) TestVerifyRejectsInvalidPhone() {
	svc, err := NewService(s.engine, &fakeDirectory{}, s.logger)
	s.Require().NoError(err)

	_, err = svc.Verify(s.ctx, "12ab", "דוד לוי")
	s.Error(err)
}

func (s *ServiceSuite) TestVerifyNoDirectoryData() {
	svc, err := NewService(s.engine, &fakeDirectory{}, s.logger)
	s.Require().NoError(err)

	b, err := svc.Verify(s.ctx, "0541234567", "דוד לוי")
	s.Require().NoError(err)
	s.Zero(b.FinalScore)
	s.Equal(scoring.TierVeryLow, b.RiskTier)
	s.Equal(scoring.NoDataExplanation, b.Explanation)
}

func (s *ServiceSuite) TestVerifySurfacesGatherError() {
	dir := &fakeDirectory{err: errors.New("all sources down")}
	svc, err := NewService(s.engine, dir, s.logger)
	s.Require().NoError(err)

	_, err = svc.Verify(s.ctx, "0541234567", "דוד לוי")
	s.Error(err)
}

func (s *ServiceSuite) TestVerifyEmitsMaskedAuditEvent() {
	dir := &fakeDirectory{records: map[string][]scoring.CandidateRecord{
		"972541234567": {{Source: scoring.SourceME, GivenName: "דוד", Surname: "לוי"}},
	}}
	events := make(chan audit.Event, 1)
	svc, err := NewService(s.engine, dir, s.logger, WithAuditChannel(events))
	s.Require().NoError(err)

	b, err := svc.Verify(s.ctx, "0541234567", "דוד לוי")
	s.Require().NoError(err)

	var event audit.Event
	select {
	case event = <-events:
	default:
		s.FailNow("no audit event emitted")
	}

	s.NotEmpty(event.ID)
	s.Equal("********4567", event.Phone)
	s.Equal("ד** ל**", event.ClaimedName)
	s.Equal(b.FinalScore, event.FinalScore)
	s.Equal(b.RiskTier, event.RiskTier)
	s.Equal([]scoring.SourceID{scoring.SourceME}, event.Sources)
}

func (s *ServiceSuite) TestVerifyDropsAuditEventWhenChannelFull() {
	dir := &fakeDirectory{records: map[string][]scoring.CandidateRecord{
		"972541234567": {{Source: scoring.SourceME, GivenName: "דוד", Surname: "לוי"}},
	}}
	events := make(chan audit.Event) // unbuffered, nobody reading
	svc, err := NewService(s.engine, dir, s.logger, WithAuditChannel(events))
	s.Require().NoError(err)

	// Must not block.
	_, err = svc.Verify(s.ctx, "0541234567", "דוד לוי")
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestScoreSingleCandidate() {
	svc, err := NewService(s.engine, &fakeDirectory{}, s.logger)
	s.Require().NoError(err)

	b, err := svc.Score(s.ctx, "חביבה פראס", scoring.CandidateRecord{
		Source:    scoring.SourceME,
		GivenName: "Havi",
		Surname:   "Prass",
	})
	s.Require().NoError(err)
	s.Equal(93, b.FinalScore)
	s.Equal(scoring.TierHigh, b.RiskTier)
}

func (s *ServiceSuite) TestNewServiceValidation() {
	dir := &fakeDirectory{}
	_, err := NewService(nil, dir, s.logger)
	s.Error(err)
	_, err = NewService(s.engine, nil, s.logger)
	s.Error(err)
	_, err = NewService(s.engine, dir, nil)
	s.Error(err)
}
