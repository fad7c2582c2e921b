package scoring_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"veriname/internal/nickname"
	"veriname/internal/scoring"
	"veriname/internal/translit"
)

// EngineSuite runs the engine end to end with the real transliteration
// tables and the seeded nickname store, the same wiring the server uses.
type EngineSuite struct {
	suite.Suite
	engine *scoring.Engine
	ctx    context.Context
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.ctx = context.Background()

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

func (s *EngineSuite) TestTransliteratedSurnameWithNicknameGivenName() {
	// "Havi" resolves to חבי, a nickname of the claimed חביבה; "Prass" is a
	// conventional rendering of the claimed פראס.
	b, err := s.engine.ScoreMatch(s.ctx, "חביבה פראס", scoring.CandidateRecord{
		Source:    scoring.SourceME,
		GivenName: "Havi",
		Surname:   "Prass",
	})
	s.Require().NoError(err)

	s.Equal(scoring.StrategyTranslitExact, b.LastNameResult.Strategy)
	s.Equal(95, b.LastNameResult.Score)
	s.Equal(scoring.StrategyNickname, b.FirstNameResult.Strategy)
	s.Equal(90, b.FirstNameResult.Score)
	s.InDelta(93.25, b.BaseScore, 0.001)
	s.Equal(93, b.FinalScore)
	s.Equal(scoring.TierHigh, b.RiskTier)

	// Both adjustment rules were considered, neither fired.
	s.Require().Len(b.Adjustments, 2)
	for _, a := range b.Adjustments {
		s.Zero(a.Delta)
	}
}

func (s *EngineSuite) TestCompletelyDifferentNames() {
	b, err := s.engine.ScoreMatch(s.ctx, "דני לוי", scoring.CandidateRecord{
		Source:    scoring.SourceME,
		GivenName: "משה",
		Surname:   "כהן",
	})
	s.Require().NoError(err)

	s.Equal(scoring.StrategyNoMatch, b.LastNameResult.Strategy)
	s.Equal(scoring.StrategyNoMatch, b.FirstNameResult.Strategy)
	s.Zero(b.BaseScore)
	s.Zero(b.FinalScore)
	s.Equal(scoring.TierVeryLow, b.RiskTier)
}

func (s *EngineSuite) TestFirstNameOnlyMatchIsPenalized() {
	b, err := s.engine.ScoreMatch(s.ctx, "דוד לוי", scoring.CandidateRecord{
		Source:    scoring.SourceME,
		GivenName: "דוד",
		Surname:   "כהן",
	})
	s.Require().NoError(err)

	s.Equal(scoring.StrategyNoMatch, b.LastNameResult.Strategy)
	s.Equal(scoring.StrategyExact, b.FirstNameResult.Strategy)
	s.InDelta(35.0, b.BaseScore, 0.001)

	var penalty *scoring.Adjustment
	for i := range b.Adjustments {
		if b.Adjustments[i].Label == scoring.AdjustFirstOnlyMatch {
			penalty = &b.Adjustments[i]
		}
	}
	s.Require().NotNil(penalty)
	s.Equal(-10, penalty.Delta)
	s.Equal(25, b.FinalScore)
	s.Equal(scoring.TierVeryLow, b.RiskTier)
}

func (s *EngineSuite) TestArabicScriptCandidate() {
	// محمد حسن arrives as a single display name; both components
	// transliterate exactly to the claimed Hebrew.
	b, err := s.engine.ScoreMatch(s.ctx, "מוחמד חסן", scoring.CandidateRecord{
		Source:      scoring.SourceSync,
		DisplayName: "محمد حسن",
	})
	s.Require().NoError(err)

	s.Equal(scoring.StrategyTranslitExact, b.LastNameResult.Strategy)
	s.Equal(scoring.StrategyTranslitExact, b.FirstNameResult.Strategy)
	s.InDelta(95.0, b.BaseScore, 0.001)
	s.Equal(95, b.FinalScore)
	s.Equal(scoring.TierHigh, b.RiskTier)
}

func (s *EngineSuite) TestBothExactBonus() {
	b, err := s.engine.ScoreMatch(s.ctx, "דוד לוי", scoring.CandidateRecord{
		Source:    scoring.SourceME,
		GivenName: "דוד",
		Surname:   "לוי",
	})
	s.Require().NoError(err)

	s.Equal(scoring.StrategyExact, b.LastNameResult.Strategy)
	s.Equal(scoring.StrategyExact, b.FirstNameResult.Strategy)
	s.InDelta(100.0, b.BaseScore, 0.001)
	// 100 + 5 clamped back to 100.
	s.Equal(100, b.FinalScore)
	s.Equal(scoring.TierHigh, b.RiskTier)
}

func (s *EngineSuite) TestDeterministicAcrossCalls() {
	cand := scoring.CandidateRecord{Source: scoring.SourceME, GivenName: "Havi", Surname: "Prass"}
	first, err := s.engine.ScoreMatch(s.ctx, "חביבה פראס", cand)
	s.Require().NoError(err)
	for i := 0; i < 5; i++ {
		again, err := s.engine.ScoreMatch(s.ctx, "חביבה פראס", cand)
		s.Require().NoError(err)
		s.Equal(first, again)
	}
}

func (s *EngineSuite) TestExplanationCarriesTheFullTrail() {
	b, err := s.engine.ScoreMatch(s.ctx, "דוד לוי", scoring.CandidateRecord{
		Source:    scoring.SourceME,
		GivenName: "דוד",
		Surname:   "כהן",
	})
	s.Require().NoError(err)

	s.Contains(b.Explanation, "דוד לוי")
	s.Contains(b.Explanation, "no_match")
	s.Contains(b.Explanation, "exact")
	s.Contains(b.Explanation, scoring.AdjustFirstOnlyMatch)
	s.Contains(b.Explanation, "VERY_LOW")
}

func (s *EngineSuite) TestMultiSourceAgreementBonusAppliedOnce() {
	b, err := s.engine.ScoreMulti(s.ctx, "חביבה פראס", []scoring.CandidateRecord{
		{Source: scoring.SourceME, GivenName: "Havi", Surname: "Prass"},
		{Source: scoring.SourceSync, GivenName: "Havi", Surname: "Prass"},
	})
	s.Require().NoError(err)

	s.Require().Len(b.PerSource, 2)
	for _, o := range b.PerSource {
		s.Equal(93, o.FinalScore)
	}
	s.Require().Len(b.Adjustments, 1)
	s.Equal(scoring.AdjustCrossSourceAgreement, b.Adjustments[0].Label)
	s.Equal(5, b.Adjustments[0].Delta)
	s.Equal(98, b.FinalScore)
	s.Equal(scoring.TierHigh, b.RiskTier)
}

func (s *EngineSuite) TestMultiSourceNoAgreementBelowThreshold() {
	b, err := s.engine.ScoreMulti(s.ctx, "דוד לוי", []scoring.CandidateRecord{
		{Source: scoring.SourceME, GivenName: "דוד", Surname: "לוי"},
		{Source: scoring.SourceSync, GivenName: "דוד", Surname: "כהן"},
	})
	s.Require().NoError(err)

	// Only one source cleared the agreement threshold, so the aggregate is
	// the best per-source score with a recorded zero-delta adjustment.
	s.Require().Len(b.Adjustments, 1)
	s.Zero(b.Adjustments[0].Delta)
	s.Equal(100, b.FinalScore)
	s.Equal(scoring.SourceME, b.Source)
}

func (s *EngineSuite) TestMultiSourceSkipsEmptyRecords() {
	b, err := s.engine.ScoreMulti(s.ctx, "דוד לוי", []scoring.CandidateRecord{
		{Source: scoring.SourceME},
		{Source: scoring.SourceSync, GivenName: "דוד", Surname: "לוי"},
	})
	s.Require().NoError(err)

	s.Require().Len(b.PerSource, 1)
	s.Equal(scoring.SourceSync, b.PerSource[0].Source)
	// A single source can never trigger the agreement bonus.
	s.Require().Len(b.Adjustments, 1)
	s.Zero(b.Adjustments[0].Delta)
}

func (s *EngineSuite) TestMultiSourceNoUsableData() {
	b, err := s.engine.ScoreMulti(s.ctx, "דוד לוי", nil)
	s.Require().NoError(err)

	s.Zero(b.FinalScore)
	s.Equal(scoring.TierVeryLow, b.RiskTier)
	s.Equal(scoring.NoDataExplanation, b.Explanation)
	s.Empty(b.PerSource)
}

// erroringSource fails every snapshot.
type erroringSource struct{ err error }

func (e erroringSource) Snapshot() (scoring.Config, error) {
	return scoring.Config{}, e.err
}

func TestEngineSurfacesConfigError(t *testing.T) {
	wantErr := errors.New("config file unreadable")
	eng, err := scoring.NewEngine(erroringSource{err: wantErr})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	_, err = eng.ScoreMatch(context.Background(), "דוד לוי", scoring.CandidateRecord{GivenName: "דוד"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("ScoreMatch error = %v, want wrapped %v", err, wantErr)
	}

	_, err = eng.ScoreMulti(context.Background(), "דוד לוי", nil)
	if !errors.Is(err, wantErr) {
		t.Fatalf("ScoreMulti error = %v, want wrapped %v", err, wantErr)
	}
}

func TestNewEngineRequiresConfigSource(t *testing.T) {
	if _, err := scoring.NewEngine(nil); err == nil {
		t.Fatal("expected error for nil config source")
	}
}
