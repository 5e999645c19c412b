package assessment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/triage/triage/internal/domain/provider"
)

// Hospital suggestion counts per tier.
const (
	highTierHospitals   = 3
	mediumTierHospitals = 2
)

// ProviderRecommender is the slice of the provider package the orchestrator
// depends on.
type ProviderRecommender interface {
	RecommendDoctors(symptoms, condition string, emergency bool) []provider.Doctor
	FindNearbyHospitals(loc provider.Location, emergencyOnly bool) []provider.HospitalDistance
}

// Service composes the scorer, the generators and the provider recommender
// into one assessment entry point. It is stateless between calls and safe
// for concurrent use.
type Service struct {
	scorer    *Scorer
	providers ProviderRecommender
	logger    zerolog.Logger
}

func NewService(scorer *Scorer, providers ProviderRecommender, logger zerolog.Logger) *Service {
	return &Service{scorer: scorer, providers: providers, logger: logger}
}

// Analyze runs the full pipeline: score, insights, recommendations, provider
// suggestions, assembly. An *InputError from the scorer propagates unchanged;
// there is no partial result. Hospital suggestions require a location — a
// nil loc yields none regardless of tier.
func (s *Service) Analyze(ctx context.Context, snap PatientSnapshot, loc *provider.Location) (*Assessment, error) {
	ra, err := s.scorer.Score(snap)
	if err != nil {
		return nil, err
	}

	insights := GenerateInsights(snap, ra)
	recommendations := GenerateRecommendations(snap, ra)
	needsDoctor := ra.Tier == RiskMedium || ra.Tier == RiskHigh

	var hospitals []provider.HospitalDistance
	if loc != nil {
		switch ra.Tier {
		case RiskHigh:
			hospitals = truncateHospitals(s.providers.FindNearbyHospitals(*loc, true), highTierHospitals)
		case RiskMedium:
			hospitals = truncateHospitals(s.providers.FindNearbyHospitals(*loc, false), mediumTierHospitals)
		}
	}

	var doctors []provider.Doctor
	if needsDoctor {
		doctors = s.providers.RecommendDoctors(
			stringValue(snap.Symptoms),
			stringValue(snap.Condition),
			ra.Tier == RiskHigh,
		)
	}

	a := &Assessment{
		ID:                 uuid.New(),
		RiskLevel:          ra.Tier,
		RiskScore:          ra.Score,
		Urgency:            ra.Urgency,
		Factors:            ra.Factors,
		Insights:           insights,
		Recommendations:    recommendations,
		NeedsDoctor:        needsDoctor,
		SuggestedDoctors:   doctors,
		SuggestedHospitals: hospitals,
		AssessedAt:         time.Now().UTC(),
	}

	s.logger.Info().
		Str("assessment_id", a.ID.String()).
		Int("score", a.RiskScore).
		Str("tier", string(a.RiskLevel)).
		Int("factors", len(a.Factors)).
		Bool("needs_doctor", a.NeedsDoctor).
		Msg("assessment completed")

	return a, nil
}

func truncateHospitals(hs []provider.HospitalDistance, n int) []provider.HospitalDistance {
	if len(hs) > n {
		return hs[:n]
	}
	return hs
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
