package assessment

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/triage/triage/internal/domain/provider"
)

// ── Fake provider recommender ──

type fakeProviders struct {
	doctors   []provider.Doctor
	hospitals []provider.HospitalDistance

	doctorCalls   int
	hospitalCalls int
	lastEmergency bool
	lastEmgOnly   bool
}

func (f *fakeProviders) RecommendDoctors(symptoms, condition string, emergency bool) []provider.Doctor {
	f.doctorCalls++
	f.lastEmergency = emergency
	return f.doctors
}

func (f *fakeProviders) FindNearbyHospitals(loc provider.Location, emergencyOnly bool) []provider.HospitalDistance {
	f.hospitalCalls++
	f.lastEmgOnly = emergencyOnly
	return f.hospitals
}

func newTestService(f *fakeProviders) *Service {
	logger := zerolog.New(os.Stderr)
	return NewService(NewScorer(), f, logger)
}

func manyHospitals(n int) []provider.HospitalDistance {
	out := make([]provider.HospitalDistance, n)
	for i := range out {
		out[i] = provider.HospitalDistance{
			Hospital:   provider.Hospital{ID: string(rune('a' + i))},
			DistanceKM: float64(i),
		}
	}
	return out
}

// ── Analyze ──

func TestAnalyze_EmptySnapshot(t *testing.T) {
	f := &fakeProviders{}
	svc := newTestService(f)

	a, err := svc.Analyze(context.Background(), PatientSnapshot{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.RiskScore != 0 || a.RiskLevel != RiskLow || a.Urgency != UrgencyRoutine {
		t.Errorf("got %d/%s/%s, want 0/LOW/routine", a.RiskScore, a.RiskLevel, a.Urgency)
	}
	if a.NeedsDoctor {
		t.Error("LOW tier must not need a doctor")
	}
	if f.doctorCalls != 0 || f.hospitalCalls != 0 {
		t.Error("LOW tier must not consult the provider recommender")
	}
	if len(a.Insights) == 0 || len(a.Recommendations) == 0 {
		t.Error("insights and recommendations must never be empty")
	}
	if a.ID == uuid.Nil || a.AssessedAt.IsZero() {
		t.Error("expected ID and timestamp to be populated")
	}
}

func TestAnalyze_HighTierSuggestsEmergencyProviders(t *testing.T) {
	f := &fakeProviders{
		doctors:   []provider.Doctor{{ID: "d1", Specialty: "Emergency Medicine"}},
		hospitals: manyHospitals(5),
	}
	svc := newTestService(f)

	loc := &provider.Location{Lat: 12.9, Lng: 77.6}
	a, err := svc.Analyze(context.Background(), PatientSnapshot{
		Age:           iptr(72),
		BloodPressure: sptr("165/105"),
		Symptoms:      sptr("chest pain"),
	}, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.RiskLevel != RiskHigh {
		t.Fatalf("tier = %s, want HIGH", a.RiskLevel)
	}
	if !a.NeedsDoctor {
		t.Error("HIGH tier must need a doctor")
	}
	if !f.lastEmergency {
		t.Error("HIGH tier must request emergency doctors")
	}
	if !f.lastEmgOnly {
		t.Error("HIGH tier must request emergency-capable hospitals")
	}
	if len(a.SuggestedHospitals) != highTierHospitals {
		t.Errorf("expected %d hospitals, got %d", highTierHospitals, len(a.SuggestedHospitals))
	}
	if len(a.SuggestedDoctors) != 1 {
		t.Errorf("expected 1 doctor, got %d", len(a.SuggestedDoctors))
	}
}

func TestAnalyze_MediumTierHospitalCount(t *testing.T) {
	f := &fakeProviders{hospitals: manyHospitals(4)}
	svc := newTestService(f)

	loc := &provider.Location{Lat: 12.9, Lng: 77.6}
	a, err := svc.Analyze(context.Background(), PatientSnapshot{
		Age:                  iptr(55),
		BloodPressure:        sptr("145/92"),
		Symptoms:             sptr("occasional dizziness"),
		MedicationCompliance: fptr(0.6),
		ExerciseDuration:     fptr(0),
	}, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.RiskLevel != RiskMedium {
		t.Fatalf("tier = %s, want MEDIUM", a.RiskLevel)
	}
	if f.lastEmgOnly {
		t.Error("MEDIUM tier must not restrict hospitals to emergency-capable")
	}
	if len(a.SuggestedHospitals) != mediumTierHospitals {
		t.Errorf("expected %d hospitals, got %d", mediumTierHospitals, len(a.SuggestedHospitals))
	}
	if f.lastEmergency {
		t.Error("MEDIUM tier must not request emergency doctors")
	}
}

func TestAnalyze_NilLocationSkipsHospitals(t *testing.T) {
	f := &fakeProviders{hospitals: manyHospitals(3)}
	svc := newTestService(f)

	a, err := svc.Analyze(context.Background(), PatientSnapshot{
		BloodPressure: sptr("185/120"),
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(a.SuggestedHospitals) != 0 {
		t.Errorf("expected no hospitals without a location, got %d", len(a.SuggestedHospitals))
	}
	if f.hospitalCalls != 0 {
		t.Error("hospital lookup must be skipped without a location")
	}
}

func TestAnalyze_InputErrorPropagates(t *testing.T) {
	svc := newTestService(&fakeProviders{})

	a, err := svc.Analyze(context.Background(), PatientSnapshot{
		BloodPressure: sptr("not-a-reading"),
	}, nil)
	if a != nil {
		t.Error("expected nil assessment on input error")
	}

	var inputErr *InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected *InputError, got %T (%v)", err, err)
	}
	if inputErr.Field != "blood_pressure" {
		t.Errorf("field = %s, want blood_pressure", inputErr.Field)
	}
}

func TestAnalyze_DeterministicApartFromIdentity(t *testing.T) {
	f := &fakeProviders{
		doctors:   []provider.Doctor{{ID: "d1"}},
		hospitals: manyHospitals(2),
	}
	svc := newTestService(f)

	snap := PatientSnapshot{
		Age:           iptr(72),
		BloodPressure: sptr("165/105"),
		Symptoms:      sptr("chest pain"),
	}
	loc := &provider.Location{Lat: 1, Lng: 2}

	a1, err := svc.Analyze(context.Background(), snap, loc)
	if err != nil {
		t.Fatal(err)
	}
	a2, err := svc.Analyze(context.Background(), snap, loc)
	if err != nil {
		t.Fatal(err)
	}

	// Strip the nondeterministic fields, everything else must match.
	a1.ID = a2.ID
	a1.AssessedAt = a2.AssessedAt
	if !reflect.DeepEqual(a1, a2) {
		t.Errorf("assessments differ:\n%+v\n%+v", a1, a2)
	}
}

func TestAnalyze_DoesNotMutateSnapshot(t *testing.T) {
	svc := newTestService(&fakeProviders{})

	bp := "165/105"
	symptoms := "chest pain"
	snap := PatientSnapshot{BloodPressure: &bp, Symptoms: &symptoms}

	if _, err := svc.Analyze(context.Background(), snap, nil); err != nil {
		t.Fatal(err)
	}

	if bp != "165/105" || symptoms != "chest pain" {
		t.Error("snapshot fields were mutated")
	}
}
