package assessment

import (
	"fmt"
	"strconv"
	"strings"
)

const maxScore = 100

// Default symptom keyword lists. Matching is case-insensitive substring
// search over the free-text symptoms field, the same family of check the
// triage classifiers in the wild use.
var (
	defaultCriticalSymptoms = []string{
		"chest pain",
		"difficulty breathing",
		"shortness of breath",
		"loss of consciousness",
		"unconscious",
		"stroke",
		"severe bleeding",
		"choking",
		"severe allergic reaction",
		"seizure",
	}

	defaultWarningSymptoms = []string{
		"persistent fever",
		"high fever",
		"chest discomfort",
		"irregular heartbeat",
		"palpitations",
		"dizziness",
		"confusion",
		"persistent headache",
		"blood in urine",
		"blood in stool",
		"fainting",
		"severe abdominal pain",
	}
)

// Scorer converts a patient snapshot into a risk assessment by running a
// fixed, additive rule set. It holds only immutable keyword lists, so one
// Scorer is safe for concurrent use.
type Scorer struct {
	criticalSymptoms []string
	warningSymptoms  []string
}

// NewScorer returns a scorer with the default symptom keyword lists.
func NewScorer() *Scorer {
	return &Scorer{
		criticalSymptoms: defaultCriticalSymptoms,
		warningSymptoms:  defaultWarningSymptoms,
	}
}

// NewScorerWithSymptoms returns a scorer with caller-supplied keyword lists.
func NewScorerWithSymptoms(critical, warning []string) *Scorer {
	return &Scorer{criticalSymptoms: critical, warningSymptoms: warning}
}

// Score runs every rule over the snapshot and derives the tier and urgency
// from the capped total. The snapshot is never mutated. Absent fields skip
// their rules; a present but malformed field returns an *InputError.
//
// Rule order is fixed: blood pressure, heart rate, temperature, symptoms,
// medication compliance, smoking, inactivity, age. The factors slice keeps
// that order.
func (s *Scorer) Score(snap PatientSnapshot) (RiskAssessment, error) {
	total := 0
	var factors []RiskFactor

	add := func(points int, f *RiskFactor) {
		total += points
		if f != nil {
			factors = append(factors, *f)
		}
	}

	points, factor, err := scoreBloodPressure(snap.BloodPressure)
	if err != nil {
		return RiskAssessment{}, err
	}
	add(points, factor)

	points, factor, err = scoreHeartRate(snap.HeartRate)
	if err != nil {
		return RiskAssessment{}, err
	}
	add(points, factor)

	add(scoreTemperature(snap.Temperature))
	add(s.scoreSymptoms(snap.Symptoms))

	points, factor, err = scoreCompliance(snap.MedicationCompliance)
	if err != nil {
		return RiskAssessment{}, err
	}
	add(points, factor)

	add(scoreSmoking(snap.Smoked))

	points, factor, err = scoreInactivity(snap.ExerciseDuration)
	if err != nil {
		return RiskAssessment{}, err
	}
	add(points, factor)

	points, factor, err = scoreAge(snap.Age)
	if err != nil {
		return RiskAssessment{}, err
	}
	add(points, factor)

	if err := validateWaterIntake(snap.WaterIntake); err != nil {
		return RiskAssessment{}, err
	}

	if total > maxScore {
		total = maxScore
	}

	tier, urgency := tierForScore(total)
	return RiskAssessment{
		Score:   total,
		Tier:    tier,
		Urgency: urgency,
		Factors: factors,
	}, nil
}

// tierForScore maps a capped score onto the discrete tier and urgency.
func tierForScore(score int) (RiskLevel, Urgency) {
	switch {
	case score >= 70:
		return RiskHigh, UrgencyImmediate
	case score >= 40:
		return RiskMedium, UrgencySoon
	default:
		return RiskLow, UrgencyRoutine
	}
}

// parseBloodPressure splits a "systolic/diastolic" reading into its parts.
func parseBloodPressure(raw string) (systolic, diastolic int, err error) {
	parts := strings.Split(raw, "/")
	if len(parts) != 2 {
		return 0, 0, inputErr("blood_pressure", "expected systolic/diastolic, got %q", raw)
	}
	systolic, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || systolic <= 0 {
		return 0, 0, inputErr("blood_pressure", "systolic must be a positive integer, got %q", parts[0])
	}
	diastolic, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || diastolic <= 0 {
		return 0, 0, inputErr("blood_pressure", "diastolic must be a positive integer, got %q", parts[1])
	}
	return systolic, diastolic, nil
}

// Blood pressure contributes up to 40 points. Exactly one branch fires,
// first match in the order listed; a reading inside the normal band adds
// nothing.
func scoreBloodPressure(raw *string) (int, *RiskFactor, error) {
	if raw == nil {
		return 0, nil, nil
	}
	systolic, diastolic, err := parseBloodPressure(*raw)
	if err != nil {
		return 0, nil, err
	}

	observed := fmt.Sprintf("%d/%d mmHg", systolic, diastolic)
	switch {
	case systolic >= 180 || diastolic >= 120:
		return 40, &RiskFactor{
			Name:          FactorBloodPressure,
			ObservedValue: observed,
			Severity:      SeverityCritical,
			Description:   "Hypertensive crisis: blood pressure is dangerously elevated and needs emergency care.",
		}, nil
	case systolic >= 160 || diastolic >= 100:
		return 30, &RiskFactor{
			Name:          FactorBloodPressure,
			ObservedValue: observed,
			Severity:      SeverityHigh,
			Description:   "Stage 2 hypertension: blood pressure is well above the target range.",
		}, nil
	case systolic >= 140 || diastolic >= 90:
		return 15, &RiskFactor{
			Name:          FactorBloodPressure,
			ObservedValue: observed,
			Severity:      SeverityModerate,
			Description:   "Stage 1 hypertension: blood pressure is above the target range.",
		}, nil
	case systolic < 90 || diastolic < 60:
		return 20, &RiskFactor{
			Name:          FactorBloodPressure,
			ObservedValue: observed,
			Severity:      SeverityLow,
			Description:   "Hypotension: blood pressure is below the normal range.",
		}, nil
	}
	return 0, nil, nil
}

// Heart rate contributes up to 25 points.
func scoreHeartRate(bpm *float64) (int, *RiskFactor, error) {
	if bpm == nil {
		return 0, nil, nil
	}
	if *bpm <= 0 {
		return 0, nil, inputErr("heart_rate", "must be a positive number, got %g", *bpm)
	}

	observed := fmt.Sprintf("%g bpm", *bpm)
	switch {
	case *bpm > 120 || *bpm < 40:
		return 25, &RiskFactor{
			Name:          FactorHeartRate,
			ObservedValue: observed,
			Severity:      SeverityHigh,
			Description:   "Heart rate is far outside the normal resting range.",
		}, nil
	case *bpm > 100 || *bpm < 50:
		return 10, &RiskFactor{
			Name:          FactorHeartRate,
			ObservedValue: observed,
			Severity:      SeverityModerate,
			Description:   "Heart rate is outside the normal resting range.",
		}, nil
	}
	return 0, nil, nil
}

// Temperature contributes up to 25 points. Branches are mutually exclusive,
// evaluated high fever first, then moderate fever, then hypothermia.
func scoreTemperature(celsius *float64) (int, *RiskFactor) {
	if celsius == nil {
		return 0, nil
	}

	observed := fmt.Sprintf("%.1f°C", *celsius)
	switch {
	case *celsius >= 39.5:
		return 25, &RiskFactor{
			Name:          FactorTemperature,
			ObservedValue: observed,
			Severity:      SeverityHigh,
			Description:   "Very high fever.",
		}
	case *celsius >= 38.5:
		return 15, &RiskFactor{
			Name:          FactorTemperature,
			ObservedValue: observed,
			Severity:      SeverityModerate,
			Description:   "Fever.",
		}
	case *celsius < 35:
		return 20, &RiskFactor{
			Name:          FactorTemperature,
			ObservedValue: observed,
			Severity:      SeverityLow,
			Description:   "Hypothermia: body temperature is below the normal range.",
		}
	}
	return 0, nil
}

// Symptom text contributes up to 40 points. The critical list short-circuits
// the warning list, so at most one symptom factor is produced.
func (s *Scorer) scoreSymptoms(text *string) (int, *RiskFactor) {
	if text == nil {
		return 0, nil
	}
	lowered := strings.ToLower(*text)
	if lowered == "" {
		return 0, nil
	}

	if match := firstMatch(lowered, s.criticalSymptoms); match != "" {
		return 40, &RiskFactor{
			Name:          FactorSymptoms,
			ObservedValue: match,
			Severity:      SeverityCritical,
			Description:   fmt.Sprintf("Reported symptom %q demands immediate medical attention.", match),
		}
	}
	if match := firstMatch(lowered, s.warningSymptoms); match != "" {
		return 25, &RiskFactor{
			Name:          FactorSymptoms,
			ObservedValue: match,
			Severity:      SeverityHigh,
			Description:   fmt.Sprintf("Reported symptom %q should be evaluated by a doctor.", match),
		}
	}
	return 0, nil
}

func firstMatch(loweredText string, keywords []string) string {
	for _, kw := range keywords {
		if strings.Contains(loweredText, kw) {
			return kw
		}
	}
	return ""
}

// Medication compliance contributes up to 20 points, only when the ratio is
// supplied.
func scoreCompliance(ratio *float64) (int, *RiskFactor, error) {
	if ratio == nil {
		return 0, nil, nil
	}
	if *ratio < 0 || *ratio > 1 {
		return 0, nil, inputErr("medication_compliance", "must be within [0,1], got %g", *ratio)
	}

	observed := fmt.Sprintf("%.0f%%", *ratio*100)
	switch {
	case *ratio < 0.5:
		return 20, &RiskFactor{
			Name:          FactorMedicationCompliance,
			ObservedValue: observed,
			Severity:      SeverityHigh,
			Description:   "Less than half of prescribed medication doses are being taken.",
		}, nil
	case *ratio < 0.7:
		return 10, &RiskFactor{
			Name:          FactorMedicationCompliance,
			ObservedValue: observed,
			Severity:      SeverityModerate,
			Description:   "Medication doses are being missed regularly.",
		}, nil
	}
	return 0, nil, nil
}

func scoreSmoking(smoked *bool) (int, *RiskFactor) {
	if smoked == nil || !*smoked {
		return 0, nil
	}
	return 10, &RiskFactor{
		Name:          FactorSmoking,
		ObservedValue: "smoked today",
		Severity:      SeverityModerate,
		Description:   "Smoking raises cardiovascular and respiratory risk.",
	}
}

// Zero exercise contributes 5 points, but only when the field is present and
// equals zero. An absent field never fires this rule.
func scoreInactivity(minutes *float64) (int, *RiskFactor, error) {
	if minutes == nil {
		return 0, nil, nil
	}
	if *minutes < 0 {
		return 0, nil, inputErr("exercise_duration", "must be non-negative, got %g", *minutes)
	}
	if *minutes != 0 {
		return 0, nil, nil
	}
	return 5, &RiskFactor{
		Name:          FactorInactivity,
		ObservedValue: "0 minutes",
		Severity:      SeverityLow,
		Description:   "No physical activity recorded today.",
	}, nil
}

// Age contributes up to 10 points.
func scoreAge(years *int) (int, *RiskFactor, error) {
	if years == nil {
		return 0, nil, nil
	}
	if *years < 0 {
		return 0, nil, inputErr("age", "must be non-negative, got %d", *years)
	}

	observed := fmt.Sprintf("%d years", *years)
	switch {
	case *years >= 65:
		return 10, &RiskFactor{
			Name:          FactorAge,
			ObservedValue: observed,
			Severity:      SeverityModerate,
			Description:   "Age 65 or above increases baseline health risk.",
		}, nil
	case *years >= 50:
		return 5, &RiskFactor{
			Name:          FactorAge,
			ObservedValue: observed,
			Severity:      SeverityLow,
			Description:   "Age 50 or above slightly increases baseline health risk.",
		}, nil
	}
	return 0, nil, nil
}

func validateWaterIntake(glasses *float64) error {
	if glasses != nil && *glasses < 0 {
		return inputErr("water_intake", "must be non-negative, got %g", *glasses)
	}
	return nil
}
