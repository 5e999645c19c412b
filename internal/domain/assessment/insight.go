package assessment

// Fixed insight texts.
const (
	insightMedicationAffirmation = "You're taking your medication as prescribed — keep it up."
	insightBPAffirmation         = "Your blood pressure is in a healthy range."
	insightExerciseAffirmation   = "You're staying physically active, which protects your long-term health."
	insightNonSmokerAffirmation  = "Staying smoke-free is one of the best things you can do for your health."
	insightWithinRanges          = "Your readings are within acceptable ranges."
	insightContinueMonitoring    = "Continue monitoring your health regularly."
)

// GenerateInsights turns a scored assessment into a never-empty, ordered
// list of insight statements. Critical and high factors surface their
// descriptions in factor order. A LOW-tier result additionally earns an
// affirmation per confirmed good habit, in a fixed order: medication, blood
// pressure, exercise, non-smoking.
func GenerateInsights(snap PatientSnapshot, ra RiskAssessment) []string {
	var insights []string

	for _, f := range ra.Factors {
		if f.Severity == SeverityCritical || f.Severity == SeverityHigh {
			insights = append(insights, f.Description)
		}
	}

	if ra.Tier == RiskLow {
		if snap.MedicationTaken != nil && *snap.MedicationTaken {
			insights = append(insights, insightMedicationAffirmation)
		}
		if snap.BloodPressure != nil {
			if systolic, _, err := parseBloodPressure(*snap.BloodPressure); err == nil && systolic < 120 {
				insights = append(insights, insightBPAffirmation)
			}
		}
		if snap.ExerciseDuration != nil && *snap.ExerciseDuration > 0 {
			insights = append(insights, insightExerciseAffirmation)
		}
		if snap.Smoked != nil && !*snap.Smoked {
			insights = append(insights, insightNonSmokerAffirmation)
		}
	}

	if len(insights) == 0 {
		insights = []string{insightWithinRanges, insightContinueMonitoring}
	}
	return insights
}
