package assessment

// Fixed recommendation texts, grouped by tier.
var (
	highRecommendations = []string{
		"Seek immediate medical care.",
		"Go to the nearest emergency room or call emergency services.",
		"Do not drive yourself — have someone take you or call an ambulance.",
	}
	highCriticalExtra = "Alert your emergency contacts about your condition."

	mediumRecommendations = []string{
		"Schedule a doctor's appointment within the next few days.",
		"Monitor your symptoms closely and seek care if they worsen.",
		"Keep a log of any changes in your condition.",
	}
	mediumBPAdvice = []string{
		"Reduce salt intake and avoid processed foods.",
		"Measure your blood pressure twice daily and record the readings.",
	}
	mediumComplianceAdvice = []string{
		"Set reminders or alarms for every medication dose.",
		"Use a pill organizer to keep track of what you've taken.",
	}

	lowRecContinuePlan  = "Continue your current health plan."
	lowRecMedication    = "Maintain your medication schedule."
	lowRecExercise      = "Add some light exercise, such as a daily 30-minute walk."
	lowRecCheckup       = "Book a routine checkup if you haven't had one this year."
	lowRecBPCheck       = "Check your blood pressure at least once a week."
	lowRecHydration     = "Increase your water intake — aim for at least 8 glasses a day."
	minimumWaterGlasses = 8.0
)

// GenerateRecommendations produces the ordered, never-empty action list for
// a scored assessment. The output depends only on the tier, the factor set
// and a few lifestyle fields of the snapshot.
func GenerateRecommendations(snap PatientSnapshot, ra RiskAssessment) []string {
	switch ra.Tier {
	case RiskHigh:
		recs := append([]string(nil), highRecommendations...)
		if ra.HasSeverity(SeverityCritical) {
			recs = append(recs, highCriticalExtra)
		}
		return recs

	case RiskMedium:
		recs := append([]string(nil), mediumRecommendations...)
		// Factor-specific advice blocks, concatenated in factor order.
		for _, f := range ra.Factors {
			switch {
			case f.Name == FactorBloodPressure && f.Severity == SeverityModerate:
				recs = append(recs, mediumBPAdvice...)
			case f.Name == FactorMedicationCompliance:
				recs = append(recs, mediumComplianceAdvice...)
			}
		}
		return recs

	default: // RiskLow
		recs := []string{lowRecContinuePlan, lowRecMedication}
		if snap.ExerciseDuration == nil || *snap.ExerciseDuration == 0 {
			recs = append(recs, lowRecExercise)
		}
		recs = append(recs, lowRecCheckup, lowRecBPCheck)
		if snap.WaterIntake != nil && *snap.WaterIntake < minimumWaterGlasses {
			recs = append(recs, lowRecHydration)
		}
		return recs
	}
}
