package assessment

import (
	"time"

	"github.com/google/uuid"

	"github.com/triage/triage/internal/domain/provider"
)

// Severity tags a triggered risk factor. The set is closed; new members
// require touching every switch over it.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityModerate Severity = "moderate"
	SeverityLow      Severity = "low"
)

// RiskLevel is the three-level classification derived from the score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Urgency labels how soon the patient should act.
type Urgency string

const (
	UrgencyRoutine   Urgency = "routine"
	UrgencySoon      Urgency = "soon"
	UrgencyImmediate Urgency = "immediate"
)

// PatientSnapshot is one point-in-time bundle of vitals, symptoms and
// lifestyle data. Every field is optional: nil means "not assessed for this
// factor", never zero or false. The scorer treats absent fields as
// contributing zero score.
type PatientSnapshot struct {
	Age                  *int     `json:"age,omitempty"`
	BloodPressure        *string  `json:"blood_pressure,omitempty"` // "systolic/diastolic"
	HeartRate            *float64 `json:"heart_rate,omitempty"`     // beats/minute
	Temperature          *float64 `json:"temperature,omitempty"`    // °C
	Symptoms             *string  `json:"symptoms,omitempty"`
	MedicationTaken      *bool    `json:"medication_taken,omitempty"`
	MedicationCompliance *float64 `json:"medication_compliance,omitempty"` // ratio in [0,1]
	Smoked               *bool    `json:"smoked,omitempty"`
	ExerciseDuration     *float64 `json:"exercise_duration,omitempty"` // minutes
	WaterIntake          *float64 `json:"water_intake,omitempty"`      // glasses
	Condition            *string  `json:"condition,omitempty"`         // diagnosis label
}

// Factor names, shared between the scorer and the recommendation rules.
const (
	FactorBloodPressure        = "Blood Pressure"
	FactorHeartRate            = "Heart Rate"
	FactorTemperature          = "Temperature"
	FactorSymptoms             = "Symptoms"
	FactorMedicationCompliance = "Medication Compliance"
	FactorSmoking              = "Smoking"
	FactorInactivity           = "Physical Inactivity"
	FactorAge                  = "Age"
)

// RiskFactor is the output of a single triggered rule within a scoring pass.
type RiskFactor struct {
	Name          string   `json:"name"`
	ObservedValue string   `json:"observed_value"`
	Severity      Severity `json:"severity"`
	Description   string   `json:"description"`
}

// RiskAssessment is the scorer's result. Factors keep rule-evaluation order
// (vitals, symptoms, compliance, lifestyle, age), which is also the display
// priority for consumers.
type RiskAssessment struct {
	Score   int          `json:"score"` // 0–100
	Tier    RiskLevel    `json:"tier"`
	Urgency Urgency      `json:"urgency"`
	Factors []RiskFactor `json:"factors"`
}

// HasSeverity reports whether any factor carries the given severity.
func (a RiskAssessment) HasSeverity(s Severity) bool {
	for _, f := range a.Factors {
		if f.Severity == s {
			return true
		}
	}
	return false
}

// Assessment is the final immutable record assembled by the service. Apart
// from ID and AssessedAt it is a pure function of the snapshot, the location
// and the directory contents.
type Assessment struct {
	ID                 uuid.UUID                   `json:"id"`
	RiskLevel          RiskLevel                   `json:"risk_level"`
	RiskScore          int                         `json:"risk_score"`
	Urgency            Urgency                     `json:"urgency"`
	Factors            []RiskFactor                `json:"factors"`
	Insights           []string                    `json:"insights"`
	Recommendations    []string                    `json:"recommendations"`
	NeedsDoctor        bool                        `json:"needs_doctor"`
	SuggestedDoctors   []provider.Doctor           `json:"suggested_doctors"`
	SuggestedHospitals []provider.HospitalDistance `json:"suggested_hospitals"`
	AssessedAt         time.Time                   `json:"assessed_at"`
}
