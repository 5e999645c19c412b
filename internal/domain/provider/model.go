package provider

// HospitalType classifies a hospital's ownership.
type HospitalType string

const (
	HospitalPublic  HospitalType = "public"
	HospitalPrivate HospitalType = "private"
)

// AvailabilityMode describes how a doctor can be reached.
type AvailabilityMode string

const (
	AvailabilityOnline    AvailabilityMode = "online"
	AvailabilityHospital  AvailabilityMode = "hospital"
	AvailabilityEmergency AvailabilityMode = "emergency"
)

// Location is a WGS84 coordinate pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Hospital is one entry of the static provider directory.
type Hospital struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Type         HospitalType `json:"type"`
	Location     Location     `json:"location"`
	Address      string       `json:"address"`
	Phone        string       `json:"phone"`
	HasEmergency bool         `json:"has_emergency"`
	HasICU       bool         `json:"has_icu"`
	HasAmbulance bool         `json:"has_ambulance"`
	Departments  []string     `json:"departments"`
	Specialties  []string     `json:"specialties"`
	Rating       float64      `json:"rating"`
}

// Doctor is one entry of the static provider directory. Hospital is a weak
// reference by name, not ownership.
type Doctor struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Specialty       string           `json:"specialty"`
	Hospital        string           `json:"hospital"`
	ExperienceYears int              `json:"experience_years"`
	Rating          float64          `json:"rating"`
	ConsultationFee float64          `json:"consultation_fee"`
	Availability    AvailabilityMode `json:"availability"`
	Languages       []string         `json:"languages"`
	PartnerID       *string          `json:"partner_id,omitempty"`
}

// HospitalDistance is a hospital annotated with the distance (km) from the
// location a search was run against.
type HospitalDistance struct {
	Hospital
	DistanceKM float64 `json:"distance_km"`
}
