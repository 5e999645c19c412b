package provider

import (
	"sort"
	"strings"
)

const maxSuggestedDoctors = 3

// specialtyRule maps free-text keywords onto a specialty. Rules are kept as
// an ordered list so new specialties slot in without restructuring the
// inference.
type specialtyRule struct {
	keywords  []string
	specialty string
}

// Symptom-text rules, checked in order; first match wins.
var symptomSpecialtyRules = []specialtyRule{
	{keywords: []string{"chest", "heart"}, specialty: "Cardiology"},
	{keywords: []string{"head", "neurological"}, specialty: "Neurology"},
	{keywords: []string{"diabetes", "glucose"}, specialty: "Endocrinology"},
}

// Known-condition rules, checked after the symptom rules. A match here
// reassigns the inferred specialty unconditionally.
var conditionSpecialtyRules = []specialtyRule{
	{keywords: []string{"hypertension", "heart"}, specialty: "Cardiology"},
	{keywords: []string{"diabetes"}, specialty: "Endocrinology"},
}

func matchRules(rules []specialtyRule, text string) (string, bool) {
	t := strings.ToLower(text)
	if t == "" {
		return "", false
	}
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(t, kw) {
				return r.specialty, true
			}
		}
	}
	return "", false
}

// InferSpecialty derives a specialty from symptom text and a known condition
// label. The condition check runs second and overrides the symptom match.
func InferSpecialty(symptoms, condition string) string {
	specialty, _ := matchRules(symptomSpecialtyRules, symptoms)
	if s, ok := matchRules(conditionSpecialtyRules, condition); ok {
		specialty = s
	}
	return specialty
}

// Recommender suggests doctors and hospitals from a directory.
type Recommender struct {
	dir      *Directory
	distance DistanceFunc
}

// NewRecommender wires a recommender over the directory. A nil distance
// function defaults to Haversine.
func NewRecommender(dir *Directory, distance DistanceFunc) *Recommender {
	if distance == nil {
		distance = Haversine
	}
	return &Recommender{dir: dir, distance: distance}
}

// RecommendDoctors returns up to three doctors for the given symptom text
// and condition label. When emergency is set the specialty inference is
// skipped: emergency-medicine doctors are preferred, then doctors with
// emergency availability. Otherwise candidates are filtered by the inferred
// specialty, falling back to online-available doctors when nothing matches.
// Results are sorted by rating descending; ties keep directory order.
func (r *Recommender) RecommendDoctors(symptoms, condition string, emergency bool) []Doctor {
	var candidates []Doctor

	if emergency {
		candidates = r.doctorsBySpecialtyExact("Emergency Medicine")
		if len(candidates) == 0 {
			candidates = r.doctorsByAvailability(AvailabilityEmergency)
		}
	} else {
		if specialty := InferSpecialty(symptoms, condition); specialty != "" {
			candidates = r.doctorsBySpecialtyExact(specialty)
		}
		if len(candidates) == 0 {
			candidates = r.doctorsByAvailability(AvailabilityOnline)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Rating > candidates[j].Rating
	})
	if len(candidates) > maxSuggestedDoctors {
		candidates = candidates[:maxSuggestedDoctors]
	}
	return candidates
}

// FindNearbyHospitals returns hospitals sorted by ascending distance from
// loc. With emergencyOnly set, hospitals without an emergency department are
// excluded. Distance ties keep directory order.
func (r *Recommender) FindNearbyHospitals(loc Location, emergencyOnly bool) []HospitalDistance {
	var out []HospitalDistance
	for _, h := range r.dir.hospitals {
		if emergencyOnly && !h.HasEmergency {
			continue
		}
		out = append(out, HospitalDistance{
			Hospital:   h,
			DistanceKM: r.distance(loc, h.Location),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKM < out[j].DistanceKM
	})
	return out
}

func (r *Recommender) doctorsBySpecialtyExact(specialty string) []Doctor {
	var out []Doctor
	for _, d := range r.dir.doctors {
		if strings.EqualFold(d.Specialty, specialty) {
			out = append(out, d)
		}
	}
	return out
}

func (r *Recommender) doctorsByAvailability(mode AvailabilityMode) []Doctor {
	var out []Doctor
	for _, d := range r.dir.doctors {
		if d.Availability == mode {
			out = append(out, d)
		}
	}
	return out
}
