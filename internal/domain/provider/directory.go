package provider

import "strings"

// Directory is the read-only provider catalog. It is seeded once at process
// start and never mutated afterwards, so concurrent reads need no locking.
// All query methods return fresh slices; callers cannot reach the backing
// arrays.
type Directory struct {
	hospitals []Hospital
	doctors   []Doctor
}

// NewDirectory builds a directory from the given entries. The input slices
// are copied; insertion order is preserved and is the tie-break order for
// every rating-sorted result downstream.
func NewDirectory(hospitals []Hospital, doctors []Doctor) *Directory {
	d := &Directory{
		hospitals: make([]Hospital, len(hospitals)),
		doctors:   make([]Doctor, len(doctors)),
	}
	copy(d.hospitals, hospitals)
	copy(d.doctors, doctors)
	return d
}

// Hospitals returns all hospitals in directory order.
func (d *Directory) Hospitals() []Hospital {
	out := make([]Hospital, len(d.hospitals))
	copy(out, d.hospitals)
	return out
}

// Doctors returns all doctors in directory order.
func (d *Directory) Doctors() []Doctor {
	out := make([]Doctor, len(d.doctors))
	copy(out, d.doctors)
	return out
}

// PartnerDoctors returns the doctors enrolled with the given partner channel.
func (d *Directory) PartnerDoctors(partnerID string) []Doctor {
	var out []Doctor
	for _, doc := range d.doctors {
		if doc.PartnerID != nil && *doc.PartnerID == partnerID {
			out = append(out, doc)
		}
	}
	return out
}

// HospitalsBySpecialty returns hospitals whose specialty or department list
// contains the query, matched case-insensitively as a substring.
func (d *Directory) HospitalsBySpecialty(query string) []Hospital {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []Hospital
	for _, h := range d.hospitals {
		if containsFold(h.Specialties, q) || containsFold(h.Departments, q) {
			out = append(out, h)
		}
	}
	return out
}

// DoctorsBySpecialty returns doctors whose specialty contains the query,
// matched case-insensitively as a substring.
func (d *Directory) DoctorsBySpecialty(query string) []Doctor {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []Doctor
	for _, doc := range d.doctors {
		if strings.Contains(strings.ToLower(doc.Specialty), q) {
			out = append(out, doc)
		}
	}
	return out
}

func containsFold(values []string, loweredQuery string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), loweredQuery) {
			return true
		}
	}
	return false
}
