package provider

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGSource loads the directory from Postgres at startup. The engine treats
// the result as frozen for the process lifetime; it never writes back.
type PGSource struct {
	pool *pgxpool.Pool
}

func NewPGSource(pool *pgxpool.Pool) *PGSource {
	return &PGSource{pool: pool}
}

func (s *PGSource) Load(ctx context.Context) ([]Hospital, []Doctor, error) {
	hospitals, err := s.loadHospitals(ctx)
	if err != nil {
		return nil, nil, err
	}
	doctors, err := s.loadDoctors(ctx)
	if err != nil {
		return nil, nil, err
	}
	return hospitals, doctors, nil
}

func (s *PGSource) loadHospitals(ctx context.Context) ([]Hospital, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, type, lat, lng, address, phone,
		       has_emergency, has_icu, has_ambulance,
		       departments, specialties, rating
		FROM hospital
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query hospitals: %w", err)
	}
	defer rows.Close()

	var out []Hospital
	for rows.Next() {
		var h Hospital
		if err := rows.Scan(
			&h.ID, &h.Name, &h.Type, &h.Location.Lat, &h.Location.Lng,
			&h.Address, &h.Phone,
			&h.HasEmergency, &h.HasICU, &h.HasAmbulance,
			&h.Departments, &h.Specialties, &h.Rating,
		); err != nil {
			return nil, fmt.Errorf("scan hospital: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *PGSource) loadDoctors(ctx context.Context) ([]Doctor, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, specialty, hospital, experience_years,
		       rating, consultation_fee, availability, languages, partner_id
		FROM doctor
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query doctors: %w", err)
	}
	defer rows.Close()

	var out []Doctor
	for rows.Next() {
		var d Doctor
		if err := rows.Scan(
			&d.ID, &d.Name, &d.Specialty, &d.Hospital, &d.ExperienceYears,
			&d.Rating, &d.ConsultationFee, &d.Availability, &d.Languages, &d.PartnerID,
		); err != nil {
			return nil, fmt.Errorf("scan doctor: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
