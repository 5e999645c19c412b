package provider

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed seed.json
var seedJSON []byte

type seedFile struct {
	Hospitals []Hospital `json:"hospitals"`
	Doctors   []Doctor   `json:"doctors"`
}

// StaticSource loads the directory from a JSON document: the file at Path,
// or the embedded seed when Path is empty. This keeps the binary usable with
// zero infrastructure.
type StaticSource struct {
	Path string
}

func (s *StaticSource) Load(_ context.Context) ([]Hospital, []Doctor, error) {
	data := seedJSON
	if s.Path != "" {
		b, err := os.ReadFile(s.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("read provider file: %w", err)
		}
		data = b
	}

	var f seedFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("parse provider data: %w", err)
	}
	if err := validateEntries(f.Hospitals, f.Doctors); err != nil {
		return nil, nil, err
	}
	return f.Hospitals, f.Doctors, nil
}

func validateEntries(hospitals []Hospital, doctors []Doctor) error {
	for _, h := range hospitals {
		if h.ID == "" || h.Name == "" {
			return fmt.Errorf("hospital entry missing id or name: %+v", h)
		}
	}
	for _, d := range doctors {
		if d.ID == "" || d.Name == "" {
			return fmt.Errorf("doctor entry missing id or name: %+v", d)
		}
		if d.Specialty == "" {
			return fmt.Errorf("doctor %s missing specialty", d.ID)
		}
	}
	return nil
}
