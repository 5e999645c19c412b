package provider

import "context"

// Source supplies the directory contents exactly once, at process start.
// Nothing in the engine writes back through a Source.
type Source interface {
	Load(ctx context.Context) ([]Hospital, []Doctor, error)
}

// LoadDirectory reads a Source and freezes the result into a Directory.
func LoadDirectory(ctx context.Context, src Source) (*Directory, error) {
	hospitals, doctors, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewDirectory(hospitals, doctors), nil
}
