package utils

import "github.com/google/uuid"

// UUIDGenerator produces time-ordered identifiers for sync runs and
// temporary file names.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7, falling back to a random UUIDv4.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// TempName returns a unique name for a partially written copy of base.
func (g *UUIDGenerator) TempName(base string) string {
	return base + "." + g.Generate() + ".tmp"
}
