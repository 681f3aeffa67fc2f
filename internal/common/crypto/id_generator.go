package crypto

import "github.com/google/uuid"

// IDGenerator produces opaque unique identifiers for reset tokens (jti).
// Row identities come from the database, not from here.
type IDGenerator interface {
	NewID() (string, error)
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	return uuid.NewString(), nil
}
