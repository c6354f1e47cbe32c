package crypto

import "github.com/google/uuid"

type IDGenerator interface {
	NewID() (string, error)
	Valid(id string) bool
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (g *UUIDGenerator) Valid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
