package mocks

import (
	"context"

	"github.com/nvallens/studydeck-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

// Generator is a mock implementation of generation.Generator.
type Generator struct {
	mock.Mock
}

// GenerateCards mocks the Generator.GenerateCards method.
func (m *Generator) GenerateCards(
	ctx context.Context,
	contextText string,
	desiredCount int,
) ([]domain.CardCandidate, error) {
	args := m.Called(ctx, contextText, desiredCount)
	if cards := args.Get(0); cards != nil {
		return cards.([]domain.CardCandidate), args.Error(1)
	}
	return nil, args.Error(1)
}
