package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"taxrecon/internal/domain"
	"taxrecon/internal/service"
)

// MockReconService is a mock implementation of service.ReconService.
type MockReconService struct {
	mock.Mock
}

func (m *MockReconService) Reconcile(ctx context.Context, input service.ReconcileInput) (*domain.Report, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}
