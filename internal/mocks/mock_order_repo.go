package mocks

import (
	"context"

	"github.com/kinoteka/cinema-reservation-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepo struct {
	mock.Mock
	domain.OrderRepository
}

func (m *MockOrderRepo) CreateWithTickets(ctx context.Context, order *domain.Order, consumedHoldIDs []int) error {
	args := m.Called(ctx, order, consumedHoldIDs)
	return args.Error(0)
}

func (m *MockOrderRepo) GetWithTickets(ctx context.Context, orderID int) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepo) GetAllByUser(ctx context.Context, userID int) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepo) SoldSeatsByScreening(ctx context.Context, screeningID int) ([]int, error) {
	args := m.Called(ctx, screeningID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}
