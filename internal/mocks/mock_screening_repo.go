package mocks

import (
	"context"
	"time"

	"github.com/kinoteka/cinema-reservation-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockScreeningRepo struct {
	mock.Mock
	domain.ScreeningRepository
}

func (m *MockScreeningRepo) GetById(ctx context.Context, id int) (*domain.Screening, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Screening), args.Error(1)
}

func (m *MockScreeningRepo) GetAllForList(ctx context.Context) ([]domain.ScreeningListItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScreeningListItem), args.Error(1)
}

func (m *MockScreeningRepo) Create(ctx context.Context, screening *domain.Screening) error {
	args := m.Called(ctx, screening)
	return args.Error(0)
}

func (m *MockScreeningRepo) Update(ctx context.Context, screening *domain.Screening) error {
	args := m.Called(ctx, screening)
	return args.Error(0)
}

func (m *MockScreeningRepo) ExistsOverlapping(ctx context.Context, roomID int, windowStart, windowEnd time.Time, excludeID int) (bool, error) {
	args := m.Called(ctx, roomID, windowStart, windowEnd, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockScreeningRepo) FindOverlapping(ctx context.Context, roomID int, windowStart, windowEnd time.Time, excludeID int) ([]domain.Collision, error) {
	args := m.Called(ctx, roomID, windowStart, windowEnd, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Collision), args.Error(1)
}
