package mocks

import (
	"context"
	"time"

	"github.com/kinoteka/cinema-reservation-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockHoldRepo struct {
	mock.Mock
	domain.HoldRepository
}

func (m *MockHoldRepo) TryAcquire(ctx context.Context, seatID, screeningID, userID int, now time.Time, ttl time.Duration) (*domain.Hold, error) {
	args := m.Called(ctx, seatID, screeningID, userID, now, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hold), args.Error(1)
}

func (m *MockHoldRepo) Release(ctx context.Context, seatID, screeningID, userID int) error {
	args := m.Called(ctx, seatID, screeningID, userID)
	return args.Error(0)
}

func (m *MockHoldRepo) Extend(ctx context.Context, holdIDs []int, newExpiry time.Time) error {
	args := m.Called(ctx, holdIDs, newExpiry)
	return args.Error(0)
}

func (m *MockHoldRepo) FindActiveByUser(ctx context.Context, userID int, now time.Time) ([]domain.Hold, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Hold), args.Error(1)
}

func (m *MockHoldRepo) FindActiveByScreening(ctx context.Context, screeningID int, now time.Time) ([]domain.Hold, error) {
	args := m.Called(ctx, screeningID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Hold), args.Error(1)
}

func (m *MockHoldRepo) FindActiveByUserAndSeats(ctx context.Context, userID int, seatIDs []int, now time.Time) ([]domain.Hold, error) {
	args := m.Called(ctx, userID, seatIDs, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Hold), args.Error(1)
}

func (m *MockHoldRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
