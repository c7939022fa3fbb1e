package mocks

import (
	"context"
	"time"

	"github.com/cinereserve/cinereserve/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockHoldStore struct {
	mock.Mock
	domain.HoldStore
}

func (m *MockHoldStore) Acquire(
	ctx context.Context,
	showingID int,
	seats []string,
	holderID string,
	ttl time.Duration) ([]domain.SeatHold, error) {

	args := m.Called(ctx, showingID, seats, holderID, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SeatHold), args.Error(1)
}

func (m *MockHoldStore) Release(ctx context.Context, holdIDs []string) error {
	args := m.Called(ctx, holdIDs)
	return args.Error(0)
}

func (m *MockHoldStore) GetByIds(ctx context.Context, holdIDs []string) ([]domain.SeatHold, error) {
	args := m.Called(ctx, holdIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SeatHold), args.Error(1)
}

func (m *MockHoldStore) HeldSeats(ctx context.Context, showingID int) (map[string]string, error) {
	args := m.Called(ctx, showingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockHoldStore) PruneExpired(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
