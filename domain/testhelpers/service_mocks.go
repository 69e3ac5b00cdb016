package testhelpers

import (
	"context"

	"lotobank/domain/entities"

	"github.com/stretchr/testify/mock"
)

// MockRestrictedNumberLedger is a mock implementation of RestrictedNumberLedger
type MockRestrictedNumberLedger struct {
	mock.Mock
}

func (m *MockRestrictedNumberLedger) CheckAndReserve(ctx context.Context, drawID, sellerID int64, requests []entities.NumberAmount) error {
	args := m.Called(ctx, drawID, sellerID, requests)
	return args.Error(0)
}

func (m *MockRestrictedNumberLedger) Restrict(ctx context.Context, actor entities.Actor, rn *entities.RestrictedNumber) error {
	args := m.Called(ctx, actor, rn)
	return args.Error(0)
}

func (m *MockRestrictedNumberLedger) RestrictSeller(ctx context.Context, actor entities.Actor, rn *entities.SellerRestrictedNumber) error {
	args := m.Called(ctx, actor, rn)
	return args.Error(0)
}
