package usecases_test

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"kyc-platform.backend/internal/domain/entities"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*entities.PlatformSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PlatformSettings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, settings *entities.PlatformSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// Mock KycMemberRepository
type MockKycMemberRepository struct {
	mock.Mock
}

func (m *MockKycMemberRepository) Create(ctx context.Context, member *entities.KycMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockKycMemberRepository) GetByAddress(ctx context.Context, address common.Address) (*entities.KycMember, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.KycMember), args.Error(1)
}

func (m *MockKycMemberRepository) GetByUID(ctx context.Context, uid string) (*entities.KycMember, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.KycMember), args.Error(1)
}

func (m *MockKycMemberRepository) CountInvalid(ctx context.Context, version uint64, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, version, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// Mock ProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, project *entities.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) GetByOwnerAndProjectID(ctx context.Context, owner common.Address, projectID string) (*entities.Project, error) {
	args := m.Called(ctx, owner, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Project), args.Error(1)
}

func (m *MockProjectRepository) GetByOwnerAndPosition(ctx context.Context, owner common.Address, position int) (*entities.Project, error) {
	args := m.Called(ctx, owner, position)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Project), args.Error(1)
}

func (m *MockProjectRepository) CountByOwner(ctx context.Context, owner common.Address) (int, error) {
	args := m.Called(ctx, owner)
	return args.Int(0), args.Error(1)
}

func (m *MockProjectRepository) ListByOwner(ctx context.Context, owner common.Address) ([]*entities.Project, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Project), args.Error(1)
}

func (m *MockProjectRepository) CountCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// Mock LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Collect(ctx context.Context, entry *entities.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetBalance(ctx context.Context, address common.Address) (*big.Int, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

// Mock NonceStore
type MockNonceStore struct {
	mock.Mock
}

func (m *MockNonceStore) Save(ctx context.Context, address, nonce string) error {
	args := m.Called(ctx, address, nonce)
	return args.Error(0)
}

func (m *MockNonceStore) Consume(ctx context.Context, address, nonce string) error {
	args := m.Called(ctx, address, nonce)
	return args.Error(0)
}

func (m *MockNonceStore) TTL() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

// Mock TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateAccessToken(address string) (string, time.Time, error) {
	args := m.Called(address)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
