package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Issue(userID uuid.UUID) (string, error) {
	args := m.Called(userID)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) Verify(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if claims, ok := args.Get(0).(*service.Claims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

// --- Fixtures ---

type accountServiceFixtures struct {
	service  usecase.AccountUsecase
	userRepo *mockUserRepository
	hasher   *mockPasswordHasher
	tokenSvc *mockTokenService
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	t.Helper()

	userRepo := new(mockUserRepository)
	hasher := new(mockPasswordHasher)
	tokenSvc := new(mockTokenService)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewAccountService(AccountServiceParams{
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenSvc,
		Logger:       logger,
	})

	return accountServiceFixtures{
		service:  service,
		userRepo: userRepo,
		hasher:   hasher,
		tokenSvc: tokenSvc,
	}
}

// --- Register ---

func TestAccountService_Register_Success(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	input := &usecase.RegisterInput{
		Name:     "Duggu",
		Email:    "Meow@meow.com",
		Password: "password",
	}
	newID := uuid.New()

	fx.userRepo.On("FindByEmail", ctx, "meow@meow.com").Return(nil, repository.ErrUserNotFound)
	fx.hasher.On("Hash", "password").Return("$2a$15$digest", nil)
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Run(func(args mock.Arguments) {
		user := args.Get(1).(*entity.User)
		user.ID = newID
	}).Return(nil)
	fx.tokenSvc.On("Issue", newID).Return("signed-token", nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "signed-token", output.Token)
	// The stored identifier is the normalized (lower-cased) email, and the
	// persisted secret is the digest, never the plaintext.
	assert.Equal(t, "meow@meow.com", output.User.Email)
	assert.NotEqual(t, "password", output.User.PasswordHash)
	assert.Equal(t, newID, output.User.ID)
	fx.userRepo.AssertExpectations(t)
	fx.tokenSvc.AssertExpectations(t)
}

func TestAccountService_Register_EmailTaken(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	existing := &entity.User{ID: uuid.New(), Email: "meow@meow.com"}
	fx.userRepo.On("FindByEmail", ctx, "meow@meow.com").Return(existing, nil)

	output, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Name:     "Duggu",
		Email:    "MEOW@MEOW.COM",
		Password: "password",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
	fx.hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestAccountService_Register_LostRace(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	// A concurrent registration slipped in between the existence check and
	// the insert; the store's unique index reports it.
	fx.userRepo.On("FindByEmail", ctx, "meow@meow.com").Return(nil, repository.ErrUserNotFound)
	fx.hasher.On("Hash", "password").Return("$2a$15$digest", nil)
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(repository.ErrEmailTaken)

	output, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Name:     "Duggu",
		Email:    "meow@meow.com",
		Password: "password",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
}

// --- Login ---

func TestAccountService_Login_Success(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "meow@meow.com", PasswordHash: "$2a$15$digest"}
	fx.userRepo.On("FindByEmail", ctx, "meow@meow.com").Return(user, nil)
	fx.hasher.On("Check", "password", "$2a$15$digest").Return(true)
	fx.tokenSvc.On("Issue", user.ID).Return("signed-token", nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "Meow@Meow.com",
		Password: "password",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", output.Token)
	assert.Equal(t, user.ID, output.User.ID)
}

func TestAccountService_Login_UnknownAccount(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "nobody@meow.com").Return(nil, repository.ErrUserNotFound)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "nobody@meow.com",
		Password: "password",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "meow@meow.com", PasswordHash: "$2a$15$digest"}
	fx.userRepo.On("FindByEmail", ctx, "meow@meow.com").Return(user, nil)
	fx.hasher.On("Check", "not-the-password", "$2a$15$digest").Return(false)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "meow@meow.com",
		Password: "not-the-password",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrWrongPassword))
	// No token leaves the service on a mismatch.
	fx.tokenSvc.AssertNotCalled(t, "Issue", mock.Anything)
}

// --- EditAccount ---

func TestAccountService_EditAccount_PartialUpdate(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	userID := uuid.New()
	stored := &entity.User{ID: userID, Email: "meow@meow.com", Name: "Duggu", PasswordHash: "$2a$15$digest"}
	fx.userRepo.On("FindByID", ctx, userID).Return(stored, nil)
	fx.userRepo.On("Update", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	err := fx.service.EditAccount(ctx, userID, &usecase.EditAccountInput{Name: "Duggu Renamed"})

	require.NoError(t, err)
	// Only the supplied field changed; the digest was not recomputed.
	assert.Equal(t, "Duggu Renamed", stored.Name)
	assert.Equal(t, "meow@meow.com", stored.Email)
	assert.Equal(t, "$2a$15$digest", stored.PasswordHash)
	fx.hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestAccountService_EditAccount_PasswordRehash(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	userID := uuid.New()
	stored := &entity.User{ID: userID, Email: "meow@meow.com", PasswordHash: "$2a$15$old"}
	fx.userRepo.On("FindByID", ctx, userID).Return(stored, nil)
	fx.hasher.On("Hash", "new-password").Return("$2a$15$new", nil)
	fx.userRepo.On("Update", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	err := fx.service.EditAccount(ctx, userID, &usecase.EditAccountInput{Password: "new-password"})

	require.NoError(t, err)
	assert.Equal(t, "$2a$15$new", stored.PasswordHash)
}

func TestAccountService_EditAccount_EmailNormalized(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	userID := uuid.New()
	stored := &entity.User{ID: userID, Email: "meow@meow.com"}
	fx.userRepo.On("FindByID", ctx, userID).Return(stored, nil)
	fx.userRepo.On("Update", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	err := fx.service.EditAccount(ctx, userID, &usecase.EditAccountInput{Email: "New@Meow.com"})

	require.NoError(t, err)
	assert.Equal(t, "new@meow.com", stored.Email)
}

func TestAccountService_EditAccount_EmailTaken(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	userID := uuid.New()
	stored := &entity.User{ID: userID, Email: "meow@meow.com"}
	fx.userRepo.On("FindByID", ctx, userID).Return(stored, nil)
	fx.userRepo.On("Update", ctx, mock.AnythingOfType("*entity.User")).Return(repository.ErrEmailTaken)

	err := fx.service.EditAccount(ctx, userID, &usecase.EditAccountInput{Email: "taken@meow.com"})

	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
}

func TestAccountService_EditAccount_AccountGone(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	userID := uuid.New()
	fx.userRepo.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	err := fx.service.EditAccount(ctx, userID, &usecase.EditAccountInput{Name: "whoever"})

	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}
