// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete account registration process: the email
// is normalized, the existence pre-check maps a known address to a conflict,
// the password is hashed before persistence, and a token is issued for the
// new account. The pre-check is advisory only; the store's unique index
// decides races, and a duplicate insert comes back as the same conflict.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	_, err := srv.userRepo.FindByEmail(ctx, email)
	if err == nil {
		srv.log(ctx).Warn("Registration rejected, email taken", slog.String("email", email))

		return nil, domainerrors.ErrEmailTaken.WrapMessage("email already registered")
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check email existence")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			// Lost the race against a concurrent registration of the same email.
			return nil, domainerrors.ErrEmailTaken.WrapMessage("email already registered")
		}

		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	token, err := srv.tokenService.Issue(newUser.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token for new account")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.AuthOutput{Token: token, User: newUser}, nil
}

// Login orchestrates the account login process.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting login", slog.String("email", email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed, unknown account", slog.String("email", email))

			return nil, domainerrors.ErrUserNotFound.WrapMessage("no account for this email")
		}

		return nil, errors.Wrap(err, "failed to load account for login")
	}

	// bcrypt comparison is CPU-bound but bounded; it runs inline on the
	// request goroutine without blocking other requests.
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed, password mismatch", slog.String("email", email))

		return nil, domainerrors.ErrWrongPassword.WrapMessage("password mismatch")
	}

	token, err := srv.tokenService.Issue(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token during login")
	}

	srv.log(ctx).Debug("Login succeeded", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{Token: token, User: user}, nil
}

// EditAccount applies a selective field replacement to the principal's
// account. Only supplied fields change; a supplied password is re-hashed
// before persistence. No token is re-issued: claims in outstanding tokens
// are immutable until re-login, so they keep resolving to the same account
// id even after an email or password change. That consistency gap is
// accepted behavior, not an oversight.
func (srv *accountService) EditAccount(ctx context.Context, userID uuid.UUID, input *usecase.EditAccountInput) error {
	srv.log(ctx).Info("Updating account", slog.Any("userID", userID))

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// The auth gate already resolved this account, but handle the
			// lookup defensively anyway.
			return domainerrors.ErrUserNotFound.WrapMessage("account no longer exists")
		}

		return errors.Wrap(err, "failed to load account for edit")
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = entity.NormalizeEmail(input.Email)
	}
	if input.Password != "" {
		hashedPassword, err := srv.hasher.Hash(input.Password)
		if err != nil {
			srv.log(ctx).Error("Failed to hash password during edit", slog.Any("error", err))

			return errors.Wrap(err, "failed to hash password during edit")
		}
		user.PasswordHash = hashedPassword
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			srv.log(ctx).Warn("Account edit rejected, email taken", slog.Any("userID", userID))

			return domainerrors.ErrEmailTaken.WrapMessage("email already registered to another account")
		}

		return errors.Wrap(err, "failed to update account")
	}

	srv.log(ctx).Debug("Account updated", slog.Any("userID", userID))

	return nil
}
