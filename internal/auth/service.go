package auth

import (
	"context"
	"log/slog"
	"strings"

	"expensetracker/internal"
	userDatamodel "expensetracker/internal/core/datamodel/user"
)

// genericResetMessage is returned for every forgot-password request so the
// response never reveals whether an email is registered.
const genericResetMessage = "If your email is registered, you will receive a password reset link"

// Service implements the local auth flow: registration, login and the
// password-reset round trip.
type Service struct {
	repo       RepositoryAPI
	tokens     TokenAPI
	mailer     MailerAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, tokens TokenAPI, mailer MailerAPI, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		tokens:     tokens,
		mailer:     mailer,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register validates input, hashes the password and inserts the user. The
// email pre-check is a fast path; the store's unique index on email is the
// authoritative duplicate guard, so a concurrent duplicate insert still
// surfaces as a conflict.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*AuthResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, dto.Email)
	if err != nil {
		return nil, internal.NewInternalError("Internal Server Error", err)
	}
	if existing != nil {
		return nil, internal.ErrEmailTaken
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("Internal Server Error", err)
	}

	u := &userDatamodel.User{
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Email:        dto.Email,
		Phone:        dto.Phone,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if internal.IsDuplicateKey(err) {
			return nil, internal.ErrEmailTaken
		}
		return nil, internal.NewInternalError("Internal Server Error", err)
	}

	token, err := s.tokens.IssueSession(u.ID)
	if err != nil {
		return nil, internal.NewInternalError("Internal Server Error", err)
	}

	s.logger.Info("user registered", "user_id", u.ID)

	return &AuthResponse{
		ID:    u.ID,
		Name:  displayName(u),
		Email: u.Email,
		Token: token,
	}, nil
}

// Login responds with one generic 401 for both an unknown email and a wrong
// password so the status and message give no account-enumeration signal.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*AuthResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByEmail(ctx, dto.Email)
	if err != nil {
		return nil, internal.NewInternalError("Internal Server Error", err)
	}
	if u == nil {
		return nil, internal.ErrInvalidCredentials
	}

	if err := VerifyPassword(u.PasswordHash, dto.Password); err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	token, err := s.tokens.IssueSession(u.ID)
	if err != nil {
		return nil, internal.NewInternalError("Internal Server Error", err)
	}

	return &AuthResponse{
		ID:    u.ID,
		Name:  displayName(u),
		Email: u.Email,
		Token: token,
	}, nil
}

// ForgotPassword always reports the same generic message. When the email
// exists a reset token good for one hour is issued and emailed; a delivery
// failure is the only error surfaced to the caller.
func (s *Service) ForgotPassword(ctx context.Context, dto ForgotPasswordDTO) (string, error) {
	if err := dto.Validate(); err != nil {
		return "", err
	}

	u, err := s.repo.GetByEmail(ctx, dto.Email)
	if err != nil {
		return "", internal.NewInternalError("Internal Server Error", err)
	}
	if u == nil {
		return genericResetMessage, nil
	}

	resetToken, err := s.tokens.IssueReset(u.ID)
	if err != nil {
		return "", internal.NewInternalError("Internal Server Error", err)
	}

	if err := s.mailer.SendPasswordReset(ctx, u.Email, resetToken); err != nil {
		s.logger.Error("failed to send reset email", "user_id", u.ID, "error", err)
		return "", internal.NewInternalError("Failed to send email. Please try again later.", err).
			WithCause(err)
	}

	return genericResetMessage, nil
}

// ResetPassword verifies the reset token and overwrites the stored password.
// A token that is invalid, expired, or not restricted to password resets is
// rejected even when otherwise validly signed.
func (s *Service) ResetPassword(ctx context.Context, dto ResetPasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	result := s.tokens.Verify(dto.Token)
	if !result.Valid || result.Expired || result.Claims.Purpose != PurposePasswordReset {
		return internal.NewUnauthorizedError("Invalid or expired token", internal.ErrCodeInvalidToken)
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return internal.NewInternalError("Internal Server Error", err)
	}

	if err := s.repo.UpdatePassword(ctx, result.Claims.UserID, hash); err != nil {
		return internal.NewInternalError("Internal Server Error", err)
	}

	s.logger.Info("password reset", "user_id", result.Claims.UserID)
	return nil
}

func displayName(u *userDatamodel.User) string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
