package auth

import (
	"context"
	"log/slog"

	"expensetracker/internal"
	userDatamodel "expensetracker/internal/core/datamodel/user"
)

type Provider string

const (
	ProviderApple  Provider = "apple"
	ProviderGoogle Provider = "google"
)

// Identity is a verified claim set from an external identity provider.
type Identity struct {
	Provider Provider
	Subject  string
	Email    string
}

// ProviderVerifier validates a provider-issued token and extracts the
// identity it attests to. Any verification failure (signature, audience,
// issuer, expiry, unknown key) must come back as an unauthorized AppError.
type ProviderVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// FederatedService maps verified provider identities to local user accounts
// and issues local session tokens. Replaying a still-valid provider token
// re-authenticates without side effects beyond first-time account linking.
type FederatedService struct {
	repo      RepositoryAPI
	tokens    TokenAPI
	verifiers map[Provider]ProviderVerifier
	logger    *slog.Logger
}

func NewFederatedService(repo RepositoryAPI, tokens TokenAPI, apple, google ProviderVerifier, logger *slog.Logger) *FederatedService {
	return &FederatedService{
		repo:   repo,
		tokens: tokens,
		verifiers: map[Provider]ProviderVerifier{
			ProviderApple:  apple,
			ProviderGoogle: google,
		},
		logger: logger,
	}
}

// SocialLoginResult pairs the local session token with the resolved profile.
type SocialLoginResult struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

func (s *FederatedService) Login(ctx context.Context, dto SocialLoginDTO) (*SocialLoginResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	verifier, ok := s.verifiers[Provider(dto.Provider)]
	if !ok || verifier == nil {
		return nil, internal.NewValidationError("Unsupported provider", internal.ErrCodeValidationFailed)
	}

	identity, err := verifier.Verify(ctx, dto.Token())
	if err != nil {
		s.logger.Warn("provider token rejected", "provider", dto.Provider, "error", err)
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		return nil, internal.NewUnauthorizedError("Invalid or expired token", internal.ErrCodeProviderRejected)
	}

	u, err := s.resolveUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.IssueSession(u.ID)
	if err != nil {
		return nil, internal.NewInternalError("Internal Server Error", err)
	}

	return &SocialLoginResult{
		Token: token,
		User:  ProfileFromDataModel(u),
	}, nil
}

// resolveUser looks the identity up by provider subject first, then by email
// (linking the provider id on match), and finally creates a fresh account.
func (s *FederatedService) resolveUser(ctx context.Context, identity *Identity) (*userDatamodel.User, error) {
	u, err := s.repo.GetByProviderID(ctx, identity.Provider, identity.Subject)
	if err != nil {
		return nil, internal.NewInternalError("Internal Server Error", err)
	}
	if u != nil {
		return u, nil
	}

	if identity.Email != "" {
		u, err = s.repo.GetByEmail(ctx, identity.Email)
		if err != nil {
			return nil, internal.NewInternalError("Internal Server Error", err)
		}
		if u != nil {
			if err := s.repo.LinkProvider(ctx, u.ID, identity.Provider, identity.Subject); err != nil {
				return nil, internal.NewInternalError("Internal Server Error", err)
			}
			s.logger.Info("linked provider to existing account",
				"user_id", u.ID, "provider", identity.Provider)
			return u, nil
		}
	}

	u = &userDatamodel.User{
		FirstName: firstNameFromEmail(identity.Email),
		Email:     identity.Email,
	}
	switch identity.Provider {
	case ProviderApple:
		u.AppleID = &identity.Subject
	case ProviderGoogle:
		u.GoogleID = &identity.Subject
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if internal.IsDuplicateKey(err) {
			// Lost a race with a concurrent first login; the unique index on
			// email is authoritative, so re-read the winner.
			if existing, gerr := s.repo.GetByEmail(ctx, identity.Email); gerr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, internal.NewInternalError("Internal Server Error", err)
	}

	s.logger.Info("created account from federated login",
		"user_id", u.ID, "provider", identity.Provider)
	return u, nil
}

func firstNameFromEmail(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	return email
}
