package auth

import (
	"expensetracker/internal"
)

// RegisterDTO is the transport shape for registration requests.
type RegisterDTO struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (d RegisterDTO) Validate() error {
	if d.FirstName == "" || d.Email == "" || d.Password == "" {
		return internal.NewValidationError("Please provide first name, email and password", internal.ErrCodeValidationFailed)
	}
	if d.Phone == "" {
		return internal.NewValidationError("Please provide a phone number", internal.ErrCodeValidationFailed)
	}
	if d.Password != d.ConfirmPassword {
		return internal.NewValidationError("Passwords do not match", internal.ErrCodePasswordMismatch)
	}
	return nil
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() error {
	if d.Email == "" || d.Password == "" {
		return internal.NewValidationError("Please provide email and password", internal.ErrCodeValidationFailed)
	}
	return nil
}

type ForgotPasswordDTO struct {
	Email string `json:"email"`
}

func (d ForgotPasswordDTO) Validate() error {
	if d.Email == "" {
		return internal.NewValidationError("Please provide an email address", internal.ErrCodeValidationFailed)
	}
	return nil
}

type ResetPasswordDTO struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (d ResetPasswordDTO) Validate() error {
	if d.Token == "" || d.Password == "" || d.ConfirmPassword == "" {
		return internal.NewValidationError("Please provide token, password and confirm password", internal.ErrCodeValidationFailed)
	}
	if d.Password != d.ConfirmPassword {
		return internal.NewValidationError("Passwords do not match", internal.ErrCodePasswordMismatch)
	}
	return nil
}

// SocialLoginDTO carries an identity-provider token. Apple clients send
// response.identityToken, Google clients send response.idToken.
type SocialLoginDTO struct {
	Provider string              `json:"provider"`
	Response SocialLoginResponse `json:"response"`
}

type SocialLoginResponse struct {
	IdentityToken string `json:"identityToken"`
	IDToken       string `json:"idToken"`
}

func (d SocialLoginDTO) Validate() error {
	switch Provider(d.Provider) {
	case ProviderApple:
		if d.Response.IdentityToken == "" {
			return internal.NewValidationError("Please provide an identity token", internal.ErrCodeValidationFailed)
		}
	case ProviderGoogle:
		if d.Response.IDToken == "" {
			return internal.NewValidationError("Please provide an id token", internal.ErrCodeValidationFailed)
		}
	default:
		return internal.NewValidationError("Unsupported provider", internal.ErrCodeValidationFailed)
	}
	return nil
}

// Token returns whichever provider token the client supplied.
func (d SocialLoginDTO) Token() string {
	if Provider(d.Provider) == ProviderApple {
		return d.Response.IdentityToken
	}
	return d.Response.IDToken
}
