package auth

import (
	"context"
	"time"

	userDatamodel "expensetracker/internal/core/datamodel/user"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Purpose values restrict what a token may be used for. Session tokens carry
// no purpose claim.
const PurposePasswordReset = "password_reset"

// Claims are embedded in every token this service issues.
type Claims struct {
	UserID  int64  `json:"id"`
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// VerifyResult is the tagged outcome of token verification. Verification
// never returns an error for ordinary expiry or tampering; callers branch on
// the flags.
type VerifyResult struct {
	Valid   bool
	Expired bool
	Claims  *Claims
}

// TokenAPI issues and verifies the signed bearer tokens used for sessions
// and password resets.
type TokenAPI interface {
	IssueSession(userID int64) (string, error)
	IssueReset(userID int64) (string, error)
	Verify(token string) VerifyResult
}

// RepositoryAPI is the credential store.
type RepositoryAPI interface {
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	Create(ctx context.Context, u *userDatamodel.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	GetByProviderID(ctx context.Context, provider Provider, subject string) (*userDatamodel.User, error)
	LinkProvider(ctx context.Context, id int64, provider Provider, subject string) error
}

// MailerAPI dispatches the password-reset email.
type MailerAPI interface {
	SendPasswordReset(ctx context.Context, to, resetToken string) error
}

// AuthResponse is the public payload returned by register and login.
type AuthResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// Profile is the public view of a user record.
type Profile struct {
	ID        int64      `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Gender    string     `json:"gender,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
}

func ProfileFromDataModel(u *userDatamodel.User) Profile {
	return Profile{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Gender:    u.Gender,
		BirthDate: u.BirthDate,
	}
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
