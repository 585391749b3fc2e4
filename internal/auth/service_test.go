package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"expensetracker/internal"
	userDatamodel "expensetracker/internal/core/datamodel/user"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Mock credential store for testing
type mockRepository struct {
	usersByEmail  map[string]*userDatamodel.User
	usersByID     map[int64]*userDatamodel.User
	nextID        int64
	createErr     error
	returnError   bool
	errorToReturn error
	updatedHashes map[int64]string

	// getByEmailHook, when set, overrides the map lookup.
	getByEmailHook func(email string) *userDatamodel.User
}

func newMockRepository() *mockRepository {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.DefaultCost)

	existing := &userDatamodel.User{
		ID:           1,
		FirstName:    "Asha",
		LastName:     "Rao",
		Email:        "asha@example.com",
		Phone:        "555-0100",
		PasswordHash: string(hash),
	}

	return &mockRepository{
		usersByEmail:  map[string]*userDatamodel.User{existing.Email: existing},
		usersByID:     map[int64]*userDatamodel.User{existing.ID: existing},
		nextID:        2,
		updatedHashes: map[int64]string{},
	}
}

func (m *mockRepository) GetByEmail(_ context.Context, email string) (*userDatamodel.User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	if m.getByEmailHook != nil {
		return m.getByEmailHook(email), nil
	}
	return m.usersByEmail[email], nil
}

func (m *mockRepository) GetByID(_ context.Context, id int64) (*userDatamodel.User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	return m.usersByID[id], nil
}

func (m *mockRepository) Create(_ context.Context, u *userDatamodel.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	u.ID = m.nextID
	m.nextID++
	m.usersByEmail[u.Email] = u
	m.usersByID[u.ID] = u
	return nil
}

func (m *mockRepository) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	if m.returnError {
		return m.errorToReturn
	}
	m.updatedHashes[id] = passwordHash
	if u, ok := m.usersByID[id]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (m *mockRepository) GetByProviderID(_ context.Context, provider Provider, subject string) (*userDatamodel.User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	for _, u := range m.usersByID {
		switch provider {
		case ProviderApple:
			if u.AppleID != nil && *u.AppleID == subject {
				return u, nil
			}
		case ProviderGoogle:
			if u.GoogleID != nil && *u.GoogleID == subject {
				return u, nil
			}
		}
	}
	return nil, nil
}

func (m *mockRepository) LinkProvider(_ context.Context, id int64, provider Provider, subject string) error {
	u, ok := m.usersByID[id]
	if !ok {
		return errors.New("user not found")
	}
	switch provider {
	case ProviderApple:
		u.AppleID = &subject
	case ProviderGoogle:
		u.GoogleID = &subject
	}
	return nil
}

type mockMailer struct {
	sentTo     []string
	sentTokens []string
	sendErr    error
}

func (m *mockMailer) SendPasswordReset(_ context.Context, to, resetToken string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sentTo = append(m.sentTo, to)
	m.sentTokens = append(m.sentTokens, resetToken)
	return nil
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service  *Service
		mockRepo *mockRepository
		mailer   *mockMailer
		tokens   *TokenService
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockRepository()
		mailer = &mockMailer{}
		tokens = NewTokenService("test-secret", 24*time.Hour, time.Hour)
		service = NewService(mockRepo, tokens, mailer, bcrypt.MinCost, testLogger())
	})

	ginkgo.Describe("Register", func() {
		validDTO := RegisterDTO{
			FirstName:       "Dev",
			LastName:        "Patel",
			Email:           "dev@example.com",
			Phone:           "555-0101",
			Password:        "secret123",
			ConfirmPassword: "secret123",
		}

		ginkgo.It("should create the user and return a session token", func() {
			resp, err := service.Register(context.Background(), validDTO)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(resp.ID).ToNot(gomega.BeZero())
			gomega.Expect(resp.Name).To(gomega.Equal("Dev Patel"))
			gomega.Expect(resp.Token).ToNot(gomega.BeEmpty())

			result := tokens.Verify(resp.Token)
			gomega.Expect(result.Valid).To(gomega.BeTrue())
			gomega.Expect(result.Claims.UserID).To(gomega.Equal(resp.ID))
			gomega.Expect(result.Claims.Purpose).To(gomega.BeEmpty())
		})

		ginkgo.It("should reject a duplicate email with a conflict", func() {
			dto := validDTO
			dto.Email = "asha@example.com"

			_, err := service.Register(context.Background(), dto)

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(409))
			gomega.Expect(appErr.Message).To(gomega.Equal("User with this email already exists"))
		})

		ginkgo.It("should map a store-level duplicate insert to the same conflict", func() {
			// Simulates losing a race after the pre-check passed.
			mockRepo.createErr = errors.New(`duplicate key value violates unique constraint "idx_users_email"`)

			_, err := service.Register(context.Background(), validDTO)

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(409))
		})

		ginkgo.It("should reject mismatched passwords", func() {
			dto := validDTO
			dto.ConfirmPassword = "different"

			_, err := service.Register(context.Background(), dto)

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(400))
			gomega.Expect(appErr.Message).To(gomega.Equal("Passwords do not match"))
		})

		ginkgo.It("should reject missing required fields", func() {
			dto := validDTO
			dto.Email = ""

			_, err := service.Register(context.Background(), dto)

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Message).To(gomega.Equal("Please provide first name, email and password"))
		})
	})

	ginkgo.Describe("Login", func() {
		ginkgo.It("should return a session token for valid credentials", func() {
			resp, err := service.Login(context.Background(), LoginDTO{
				Email:    "asha@example.com",
				Password: "correct_password",
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(resp.Token).ToNot(gomega.BeEmpty())
			gomega.Expect(resp.Email).To(gomega.Equal("asha@example.com"))
		})

		ginkgo.It("should return the same generic error for an unknown email", func() {
			_, err := service.Login(context.Background(), LoginDTO{
				Email:    "nobody@example.com",
				Password: "correct_password",
			})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(401))
			gomega.Expect(appErr.Message).To(gomega.Equal("Invalid credentials"))
		})

		ginkgo.It("should return the same generic error for a wrong password", func() {
			_, err := service.Login(context.Background(), LoginDTO{
				Email:    "asha@example.com",
				Password: "wrong_password",
			})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(401))
			gomega.Expect(appErr.Message).To(gomega.Equal("Invalid credentials"))
		})
	})

	ginkgo.Describe("ForgotPassword", func() {
		ginkgo.It("should email a reset token to a registered address", func() {
			msg, err := service.ForgotPassword(context.Background(), ForgotPasswordDTO{Email: "asha@example.com"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(msg).To(gomega.Equal("If your email is registered, you will receive a password reset link"))
			gomega.Expect(mailer.sentTo).To(gomega.ConsistOf("asha@example.com"))

			result := tokens.Verify(mailer.sentTokens[0])
			gomega.Expect(result.Valid).To(gomega.BeTrue())
			gomega.Expect(result.Claims.Purpose).To(gomega.Equal(PurposePasswordReset))
		})

		ginkgo.It("should return the identical message for an unknown address", func() {
			msg, err := service.ForgotPassword(context.Background(), ForgotPasswordDTO{Email: "nobody@example.com"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(msg).To(gomega.Equal("If your email is registered, you will receive a password reset link"))
			gomega.Expect(mailer.sentTo).To(gomega.BeEmpty())
		})

		ginkgo.It("should surface a delivery failure", func() {
			mailer.sendErr = errors.New("smtp unreachable")

			_, err := service.ForgotPassword(context.Background(), ForgotPasswordDTO{Email: "asha@example.com"})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(500))
			gomega.Expect(appErr.Message).To(gomega.Equal("Failed to send email. Please try again later."))
		})
	})

	ginkgo.Describe("ResetPassword", func() {
		ginkgo.It("should update the stored password with a valid reset token", func() {
			resetToken, err := tokens.IssueReset(1)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			err = service.ResetPassword(context.Background(), ResetPasswordDTO{
				Token:           resetToken,
				Password:        "newpassword",
				ConfirmPassword: "newpassword",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			gomega.Expect(mockRepo.updatedHashes).To(gomega.HaveKey(int64(1)))
			gomega.Expect(VerifyPassword(mockRepo.updatedHashes[1], "newpassword")).To(gomega.Succeed())
		})

		ginkgo.It("should reject a session token even though it is validly signed", func() {
			sessionToken, err := tokens.IssueSession(1)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			err = service.ResetPassword(context.Background(), ResetPasswordDTO{
				Token:           sessionToken,
				Password:        "newpassword",
				ConfirmPassword: "newpassword",
			})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(401))
			gomega.Expect(appErr.Message).To(gomega.Equal("Invalid or expired token"))
			gomega.Expect(mockRepo.updatedHashes).To(gomega.BeEmpty())
		})

		ginkgo.It("should reject an expired reset token", func() {
			shortLived := &TokenService{secret: []byte("test-secret"), sessionTTL: 24 * time.Hour, resetTTL: -time.Minute}
			expired, err := shortLived.IssueReset(1)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			err = service.ResetPassword(context.Background(), ResetPasswordDTO{
				Token:           expired,
				Password:        "newpassword",
				ConfirmPassword: "newpassword",
			})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(401))
		})

		ginkgo.It("should reject a tampered token", func() {
			resetToken, err := tokens.IssueReset(1)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			err = service.ResetPassword(context.Background(), ResetPasswordDTO{
				Token:           resetToken + "x",
				Password:        "newpassword",
				ConfirmPassword: "newpassword",
			})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(401))
		})
	})
})
