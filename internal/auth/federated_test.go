package auth

import (
	"context"
	"errors"
	"time"

	"expensetracker/internal"
	userDatamodel "expensetracker/internal/core/datamodel/user"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

type fakeVerifier struct {
	identity *Identity
	err      error
}

func (f *fakeVerifier) Verify(_ context.Context, _ string) (*Identity, error) {
	return f.identity, f.err
}

var _ = ginkgo.Describe("FederatedService", func() {
	var (
		mockRepo *mockRepository
		tokens   *TokenService
		apple    *fakeVerifier
		google   *fakeVerifier
		service  *FederatedService
	)

	appleDTO := SocialLoginDTO{
		Provider: "apple",
		Response: SocialLoginResponse{IdentityToken: "apple-token"},
	}
	googleDTO := SocialLoginDTO{
		Provider: "google",
		Response: SocialLoginResponse{IDToken: "google-token"},
	}

	ginkgo.BeforeEach(func() {
		mockRepo = newMockRepository()
		tokens = NewTokenService("test-secret", 24*time.Hour, time.Hour)
		apple = &fakeVerifier{}
		google = &fakeVerifier{}
		service = NewFederatedService(mockRepo, tokens, apple, google, testLogger())
	})

	ginkgo.Context("when the provider subject is already linked", func() {
		ginkgo.It("should log the user in without touching the account", func() {
			subject := "001234.abcdef"
			mockRepo.usersByID[1].AppleID = &subject
			apple.identity = &Identity{Provider: ProviderApple, Subject: subject, Email: "asha@example.com"}

			result, err := service.Login(context.Background(), appleDTO)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(result.User.ID).To(gomega.Equal(int64(1)))

			verified := tokens.Verify(result.Token)
			gomega.Expect(verified.Valid).To(gomega.BeTrue())
			gomega.Expect(verified.Claims.UserID).To(gomega.Equal(int64(1)))
		})
	})

	ginkgo.Context("when the email matches an existing local account", func() {
		ginkgo.It("should link the provider subject to that account", func() {
			google.identity = &Identity{Provider: ProviderGoogle, Subject: "10987", Email: "asha@example.com"}

			result, err := service.Login(context.Background(), googleDTO)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(result.User.ID).To(gomega.Equal(int64(1)))
			gomega.Expect(mockRepo.usersByID[1].GoogleID).ToNot(gomega.BeNil())
			gomega.Expect(*mockRepo.usersByID[1].GoogleID).To(gomega.Equal("10987"))
		})
	})

	ginkgo.Context("when the identity is brand new", func() {
		ginkgo.It("should create an account named after the email localpart", func() {
			google.identity = &Identity{Provider: ProviderGoogle, Subject: "555", Email: "newuser@gmail.com"}

			result, err := service.Login(context.Background(), googleDTO)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(result.User.FirstName).To(gomega.Equal("newuser"))

			created := mockRepo.usersByEmail["newuser@gmail.com"]
			gomega.Expect(created).ToNot(gomega.BeNil())
			gomega.Expect(created.GoogleID).ToNot(gomega.BeNil())
			gomega.Expect(created.PasswordHash).To(gomega.BeEmpty())
		})

		ginkgo.It("should recover when a concurrent login wins the insert race", func() {
			winner := &userDatamodel.User{ID: 7, FirstName: "newuser", Email: "newuser@gmail.com"}
			mockRepo.createErr = errors.New(`duplicate key value violates unique constraint "idx_users_email"`)
			google.identity = &Identity{Provider: ProviderGoogle, Subject: "555", Email: "newuser@gmail.com"}

			// First lookup misses, insert hits the unique index, re-read wins.
			calls := 0
			mockRepo.getByEmailHook = func(email string) *userDatamodel.User {
				calls++
				if calls > 1 && email == "newuser@gmail.com" {
					return winner
				}
				return nil
			}

			result, err := service.Login(context.Background(), googleDTO)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(result.User.ID).To(gomega.Equal(int64(7)))
		})
	})

	ginkgo.Context("when the provider rejects the token", func() {
		ginkgo.It("should return 401 without creating anything", func() {
			apple.err = internal.NewUnauthorizedError("Invalid or expired token", internal.ErrCodeProviderRejected)

			_, err := service.Login(context.Background(), appleDTO)

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(401))
			gomega.Expect(len(mockRepo.usersByID)).To(gomega.Equal(1))
		})
	})

	ginkgo.Context("when the payload is malformed", func() {
		ginkgo.It("should reject an unsupported provider", func() {
			_, err := service.Login(context.Background(), SocialLoginDTO{Provider: "facebook"})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(400))
		})

		ginkgo.It("should reject a missing provider token", func() {
			_, err := service.Login(context.Background(), SocialLoginDTO{Provider: "apple"})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(400))
		})
	})
})
