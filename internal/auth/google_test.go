package auth

import (
	"context"
	"errors"

	"expensetracker/internal"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	googleoauth "google.golang.org/api/oauth2/v2"
)

type fakeIntrospector struct {
	info *googleoauth.Tokeninfo
	err  error
}

func (f *fakeIntrospector) Tokeninfo(_ context.Context, _ string) (*googleoauth.Tokeninfo, error) {
	return f.info, f.err
}

var _ = ginkgo.Describe("GoogleVerifier", func() {
	const clientID = "example.apps.googleusercontent.com"

	newVerifier := func(info *googleoauth.Tokeninfo, err error) *GoogleVerifier {
		return NewGoogleVerifierWithIntrospector(clientID, &fakeIntrospector{info: info, err: err})
	}

	ginkgo.It("should accept a token the provider vouches for", func() {
		verifier := newVerifier(&googleoauth.Tokeninfo{
			Audience:  clientID,
			UserId:    "10987654321",
			Email:     "dev@gmail.com",
			ExpiresIn: 3000,
		}, nil)

		identity, err := verifier.Verify(context.Background(), "provider-token")

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(identity.Provider).To(gomega.Equal(ProviderGoogle))
		gomega.Expect(identity.Subject).To(gomega.Equal("10987654321"))
		gomega.Expect(identity.Email).To(gomega.Equal("dev@gmail.com"))
	})

	ginkgo.It("should reject a token minted for another client", func() {
		verifier := newVerifier(&googleoauth.Tokeninfo{
			Audience:  "someone-else.apps.googleusercontent.com",
			UserId:    "10987654321",
			ExpiresIn: 3000,
		}, nil)

		_, err := verifier.Verify(context.Background(), "provider-token")

		appErr, ok := internal.IsAppError(err)
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(appErr.StatusCode).To(gomega.Equal(401))
	})

	ginkgo.It("should reject an expired token", func() {
		verifier := newVerifier(&googleoauth.Tokeninfo{
			Audience:  clientID,
			UserId:    "10987654321",
			ExpiresIn: 0,
		}, nil)

		_, err := verifier.Verify(context.Background(), "provider-token")

		appErr, ok := internal.IsAppError(err)
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(appErr.Message).To(gomega.Equal("Token expired"))
	})

	ginkgo.It("should reject when the introspection call fails", func() {
		verifier := newVerifier(nil, errors.New("tokeninfo: 400 invalid_token"))

		_, err := verifier.Verify(context.Background(), "provider-token")

		appErr, ok := internal.IsAppError(err)
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(appErr.StatusCode).To(gomega.Equal(401))
	})
})
