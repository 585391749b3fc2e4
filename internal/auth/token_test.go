package auth

import (
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("TokenService", func() {
	var tokens *TokenService

	ginkgo.BeforeEach(func() {
		tokens = NewTokenService("test-secret", 24*time.Hour, time.Hour)
	})

	ginkgo.Describe("IssueSession", func() {
		ginkgo.It("should round-trip the user id without a purpose claim", func() {
			token, err := tokens.IssueSession(42)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			result := tokens.Verify(token)
			gomega.Expect(result.Valid).To(gomega.BeTrue())
			gomega.Expect(result.Expired).To(gomega.BeFalse())
			gomega.Expect(result.Claims.UserID).To(gomega.Equal(int64(42)))
			gomega.Expect(result.Claims.Purpose).To(gomega.BeEmpty())
			gomega.Expect(result.Claims.Subject).To(gomega.Equal("42"))
		})
	})

	ginkgo.Describe("IssueReset", func() {
		ginkgo.It("should carry the password-reset purpose claim", func() {
			token, err := tokens.IssueReset(42)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			result := tokens.Verify(token)
			gomega.Expect(result.Valid).To(gomega.BeTrue())
			gomega.Expect(result.Claims.Purpose).To(gomega.Equal(PurposePasswordReset))
		})
	})

	ginkgo.Describe("Verify", func() {
		ginkgo.It("should flag an expired token as expired, not merely invalid", func() {
			stale := &TokenService{secret: []byte("test-secret"), sessionTTL: -time.Minute, resetTTL: time.Hour}
			token, err := stale.IssueSession(42)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			result := tokens.Verify(token)
			gomega.Expect(result.Valid).To(gomega.BeFalse())
			gomega.Expect(result.Expired).To(gomega.BeTrue())
		})

		ginkgo.It("should reject a token signed with a different secret", func() {
			other := NewTokenService("other-secret", 24*time.Hour, time.Hour)
			token, err := other.IssueSession(42)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			result := tokens.Verify(token)
			gomega.Expect(result.Valid).To(gomega.BeFalse())
			gomega.Expect(result.Expired).To(gomega.BeFalse())
		})

		ginkgo.It("should reject garbage input", func() {
			result := tokens.Verify("not-a-token")
			gomega.Expect(result.Valid).To(gomega.BeFalse())
			gomega.Expect(result.Claims).To(gomega.BeNil())
		})
	})
})
