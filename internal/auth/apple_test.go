package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"time"

	"expensetracker/internal"

	"github.com/golang-jwt/jwt/v5"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

const testAppleClientID = "com.example.expensetracker"

func jwkFromKey(kid string, pub *rsa.PublicKey) map[string]string {
	return map[string]string{
		"kty": "RSA",
		"kid": kid,
		"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
		"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
	}
}

func signAppleToken(key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	gomega.Expect(err).ToNot(gomega.HaveOccurred())
	return signed
}

var _ = ginkgo.Describe("AppleVerifier", func() {
	var (
		privateKey *rsa.PrivateKey
		jwksServer *httptest.Server
		verifier   *AppleVerifier
	)

	validClaims := func() jwt.MapClaims {
		return jwt.MapClaims{
			"iss":   "https://appleid.apple.com",
			"aud":   testAppleClientID,
			"sub":   "001234.abcdef",
			"email": "asha@privaterelay.appleid.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
			"iat":   time.Now().Unix(),
		}
	}

	ginkgo.BeforeEach(func() {
		var err error
		privateKey, err = rsa.GenerateKey(rand.Reader, 2048)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		jwksServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			doc := map[string]any{
				"keys": []map[string]string{jwkFromKey("test-kid", &privateKey.PublicKey)},
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(doc)
		}))

		verifier = NewAppleVerifier(testAppleClientID, jwksServer.URL)
	})

	ginkgo.AfterEach(func() {
		jwksServer.Close()
	})

	ginkgo.It("should accept a properly signed identity token", func() {
		token := signAppleToken(privateKey, "test-kid", validClaims())

		identity, err := verifier.Verify(context.Background(), token)

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(identity.Provider).To(gomega.Equal(ProviderApple))
		gomega.Expect(identity.Subject).To(gomega.Equal("001234.abcdef"))
		gomega.Expect(identity.Email).To(gomega.Equal("asha@privaterelay.appleid.com"))
	})

	ginkgo.It("should reject a token whose kid is not in the key set", func() {
		token := signAppleToken(privateKey, "unknown-kid", validClaims())

		_, err := verifier.Verify(context.Background(), token)

		appErr, ok := internal.IsAppError(err)
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(appErr.StatusCode).To(gomega.Equal(401))
	})

	ginkgo.It("should reject a token for a different audience", func() {
		claims := validClaims()
		claims["aud"] = "com.other.app"
		token := signAppleToken(privateKey, "test-kid", claims)

		_, err := verifier.Verify(context.Background(), token)

		appErr, ok := internal.IsAppError(err)
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(appErr.StatusCode).To(gomega.Equal(401))
	})

	ginkgo.It("should reject a token from a different issuer", func() {
		claims := validClaims()
		claims["iss"] = "https://evil.example.com"
		token := signAppleToken(privateKey, "test-kid", claims)

		_, err := verifier.Verify(context.Background(), token)

		appErr, ok := internal.IsAppError(err)
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(appErr.StatusCode).To(gomega.Equal(401))
	})

	ginkgo.It("should reject an expired token", func() {
		claims := validClaims()
		claims["exp"] = time.Now().Add(-time.Hour).Unix()
		token := signAppleToken(privateKey, "test-kid", claims)

		_, err := verifier.Verify(context.Background(), token)

		appErr, ok := internal.IsAppError(err)
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(appErr.StatusCode).To(gomega.Equal(401))
	})

	ginkgo.It("should reject a token signed with a different key", func() {
		otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		token := signAppleToken(otherKey, "test-kid", validClaims())

		_, err = verifier.Verify(context.Background(), token)

		appErr, ok := internal.IsAppError(err)
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(appErr.StatusCode).To(gomega.Equal(401))
	})

	ginkgo.It("should reject an HS256 token even with plausible claims", func() {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims())
		token.Header["kid"] = "test-kid"
		signed, err := token.SignedString([]byte("guessed-secret"))
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		_, err = verifier.Verify(context.Background(), signed)

		appErr, ok := internal.IsAppError(err)
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(appErr.StatusCode).To(gomega.Equal(401))
	})
})
