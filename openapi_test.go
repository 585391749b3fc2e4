package main_test

import (
	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("OpenAPI contract", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("api/openapi.yml")
		Expect(err).ToNot(HaveOccurred())
		Expect(doc.Validate(loader.Context)).To(Succeed())
	})

	It("should document every mounted route", func() {
		for _, path := range []string{
			"/auth/register",
			"/auth/login",
			"/auth/forgot-password",
			"/auth/reset-password",
			"/auth/google-apple-login",
			"/categories",
			"/expenses",
			"/expenses/{userId}",
			"/reports/monthly",
			"/reports/daily",
			"/users/profile",
			"/users/get-all",
			"/users/get-count",
			"/users/get-user/{id}",
			"/users/get-transactions/{id}",
			"/ads",
			"/health",
		} {
			Expect(doc.Paths.Find(path)).ToNot(BeNil(), "missing path %s", path)
		}
	})

	It("should require bearer auth on the protected resources", func() {
		for _, path := range []string{"/categories", "/expenses", "/reports/monthly", "/users/profile"} {
			item := doc.Paths.Find(path)
			Expect(item).ToNot(BeNil())
			for _, op := range item.Operations() {
				Expect(op.Security).ToNot(BeNil(), "missing security on %s", path)
			}
		}
	})

	It("should keep the auth endpoints public", func() {
		for _, path := range []string{"/auth/register", "/auth/login", "/health"} {
			item := doc.Paths.Find(path)
			Expect(item).ToNot(BeNil())
			for _, op := range item.Operations() {
				Expect(op.Security).To(BeNil(), "unexpected security on %s", path)
			}
		}
	})
})
