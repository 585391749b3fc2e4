package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"expensetracker/internal/ads"
	"expensetracker/internal/auth"
	"expensetracker/internal/category"
	"expensetracker/internal/expense"
	"expensetracker/internal/report"
	"expensetracker/internal/transport/middleware"
	"expensetracker/internal/transport/swagger"
	"expensetracker/internal/user"

	"github.com/go-chi/chi"
)

type Handlers struct {
	Auth     *auth.Handler
	Category *category.Handler
	Expense  *expense.Handler
	Report   *report.Handler
	User     *user.Handler
	Ads      *ads.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// OpenAPI spec and Swagger UI live outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthHandler)
		r.Get("/health/ready", healthHandler.readinessHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", h.Auth.Register)
			sr.Post("/login", h.Auth.Login)
			sr.Post("/forgot-password", h.Auth.ForgotPassword)
			sr.Post("/reset-password", h.Auth.ResetPassword)
			sr.Post("/google-apple-login", h.Auth.SocialLogin)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/categories", h.Category.GetCategories)
			pr.Post("/categories", h.Category.CreateCategory)

			pr.Get("/expenses", h.Expense.GetMyExpenses)
			pr.Post("/expenses", h.Expense.CreateExpense)
			pr.Get("/expenses/{userId}", h.Expense.GetExpensesByUserID)

			pr.Get("/reports/monthly", h.Report.MonthlyReport)
			pr.Get("/reports/daily", h.Report.DailyReport)

			pr.Put("/users/profile", h.User.UpdateProfile)
			pr.Get("/users/get-all", h.User.GetUsers)
			pr.Get("/users/get-count", h.User.GetUsersCount)
			pr.Get("/users/get-user/{id}", h.User.GetUser)
			pr.Get("/users/get-transactions/{id}", h.User.GetUserTransactions)

			pr.Get("/ads", h.Ads.GetAds)
			pr.Post("/ads", h.Ads.CreateAds)
		})
	})
}
