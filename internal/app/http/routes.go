package routes

import (
	"log/slog"
	"net/http"

	adminapi "clubero-server/internal/api/admin"
	"clubero-server/internal/api/billing"
	"clubero-server/internal/api/memberships"
	stripewebhooks "clubero-server/internal/api/stripewebhook"
	"clubero-server/internal/api/users"
	"clubero-server/internal/app/http/middleware"
	domainusers "clubero-server/internal/domain/users"
	"clubero-server/internal/infra/identity"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Deps struct {
	Log      *slog.Logger
	Verifier identity.Verifier
	Roles    middleware.UserLookup
	Gatherer prometheus.Gatherer

	Billing     *billing.Handler
	Memberships *memberships.Handler
	Users       *users.Handler
	Admin       *adminapi.Handler
	// Webhook is nil when no endpoint secret is configured.
	Webhook *stripewebhooks.Handler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Clubero server is running!")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))

	// Signature verification needs the raw body, so no sanitizer here.
	if d.Webhook != nil {
		r.POST("/webhook", d.Webhook.StripeWebhook)
	}

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(d.Verifier, d.Log), middleware.SanitizeAndCleanInputMiddleware())
	auth.POST("/create-checkout-session", d.Billing.CreateCheckoutSession)
	auth.PATCH("/payment-success", d.Billing.ConfirmPayment)
	auth.GET("/payments", d.Billing.GetPaymentByEmailAndClub)
	auth.GET("/payments/history", d.Billing.GetPaymentHistory)

	auth.POST("/memberships/free", d.Memberships.JoinFree)
	auth.GET("/memberships", d.Memberships.ListMine)

	auth.POST("/users", d.Users.Upsert)
	auth.GET("/users/me", d.Users.GetCurrentUser)

	// Club managers
	manager := auth.Group("/manager")
	manager.Use(middleware.RequireRole(d.Roles, d.Log, domainusers.RoleManager, domainusers.RoleAdmin))
	manager.GET("/clubs/:clubId/summary", d.Admin.GetClubSummary)

	// Admin routes
	admin := auth.Group("/admin")
	admin.Use(middleware.RequireRole(d.Roles, d.Log, domainusers.RoleAdmin))
	admin.GET("/stats", d.Admin.GetStats)
	admin.GET("/users", d.Admin.ListAllUsers)
	admin.GET("/payments", d.Admin.ListAllPayments)
	admin.PATCH("/users/:id/role", d.Admin.SetUserRole)
}
