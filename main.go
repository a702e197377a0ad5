package main

import (
	"context"
	"os"
	"strings"
	"time"

	"clubero-server/config"
	"clubero-server/database"
	adminapi "clubero-server/internal/api/admin"
	"clubero-server/internal/api/billing"
	"clubero-server/internal/api/memberships"
	stripewebhooks "clubero-server/internal/api/stripewebhook"
	"clubero-server/internal/api/users"
	routes "clubero-server/internal/app/http"
	"clubero-server/internal/app/http/middleware"
	"clubero-server/internal/infra/identity"
	"clubero-server/internal/infra/logging"
	"clubero-server/internal/infra/metrics"
	"clubero-server/internal/infra/store"
	"clubero-server/internal/infra/stripe"
	"clubero-server/internal/service/checkout"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	boot := logging.New(os.Stderr, "info", "text")
	cfg, err := config.Load(boot)
	if err != nil {
		boot.Error("config", "error", err)
		os.Exit(1)
	}
	log := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := database.Open(cfg.DBURL, log)
	if err != nil {
		log.Error("database", "error", err)
		os.Exit(1)
	}
	st := store.New(db)

	verifier, err := newVerifier(cfg)
	if err != nil {
		log.Error("identity", "error", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	gateway := stripe.NewGateway(cfg.StripeSecretKey, cfg.Currency, cfg.SiteDomain)
	svc := checkout.New(st, gateway, log, m)

	var webhook *stripewebhooks.Handler
	if cfg.StripeWebhookSecret != "" {
		webhook = stripewebhooks.NewHandler(svc, cfg.StripeWebhookSecret, log)
	} else {
		log.Warn("STRIPE_WEBHOOK_SECRET not set, /webhook disabled")
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	// CORS must be registered before the routes.
	r.Use(cors.New(corsConfig(cfg.CORSOrigin)))

	routes.RegisterRoutes(r, routes.Deps{
		Log:         log,
		Verifier:    verifier,
		Roles:       st,
		Gatherer:    reg,
		Billing:     billing.NewHandler(svc, st, log),
		Memberships: memberships.NewHandler(svc, st, log),
		Users:       users.NewHandler(st, log),
		Admin:       adminapi.NewHandler(st, log),
		Webhook:     webhook,
	})

	log.Info("listening", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newVerifier(cfg *config.Config) (identity.Verifier, error) {
	if cfg.OIDCIssuerURL != "" {
		// The provider keeps this context for later key refreshes.
		return identity.NewOIDCVerifier(context.Background(), cfg.OIDCIssuerURL, cfg.OIDCClientID)
	}
	return identity.NewHMACVerifier(cfg.JWTSecret), nil
}

func corsConfig(origin string) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if origin == "*" {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
	} else {
		for _, o := range strings.Split(origin, ",") {
			c.AllowOrigins = append(c.AllowOrigins, strings.TrimSpace(o))
		}
	}
	return c
}
