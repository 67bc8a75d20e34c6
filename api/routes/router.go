package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/washifyapp/driver-backend/api/controllers"
	"github.com/washifyapp/driver-backend/api/middleware"
	"github.com/washifyapp/driver-backend/internal/catalog"
	"github.com/washifyapp/driver-backend/internal/orders"
	"github.com/washifyapp/driver-backend/internal/otp"
	"github.com/washifyapp/driver-backend/internal/vans"
	pkgauth "github.com/washifyapp/driver-backend/pkg/auth"
	"github.com/washifyapp/driver-backend/pkg/config"
	"github.com/washifyapp/driver-backend/pkg/logger"
	"github.com/washifyapp/driver-backend/pkg/redis"
)

// NewRouter assembles the driver API. The redis client doubles as the rate
// limit store and a readiness dependency.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	otpService otp.Service,
	ordersService orders.Service,
	vansService vans.Service,
	catalogService catalog.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	sendPolicy := middleware.NewOTPRateLimitPolicy(
		"otp_send",
		cfg.RateLimit.OTPSendWindow,
		cfg.RateLimit.OTPSendIPLimit,
		cfg.RateLimit.OTPSendPhoneLimit,
	)
	verifyPolicy := middleware.NewOTPRateLimitPolicy(
		"otp_verify",
		cfg.RateLimit.OTPVerifyWindow,
		cfg.RateLimit.OTPVerifyIPLimit,
		0,
	)
	otpLimiter := func(policy middleware.OTPRateLimitPolicy) func(http.Handler) http.Handler {
		if redisClient == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return middleware.OTPRateLimit(policy, redisClient, logg)
	}

	readyDeps := map[string]controllers.Pinger{"postgres": dbP}
	if redisClient != nil {
		readyDeps["redis"] = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readyDeps))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/driver", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(otpLimiter(sendPolicy)).Post("/send-otp", controllers.SendOTP(otpService, logg))
			r.With(otpLimiter(verifyPolicy)).Post("/verify-otp", controllers.VerifyOTP(otpService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.DriverAuth(cfg.JWT, logg))
			r.Use(middleware.RequireRole(pkgauth.RoleDriver, logg))

			r.Get("/ping", controllers.DriverPing())
			r.Get("/van-details", controllers.VanDetails(vansService, logg))

			r.Route("/services", func(r chi.Router) {
				r.Get("/list", controllers.CatalogServices(catalogService, logg))
				r.Get("/details", controllers.CatalogServiceDetails(catalogService, logg))
				r.Get("/search", controllers.CatalogSearch(catalogService, logg))
				r.Get("/all", controllers.CatalogAll(catalogService, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.ListAssignedOrders(ordersService, logg))
				r.Get("/{orderId}", controllers.GetOrder(ordersService, logg))
				r.Post("/status", controllers.UpdateOrderStatus(ordersService, logg))
				r.Post("/payment", controllers.MarkOrderPayment(ordersService, logg))
				r.Post("/add-items", controllers.AddOrderItems(ordersService, logg))
			})
		})
	})

	return r
}
