package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"voyager/cmd/fx/account_fx"
	"voyager/cmd/fx/booking_fx"
	"voyager/cmd/fx/config_fx"
	"voyager/cmd/fx/controllers_fx"
	"voyager/cmd/fx/db_fx"
	"voyager/cmd/fx/events_fx"
	"voyager/cmd/fx/itinerary_fx"
	"voyager/cmd/fx/plan_fx"
	"voyager/cmd/fx/session_fx"
	"voyager/internal/api/controllers"
	"voyager/internal/config"
	"voyager/pkg/middleware"
	"voyager/pkg/utils"
)

func main() {
	app := fx.New(
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		config_fx.Module,
		db_fx.Module,
		session_fx.Module,
		events_fx.Module,
		account_fx.Module,
		plan_fx.Module,
		booking_fx.Module,
		itinerary_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log *zap.Logger) {
	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			listener, err := net.Listen("tcp", server.Addr)
			if err != nil {
				return err
			}
			log.Info("starting HTTP server", zap.String("addr", server.Addr), zap.String("env", cfg.App.Env))
			go func() {
				if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return server.Shutdown(ctx)
		},
	})
}

// Handlers groups every controller the router needs.
type Handlers struct {
	fx.In

	Account    *controllers.AccountController
	Generation *controllers.GenerationController
	Picks      *controllers.PickController
	Quotes     *controllers.QuoteController
	Plans      *controllers.PlanController
	Shares     *controllers.ShareController
	Bookings   *controllers.BookingController
}

func ProvideRouter(cfg *config.Config, log *zap.Logger, jwtManager *utils.JWTManager, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware(cfg.App.CORSOrigins))

	limiter := middleware.NewRateLimiter(cfg.RateLimit.GeneratePerMinute, cfg.RateLimit.Burst)
	RegisterRoutes(r, middleware.JWTAuthMiddleware(jwtManager), limiter.Limit(), h)

	return r
}

func RegisterRoutes(r *gin.Engine, auth, limit gin.HandlerFunc, h Handlers) {
	r.GET("/healthz", func(c *gin.Context) {
		utils.RespondSuccess(c, gin.H{"ok": true}, "")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	accountGroup := r.Group("/accounts")
	accountGroup.POST("/register", h.Account.Register)
	accountGroup.POST("/login", h.Account.Login)
	accountGroup.GET("/profile", auth, h.Account.GetProfile)
	accountGroup.PUT("/profile", auth, h.Account.UpdateProfile)

	generationGroup := r.Group("/generation", auth)
	generationGroup.PUT("/draft", h.Generation.SaveDraft)
	generationGroup.POST("/mount", h.Generation.Mount)
	generationGroup.POST("/submit", limit, h.Generation.Submit)
	generationGroup.POST("/retry", h.Generation.Retry)
	generationGroup.GET("/status", h.Generation.Status)
	generationGroup.DELETE("/session", h.Generation.Teardown)

	picksGroup := r.Group("/picks", auth)
	picksGroup.GET("", h.Picks.ListPicks)
	picksGroup.POST("", h.Picks.AddPick)
	picksGroup.DELETE("", h.Picks.RemovePick)
	picksGroup.POST("/submit", limit, h.Picks.SubmitPicks)

	r.POST("/quotes", auth, h.Quotes.Quote)

	plansGroup := r.Group("/plans", auth)
	plansGroup.GET("", h.Plans.ListPlans)
	plansGroup.POST("", h.Plans.CreatePlan)
	plansGroup.GET("/:id", h.Plans.GetPlan)

	sharesGroup := r.Group("/shares", auth)
	sharesGroup.POST("", h.Shares.CreateShare)
	sharesGroup.POST("/join", h.Shares.JoinShare)
	sharesGroup.GET("/:code/qr", h.Shares.QRCode)

	bookingsGroup := r.Group("/bookings", auth)
	bookingsGroup.POST("/finalize", h.Bookings.Finalize)
	bookingsGroup.GET("", h.Bookings.ListBookings)
	bookingsGroup.GET("/:id", h.Bookings.GetBooking)
	bookingsGroup.GET("/:id/document.pdf", h.Bookings.DownloadDocument)
}
