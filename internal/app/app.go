// Package app wires the storefront together: configuration, the session
// store, the checkout service, the HTTP server with its middleware stack, and
// graceful shutdown.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/solemate/storefront/internal/cart"
	"github.com/solemate/storefront/internal/checkout"
	"github.com/solemate/storefront/internal/handler"
	"github.com/solemate/storefront/pkg/health"
	"github.com/solemate/storefront/pkg/httpmiddleware"
)

// logEvents logs the navigation-level signals the handlers emit. A real
// storefront frontend reacts to these client-side; the API records them so
// operators can follow the shopper journey in the logs.
type logEvents struct {
	lg *zap.Logger
}

func (e logEvents) CartOpened(_ context.Context, sessionID string) {
	e.lg.Debug("Cart panel opened", zap.String("session_id", sessionID))
}

func (e logEvents) CheckoutCompleted(_ context.Context, conf checkout.Confirmation) {
	e.lg.Info("Order placed",
		zap.String("order_ref", conf.OrderRef),
		zap.String("customer", conf.CustomerName),
		zap.String("amount", conf.AmountPaid.String()),
	)
}

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	// In-memory cart sessions. Carts never outlive the process.
	sessions := cart.NewSessions(cfg.Session.TTL)

	// Notification dispatcher; Shutdown releases any timers still pending
	// when the process stops.
	dispatcher := checkout.NewDispatcher(lg.Named("notify"),
		cfg.Checkout.CustomerNotifyDelay,
		cfg.Checkout.CEONotifyDelay,
	)
	defer dispatcher.Shutdown()

	checkoutSvc := checkout.NewService(sessions, dispatcher,
		cfg.Checkout.ProcessingDelay,
		lg.Named("checkout"),
	)

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddCheck(health.Liveness, "goroutines", time.Second,
		health.GoroutineCountCheck(10000))
	healthSvc.AddCheck(health.Readiness, "sessions", time.Second,
		health.BoundedStoreCheck("session store", sessions.Count, cfg.Session.MaxSessions))
	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// HTTP handlers.
	h := handler.New(
		handler.Config{ImageBaseURL: cfg.ImageBaseURL},
		sessions,
		checkoutSvc,
		logEvents{lg: lg.Named("events")},
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	mux.Handle("/api/", h.Routes())

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		// The checkout response is held open for the simulated payment
		// delay, so the write timeout must comfortably exceed it.
		WriteTimeout:   cfg.Checkout.ProcessingDelay + 10*time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
		Addr:           cfg.Addr,
		Handler: httpmiddleware.Wrap(mux,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins:     cfg.CORS.Origins,
				AllowHeaders:     []string{"Content-Type"},
				AllowCredentials: cfg.CORS.AllowCredentials,
				MaxAge:           86400,
			}),
			httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
				Max:           cfg.RateLimit.Max,
				Window:        cfg.RateLimit.Window,
				SessionCookie: handler.SessionCookie,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.Instrument("storefront-api", m),
			httpmiddleware.LogRequests(),
		),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return sessions.Sweep(ctx, cfg.Session.SweepInterval, lg.Named("sessions"))
	})

	// Graceful shutdown: flip readiness, drain, then stop the server.
	g.Go(func() error {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		return nil
	})

	g.Go(func() error {
		lg.Info("Server listening", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server")
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
