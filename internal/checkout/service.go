package checkout

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/solemate/storefront/internal/cart"
)

// ErrEmptyCart is returned when checkout is submitted for an empty cart.
var ErrEmptyCart = errors.New("cart is empty")

// Confirmation is the terminal result of a completed checkout. It is handed
// to the caller for display and never persisted.
type Confirmation struct {
	OrderRef      string
	CustomerName  string
	CustomerPhone string
	AmountPaid    decimal.Decimal
	CompletedAt   time.Time
}

// Service runs the checkout flow: submit, a fixed simulated processing delay,
// then completion. There is no failure state; every accepted submission
// completes. Once submitted the flow runs to the end even if the submitting
// client goes away.
type Service struct {
	sessions   *cart.Sessions
	dispatcher *Dispatcher
	delay      time.Duration
	lg         *zap.Logger

	tracer trace.Tracer
	orders metric.Int64Counter
}

// NewService creates a checkout Service. processingDelay is the simulated
// payment verification time between submission and completion.
func NewService(sessions *cart.Sessions, dispatcher *Dispatcher, processingDelay time.Duration, lg *zap.Logger) *Service {
	orders, _ := otel.Meter("storefront.checkout").Int64Counter("checkout.orders_completed",
		metric.WithDescription("Orders that completed the checkout flow"))
	return &Service{
		sessions:   sessions,
		dispatcher: dispatcher,
		delay:      processingDelay,
		lg:         lg,
		tracer:     otel.Tracer("storefront.checkout"),
		orders:     orders,
	}
}

// Quote returns the current price breakdown for the session's cart.
func (s *Service) Quote(sessionID string) Quote {
	var subtotal decimal.Decimal
	s.sessions.Mutate(sessionID, func(c *cart.Cart) {
		subtotal = c.TotalPrice()
	})
	return NewQuote(subtotal)
}

// Submit starts the checkout flow for the session's cart. The returned
// channel delivers exactly one Confirmation after the processing delay; by
// then the cart has been cleared and the post-order notifications scheduled.
// The amount charged is the grand total quoted at submission time.
//
// Submitting an empty cart returns ErrEmptyCart and starts nothing.
func (s *Service) Submit(sessionID string, form Form) (<-chan Confirmation, error) {
	form.sanitize()

	var (
		empty bool
		items int
		quote Quote
	)
	s.sessions.Mutate(sessionID, func(c *cart.Cart) {
		empty = c.Len() == 0
		items = c.TotalItems()
		quote = NewQuote(c.TotalPrice())
	})
	if empty {
		return nil, ErrEmptyCart
	}

	done := make(chan Confirmation, 1)
	go s.complete(sessionID, form, quote, items, done)
	return done, nil
}

// complete waits out the simulated processing delay, clears the cart exactly
// once, and delivers the confirmation. It deliberately does not take a
// context: the flow is not interruptible after submission.
func (s *Service) complete(sessionID string, form Form, quote Quote, items int, done chan<- Confirmation) {
	// A fresh root context: the span must not inherit the HTTP request's
	// cancellation.
	ctx, span := s.tracer.Start(context.Background(), "checkout.complete",
		trace.WithAttributes(
			attribute.Int("cart.items", items),
			attribute.String("payment.method", form.PaymentMethod),
		))
	defer span.End()

	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	<-timer.C

	s.sessions.Mutate(sessionID, func(c *cart.Cart) {
		c.Clear()
	})

	conf := Confirmation{
		OrderRef:      NewOrderRef(),
		CustomerName:  form.FirstName,
		CustomerPhone: form.Phone,
		AmountPaid:    quote.GrandTotal,
		CompletedAt:   time.Now(),
	}

	s.lg.Info("Checkout complete",
		zap.String("order_ref", conf.OrderRef),
		zap.String("amount", conf.AmountPaid.String()),
		zap.Int("items", items),
		zap.String("payment_method", form.PaymentMethod),
	)

	s.orders.Add(ctx, 1, metric.WithAttributes(
		attribute.String("payment.method", form.PaymentMethod),
	))

	s.dispatcher.DispatchOrder(conf)
	done <- conf
}
