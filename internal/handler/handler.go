// Package handler exposes the storefront over HTTP: catalog reads, the
// session cart operations, and the checkout flow. Handlers stay thin and
// delegate all business logic to the domain packages; requests and responses
// are encoded by hand with jx.
package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/solemate/storefront/internal/cart"
	"github.com/solemate/storefront/internal/checkout"
)

// SessionCookie names the cookie carrying the cart session ID. The rate
// limiter keys on it too, so one shopper cannot starve the others behind a
// shared NAT.
const SessionCookie = "solemate_session"

// Events is the navigation-level collaborator the handlers signal: the cart
// panel opening after an add, and the redirect to the confirmation view after
// a completed checkout. Implementations must not block.
type Events interface {
	CartOpened(ctx context.Context, sessionID string)
	CheckoutCompleted(ctx context.Context, conf checkout.Confirmation)
}

// NopEvents is an Events implementation that ignores every signal.
type NopEvents struct{}

func (NopEvents) CartOpened(context.Context, string)                       {}
func (NopEvents) CheckoutCompleted(context.Context, checkout.Confirmation) {}

// Config holds non-dependency configuration for the Handler.
type Config struct {
	// ImageBaseURL is prepended to relative image paths in product responses.
	// Absolute URLs (the catalog default) are returned as-is.
	ImageBaseURL string
}

// Handler routes the storefront API.
type Handler struct {
	sessions     *cart.Sessions
	checkout     *checkout.Service
	events       Events
	imageBaseURL string
}

// New constructs a Handler with the required domain dependencies.
func New(cfg Config, sessions *cart.Sessions, checkoutSvc *checkout.Service, events Events) *Handler {
	if events == nil {
		events = NopEvents{}
	}
	return &Handler{
		sessions:     sessions,
		checkout:     checkoutSvc,
		events:       events,
		imageBaseURL: cfg.ImageBaseURL,
	}
}

// Routes returns the API route table.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products", h.listProducts)
	mux.HandleFunc("GET /api/products/{id}", h.getProduct)
	mux.HandleFunc("GET /api/cart", h.getCart)
	mux.HandleFunc("POST /api/cart/items", h.addToCart)
	mux.HandleFunc("PATCH /api/cart/items/{cartID}", h.updateQuantity)
	mux.HandleFunc("DELETE /api/cart/items/{cartID}", h.removeFromCart)
	mux.HandleFunc("DELETE /api/cart", h.clearCart)
	mux.HandleFunc("GET /api/checkout", h.getQuote)
	mux.HandleFunc("POST /api/checkout", h.submitCheckout)
	return mux
}

// sessionID returns the request's cart session, minting a new one (and
// setting the cookie) when the request carries none or an invalid value.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}

	id := cart.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// imageURL resolves an image reference against the configured base URL.
func (h *Handler) imageURL(image string) string {
	if image == "" || strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	return h.imageBaseURL + image
}
