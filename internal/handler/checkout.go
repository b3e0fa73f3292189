package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/solemate/storefront/internal/checkout"
)

// getQuote returns the price breakdown for the session's current cart.
func (h *Handler) getQuote(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionID(w, r)
	q := h.checkout.Quote(sessionID)

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("subtotal", func(e *jx.Encoder) { encodeDecimal(e, q.Subtotal) })
			e.Field("shipping", func(e *jx.Encoder) { encodeDecimal(e, q.Shipping) })
			e.Field("tax", func(e *jx.Encoder) { encodeDecimal(e, q.Tax) })
			e.Field("grandTotal", func(e *jx.Encoder) { encodeDecimal(e, q.GrandTotal) })
		})
	})
}

func decodeCheckoutForm(body []byte) (checkout.Form, error) {
	var f checkout.Form
	d := jx.DecodeBytes(body)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "firstName":
			f.FirstName, err = d.Str()
		case "lastName":
			f.LastName, err = d.Str()
		case "email":
			f.Email, err = d.Str()
		case "phone":
			f.Phone, err = d.Str()
		case "address":
			f.Address, err = d.Str()
		case "city":
			f.City, err = d.Str()
		case "pincode":
			f.Pincode, err = d.Str()
		case "paymentMethod":
			f.PaymentMethod, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return f, errors.Wrap(err, "decode checkout form")
	}
	return f, nil
}

// requiredFormFields checks presence of every form field. The values beyond
// phone/pincode are opaque to the flow; they only have to be there.
func requiredFormFields(f checkout.Form) string {
	switch {
	case f.FirstName == "":
		return "firstName"
	case f.LastName == "":
		return "lastName"
	case f.Email == "":
		return "email"
	case f.Phone == "":
		return "phone"
	case f.Address == "":
		return "address"
	case f.City == "":
		return "city"
	case f.Pincode == "":
		return "pincode"
	}
	return ""
}

// submitCheckout starts the checkout flow and responds once the simulated
// payment verification completes. The flow itself is not tied to the request
// context: a client that disconnects mid-verification still gets its cart
// cleared and its order completed.
func (h *Handler) submitCheckout(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionID(w, r)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<16))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	form, err := decodeCheckoutForm(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if missing := requiredFormFields(form); missing != "" {
		writeError(w, http.StatusBadRequest, missing+" required")
		return
	}
	if form.PaymentMethod == "" {
		form.PaymentMethod = "UPI"
	}

	done, err := h.checkout.Submit(sessionID, form)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			writeError(w, http.StatusConflict, "cart is empty")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	conf := <-done
	h.events.CheckoutCompleted(r.Context(), conf)

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("orderId", func(e *jx.Encoder) { e.Str(conf.OrderRef) })
			e.Field("customerName", func(e *jx.Encoder) { e.Str(conf.CustomerName) })
			e.Field("customerPhone", func(e *jx.Encoder) { e.Str(conf.CustomerPhone) })
			e.Field("amountPaid", func(e *jx.Encoder) { encodeDecimal(e, conf.AmountPaid) })
			e.Field("completedAt", func(e *jx.Encoder) { e.Str(conf.CompletedAt.UTC().Format(time.RFC3339)) })
		})
	})
}
