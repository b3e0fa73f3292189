package handler

import (
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/solemate/storefront/internal/cart"
	"github.com/solemate/storefront/internal/catalog"
)

// cartView is the snapshot handlers encode after any cart operation: the
// lines in insertion order plus the derived totals.
type cartView struct {
	items      []cart.Item
	totalItems int
	totalPrice string
}

// snapshotCart captures a view of the session's cart under the store lock.
func (h *Handler) snapshotCart(sessionID string) cartView {
	var v cartView
	h.sessions.Mutate(sessionID, func(c *cart.Cart) {
		v.items = c.Items()
		v.totalItems = c.TotalItems()
		v.totalPrice = c.TotalPrice().String()
	})
	return v
}

func (h *Handler) encodeCartView(e *jx.Encoder, v cartView, cartOpened bool) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, item := range v.items {
					h.encodeCartItem(e, item)
				}
			})
		})
		e.Field("totalItems", func(e *jx.Encoder) { e.Int(v.totalItems) })
		e.Field("totalPrice", func(e *jx.Encoder) { e.Num(jx.Num(v.totalPrice)) })
		if cartOpened {
			e.Field("cartOpened", func(e *jx.Encoder) { e.Bool(true) })
		}
	})
}

func (h *Handler) encodeCartItem(e *jx.Encoder, item cart.Item) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("cartId", func(e *jx.Encoder) { e.Str(item.CartID) })
		e.Field("productId", func(e *jx.Encoder) { e.Str(item.ProductID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(item.Name) })
		e.Field("category", func(e *jx.Encoder) { e.Str(string(item.Category)) })
		e.Field("image", func(e *jx.Encoder) { e.Str(h.imageURL(item.Image)) })
		e.Field("price", func(e *jx.Encoder) { encodeDecimal(e, item.Price) })
		e.Field("quantity", func(e *jx.Encoder) { e.Int(item.Quantity) })
		if item.Length != "" {
			e.Field("length", func(e *jx.Encoder) { e.Str(string(item.Length)) })
		}
		if item.Age != "" {
			e.Field("age", func(e *jx.Encoder) { e.Str(string(item.Age)) })
		}
		if item.Color != "" {
			e.Field("color", func(e *jx.Encoder) { e.Str(item.Color) })
		}
		if item.Pack != "" {
			e.Field("pack", func(e *jx.Encoder) { e.Str(string(item.Pack)) })
		}
	})
}

// getCart returns the session's cart with derived totals.
func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionID(w, r)
	v := h.snapshotCart(sessionID)
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		h.encodeCartView(e, v, false)
	})
}

// addCartRequest is the decoded body of POST /api/cart/items.
type addCartRequest struct {
	ProductID string
	Quantity  int
	Sel       catalog.Selections
}

func decodeAddCartRequest(body []byte) (addCartRequest, error) {
	req := addCartRequest{Quantity: 1}
	d := jx.DecodeBytes(body)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "productId":
			req.ProductID, err = d.Str()
		case "quantity":
			req.Quantity, err = d.Int()
		case "length":
			var s string
			s, err = d.Str()
			req.Sel.Length = catalog.SockLength(s)
		case "age":
			var s string
			s, err = d.Str()
			req.Sel.Age = catalog.AgeRange(s)
		case "color":
			req.Sel.Color, err = d.Str()
		case "pack":
			var s string
			s, err = d.Str()
			req.Sel.Pack = catalog.WipePack(s)
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return req, errors.Wrap(err, "decode add request")
	}
	return req, nil
}

// addToCart resolves the product, variant identity and effective unit price,
// then merges the line into the session's cart. Adding always opens the cart
// panel on the client, signalled via the cartOpened field and the Events
// collaborator.
func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionID(w, r)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<16))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req, err := decodeAddCartRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "productId required")
		return
	}
	if req.Quantity < 1 {
		writeError(w, http.StatusUnprocessableEntity, "quantity must be greater than 0")
		return
	}

	p, err := catalog.GetByID(req.ProductID)
	if err != nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	sel := catalog.NormalizeSelections(*p, req.Sel)
	item := cart.NewItem(*p, sel, req.Quantity)
	h.sessions.Mutate(sessionID, func(c *cart.Cart) {
		c.Add(item)
	})
	h.events.CartOpened(r.Context(), sessionID)

	v := h.snapshotCart(sessionID)
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		h.encodeCartView(e, v, true)
	})
}

// updateQuantity applies a quantity delta to one cart line, clamped at 1.
func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionID(w, r)
	cartID := r.PathValue("cartID")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<12))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	delta := 0
	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		if key == "delta" {
			delta, err = d.Int()
			return err
		}
		return d.Skip()
	}); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.sessions.Mutate(sessionID, func(c *cart.Cart) {
		c.UpdateQuantity(cartID, delta)
	})

	v := h.snapshotCart(sessionID)
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		h.encodeCartView(e, v, false)
	})
}

// removeFromCart deletes one cart line. Removing an absent line is a no-op,
// not an error.
func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionID(w, r)
	cartID := r.PathValue("cartID")

	h.sessions.Mutate(sessionID, func(c *cart.Cart) {
		c.Remove(cartID)
	})

	v := h.snapshotCart(sessionID)
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		h.encodeCartView(e, v, false)
	})
}

// clearCart empties the session's cart unconditionally.
func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionID(w, r)

	h.sessions.Mutate(sessionID, func(c *cart.Cart) {
		c.Clear()
	})

	v := h.snapshotCart(sessionID)
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		h.encodeCartView(e, v, false)
	})
}
