package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/solemate/storefront/internal/catalog"
)

// listProducts returns every product in the catalog, in shop order.
func (h *Handler) listProducts(w http.ResponseWriter, _ *http.Request) {
	products := catalog.List()
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, p := range products {
				h.encodeProduct(e, p)
			}
		})
	})
}

// getProduct returns a single product by ID.
func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := catalog.GetByID(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		h.encodeProduct(e, *p)
	})
}

func (h *Handler) encodeProduct(e *jx.Encoder, p catalog.Product) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(p.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(p.Name) })
		e.Field("description", func(e *jx.Encoder) { e.Str(p.Description) })
		e.Field("price", func(e *jx.Encoder) { encodeDecimal(e, p.Price) })
		e.Field("category", func(e *jx.Encoder) { e.Str(string(p.Category)) })
		e.Field("image", func(e *jx.Encoder) { e.Str(h.imageURL(p.Image)) })
		e.Field("hasOptions", func(e *jx.Encoder) { e.Bool(p.HasOptions) })
		if len(p.OptionImages) > 0 {
			e.Field("optionImages", func(e *jx.Encoder) {
				e.Obj(func(e *jx.Encoder) {
					// Stable label order for socks lengths.
					for _, label := range []string{
						string(catalog.LengthAnkle),
						string(catalog.LengthMid),
						string(catalog.LengthKnee),
					} {
						if img, ok := p.OptionImages[label]; ok {
							e.Field(label, func(e *jx.Encoder) { e.Str(h.imageURL(img)) })
						}
					}
				})
			})
		}
	})
}
