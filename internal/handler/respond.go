package handler

import (
	"net/http"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// writeJSON encodes one value with jx and writes it with the given status.
func writeJSON(w http.ResponseWriter, status int, encode func(e *jx.Encoder)) {
	var e jx.Encoder
	encode(&e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// writeError writes the standard error body: {"code":N,"message":"..."}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("code", func(e *jx.Encoder) { e.Int(status) })
			e.Field("message", func(e *jx.Encoder) { e.Str(msg) })
		})
	})
}

// encodeDecimal writes a decimal as a bare JSON number, preserving the exact
// rupee value without a float round trip.
func encodeDecimal(e *jx.Encoder, v decimal.Decimal) {
	e.Num(jx.Num(v.String()))
}
