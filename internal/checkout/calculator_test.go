package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestShippingCost(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		want     int64
	}{
		{"small order pays flat fee", 100, 40},
		{"exactly at threshold still pays", 500, 40},
		{"one rupee over threshold ships free", 501, 0},
		{"large order ships free", 2000, 0},
		{"empty cart pays flat fee", 0, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShippingCost(d(tt.subtotal))
			assert.True(t, d(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestTax(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		want     int64
	}{
		{"round thousand", 1000, 120},
		{"fraction below half rounds down", 169, 20}, // 20.28
		{"fraction above half rounds up", 438, 53},   // 52.56
		{"zero subtotal", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tax(d(tt.subtotal))
			assert.True(t, d(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestNewQuote(t *testing.T) {
	q := NewQuote(d(1000))
	assert.True(t, d(1000).Equal(q.Subtotal))
	assert.True(t, decimal.Zero.Equal(q.Shipping))
	assert.True(t, d(120).Equal(q.Tax))
	assert.True(t, d(1120).Equal(q.GrandTotal))

	// At the boundary shipping still applies: 500 + 40 + 60.
	q = NewQuote(d(500))
	assert.True(t, d(40).Equal(q.Shipping))
	assert.True(t, d(60).Equal(q.Tax))
	assert.True(t, d(600).Equal(q.GrandTotal))
}

func TestNewQuote_Idempotent(t *testing.T) {
	a := NewQuote(d(737))
	b := NewQuote(d(737))
	assert.True(t, a.GrandTotal.Equal(b.GrandTotal))
	assert.True(t, a.Tax.Equal(b.Tax))
	assert.True(t, a.Shipping.Equal(b.Shipping))
}
