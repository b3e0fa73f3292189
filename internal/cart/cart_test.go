package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solemate/storefront/internal/catalog"
)

// --- Helpers ---

func mustProduct(t *testing.T, id string) catalog.Product {
	t.Helper()
	p, err := catalog.GetByID(id)
	require.NoError(t, err)
	return *p
}

func sockItem(t *testing.T, length catalog.SockLength, color string, qty int) Item {
	t.Helper()
	return NewItem(mustProduct(t, catalog.ProductIDSocks), catalog.Selections{
		Length: length,
		Age:    catalog.Age17to20,
		Color:  color,
	}, qty)
}

// --- ItemKey ---

func TestItemKey(t *testing.T) {
	socks := mustProduct(t, catalog.ProductIDSocks)
	wipes := mustProduct(t, catalog.ProductIDWipes)
	tape := mustProduct(t, catalog.ProductIDTape)

	tests := []struct {
		name string
		p    catalog.Product
		sel  catalog.Selections
		want string
	}{
		{
			name: "socks key includes length, age and color",
			p:    socks,
			sel:  catalog.Selections{Length: catalog.LengthAnkle, Age: catalog.Age17to20, Color: "Black"},
			want: "socks-premium-Ankle Length-17 - 20 Years-Black",
		},
		{
			name: "wipes key includes pack size",
			p:    wipes,
			sel:  catalog.Selections{Pack: catalog.PackOf25},
			want: "shoe-wipes-Pack of 25",
		},
		{
			name: "plain product keyed by ID alone",
			p:    tape,
			sel:  catalog.Selections{Color: "Black"},
			want: "anti-bite-tape",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ItemKey(tt.p, tt.sel))
		})
	}
}

// --- NewItem ---

func TestNewItem_ResolvesPriceAndSelections(t *testing.T) {
	wipes := mustProduct(t, catalog.ProductIDWipes)
	item := NewItem(wipes, catalog.Selections{Pack: catalog.PackOf25}, 2)

	assert.Equal(t, "shoe-wipes-Pack of 25", item.CartID)
	assert.True(t, decimal.NewFromInt(599).Equal(item.Price))
	assert.Equal(t, catalog.PackOf25, item.Pack)
	assert.Empty(t, item.Length)
	assert.Empty(t, item.Color)
	assert.Equal(t, 2, item.Quantity)
}

func TestNewItem_SocksUseLengthImage(t *testing.T) {
	socks := mustProduct(t, catalog.ProductIDSocks)
	item := NewItem(socks, catalog.Selections{
		Length: catalog.LengthKnee,
		Age:    catalog.Age9to12,
		Color:  "Navy",
	}, 1)

	assert.Equal(t, socks.OptionImages[string(catalog.LengthKnee)], item.Image)
	assert.True(t, socks.Price.Equal(item.Price))
	assert.Equal(t, "Navy", item.Color)
	assert.Empty(t, item.Pack)
}

// --- Add ---

func TestAdd_MergesSameIdentity(t *testing.T) {
	c := New()
	c.Add(sockItem(t, catalog.LengthAnkle, "Black", 1))
	c.Add(sockItem(t, catalog.LengthAnkle, "Black", 2))
	c.Add(sockItem(t, catalog.LengthAnkle, "Black", 3))

	require.Equal(t, 1, c.Len())
	assert.Equal(t, 6, c.Items()[0].Quantity)
	assert.Equal(t, 6, c.TotalItems())
}

func TestAdd_DistinctIdentitiesAppendInOrder(t *testing.T) {
	c := New()
	c.Add(sockItem(t, catalog.LengthAnkle, "Black", 1))
	c.Add(sockItem(t, catalog.LengthMid, "Black", 1))
	c.Add(sockItem(t, catalog.LengthAnkle, "Grey", 1))

	require.Equal(t, 3, c.Len())
	items := c.Items()
	assert.Contains(t, items[0].CartID, "Ankle Length")
	assert.Contains(t, items[1].CartID, "Mid Length")
	assert.Equal(t, "Grey", items[2].Color)
}

func TestAdd_MergeRetainsFirstInsertionPosition(t *testing.T) {
	c := New()
	first := sockItem(t, catalog.LengthAnkle, "Black", 1)
	c.Add(first)
	c.Add(sockItem(t, catalog.LengthMid, "Black", 1))
	c.Add(sockItem(t, catalog.LengthAnkle, "Black", 5))

	require.Equal(t, 2, c.Len())
	items := c.Items()
	assert.Equal(t, first.CartID, items[0].CartID)
	assert.Equal(t, 6, items[0].Quantity)
}

func TestAdd_SameProductDifferentVariantsStayDistinct(t *testing.T) {
	// Two sock lines that differ only in length are separate cart entries.
	c := New()
	c.Add(sockItem(t, catalog.LengthAnkle, "Black", 1))
	c.Add(sockItem(t, catalog.LengthMid, "Black", 1))

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 2, c.TotalItems())
}

// --- Remove ---

func TestRemove(t *testing.T) {
	c := New()
	a := sockItem(t, catalog.LengthAnkle, "Black", 1)
	b := sockItem(t, catalog.LengthMid, "Black", 1)
	c.Add(a)
	c.Add(b)

	c.Remove(a.CartID)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, b.CartID, c.Items()[0].CartID)
}

func TestRemove_AbsentIsNoOp(t *testing.T) {
	c := New()
	c.Add(sockItem(t, catalog.LengthAnkle, "Black", 2))

	c.Remove("no-such-line")
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 2, c.TotalItems())
}

// --- UpdateQuantity ---

func TestUpdateQuantity(t *testing.T) {
	item := sockItem(t, catalog.LengthAnkle, "Black", 2)
	tests := []struct {
		name  string
		delta int
		want  int
	}{
		{"increment", 3, 5},
		{"decrement", -1, 1},
		{"decrement clamps at one", -2, 1},
		{"large negative delta clamps at one", -1000, 1},
		{"zero delta", 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.Add(item)
			c.UpdateQuantity(item.CartID, tt.delta)
			assert.Equal(t, tt.want, c.Items()[0].Quantity)
		})
	}
}

func TestUpdateQuantity_AbsentIsNoOp(t *testing.T) {
	c := New()
	c.Add(sockItem(t, catalog.LengthAnkle, "Black", 2))
	c.UpdateQuantity("no-such-line", 5)
	assert.Equal(t, 2, c.TotalItems())
}

// --- Clear and totals ---

func TestClear(t *testing.T) {
	c := New()
	c.Add(sockItem(t, catalog.LengthAnkle, "Black", 3))
	c.Add(sockItem(t, catalog.LengthMid, "White", 1))

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.TotalItems())
	assert.True(t, decimal.Zero.Equal(c.TotalPrice()))

	// Clearing an already-empty cart is fine too.
	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestTotals_DerivedAndIdempotent(t *testing.T) {
	c := New()
	c.Add(sockItem(t, catalog.LengthAnkle, "Black", 2)) // 2 x 169
	wipes := mustProduct(t, catalog.ProductIDWipes)
	c.Add(NewItem(wipes, catalog.Selections{Pack: catalog.PackOf10}, 3)) // 3 x 249

	wantPrice := decimal.NewFromInt(2*169 + 3*249)
	assert.Equal(t, 5, c.TotalItems())
	assert.True(t, wantPrice.Equal(c.TotalPrice()))

	// Recomputing without mutation yields identical results.
	assert.Equal(t, 5, c.TotalItems())
	assert.True(t, wantPrice.Equal(c.TotalPrice()))
}
