// Package cart implements the in-memory shopping cart: an ordered sequence of
// line items keyed by a composite variant identity, with merge-on-add
// semantics and totals derived on every read.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/solemate/storefront/internal/catalog"
)

// Item is one line in the cart. Price is the effective unit price resolved at
// the moment of adding; for variant-priced products it overrides the catalog
// base price. Selections are populated only for the categories that define
// them.
type Item struct {
	CartID      string
	ProductID   string
	Name        string
	Description string
	Category    catalog.Category
	Image       string
	Price       decimal.Decimal
	Quantity    int

	Length catalog.SockLength
	Age    catalog.AgeRange
	Color  string
	Pack   catalog.WipePack
}

// ItemKey composes the cart line identity for a product and its selections.
// Socks are keyed by length, age and color; wipes by pack size; everything
// else by product ID alone. Two additions with the same key merge into one
// line.
func ItemKey(p catalog.Product, sel catalog.Selections) string {
	switch {
	case p.Category == catalog.CategorySocks:
		return p.ID + "-" + string(sel.Length) + "-" + string(sel.Age) + "-" + sel.Color
	case p.ID == catalog.ProductIDWipes:
		return p.ID + "-" + string(sel.Pack)
	default:
		return p.ID
	}
}

// NewItem builds a fully-resolved cart line for a product: identity from
// ItemKey, unit price from the variant pricing rules, and only the
// selections that apply to the product's category.
func NewItem(p catalog.Product, sel catalog.Selections, quantity int) Item {
	item := Item{
		CartID:      ItemKey(p, sel),
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
		Price:       catalog.ResolvePrice(p, sel),
		Quantity:    quantity,
	}
	if p.Category == catalog.CategorySocks {
		item.Length = sel.Length
		item.Age = sel.Age
		item.Color = sel.Color
		if img, ok := p.OptionImages[string(sel.Length)]; ok {
			item.Image = img
		}
	}
	if p.ID == catalog.ProductIDWipes {
		item.Pack = sel.Pack
	}
	return item
}

// Cart is an ordered collection of items, at most one per CartID.
// It is not safe for concurrent use; Sessions serializes access.
type Cart struct {
	items []Item
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add inserts item into the cart. When a line with the same CartID already
// exists its quantity is increased by item.Quantity and it keeps its position
// and remaining fields (identity implies identical variant fields).
// Otherwise the item is appended. Add never fails.
func (c *Cart) Add(item Item) {
	for i := range c.items {
		if c.items[i].CartID == item.CartID {
			c.items[i].Quantity += item.Quantity
			return
		}
	}
	c.items = append(c.items, item)
}

// Remove deletes the line with the given CartID. Absent IDs are a no-op.
func (c *Cart) Remove(cartID string) {
	for i := range c.items {
		if c.items[i].CartID == cartID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity adjusts the quantity of the line with the given CartID by
// delta, clamped so quantity never drops below 1. Removal is only possible
// through Remove. Absent IDs are a no-op.
func (c *Cart) UpdateQuantity(cartID string, delta int) {
	for i := range c.items {
		if c.items[i].CartID == cartID {
			q := c.items[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			c.items[i].Quantity = q
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of distinct lines in the cart.
func (c *Cart) Len() int {
	return len(c.items)
}

// TotalItems derives the sum of quantities over all lines.
func (c *Cart) TotalItems() int {
	total := 0
	for i := range c.items {
		total += c.items[i].Quantity
	}
	return total
}

// TotalPrice derives the sum of price x quantity over all lines. Totals are
// recomputed on every read rather than cached so they cannot drift from the
// sequence.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range c.items {
		qty := decimal.NewFromInt(int64(c.items[i].Quantity))
		total = total.Add(c.items[i].Price.Mul(qty))
	}
	return total
}
