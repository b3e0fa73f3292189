// Package catalog holds the fixed product catalog and variant pricing rules.
//
// The catalog is compiled into the binary: it is read by the rest of the
// application but never mutated at runtime. Prices are whole rupees.
package catalog

import (
	"maps"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Category enumerates the product categories in the catalog.
type Category string

const (
	CategorySocks       Category = "Socks"
	CategoryCare        Category = "Care"
	CategoryAccessories Category = "Accessories"
)

// Product represents a catalog item available for purchase.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Category    Category
	Image       string
	HasOptions  bool

	// OptionImages maps a variant label (e.g. a sock length) to an alternate
	// image reference. Populated only for variant-bearing products.
	OptionImages map[string]string
}

// directImageLink converts a Google Drive asset ID into a direct image URL.
func directImageLink(id string) string {
	return "https://lh3.googleusercontent.com/d/" + id
}

var (
	imgPouches   = directImageLink("1ZnBuvu4aPmuPJkbriGRt1JZKuHNglTYD")
	imgWipes     = directImageLink("1tS3AGwPHUEIdAvXlOvT_k22YfZBGbnWL")
	imgTape      = directImageLink("1CCl2fBqy1mqcLCn_yQ7aLh1pTROLX0j7")
	imgSockKnee  = directImageLink("1UYjoexWIeQZv_uKeKZ3gjc-giqiDvKLy")
	imgSockMid   = directImageLink("1mn7nAN6T0bGxk62FVWrb3e6TnFDkTDZW")
	imgSockAnkle = directImageLink("1qbuV9lxWnvhvp0eLYv3EtO5NUKTxKE8X")
)

// Product IDs referenced by the pricing and cart identity rules.
const (
	ProductIDSocks   = "socks-premium"
	ProductIDTape    = "anti-bite-tape"
	ProductIDPouches = "perfume-pouches"
	ProductIDWipes   = "shoe-wipes"
)

// products is the authoritative catalog, ordered as presented in the shop.
var products = []Product{
	{
		ID:          ProductIDSocks,
		Name:        "Memory Foam Socks",
		Description: "High-quality breathable cotton socks designed for ultimate comfort and durability. Available in multiple lengths and sizes.",
		Price:       decimal.NewFromInt(169),
		Category:    CategorySocks,
		Image:       imgSockAnkle,
		HasOptions:  true,
		OptionImages: map[string]string{
			string(LengthAnkle): imgSockAnkle,
			string(LengthMid):   imgSockMid,
			string(LengthKnee):  imgSockKnee,
		},
	},
	{
		ID:          ProductIDTape,
		Name:        "Transparent Shoe Bite Tape",
		Description: "Protect your heels and feet from painful blisters. Our medical-grade transparent tape is discreet and stays in place all day.",
		Price:       decimal.NewFromInt(119),
		Category:    CategoryAccessories,
		Image:       imgTape,
	},
	{
		ID:          ProductIDPouches,
		Name:        "Deodorizer Pouches",
		Description: "Keep your footwear smelling fresh with our luxury perfume pouches. Effectively neutralizes odors with a long-lasting, refreshing scent.",
		Price:       decimal.NewFromInt(149),
		Category:    CategoryAccessories,
		Image:       imgPouches,
	},
	{
		ID:          ProductIDWipes,
		Name:        "Shoe Cleaning Wipes",
		Description: "Instant cleaning on the go. These dual-textured wipes remove dirt and scuffs from sneakers, leather, and rubber easily. Available in packs of 10 and 25.",
		Price:       decimal.NewFromInt(149),
		Category:    CategoryCare,
		HasOptions:  true,
		Image:       imgWipes,
	},
}

// clone returns a copy that shares no mutable state with the catalog; the
// value copy alone would still alias the OptionImages map.
func (p Product) clone() Product {
	p.OptionImages = maps.Clone(p.OptionImages)
	return p
}

// byID indexes products for GetByID. Built once at init.
var byID = func() map[string]*Product {
	m := make(map[string]*Product, len(products))
	for i := range products {
		m[products[i].ID] = &products[i]
	}
	return m
}()

// List returns every product in the catalog, in shop order.
// The returned slice is a copy; callers may not mutate the catalog through it.
func List() []Product {
	out := make([]Product, len(products))
	for i := range products {
		out[i] = products[i].clone()
	}
	return out
}

// GetByID returns a single product by ID, or ErrNotFound.
func GetByID(id string) (*Product, error) {
	p, ok := byID[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "product %q", id)
	}
	cp := p.clone()
	return &cp, nil
}
