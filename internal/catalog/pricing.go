package catalog

import "github.com/shopspring/decimal"

// SockLength enumerates the sock length variants.
type SockLength string

const (
	LengthAnkle SockLength = "Ankle Length"
	LengthMid   SockLength = "Mid Length"
	LengthKnee  SockLength = "Knee Length"
)

// AgeRange enumerates the sock age/size variants.
type AgeRange string

const (
	Age9to12  AgeRange = "9 - 12 Years"
	Age13to16 AgeRange = "13 - 16 Years"
	Age17to20 AgeRange = "17 - 20 Years"
)

// WipePack enumerates the wipe pack size variants.
type WipePack string

const (
	PackOf10 WipePack = "Pack of 10"
	PackOf25 WipePack = "Pack of 25"
)

// Colors lists the sock colors offered, in display order.
var Colors = []string{
	"Black", "Grey", "White", "Navy", "Blue",
	"Beige", "Light Blue", "Saffron", "Neon Yellow", "Neon Green",
}

// Selections carries the variant attributes a customer picked on the product
// detail page. Fields that do not apply to a product are left empty.
type Selections struct {
	Length SockLength
	Age    AgeRange
	Color  string
	Pack   WipePack
}

// NormalizeSelections fills product-appropriate defaults for missing variant
// fields (the detail page's initial state: ankle length, 17-20 years, black,
// pack of 10) and clears fields that do not apply to the product, so that
// identical effective choices always produce identical cart identities.
func NormalizeSelections(p Product, sel Selections) Selections {
	if p.Category == CategorySocks {
		if sel.Length == "" {
			sel.Length = LengthAnkle
		}
		if sel.Age == "" {
			sel.Age = Age17to20
		}
		if sel.Color == "" {
			sel.Color = Colors[0]
		}
	} else {
		sel.Length, sel.Age, sel.Color = "", "", ""
	}

	if p.ID == ProductIDWipes {
		if sel.Pack == "" {
			sel.Pack = PackOf10
		}
	} else {
		sel.Pack = ""
	}
	return sel
}

// Pack-size price tiers for the wipes product. The larger pack costs more
// than the catalog base price; the smaller pack also overrides it.
var (
	priceWipesPack10 = decimal.NewFromInt(249)
	priceWipesPack25 = decimal.NewFromInt(599)
)

// ResolvePrice computes the effective unit price for a product given the
// customer's variant selections. Only the wipes product carries
// variant-dependent pricing; every other selection (length, age, color) has
// no price effect. Pure and total: any input yields a price.
func ResolvePrice(p Product, sel Selections) decimal.Decimal {
	if p.ID != ProductIDWipes {
		return p.Price
	}
	if sel.Pack == PackOf25 {
		return priceWipesPack25
	}
	return priceWipesPack10
}
