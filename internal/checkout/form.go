package checkout

import "strings"

// Maximum digit lengths for the numeric form fields.
const (
	maxPhoneDigits   = 10
	maxPincodeDigits = 6
)

// Form carries the checkout form fields. Only Phone and Pincode have
// behavior attached (digit stripping and length clamping); the rest are
// opaque display data carried through to the confirmation.
type Form struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Address       string
	City          string
	Pincode       string
	PaymentMethod string
}

// sanitize normalizes the numeric fields in place: non-digits are silently
// stripped and the result truncated to the field's maximum length.
func (f *Form) sanitize() {
	f.Phone = clampDigits(f.Phone, maxPhoneDigits)
	f.Pincode = clampDigits(f.Pincode, maxPincodeDigits)
}

// clampDigits strips every non-digit byte from s and truncates to max digits.
func clampDigits(s string, max int) string {
	var b strings.Builder
	b.Grow(max)
	for i := 0; i < len(s) && b.Len() < max; i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
