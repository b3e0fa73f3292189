package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampDigits(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"plain digits pass through", "9876543210", 10, "9876543210"},
		{"letters stripped", "98abc765", 10, "98765"},
		{"punctuation and spaces stripped", "+91 98765-43210", 10, "9198765432"},
		{"truncated at max", "12345678901234", 10, "1234567890"},
		{"pincode length", "560001999", 6, "560001"},
		{"empty", "", 6, ""},
		{"only junk", "abc-def", 6, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clampDigits(tt.in, tt.max))
		})
	}
}

func TestFormSanitize(t *testing.T) {
	f := Form{
		FirstName: "Asha",
		Phone:     "(987) 654-3210",
		Pincode:   "560 001",
	}
	f.sanitize()

	assert.Equal(t, "9876543210", f.Phone)
	assert.Equal(t, "560001", f.Pincode)
	// Opaque fields are untouched.
	assert.Equal(t, "Asha", f.FirstName)
}
