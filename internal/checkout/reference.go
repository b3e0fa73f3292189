package checkout

import (
	"fmt"
	"math/rand/v2"
)

// NewOrderRef produces a display-only order reference: "SM-" followed by a
// six digit number in [100000, 999999]. References are random and carry no
// uniqueness guarantee; there is no order store to collide in.
func NewOrderRef() string {
	return fmt.Sprintf("SM-%d", 100000+rand.IntN(900000))
}
