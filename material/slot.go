package material

import (
	"errors"
	"fmt"
	"math/rand"
)

// Slot is the lightweight record backing one row of the layer stack. Identity
// is the token, not the array position; tokens stay stable across moves while
// positions do not.
type Slot struct {
	ID     string
	Hidden bool
	Type   LayerType
}

// ErrSlotIndex reports a slot index outside the current store.
var ErrSlotIndex = errors.New("material: slot index out of range")

// ErrTokenSpaceExhausted reports that token generation gave up after
// maxTokenAttempts collisions in a row.
var ErrTokenSpaceExhausted = errors.New("material: slot token space exhausted")

// tokenSpace is the number of distinct slot tokens. Collisions are retried,
// so the practical limit on concurrently existing slots is far below this;
// realistic stacks hold tens of layers.
const tokenSpace = 1000000

// maxTokenAttempts bounds the retry loop so a (near-)full store fails with
// ErrTokenSpaceExhausted instead of spinning.
const maxTokenAttempts = tokenSpace

// newToken generates a random token that taken reports as unused.
func newToken(taken func(string) bool) (string, error) {
	for i := 0; i < maxTokenAttempts; i++ {
		token := fmt.Sprintf("%d", rand.Intn(tokenSpace))
		if !taken(token) {
			return token, nil
		}
	}
	return "", ErrTokenSpaceExhausted
}
