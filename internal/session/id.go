package session

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	adjectives = []string{"sharp", "sleepy", "fluffy", "dazzling", "crazy", "bold", "happy", "silly"}
	animals    = []string{"lion", "swan", "tiger", "elephant", "zebra", "giraffe", "panda", "koala"}
)

// NewID returns a readable session id such as "bold_panda_3fa9_1718000000_9c01d2e4".
// The hex parts carry 48 random bits.
func NewID() string {
	r := uuid.New()
	adj := adjectives[int(r[8])%len(adjectives)]
	animal := animals[int(r[9])%len(animals)]
	return fmt.Sprintf("%s_%s_%s_%d_%s", adj, animal, hex.EncodeToString(r[0:2]), time.Now().Unix(), hex.EncodeToString(r[10:14]))
}
