package content

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID builds a client-side id for content saved without the upstream API:
// "{prefix}_{unixMillis}_{random}".
func NewID(prefix string) string {
	return newIDAt(prefix, time.Now())
}

func newIDAt(prefix string, now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%s_%d_%s", prefix, now.UnixMilli(), random)
}
