package risk

import (
	"errors"

	"github.com/ppiankov/toolrisk/internal/catalog"
)

// Error kinds reported to clients and metrics.
const (
	KindNotFound     = "not_found"
	KindTierNotFound = "tier_not_found"
	KindInternal     = "internal"
)

// ErrorKind classifies an evaluation error. It returns "" for nil.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTierNotFound):
		return KindTierNotFound
	case errors.Is(err, catalog.ErrNotFound):
		return KindNotFound
	default:
		return KindInternal
	}
}
