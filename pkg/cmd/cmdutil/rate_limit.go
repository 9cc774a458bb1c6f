package cmdutil

import (
	"fmt"

	"golang.org/x/time/rate"
)

// NewValidLimiter rejects limiters that would never grant a token.
func NewValidLimiter(r rate.Limit, b int) (*rate.Limiter, error) {
	if b <= 0 || r <= 0 {
		return nil, fmt.Errorf("bad rate limit config, insufficient tokens (rate=%f, b=%d)", r, b)
	}
	return rate.NewLimiter(r, b), nil
}
