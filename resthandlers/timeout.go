package resthandlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/avoltra/restkit/rest"
)

// ErrInvalidTimeout is returned when TimeoutConfig.Duration is not
// greater than zero.
var ErrInvalidTimeout = errors.New("timeout: duration must be greater than zero")

// TimeoutConfig configures the Timeout handler behaviour.
type TimeoutConfig struct {
	// Duration is the maximum time allowed for the rest of the chain to
	// complete. Must be greater than zero.
	Duration time.Duration
}

// Timeout returns a handler that attaches a deadline to the request
// context before passing control on. Downstream handlers observe the
// deadline through req.Context() and are expected to abandon work when
// it expires. When control returns with the deadline exceeded and no
// response written, a 408 Request Timeout error is sent.
//
// It returns ErrInvalidTimeout if Duration is not greater than zero.
func Timeout(cfg TimeoutConfig) (rest.Handler, error) {
	if cfg.Duration <= 0 {
		return nil, ErrInvalidTimeout
	}

	duration := cfg.Duration

	return func(req *rest.Request, res *rest.Response, next func()) {
		ctx, cancel := context.WithTimeout(req.Context(), duration)
		defer cancel()
		req.WithContext(ctx)

		next()

		if ctx.Err() != nil && !res.Written() {
			res.SendError(rest.NewError(http.StatusRequestTimeout, rest.CodeRequestTimeout,
				"request did not complete within %s", duration))
		}
	}, nil
}
