package mw

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"

	"github.com/MrSnakeDoc/pitch/internal/utils"
)

// SlidingWindowLimit limits requests per client IP with a sliding window
// counter. Used on the sign-in/sign-up endpoints.
func SlidingWindowLimit(requests int, window time.Duration, trustProxy bool) func(http.Handler) http.Handler {
	if requests < 1 {
		requests = 1
	}
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return utils.ClientIP(r, trustProxy), nil
		}),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
			writeTooManyRequests(w, r)
		}),
	)
}
