package clients

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

type HTTP struct {
	c       *http.Client
	limiter *rate.Limiter
}

func NewHTTP() *HTTP { return &HTTP{c: &http.Client{Timeout: 10 * time.Minute}} }

// WithClient uses c for every request.
func WithClient(c *http.Client) *HTTP { return &HTTP{c: c} }

// Throttle spaces requests at most every per interval, so fetching a long
// year range does not hammer the dataset host.
func (h *HTTP) Throttle(per time.Duration) *HTTP {
	h.limiter = rate.NewLimiter(rate.Every(per), 1)
	return h
}
