package webclient

import (
	"net/http"
	"time"
)

// NewDefault returns an HTTP client with an explicit timeout so a hung
// provider call cannot hang a request forever.
func NewDefault(timeout time.Duration) *http.Client {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
