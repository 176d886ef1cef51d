package core

import "fmt"

// HTTPError is a non-2xx reply from the model endpoint. It is terminal for
// the current turn; callers surface it as text rather than retrying.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("provider HTTP %d: %s", e.Status, e.Body)
}

// TransportError is a network-level failure reaching the model endpoint.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("provider transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
