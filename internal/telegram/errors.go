package telegram

import "fmt"

// APIError is returned when Telegram rejects a request, either with a non-2xx
// status or with "ok": false in the response body.
type APIError struct {
	StatusCode  int
	Description string
	// Logical is set when the status was 2xx but the body reported failure.
	Logical bool
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return e.Description
	}
	if e.Logical {
		return "Unknown error"
	}
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}
