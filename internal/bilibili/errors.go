package bilibili

import "fmt"

// StatusError reports a non-2xx HTTP response. It is considered transient.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
}

// Transient marks the error as worth retrying.
func (e *StatusError) Transient() bool {
	return true
}

// APIError reports a response envelope whose code is not zero,
// e.g. an unknown video or a missing permission.
type APIError struct {
	Endpoint string
	Code     int64
	Message  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bilibili api %s: code %d: %s", e.Endpoint, e.Code, e.Message)
}
