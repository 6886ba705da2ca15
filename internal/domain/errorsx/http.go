package errorsx

// HTTPError describes a non-2xx upstream response. Body is the raw
// response body, empty if the upstream sent none.
type HTTPError struct {
	Provider   string
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	return "HTTP error from " + e.Provider + ": " + e.Status
}
