package remote

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// APIError is a non-2xx response from the remote product service. Message
// carries the service's error envelope when one was present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote call failed: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("remote call failed: status %d", e.StatusCode)
}

// newAPIError reads the response body and extracts the {"error": "..."}
// envelope the service responds with on failure.
func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(body) == 0 {
		return apiErr
	}
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		apiErr.Message = envelope.Error
	}
	return apiErr
}
