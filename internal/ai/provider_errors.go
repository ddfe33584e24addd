// provider_errors.go - Categorises provider failures for diagnostic logging.
// Analyses are never retried; the category only goes to the logs.

package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"
)

// ProviderError represents a categorized AI provider error
type ProviderError struct {
	Provider      string
	Category      string
	StatusCode    int
	Message       string
	OriginalError error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("[%s/%s] %s (status: %d)", e.Provider, e.Category, e.Message, e.StatusCode)
}

func (e *ProviderError) Unwrap() error {
	return e.OriginalError
}

// newHTTPStatusError categorizes a non-2xx provider response
func newHTTPStatusError(provider string, statusCode int, message string) *ProviderError {
	category, summary := categorizeStatus(statusCode)
	if message != "" {
		summary = summary + ": " + message
	}
	return &ProviderError{
		Provider:   provider,
		Category:   category,
		StatusCode: statusCode,
		Message:    summary,
	}
}

func categorizeStatus(code int) (string, string) {
	switch code {
	case 400:
		return "bad_request", "Invalid request format or parameters"
	case 401:
		return "unauthorized", "Invalid API key or authentication failed"
	case 403:
		return "forbidden", "API key lacks required permissions"
	case 404:
		return "not_found", "Model not found or invalid endpoint"
	case 429:
		return "rate_limit", "Rate limit exceeded - too many requests"
	case 500, 502, 503, 504:
		return "server_error", fmt.Sprintf("Provider server error (%d)", code)
	default:
		return "unknown_api_error", fmt.Sprintf("API error (%d)", code)
	}
}

// categorizeProviderError analyzes a transport or SDK error
func categorizeProviderError(provider string, err error) *ProviderError {
	if err == nil {
		return nil
	}

	var existing *ProviderError
	if errors.As(err, &existing) {
		return existing
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		pErr := newHTTPStatusError(provider, apiErr.Code, apiErr.Message)
		pErr.OriginalError = err
		return pErr
	}

	pErr := &ProviderError{
		Provider:      provider,
		Category:      "unknown",
		Message:       err.Error(),
		OriginalError: err,
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		pErr.Category = "timeout"
		pErr.Message = "Request timeout - processing took too long"
		return pErr
	case errors.Is(err, context.Canceled):
		pErr.Category = "canceled"
		pErr.Message = "Request was canceled"
		return pErr
	}

	errMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errMsg, "quota"):
		pErr.Category = "quota_exceeded"
	case strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "deadline"):
		pErr.Category = "timeout"
	case strings.Contains(errMsg, "connection") || strings.Contains(errMsg, "network") || strings.Contains(errMsg, "no such host"):
		pErr.Category = "network_error"
	}

	return pErr
}
