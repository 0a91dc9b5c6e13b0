package utils

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// RetryPolicy bounds retries of transient completion failures. Attempt n
// (1-based) that fails transiently waits BaseDelay*n before the next try.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	Sleep      SleepFunc
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 2,
		BaseDelay:  2 * time.Second,
		Sleep:      SleepContext,
	}
}

func SleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// CompleteWithRetry issues req and retries only on 429/503. A successful call
// with blank content yields ErrEmptyCompletion and is not retried.
func CompleteWithRetry(ctx context.Context, client CompletionClientInterface, policy RetryPolicy, req CompletionRequest) (*CompletionResult, error) {
	sleep := policy.Sleep
	if sleep == nil {
		sleep = SleepContext
	}
	maxAttempts := policy.MaxRetries + 1

	for attempt := 1; ; attempt++ {
		result, err := client.Complete(ctx, req)
		if err == nil {
			if strings.TrimSpace(result.Content) == "" {
				log.Printf("Completion attempt %d returned empty content (finish_reason=%s)", attempt, result.FinishReason)
				return nil, ErrEmptyCompletion
			}
			log.Printf("Completion succeeded on attempt %d/%d, content preview: %s",
				attempt, maxAttempts, preview(result.Content, 1000))
			return result, nil
		}

		if !IsTransient(err) {
			return nil, fmt.Errorf("completion failed: %w", err)
		}
		if attempt >= maxAttempts {
			return nil, fmt.Errorf("completion failed after %d attempts: %w", attempt, err)
		}

		delay := policy.BaseDelay * time.Duration(attempt)
		log.Printf("Completion attempt %d/%d hit transient error (status %d), retrying in %s",
			attempt, maxAttempts, StatusCodeOf(err), delay)
		if sleepErr := sleep(ctx, delay); sleepErr != nil {
			return nil, fmt.Errorf("completion retry aborted: %w", errors.Join(err, sleepErr))
		}
	}
}

// IsTransient reports rate-limit and service-unavailable failures.
func IsTransient(err error) bool {
	switch StatusCodeOf(err) {
	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return true
	default:
		return false
	}
}

// StatusCodeOf digs the HTTP status out of vendor errors; 0 when unknown.
func StatusCodeOf(err error) int {
	if err == nil {
		return 0
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return gErr.Code
	}
	// Gemini goes over gRPC; apierror reports -1 there, so fall through to the status code.
	var httpCoder interface{ HTTPCode() int }
	if errors.As(err, &httpCoder) && httpCoder.HTTPCode() > 0 {
		return httpCoder.HTTPCode()
	}
	var statusCoder interface{ StatusCode() int }
	if errors.As(err, &statusCoder) {
		return statusCoder.StatusCode()
	}
	if st, ok := status.FromError(err); ok {
		return grpcToHTTP(st.Code())
	}
	return 0
}

func grpcToHTTP(code codes.Code) int {
	switch code {
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	default:
		return 0
	}
}

// StatusError is a plain error carrying an HTTP status.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Message)
}

func (e *StatusError) StatusCode() int { return e.Code }
