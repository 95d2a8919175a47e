package legistar

import (
	"errors"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestPolicy_StopsAtMaxAttempts(t *testing.T) {
	p := Policy{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     4 * time.Millisecond,
		Retryable:      func(error) bool { return true },
	}

	var calls int
	err := p.Do(func() error {
		calls++
		return errors.New("boom")
	})

	assert.NotEqual(t, nil, err)
	assert.Equal(t, 3, calls)
}

func TestPolicy_NonRetryableFailsImmediately(t *testing.T) {
	p := Policy{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     4 * time.Millisecond,
		Retryable:      func(error) bool { return false },
	}

	var calls int
	err := p.Do(func() error {
		calls++
		return errors.New("boom")
	})

	assert.NotEqual(t, nil, err)
	assert.Equal(t, 1, calls)
}

func TestPolicy_SuccessSkipsRetries(t *testing.T) {
	p := DefaultPolicy

	var calls int
	err := p.Do(func() error {
		calls++
		return nil
	})

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, calls)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"connection failure", &APIError{Detail: "dial tcp: refused"}, true},
		{"500", &APIError{StatusCode: 500}, true},
		{"503", &APIError{StatusCode: 503}, true},
		{"404", &APIError{StatusCode: 404}, false},
		{"422", &APIError{StatusCode: 422}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}
