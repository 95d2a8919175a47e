package legistar

import "time"

// Policy is a bounded retry schedule with exponential backoff. MaxAttempts
// counts the first try, so {MaxAttempts: 3} means at most two retries.
// Retryable decides which errors are worth another attempt.
type Policy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Retryable      func(error) bool
}

// DefaultPolicy retries connection failures, timeouts and 5xx responses:
// 3 attempts, backoff 1s then 2s, capped at 4s.
var DefaultPolicy = Policy{
	MaxAttempts:    3,
	InitialBackoff: 1 * time.Second,
	MaxBackoff:     4 * time.Second,
	Retryable:      isRetryable,
}

func (p Policy) Do(fn func() error) error {
	backoff := p.InitialBackoff
	var err error

	for attempt := 1; ; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if attempt >= p.MaxAttempts || p.Retryable == nil || !p.Retryable(err) {
			return err
		}

		time.Sleep(backoff)
		backoff *= 2
		if backoff > p.MaxBackoff {
			backoff = p.MaxBackoff
		}
	}
}
