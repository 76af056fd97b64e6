package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestDefaultPolicy verifies the baseline default values.
func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	if p.Mode != BackoffLinear {
		t.Fatalf("expected linear default mode got %s", p.Mode)
	}
	if p.Initial != time.Second || p.Max != 30*time.Second || p.MaxRetries != 2 {
		t.Fatalf("unexpected defaults %+v", p)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("default policy invalid: %v", err)
	}
}

// TestNewPolicyOverrides checks override precedence and clamping when initial > max.
func TestNewPolicyOverrides(t *testing.T) {
	p := NewPolicy(BackoffFixed, 5*time.Second, 2*time.Second, 5)
	if p.Initial != 2*time.Second {
		t.Fatalf("expected clamped initial 2s got %v", p.Initial)
	}
	if p.Mode != BackoffFixed || p.MaxRetries != 5 {
		t.Fatalf("unexpected policy %+v", p)
	}
	if q := NewPolicy("bogus", 0, 0, -1); q != DefaultPolicy() {
		t.Fatalf("invalid inputs should fall back to defaults, got %+v", q)
	}
}

// TestDelayModes ensures fixed, linear, exponential behave and respect cap.
func TestDelayModes(t *testing.T) {
	ms := time.Millisecond
	cases := []struct {
		p       Policy
		attempt int
		want    time.Duration
	}{
		{NewPolicy(BackoffFixed, 100*ms, 500*ms, 3), 3, 100 * ms},
		{NewPolicy(BackoffLinear, 100*ms, 250*ms, 5), 2, 200 * ms},
		{NewPolicy(BackoffLinear, 100*ms, 250*ms, 5), 3, 250 * ms},
		{NewPolicy(BackoffExponential, 100*ms, time.Second, 5), 3, 400 * ms},
		{NewPolicy(BackoffExponential, 100*ms, time.Second, 5), 6, time.Second},
		{DefaultPolicy(), 0, 0},
	}
	for _, c := range cases {
		if got := c.p.Delay(c.attempt); got != c.want {
			t.Errorf("%s attempt %d: got %v want %v", c.p.Mode, c.attempt, got, c.want)
		}
	}
}

func TestDo(t *testing.T) {
	transient := errors.New("transient")
	fatal := errors.New("fatal")
	p := NewPolicy(BackoffFixed, time.Millisecond, time.Millisecond, 2)
	isTransient := func(err error) bool { return errors.Is(err, transient) }

	calls := 0
	err := p.Do(context.Background(), isTransient, func() error {
		calls++
		if calls < 3 {
			return transient
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Fatalf("expected success after 3 calls, got err=%v calls=%d", err, calls)
	}

	calls = 0
	err = p.Do(context.Background(), isTransient, func() error { calls++; return fatal })
	if !errors.Is(err, fatal) || calls != 1 {
		t.Fatalf("non-retryable error should stop immediately, got err=%v calls=%d", err, calls)
	}

	calls = 0
	err = p.Do(context.Background(), isTransient, func() error { calls++; return transient })
	if !errors.Is(err, transient) || calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = NewPolicy(BackoffFixed, time.Hour, time.Hour, 1).Do(ctx, isTransient, func() error { return transient })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}
