// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/pulzion/internal/metrics"
)

var errUpstream = errors.New("upstream failed")

func TestBreaker_OpensAfterFailures(t *testing.T) {
	b := New("test-opens", Settings{})

	if b.State() != gobreaker.StateClosed {
		t.Fatalf("initial state = %v, want closed", b.State())
	}

	for i := 0; i < 10; i++ {
		_, _ = b.Do(func() (any, error) { return nil, errUpstream })
	}

	if b.State() != gobreaker.StateOpen {
		t.Fatalf("state after 10 failures = %v, want open", b.State())
	}

	_, err := b.Do(func() (any, error) { return "never", nil })
	if !errors.Is(err, ErrOpen) {
		t.Errorf("Do() on open breaker error = %v, want ErrOpen", err)
	}

	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("test-opens")); got != 2 {
		t.Errorf("state gauge = %v, want 2", got)
	}
}

func TestBreaker_StaysClosedBelowRatio(t *testing.T) {
	b := New("test-below", Settings{})

	for i := 0; i < 20; i++ {
		i := i
		_, _ = b.Do(func() (any, error) {
			if i%2 == 0 {
				return nil, errUpstream
			}
			return i, nil
		})
	}

	if b.State() != gobreaker.StateClosed {
		t.Errorf("state = %v, want closed at 50%% failures", b.State())
	}
}

func TestBreaker_HalfOpenRecovers(t *testing.T) {
	b := New("test-recover", Settings{Timeout: 20 * time.Millisecond, MinRequests: 2})

	for i := 0; i < 2; i++ {
		_, _ = b.Do(func() (any, error) { return nil, errUpstream })
	}
	if b.State() != gobreaker.StateOpen {
		t.Fatalf("state = %v, want open", b.State())
	}

	time.Sleep(40 * time.Millisecond)

	for i := 0; i < 3; i++ {
		if _, err := b.Do(func() (any, error) { return "ok", nil }); err != nil {
			t.Fatalf("probe %d error = %v", i, err)
		}
	}
	if b.State() != gobreaker.StateClosed {
		t.Errorf("state after successful probes = %v, want closed", b.State())
	}
}

func TestExecute_TypedResult(t *testing.T) {
	b := New("test-typed", Settings{})

	got, err := Execute(b, func() ([]float32, error) {
		return []float32{0.1, 0.2}, nil
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len(result) = %d, want 2", len(got))
	}

	_, err = Execute(b, func() ([]float32, error) { return nil, errUpstream })
	if !errors.Is(err, errUpstream) {
		t.Errorf("Execute() error = %v, want %v", err, errUpstream)
	}
}

func TestSettingsWithDefaults(t *testing.T) {
	t.Parallel()

	s := Settings{FailureRatio: 5}.withDefaults()
	d := DefaultSettings()
	if s != d {
		t.Errorf("withDefaults() = %+v, want %+v", s, d)
	}
}

func TestStateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state gobreaker.State
		want  string
	}{
		{gobreaker.StateClosed, "closed"},
		{gobreaker.StateHalfOpen, "half-open"},
		{gobreaker.StateOpen, "open"},
		{gobreaker.State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := StateString(tt.state); got != tt.want {
			t.Errorf("StateString(%v) = %q, want %q", tt.state, got, tt.want)
		}
	}
}
