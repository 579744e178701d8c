package resilience

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		Name:  "test",
		Rate:  10.0,
		Burst: 5,
	})

	// The bucket starts full, so a whole burst passes immediately.
	for i := 0; i < 5; i++ {
		if !rl.Allow() {
			t.Errorf("request %d should be allowed", i)
		}
	}
}

func TestRateLimiter_RejectsOverLimit(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		Name:  "test",
		Rate:  10.0,
		Burst: 3,
	})

	for i := 0; i < 3; i++ {
		rl.Allow()
	}

	if rl.Allow() {
		t.Error("request should be rejected over burst limit")
	}
}

func TestRateLimiter_RefillsOverTime(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		Name:  "test",
		Rate:  100.0, // one token per 10ms
		Burst: 1,
	})

	if !rl.Allow() {
		t.Error("first request should be allowed")
	}
	if rl.Allow() {
		t.Error("second request should be rejected")
	}

	time.Sleep(20 * time.Millisecond)

	if !rl.Allow() {
		t.Error("request after refill should be allowed")
	}
}

func TestRateLimiter_Wait(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		Name:  "test",
		Rate:  100.0,
		Burst: 1,
	})

	rl.Allow()

	start := time.Now()
	err := rl.Wait(context.Background())
	elapsed := time.Since(start)

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	// One token at 100/s refills in about 10ms.
	if elapsed < 5*time.Millisecond || elapsed > 50*time.Millisecond {
		t.Errorf("expected wait around 10ms, got %v", elapsed)
	}
}

func TestRateLimiter_WaitRespectsCancellation(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		Name:  "test",
		Rate:  1.0,
		Burst: 1,
	})

	rl.Allow()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)

	err := rl.Wait(ctx)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRateLimiter_WaitRefusesHopelessDeadline(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		Name:  "test",
		Rate:  1.0, // the next token is a second away
		Burst: 1,
	})

	rl.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	// The wait cannot finish before the deadline, so it is refused
	// immediately instead of blocking.
	err := rl.Wait(ctx)

	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("expected ErrRateLimited, got %v", err)
	}
}

func TestRateLimiter_WaitNExceedsBurst(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		Name:  "test",
		Rate:  10.0,
		Burst: 2,
	})

	err := rl.WaitN(context.Background(), 5)

	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("expected ErrRateLimited, got %v", err)
	}
}

func TestRateLimiter_Execute(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		Name:  "test",
		Rate:  10.0,
		Burst: 1,
	})

	called := false
	err := rl.Execute(func() error {
		called = true
		return nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if !called {
		t.Error("function was not called")
	}

	err = rl.Execute(func() error {
		return nil
	})

	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("expected ErrRateLimited, got %v", err)
	}
}

func TestRateLimiter_ExecuteWait(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		Name:  "test",
		Rate:  100.0,
		Burst: 1,
	})

	rl.Allow()

	called := false
	err := rl.ExecuteWait(context.Background(), func() error {
		called = true
		return nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if !called {
		t.Error("function was not called")
	}
}

func TestRateLimiter_OnLimitCallback(t *testing.T) {
	var limitCount int32

	rl := NewRateLimiter(RateLimiterConfig{
		Name:  "test",
		Rate:  10.0,
		Burst: 1,
		OnLimit: func(name string) {
			atomic.AddInt32(&limitCount, 1)
		},
	})

	rl.Allow()

	rl.Allow()
	rl.Allow()

	if limitCount != 2 {
		t.Errorf("expected 2 limit callbacks, got %d", limitCount)
	}
}

func TestRateLimiter_AllowN(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		Name:  "test",
		Rate:  10.0,
		Burst: 5,
	})

	if !rl.AllowN(5) {
		t.Error("should allow 5 requests")
	}

	if rl.Allow() {
		t.Error("should reject after burst exhausted")
	}
}

func TestRateLimiter_Tokens(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		Name:  "test",
		Rate:  10.0,
		Burst: 5,
	})

	initialTokens := rl.Tokens()
	if initialTokens < 4.9 || initialTokens > 5.1 {
		t.Errorf("expected ~5 tokens, got %f", initialTokens)
	}

	rl.AllowN(3)

	tokens := rl.Tokens()
	// Approximate: refill keeps trickling between the calls.
	if tokens < 1.9 || tokens > 2.5 {
		t.Errorf("expected ~2 tokens, got %f", tokens)
	}
}

func TestRateLimiter_RateAndBurst(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		Name:  "test",
		Rate:  42.0,
		Burst: 100,
	})

	if rl.Rate() != 42.0 {
		t.Errorf("expected rate 42, got %f", rl.Rate())
	}
	if rl.Burst() != 100 {
		t.Errorf("expected burst 100, got %d", rl.Burst())
	}
}

func TestRateLimiter_FractionalRateDefaultBurst(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		Name: "test",
		Rate: 0.5,
	})

	// A defaulted burst must never truncate to zero.
	if rl.Burst() != 1 {
		t.Errorf("expected burst 1, got %d", rl.Burst())
	}
	if !rl.Allow() {
		t.Error("first request should be allowed")
	}
}
