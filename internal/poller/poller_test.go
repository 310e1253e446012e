// internal/poller/poller_test.go
package poller

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestNew_Validation(t *testing.T) {
	poll := func(ctx context.Context) int { return 0 }

	if _, err := New[int](Config{Interval: time.Second}, poll); err == nil {
		t.Fatalf("expected name error, got nil")
	}
	if _, err := New[int](Config{Name: "p"}, poll); err == nil {
		t.Fatalf("expected interval error, got nil")
	}
	if _, err := New[int](Config{Name: "p", Interval: time.Second}, nil); err == nil {
		t.Fatalf("expected poll func error, got nil")
	}
}

func TestRun_PollsImmediately(t *testing.T) {
	var calls atomic.Int32
	p, err := New[int32](Config{Name: "p", Interval: time.Hour}, func(ctx context.Context) int32 {
		return calls.Add(1)
	})
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan int32)
	go p.Run(ctx, out)

	select {
	case v := <-out:
		if v != 1 {
			t.Fatalf("first result: got=%d want=1", v)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no result at startup")
	}
}

func TestRun_TicksAndStops(t *testing.T) {
	var calls atomic.Int32
	p, _ := New[int32](Config{Name: "p", Interval: 10 * time.Millisecond}, func(ctx context.Context) int32 {
		return calls.Add(1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan int32)
	done := make(chan struct{})
	go func() {
		p.Run(ctx, out)
		close(done)
	}()

	for want := int32(1); want <= 3; want++ {
		select {
		case v := <-out:
			if v != want {
				t.Fatalf("result: got=%d want=%d", v, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for result %d", want)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
