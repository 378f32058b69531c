package shutdown_test

import (
	"context"
	"testing"
	"time"

	"tasknest/pkg/shutdown"
)

func TestWaitExecutesHooksOnContextCancel(t *testing.T) {
	hook1Called := make(chan struct{})
	hook2Called := make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())

	waitDone := make(chan struct{})
	go func() {
		shutdown.Wait(ctx, time.Second,
			func(context.Context) error {
				close(hook1Called)
				return nil
			},
			func(context.Context) error {
				close(hook2Called)
				return nil
			},
		)
		close(waitDone)
	}()

	cancel()

	select {
	case <-hook1Called:
	case <-time.After(2 * time.Second):
		t.Error("hook 1 was not called")
	}

	select {
	case <-hook2Called:
	case <-time.After(2 * time.Second):
		t.Error("hook 2 was not called")
	}

	select {
	case <-waitDone:
	case <-time.After(2 * time.Second):
		t.Error("Wait did not return")
	}
}

func TestWaitRespectsTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	slowHook := func(hookCtx context.Context) error {
		<-hookCtx.Done()
		return hookCtx.Err()
	}

	start := time.Now()
	done := make(chan struct{})
	go func() {
		shutdown.Wait(ctx, 200*time.Millisecond, slowHook)
		close(done)
	}()

	select {
	case <-done:
		if elapsed := time.Since(start); elapsed > 2*time.Second {
			t.Errorf("Wait took too long: %v", elapsed)
		}
	case <-time.After(3 * time.Second):
		t.Error("Wait did not respect the shutdown timeout")
	}
}
