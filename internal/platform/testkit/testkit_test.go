package testkit

import (
	"sync/atomic"
	"testing"
	"time"
)

var seamFn = func() string { return "real" }

func TestSwap_Restores(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Swap(t, &seamFn, func() string { return "fake" })
		if seamFn() != "fake" {
			t.Fatalf("swap not applied")
		}
	})
	if seamFn() != "real" {
		t.Fatalf("swap not restored")
	}
}

func TestSerial_Exclusive(t *testing.T) {
	var inside int32
	for i := 0; i < 4; i++ {
		t.Run("worker", func(t *testing.T) {
			t.Parallel()
			Serial(t)
			if atomic.AddInt32(&inside, 1) != 1 {
				t.Errorf("two tests inside Serial at once")
			}
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt32(&inside, -1)
		})
	}
}

func TestAssertions(t *testing.T) {
	MustPanic(t, func() { panic("boom") })
	MustNotPanic(t, func() {})
	MustContain(t, "alpha beta", "beta")

	var n int32
	go func() {
		time.Sleep(10 * time.Millisecond)
		atomic.StoreInt32(&n, 1)
	}()
	Eventually(t, time.Second, func() bool { return atomic.LoadInt32(&n) == 1 }, "flag set")
}
