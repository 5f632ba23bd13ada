package bridge

import (
	"sync"
	"testing"
	"time"
)

func TestNotifyCoalesces(t *testing.T) {
	w := NewWakeup()
	for i := 0; i < 10; i++ {
		w.Notify()
	}

	select {
	case <-w.C():
	default:
		t.Fatal("expected a pending wakeup")
	}
	select {
	case <-w.C():
		t.Fatal("ten notifies should collapse into one wakeup")
	default:
	}
}

func TestNotifyFromManyGoroutines(t *testing.T) {
	w := NewWakeup()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Notify()
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify blocked")
	}

	select {
	case <-w.C():
	default:
		t.Fatal("expected a pending wakeup")
	}
}

func TestNotifyAfterDrainWakesAgain(t *testing.T) {
	w := NewWakeup()
	w.Notify()
	<-w.C()
	w.Notify()
	select {
	case <-w.C():
	default:
		t.Fatal("a notify after a drain must produce a new wakeup")
	}
}
