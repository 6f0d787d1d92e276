package shutdown

import (
	"sync"
	"testing"
	"time"
)

type testLogger struct{}

func (testLogger) Info(string, string, map[string]interface{})    {}
func (testLogger) Error(string, error, map[string]interface{})    {}
func (testLogger) Warning(string, string, map[string]interface{}) {}
func (testLogger) Debug(string, string, map[string]interface{})   {}

func TestShutdownRunsInReverseOrder(t *testing.T) {
	m := NewManager(testLogger{})

	var order []string
	m.RegisterFunc("first", func() { order = append(order, "first") })
	m.RegisterFunc("second", func() { order = append(order, "second") })
	m.RegisterFunc("third", func() { order = append(order, "third") })

	m.Shutdown()

	want := []string{"third", "second", "first"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("position %d: expected %q, got %q (all: %v)", i, want[i], order[i], order)
		}
	}
}

func TestShutdownRunsOnce(t *testing.T) {
	m := NewManager(testLogger{})

	var mu sync.Mutex
	calls := 0
	m.RegisterFunc("counter", func() {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Shutdown()
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("expected 1 shutdown call, got %d", calls)
	}
}

func TestDoneClosesWhenShutdownBegins(t *testing.T) {
	m := NewManager(testLogger{})

	select {
	case <-m.Done():
		t.Fatalf("expected Done to be open before shutdown")
	default:
	}

	m.Shutdown()

	select {
	case <-m.Done():
	case <-time.After(time.Second):
		t.Fatalf("expected Done to be closed after shutdown")
	}
}

type blockingComponent struct {
	release chan struct{}
}

func (b *blockingComponent) Shutdown() {
	<-b.release
}

func TestShutdownContinuesPastStuckComponent(t *testing.T) {
	if testing.Short() {
		t.Skip("waits out the component timeout")
	}

	m := NewManager(testLogger{})

	stuck := &blockingComponent{release: make(chan struct{})}
	defer close(stuck.release)

	var mu sync.Mutex
	reached := false

	m.RegisterFunc("after", func() {
		mu.Lock()
		reached = true
		mu.Unlock()
	})
	m.Register("stuck", stuck)

	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Shutdown()
	}()

	select {
	case <-done:
	case <-time.After(componentTimeout + 2*time.Second):
		t.Fatalf("shutdown did not complete after component timeout")
	}

	mu.Lock()
	defer mu.Unlock()
	if !reached {
		t.Fatalf("expected later components to still shut down")
	}
}

func TestShutdownWithNoComponents(t *testing.T) {
	m := NewManager(testLogger{})
	m.Shutdown()

	select {
	case <-m.Done():
	default:
		t.Fatalf("expected Done closed")
	}
}
