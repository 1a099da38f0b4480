package shutdown

import (
	"sync"
	"testing"
	"time"

	"linux-engraver/internal/logger"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	mu    *sync.Mutex
	order *[]string
	name  string
	delay time.Duration
}

func (r recorder) Shutdown() {
	time.Sleep(r.delay)
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.order = append(*r.order, r.name)
}

func TestShutdownReverseOrder(t *testing.T) {
	var mu sync.Mutex
	var order []string

	m := NewManager(logger.NoOpLogger{})
	m.Register("gui", recorder{mu: &mu, order: &order, name: "gui"})
	m.Register("document", recorder{mu: &mu, order: &order, name: "document"})

	m.Shutdown()

	assert.Equal(t, []string{"document", "gui"}, order)
	assert.Error(t, m.Context().Err())

	select {
	case <-m.Done():
	default:
		t.Fatal("done channel not closed")
	}
}

func TestShutdownRunsOnce(t *testing.T) {
	var mu sync.Mutex
	var order []string

	m := NewManager(logger.NoOpLogger{})
	m.Register("gui", recorder{mu: &mu, order: &order, name: "gui"})

	m.Shutdown()
	m.Shutdown()

	assert.Len(t, order, 1)
}

func TestShutdownComponentTimeout(t *testing.T) {
	var mu sync.Mutex
	var order []string

	m := NewManager(logger.NoOpLogger{})
	m.SetComponentTimeout(10 * time.Millisecond)
	m.Register("slow", recorder{mu: &mu, order: &order, name: "slow", delay: time.Second})
	m.Register("fast", recorder{mu: &mu, order: &order, name: "fast"})

	start := time.Now()
	m.Shutdown()

	assert.Less(t, time.Since(start), 500*time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"fast"}, order)
}
