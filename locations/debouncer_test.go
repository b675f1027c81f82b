package locations_test

import (
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-legal-client/locations"
	"github.com/stretchr/testify/require"
)

type collector struct {
	mu     sync.Mutex
	values []string
}

func (c *collector) add(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = append(c.values, v)
}

func (c *collector) get() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.values...)
}

func TestDebouncer_DeliversLastValue(t *testing.T) {
	var got collector
	d := locations.NewDebouncer(30*time.Millisecond, got.add)

	d.Trigger("l")
	d.Trigger("la")
	d.Trigger("lag")

	require.Eventually(t, func() bool { return len(got.get()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	require.Equal(t, []string{"lag"}, got.get())
}

func TestDebouncer_SeparateBursts(t *testing.T) {
	var got collector
	d := locations.NewDebouncer(20*time.Millisecond, got.add)

	d.Trigger("a")
	require.Eventually(t, func() bool { return len(got.get()) == 1 }, time.Second, 5*time.Millisecond)
	d.Trigger("b")
	require.Eventually(t, func() bool { return len(got.get()) == 2 }, time.Second, 5*time.Millisecond)
	require.Equal(t, []string{"a", "b"}, got.get())
}

func TestDebouncer_Stop(t *testing.T) {
	var got collector
	d := locations.NewDebouncer(20*time.Millisecond, got.add)

	d.Trigger("a")
	d.Stop()
	d.Trigger("b")
	time.Sleep(60 * time.Millisecond)
	require.Empty(t, got.get())
}
