package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func TestChangeNotifierManager(t *testing.T) {
	m := NewChangeNotifierManager()
	ctx, cancel := context.WithCancel(context.Background())

	var calls atomic.Int32
	m.Observe(ctx, "stage", func() { calls.Inc() })

	m.Notify("stage")
	m.Notify("other")
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	require.Eventually(t, func() bool {
		m.lock.Lock()
		defer m.lock.Unlock()
		return len(m.notifiers) == 0
	}, time.Second, 5*time.Millisecond)

	m.Notify("stage")
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, int32(1), calls.Load())
}
