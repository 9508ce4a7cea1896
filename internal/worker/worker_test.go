package worker

import (
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestPool(t *testing.T) {
	p := NewPool(3, 8, quietLogger())
	var mu sync.Mutex
	count := 0
	for i := 0; i < 5; i++ {
		require.NoError(t, p.Submit(func() {
			mu.Lock()
			count++
			mu.Unlock()
		}))
	}
	p.Stop()
	require.Equal(t, 5, count)
}

func TestPoolRecoversPanics(t *testing.T) {
	p := NewPool(0, 4, quietLogger())
	done := false
	require.NoError(t, p.Submit(func() { panic("boom") }))
	require.NoError(t, p.Submit(nil))
	require.NoError(t, p.Submit(func() { done = true }))
	p.Stop()
	require.True(t, done)
}

func TestPoolSubmitQueueFull(t *testing.T) {
	p := NewPool(1, 1, quietLogger())
	started := make(chan struct{})
	release := make(chan struct{})
	require.NoError(t, p.Submit(func() {
		close(started)
		<-release
	}))
	<-started

	ran := false
	require.NoError(t, p.Submit(func() { ran = true }))
	require.ErrorIs(t, p.Submit(func() {}), ErrQueueFull)

	close(release)
	p.Stop()
	require.True(t, ran)
}

func TestPoolSubmitAfterStop(t *testing.T) {
	p := NewPool(1, 1, quietLogger())
	p.Stop()
	p.Stop()
	require.ErrorIs(t, p.Submit(func() {}), ErrStopped)
}
