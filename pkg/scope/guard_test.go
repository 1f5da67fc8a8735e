package scope

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuard_RunsOnce(t *testing.T) {
	var count int
	g := OnExit(func() {
		count++
	})
	g.Done()
	g.Done()
	assert.NoError(t, g.Close())
	assert.Equal(t, 1, count)
}

func TestGuard_RunsOnDefer(t *testing.T) {
	var ran bool
	func() {
		defer OnExit(func() {
			ran = true
		}).Done()
	}()
	assert.True(t, ran)
}

func TestGuard_Concurrent(t *testing.T) {
	var (
		count int32
		wg    sync.WaitGroup
	)
	g := OnExit(func() {
		atomic.AddInt32(&count, 1)
	})
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Done()
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), atomic.LoadInt32(&count))
}

func TestGuard_NilFunc(t *testing.T) {
	g := OnExit(nil)
	assert.NotPanics(t, g.Done)
}
