// Package scope provides a small guard for cleanup work that must run exactly once on scope exit.
//
// It pairs well with defer for cleanup that may also need to be triggered early on some code path:
//
//	g := scope.OnExit(func() { releaseThing() })
//	defer g.Done()
//	...
//	if shortCircuit {
//		g.Done() // release early, the deferred call becomes a no-op
//		return
//	}
package scope

import "sync"

// Guard holds a function to run exactly once, no matter how many times or from how many goroutines Done is called.
type Guard struct {
	once sync.Once
	f    func()
}

// OnExit stores f for later execution through Done or Close.
func OnExit(f func()) *Guard {
	return &Guard{f: f}
}

// Done runs the stored function if it hasn't run yet.
func (g *Guard) Done() {
	g.once.Do(func() {
		if g.f != nil {
			g.f()
		}
	})
}

// Close implements io.Closer so a Guard can stand in wherever a closer is expected.
// It always returns nil.
func (g *Guard) Close() error {
	g.Done()
	return nil
}
