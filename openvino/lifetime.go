package openvino

import "sync"

// lifetime tracks who still needs a native object. Every in-flight call and
// every live dependent holds a reference; free runs exactly once, after the
// owner closed the object and the last reference was released.
type lifetime struct {
	mu       sync.Mutex
	refs     int
	closed   bool
	consumed bool
	freed    bool
	free     func()
}

func newLifetime(free func()) *lifetime {
	return &lifetime{free: free}
}

// retain takes a reference, failing once the object is closed.
func (l *lifetime) retain() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.consumed {
		return ErrConsumed
	}
	if l.closed {
		return ErrClosed
	}
	l.refs++
	return nil
}

// release drops a reference taken by retain or consume.
func (l *lifetime) release() {
	l.mu.Lock()
	l.refs--
	run := l.shouldFreeLocked()
	l.mu.Unlock()
	if run {
		l.free()
	}
}

// close forbids new references. It is safe to call more than once.
func (l *lifetime) close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	run := l.shouldFreeLocked()
	l.mu.Unlock()
	if run {
		l.free()
	}
}

// consume closes the object and hands the caller the final reference.
// Only one caller can ever consume an object.
func (l *lifetime) consume() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.consumed {
		return ErrConsumed
	}
	if l.closed {
		return ErrClosed
	}
	l.consumed = true
	l.closed = true
	l.refs++
	return nil
}

func (l *lifetime) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

func (l *lifetime) shouldFreeLocked() bool {
	if l.closed && l.refs == 0 && !l.freed {
		l.freed = true
		return true
	}
	return false
}
