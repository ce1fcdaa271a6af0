// Package pool provides a small bounded pool of read-only *os.File handles shared by many concurrent readers of
// the same file. It exists because random_reader.go in internal/logfile needs many goroutines to share a capped number of
// open file descriptors without racing on any single handle's file position.
package pool

import (
	"errors"
	"os"
	"sync"

	"github.com/riverlog/eventlog/internal/utils"
)

// ErrClosed is returned by Checkout once the pool has been closed.
var ErrClosed = errors.New("pool: closed")

// FilePool is a bounded pool of *os.File handles, opened lazily up to capacity and reused afterward. Waiters
// block on a receive from a buffered channel rather than a mutex-guarded slice: Go services goroutines blocked on
// the same channel in the order they started waiting, so check-out is fair FIFO by construction instead of
// depending on however sync.Cond happens to schedule a broadcast's woken waiters.
//
// The channel carries capacity items at all times, split between real handles and nil "permission" tokens. A nil
// token means a slot is available but no file has been opened for it yet; Checkout opens one lazily on demand.
// Discarding a bad handle closes it and returns a nil token in its place, freeing the slot for a fresh open
// without ever growing the channel past capacity.
type FilePool struct {
	noCopy utils.NoCopy

	open     func() (*os.File, error)
	capacity int

	handles  chan *os.File
	closedCh chan struct{}

	mutex       sync.Mutex
	cond        *sync.Cond
	opened      int
	outstanding int
	closed      bool
}

// New creates a pool which opens at most capacity handles via open, on demand.
func New(capacity int, open func() (*os.File, error)) *FilePool {
	p := &FilePool{
		open:     open,
		capacity: capacity,
		handles:  make(chan *os.File, capacity),
		closedCh: make(chan struct{}),
	}
	p.cond = sync.NewCond(&p.mutex)
	for range capacity {
		p.handles <- nil
	}
	return p
}

// Checkout returns a handle for exclusive use by the caller. If the pool is exhausted and at capacity, it
// blocks until a handle is returned, discarded, or the pool is closed; blocked callers are served in the order
// they called Checkout.
func (p *FilePool) Checkout() (*os.File, error) {
	select {
	case handle := <-p.handles:
		if handle == nil {
			opened, err := p.open()
			if err != nil {
				p.handles <- nil
				return nil, err
			}
			p.mutex.Lock()
			p.opened++
			p.outstanding++
			p.mutex.Unlock()
			return opened, nil
		}
		p.mutex.Lock()
		p.outstanding++
		p.mutex.Unlock()
		return handle, nil
	case <-p.closedCh:
		return nil, ErrClosed
	}
}

// Return hands a handle back to the pool for reuse.
func (p *FilePool) Return(handle *os.File) {
	p.handles <- handle
	p.mutex.Lock()
	p.outstanding--
	p.mutex.Unlock()
	p.cond.Broadcast()
}

// Discard closes a handle instead of returning it to the pool, used when the handle may be in a bad state (for
// example, after a corrupted read). It frees up capacity for a fresh handle to be opened later.
func (p *FilePool) Discard(handle *os.File) {
	_ = handle.Close()
	p.handles <- nil
	p.mutex.Lock()
	p.opened--
	p.outstanding--
	p.mutex.Unlock()
	p.cond.Broadcast()
}

// Len reports the number of handles currently opened by this pool, idle or checked out. It never exceeds the
// configured capacity.
func (p *FilePool) Len() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.opened
}

// Close marks the pool closed, closes every idle handle, and blocks until every checked-out handle has been
// returned (and closed) or discarded. It is idempotent.
func (p *FilePool) Close() error {
	p.mutex.Lock()
	if p.closed {
		p.mutex.Unlock()
		return nil
	}
	p.closed = true
	p.mutex.Unlock()
	close(p.closedCh)

	p.drainIdle()

	p.mutex.Lock()
	for p.outstanding > 0 {
		p.cond.Wait()
	}
	p.mutex.Unlock()

	// Return/Discard calls that raced with the wait above pushed their handle or token into the channel right
	// before decrementing outstanding, so a second drain always catches them.
	p.drainIdle()
	return nil
}

func (p *FilePool) drainIdle() {
	for {
		select {
		case handle := <-p.handles:
			if handle == nil {
				continue
			}
			_ = handle.Close()
			p.mutex.Lock()
			p.opened--
			p.mutex.Unlock()
		default:
			return
		}
	}
}
