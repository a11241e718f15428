package audit

import (
	"sync"
	"time"
)

const bufferedDrainTimeout = 5 * time.Second

// BufferedShipper wraps another Shipper and batches events, flushing on
// count or on a periodic ticker, following the teacher's ClickHouseWriter
// flushLoop shape (buffered channel + ticker + drain-on-close).
type BufferedShipper struct {
	inner     Shipper
	batchSize int

	buffer  chan Event
	done    chan struct{}
	flushed chan struct{}

	mu       sync.Mutex
	failedMu sync.Mutex
	lastErr  error
}

// NewBufferedShipper wraps inner, batching batchSize events or flushing
// every interval, whichever comes first.
func NewBufferedShipper(inner Shipper, batchSize int, interval time.Duration) *BufferedShipper {
	if batchSize <= 0 {
		batchSize = 10
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	s := &BufferedShipper{
		inner:     inner,
		batchSize: batchSize,
		buffer:    make(chan Event, batchSize*100),
		done:      make(chan struct{}),
		flushed:   make(chan struct{}),
	}
	go s.loop(interval)
	return s
}

// Ship enqueues e for background delivery. Non-blocking: if the buffer is
// full the event is shipped individually and synchronously as a fallback,
// so events are never silently dropped.
func (s *BufferedShipper) Ship(e Event) error {
	select {
	case s.buffer <- e:
		return nil
	default:
		return s.inner.Ship(e)
	}
}

func (s *BufferedShipper) loop(interval time.Duration) {
	defer close(s.flushed)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	batch := make([]Event, 0, s.batchSize)
	flush := func() {
		for _, e := range batch {
			if err := s.inner.Ship(e); err != nil {
				s.setErr(err)
			}
		}
		batch = batch[:0]
	}

	for {
		select {
		case e := <-s.buffer:
			batch = append(batch, e)
			if len(batch) >= s.batchSize {
				flush()
			}
		case <-ticker.C:
			if len(batch) > 0 {
				flush()
			}
		case <-s.done:
			drainDeadline := time.After(bufferedDrainTimeout)
		drainLoop:
			for {
				select {
				case e := <-s.buffer:
					batch = append(batch, e)
				case <-drainDeadline:
					break drainLoop
				default:
					break drainLoop
				}
			}
			flush()
			return
		}
	}
}

func (s *BufferedShipper) setErr(err error) {
	s.failedMu.Lock()
	defer s.failedMu.Unlock()
	s.lastErr = err
}

// LastError returns the most recent shipping error observed by the
// background loop, if any.
func (s *BufferedShipper) LastError() error {
	s.failedMu.Lock()
	defer s.failedMu.Unlock()
	return s.lastErr
}

// Flush forces the inner shipper to flush.
func (s *BufferedShipper) Flush() error {
	return s.inner.Flush()
}

// Close signals the background loop to drain and stop, then closes the
// inner shipper.
func (s *BufferedShipper) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	<-s.flushed
	return s.inner.Close()
}
