package termbridge

import (
	"sync"
	"sync/atomic"

	pdebug "github.com/lestrrat-go/pdebug"
)

// InputRequest selects how the backend should wait for the next event.
type InputRequest uint8

const (
	// InputRequestPeek asks for a bounded wait; the response may be nil
	InputRequestPeek InputRequest = iota + 1
	// InputRequestBlock asks for an unbounded wait; the response is
	// never nil
	InputRequestBlock
)

// eventChanBuffer leaves room for resize notifications to interleave
// with request responses without ever blocking the signal watcher.
const eventChanBuffer = 8

// Backend bridges a blocking terminal source into a request/response
// event stream. It owns exactly two goroutines: the Reader (blocking
// I/O) and the multiplexer loop (protocol logic). The consumer's own
// goroutine never blocks longer than the Peek timeout unless it asks
// for InputRequestBlock.
//
// The protocol is strictly lockstep: one request in, one response out.
// A single goroutine should drive PollEvent/WaitEvent/Close; the
// response channel may additionally carry synthetic resize events at
// any time, so arrival order is the only ordering guarantee.
type Backend struct {
	src    Source
	parser *InputParser
	reader *Reader

	requests chan InputRequest
	events   chan *Event
	done     chan struct{}
	loopDone chan struct{}

	resize      *ResizeWatcher
	watchResize bool

	running   atomic.Bool
	closeOnce sync.Once
}

// NewBackend creates a Backend over src. cfg may be nil, in which case
// defaults apply.
func NewBackend(src Source, cfg *Config) *Backend {
	rawRequests := make(chan struct{}) // rendezvous; enforces one in-flight read
	rawResults := make(chan RawEvent)  // rendezvous
	done := make(chan struct{})

	parser := NewInputParser(rawRequests, rawResults)

	b := &Backend{
		src:      src,
		parser:   parser,
		reader:   NewReader(src, rawRequests, rawResults, done),
		requests: make(chan InputRequest),
		events:   make(chan *Event, eventChanBuffer),
		done:     done,
		loopDone: make(chan struct{}),
	}

	if cfg != nil {
		parser.SetPeekTimeout(cfg.PeekTimeout())
		b.watchResize = cfg.WatchResize
	}

	return b
}

// Start spawns the reader and multiplexer goroutines and, when
// configured, the resize watcher.
func (b *Backend) Start() {
	if pdebug.Enabled {
		g := pdebug.Marker("Backend.Start")
		defer g.End()
	}

	b.running.Store(true)
	go b.reader.Loop()
	go b.loop()

	if b.watchResize {
		b.resize = newResizeWatcher(b.src, b.events)
		b.resize.Start()
	}
}

// loop serves consumer requests until the request channel closes. The
// parser's state is touched by this goroutine only, which is why the
// parser needs no locks.
func (b *Backend) loop() {
	defer close(b.loopDone)
	defer b.running.Store(false)

	for req := range b.requests {
		switch req {
		case InputRequestPeek:
			b.events <- b.parser.Peek()
		case InputRequestBlock:
			ev := b.parser.Next()
			b.events <- &ev
		}
	}
}

// Running reports whether the multiplexer loop is still serving.
func (b *Backend) Running() bool {
	return b.running.Load()
}

// RequestCh returns the channel consumer requests are served from.
func (b *Backend) RequestCh() chan<- InputRequest {
	return b.requests
}

// EventCh returns the response channel. It carries one response per
// request (nil only for a timed-out Peek) plus synthetic resize events.
func (b *Backend) EventCh() <-chan *Event {
	return b.events
}

// PollEvent asks for one bounded wait and returns the result; nil means
// no event arrived within the Peek timeout.
func (b *Backend) PollEvent() *Event {
	b.requests <- InputRequestPeek
	return <-b.events
}

// WaitEvent blocks until an event is available. The result is never nil.
func (b *Backend) WaitEvent() *Event {
	b.requests <- InputRequestBlock
	return <-b.events
}

// Size returns the source's terminal dimensions.
func (b *Backend) Size() (int, int) {
	return b.src.Size()
}

// Close shuts the backend down cooperatively. The multiplexer stops as
// soon as it finishes its current request; the reader stops after its
// current blocking read returns, which the source's Close is expected
// to hasten. Close never blocks on either of them and is safe to call
// more than once.
func (b *Backend) Close() error {
	b.closeOnce.Do(func() {
		if pdebug.Enabled {
			pdebug.Printf("Backend: Close")
		}
		if b.resize != nil {
			b.resize.Stop()
		}
		close(b.requests)
		err := b.src.Close()
		if err != nil && pdebug.Enabled {
			pdebug.Printf("Backend: source close failed: %s", err)
		}
		close(b.done)
	})
	return nil
}
