package termbridge

import (
	pdebug "github.com/lestrrat-go/pdebug"
)

// Reader owns a Source and performs exactly one blocking read per
// request token. It never reads ahead of a request, which is what keeps
// "at most one in-flight read" true for the whole bridge and bounds
// buffered input to a single event.
type Reader struct {
	src      Source
	requests <-chan struct{}
	results  chan<- RawEvent
	done     <-chan struct{}
}

// NewReader wires a Reader to its source and channels. Both channels
// must be unbuffered: the rendezvous is what enforces the one-request
// invariant without any counter.
func NewReader(src Source, requests <-chan struct{}, results chan<- RawEvent, done <-chan struct{}) *Reader {
	return &Reader{
		src:      src,
		requests: requests,
		results:  results,
		done:     done,
	}
}

// Loop services request tokens until the request channel closes or the
// source fails. It closes the result channel on the way out so that the
// parser can tell "no more events, ever" apart from "no event yet".
//
// A read error is not retried. The source contract says a failed source
// must not be read again, so the loop ends; the closed result channel
// is how the failure surfaces downstream.
func (r *Reader) Loop() {
	defer close(r.results)

	for range r.requests {
		ev, err := r.src.ReadEvent()
		if err != nil {
			if pdebug.Enabled {
				pdebug.Printf("reader: read failed, shutting down: %s", err)
			}
			return
		}

		// The receiving side may already be gone during shutdown; the
		// done channel stands in for a failed send.
		select {
		case r.results <- ev:
		case <-r.done:
			return
		}
	}
}
