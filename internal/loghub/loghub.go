// Package loghub fans bot output out to API consumers. The runner publishes
// every line it reads from the subprocess; subscribers (the SSE stream, the
// tail endpoint) receive buffered history plus live lines.
package loghub

import (
	"context"
	"sync"
	"time"
)

// Line is a single line of bot output.
type Line struct {
	Seq  uint64    `json:"seq" doc:"Monotonic sequence number"`
	Text string    `json:"text" doc:"Raw output line"`
	At   time.Time `json:"at" doc:"Time the line was captured"`
}

// subscriberBuffer is the channel capacity beyond the replayed lines. A
// subscriber that falls this far behind starts losing lines rather than
// blocking the runner.
const subscriberBuffer = 256

// Hub keeps a bounded ring of recent lines and broadcasts new ones.
type Hub struct {
	mu   sync.Mutex
	buf  []Line
	max  int
	seq  uint64
	subs map[chan Line]struct{}
}

// New creates a hub retaining at most max lines.
func New(max int) *Hub {
	if max <= 0 {
		max = 1000
	}
	return &Hub{
		max:  max,
		subs: make(map[chan Line]struct{}),
	}
}

// Publish appends a line to the ring and delivers it to all subscribers.
// Delivery is non-blocking; slow subscribers drop lines.
func (h *Hub) Publish(text string) Line {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	line := Line{Seq: h.seq, Text: text, At: time.Now().UTC()}

	h.buf = append(h.buf, line)
	if len(h.buf) > h.max {
		h.buf = h.buf[len(h.buf)-h.max:]
	}

	for ch := range h.subs {
		select {
		case ch <- line:
		default:
		}
	}
	return line
}

// Tail returns up to n of the most recent lines, oldest first.
func (h *Hub) Tail(n int) []Line {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n <= 0 || n > len(h.buf) {
		n = len(h.buf)
	}
	out := make([]Line, n)
	copy(out, h.buf[len(h.buf)-n:])
	return out
}

// Len reports how many lines the ring currently holds.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.buf)
}

// Subscribe registers a consumer. Up to replay buffered lines are delivered
// first, then live lines until ctx is done, at which point the channel is
// closed.
func (h *Hub) Subscribe(ctx context.Context, replay int) <-chan Line {
	h.mu.Lock()
	var history []Line
	if replay > 0 {
		if replay > len(h.buf) {
			replay = len(h.buf)
		}
		history = h.buf[len(h.buf)-replay:]
	}
	ch := make(chan Line, len(history)+subscriberBuffer)
	for _, line := range history {
		ch <- line
	}
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.unsubscribe(ch)
	}()

	return ch
}

func (h *Hub) unsubscribe(ch chan Line) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
}
