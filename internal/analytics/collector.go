// Package analytics ships search and load events to Kafka without blocking
// the interactive loop.
package analytics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Adithya-Monish-Kumar-K/people-search/pkg/kafka"
)

const eventKey = "people-search"

// Publisher is satisfied by *kafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, event kafka.Event) error
}

type Collector struct {
	publisher Publisher
	eventCh   chan interface{}
	logger    *slog.Logger
	done      chan struct{}

	mu     sync.Mutex
	closed bool
}

func NewCollector(publisher Publisher, bufferSize int) *Collector {
	if bufferSize <= 0 {
		bufferSize = 1000
	}
	return &Collector{
		publisher: publisher,
		eventCh:   make(chan interface{}, bufferSize),
		logger:    slog.Default().With("component", "analytics-collector"),
		done:      make(chan struct{}),
	}
}

// Start publishes queued events until Close is called or ctx is done. It
// must be called exactly once before Close.
func (c *Collector) Start(ctx context.Context) {
	go func() {
		defer close(c.done)
		for {
			select {
			case event, ok := <-c.eventCh:
				if !ok {
					return
				}
				c.publish(ctx, event)
			case <-ctx.Done():
				c.drainRemaining()
				return
			}
		}
	}()
	c.logger.Debug("analytics collector started", "buffer_size", cap(c.eventCh))
}

// Track queues event, dropping it when the buffer is full or the collector
// has been closed.
func (c *Collector) Track(event interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		c.logger.Debug("analytics event dropped (collector closed)")
		return
	}
	select {
	case c.eventCh <- event:
	default:
		c.logger.Warn("analytics event dropped (buffer full)")
	}
}

// Close stops accepting events and waits for queued ones to be published.
func (c *Collector) Close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.eventCh)
	}
	c.mu.Unlock()
	<-c.done
}

func (c *Collector) publish(ctx context.Context, event interface{}) {
	if err := c.publisher.Publish(ctx, kafka.Event{Key: eventKey, Value: event}); err != nil {
		c.logger.Error("failed to publish analytics event", "error", err)
	}
}

func (c *Collector) drainRemaining() {
	ctx := context.Background()
	for {
		select {
		case event, ok := <-c.eventCh:
			if !ok {
				return
			}
			c.publish(ctx, event)
		default:
			return
		}
	}
}
