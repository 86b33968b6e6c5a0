package email

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/teampulse/server/internal/utils/metrics"
)

// Dispatcher runs a bounded queue of outgoing messages drained by a fixed
// pool of workers. Enqueue never blocks the caller: when the queue is full
// the message is dropped and counted.
type Dispatcher struct {
	queue   chan Message
	sender  Sender
	logger  *zap.Logger
	metrics *metrics.Metrics

	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewDispatcher creates a dispatcher and starts its workers.
func NewDispatcher(sender Sender, queueSize, workers int, logger *zap.Logger, m *metrics.Metrics) *Dispatcher {
	if queueSize < 1 {
		queueSize = 256
	}
	if workers < 1 {
		workers = 4
	}

	d := &Dispatcher{
		queue:   make(chan Message, queueSize),
		sender:  sender,
		logger:  logger,
		metrics: m,
	}
	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.worker()
	}
	return d
}

// Enqueue queues a message for delivery. Returns false when the queue is
// full and the message was dropped.
func (d *Dispatcher) Enqueue(msg Message) bool {
	select {
	case d.queue <- msg:
		if d.metrics != nil {
			d.metrics.EmailQueueDepth.Set(float64(len(d.queue)))
		}
		return true
	default:
		d.logger.Warn("email queue full, dropping message",
			zap.String("to", msg.To),
			zap.String("template", msg.Template),
		)
		if d.metrics != nil {
			d.metrics.RecordEmailDispatch(msg.Template, "dropped")
		}
		return false
	}
}

// Stop closes the queue and waits for in-flight deliveries to finish.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := d.sender.Send(ctx, msg)
		cancel()

		if d.metrics != nil {
			if err != nil {
				d.metrics.RecordEmailDispatch(msg.Template, "failed")
			} else {
				d.metrics.RecordEmailDispatch(msg.Template, "sent")
			}
			d.metrics.EmailQueueDepth.Set(float64(len(d.queue)))
		}
	}
}
