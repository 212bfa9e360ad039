// Package service publishes booking notifications to RabbitMQ.  Errors
// are logged and returned so callers can ignore failures without
// interrupting the request flow.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/hotel-room-allocator/internal/model"
	q "github.com/iliyamo/hotel-room-allocator/internal/queue"
)

var (
	// ErrPublisherClosed is returned by PublishRoomsBooked after Close.
	ErrPublisherClosed = errors.New("publisher closed")
	// ErrPublisherBacklog is returned when the outgoing buffer is full.
	ErrPublisherBacklog = errors.New("publisher backlog full")
)

const (
	defaultDialTimeout    = 2 * time.Second
	defaultPublishTimeout = 5 * time.Second
	defaultBacklog        = 64
)

// QueuePublisher sends RoomsBookedEvents to the rooms.booked queue.
// PublishRoomsBooked only enqueues; a single background worker dials the
// broker per event with a bounded dial and handshake, so a slow or silent
// broker never holds up the caller.
type QueuePublisher struct {
	url            string
	log            *zap.Logger
	dialTimeout    time.Duration
	publishTimeout time.Duration

	events chan q.RoomsBookedEvent
	done   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

// PublisherOption tunes a QueuePublisher.
type PublisherOption func(*QueuePublisher)

// WithDialTimeout bounds the TCP dial plus the AMQP handshake.
func WithDialTimeout(d time.Duration) PublisherOption {
	return func(p *QueuePublisher) { p.dialTimeout = d }
}

// WithPublishTimeout bounds a single publish after the connection is open.
func WithPublishTimeout(d time.Duration) PublisherOption {
	return func(p *QueuePublisher) { p.publishTimeout = d }
}

// WithBacklog sets how many events may wait for the worker.
func WithBacklog(n int) PublisherOption {
	return func(p *QueuePublisher) {
		if n > 0 {
			p.events = make(chan q.RoomsBookedEvent, n)
		}
	}
}

// NewQueuePublisher returns a publisher for the broker at url and starts
// its worker.  Call Close to stop it.
func NewQueuePublisher(url string, logger *zap.Logger, opts ...PublisherOption) *QueuePublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &QueuePublisher{
		url:            url,
		log:            logger,
		dialTimeout:    defaultDialTimeout,
		publishTimeout: defaultPublishTimeout,
		events:         make(chan q.RoomsBookedEvent, defaultBacklog),
		done:           make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.wg.Add(1)
	go p.run()
	return p
}

// NewRoomsBookedEvent builds the notification for booking b.
func NewRoomsBookedEvent(b model.Booking) q.RoomsBookedEvent {
	floors := make([]int, 0, len(b.Rooms))
	seen := map[int]bool{}
	for _, r := range b.Rooms {
		if !seen[r.Floor] {
			seen[r.Floor] = true
			floors = append(floors, r.Floor)
		}
	}
	return q.RoomsBookedEvent{
		BookingID:   b.ID,
		Rooms:       b.Numbers(),
		Floors:      floors,
		TravelTime:  b.TravelTime,
		Strategy:    string(b.Strategy),
		Vacant:      b.VacantAfter,
		ConfirmedAt: b.BookedAt.UTC().Format(time.RFC3339),
	}
}

// PublishRoomsBooked queues event for delivery and returns immediately.
// It fails only when the publisher is closed or its backlog is full.
func (p *QueuePublisher) PublishRoomsBooked(ctx context.Context, event q.RoomsBookedEvent) error {
	select {
	case <-p.done:
		return ErrPublisherClosed
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	select {
	case p.events <- event:
		return nil
	default:
		p.log.Warn("rabbitmq: backlog full, event dropped", zap.String("booking_id", event.BookingID))
		return ErrPublisherBacklog
	}
}

// Close stops the worker and waits for the event in flight.  Events still
// queued are dropped.
func (p *QueuePublisher) Close() {
	p.once.Do(func() { close(p.done) })
	p.wg.Wait()
}

func (p *QueuePublisher) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case ev := <-p.events:
			_ = p.publish(ev)
		}
	}
}

// publish delivers one event as a persistent JSON message.  Any error is
// logged and returned.
func (p *QueuePublisher) publish(event q.RoomsBookedEvent) error {
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(p.dialTimeout),
	})
	if err != nil {
		p.log.Warn("rabbitmq: dial failed", zap.String("booking_id", event.BookingID), zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("rabbitmq: channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// durable so messages survive broker restarts
	if _, err := ch.QueueDeclare(q.RoomsBookedQueue, true, false, false, false, nil); err != nil {
		p.log.Warn("rabbitmq: queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Warn("rabbitmq: marshal event failed", zap.Error(err))
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.publishTimeout)
	defer cancel()
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.BookingID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", q.RoomsBookedQueue, false, false, pub); err != nil {
		p.log.Warn("rabbitmq: publish failed", zap.Error(err))
		return err
	}
	p.log.Debug("rabbitmq: booking published", zap.String("booking_id", event.BookingID))
	return nil
}
