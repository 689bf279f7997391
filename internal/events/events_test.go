package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/account_ledger/internal/core/domain"
	"github.com/SscSPs/account_ledger/internal/events"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu     sync.Mutex
	events []domain.CustomerEvent
	block  chan struct{}
	err    error
}

func (s *recordingSink) Send(ctx context.Context, event domain.CustomerEvent) error {
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return s.err
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func event(id string) domain.CustomerEvent {
	return domain.NewCustomerEvent(domain.CustomerCreated, domain.Customer{CustomerID: id, Identification: "id-" + id}, time.Now())
}

func TestPublisher_DeliversAndDrainsOnClose(t *testing.T) {
	sink := &recordingSink{}
	p := events.NewPublisher(sink, events.WithBufferSize(10))
	p.Start()

	for _, id := range []string{"c1", "c2", "c3"} {
		p.Publish(event(id))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, p.Close(ctx))
	assert.Equal(t, 3, sink.count())
	assert.Equal(t, "c1", sink.events[0].CustomerID)

	assert.ErrorIs(t, p.Close(ctx), events.ErrPublisherClosed)
	p.Publish(event("late"))
	assert.Equal(t, 3, sink.count())
}

func TestPublisher_PublishNeverBlocks(t *testing.T) {
	sink := &recordingSink{block: make(chan struct{})}
	p := events.NewPublisher(sink, events.WithBufferSize(1), events.WithSendTimeout(time.Second))
	p.Start()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 20; i++ {
			p.Publish(event("c"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a stalled sink")
	}
	close(sink.block)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, p.Close(ctx))
	assert.LessOrEqual(t, sink.count(), 2)
}

func TestPublisher_SinkErrorsAreSwallowed(t *testing.T) {
	sink := &recordingSink{err: errors.New("broker down")}
	p := events.NewPublisher(sink)
	p.Start()
	p.Publish(event("c1"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, p.Close(ctx))
	assert.Equal(t, 1, sink.count())
}

func TestPublisher_CloseWithoutStart(t *testing.T) {
	sink := &recordingSink{}
	p := events.NewPublisher(sink)
	p.Publish(event("c1"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, p.Close(ctx))
	assert.Equal(t, 1, sink.count())
}

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaSink_Send(t *testing.T) {
	w := &fakeWriter{}
	sink := events.NewKafkaSinkWithWriter(w, "customer-events")
	e := event("c1")

	require.NoError(t, sink.Send(context.Background(), e))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, []byte("c1"), w.msgs[0].Key)

	var decoded domain.CustomerEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &decoded))
	assert.Equal(t, domain.CustomerCreated, decoded.EventType)
	assert.Equal(t, "id-c1", decoded.RelatedID)

	w.err = errors.New("no leader")
	assert.Error(t, sink.Send(context.Background(), e))

	require.NoError(t, sink.Close())
	assert.True(t, w.closed)
}

func TestNewKafkaSink_RequiresBrokers(t *testing.T) {
	_, err := events.NewKafkaSink(nil, "customer-events")
	assert.Error(t, err)
}

type fakeReader struct {
	msgs   []kafka.Message
	closed bool
}

func (r *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.msgs) == 0 {
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

func TestCustomerEventConsumer_Run(t *testing.T) {
	good, err := json.Marshal(event("c1"))
	require.NoError(t, err)
	reader := &fakeReader{msgs: []kafka.Message{
		{Value: []byte("not json")},
		{Value: good},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	var got []domain.CustomerEvent
	consumer := events.NewCustomerEventConsumerWithReader(reader, func(ctx context.Context, e domain.CustomerEvent) error {
		got = append(got, e)
		cancel()
		return nil
	}, nil)

	require.NoError(t, consumer.Run(ctx))
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].CustomerID)
	assert.True(t, reader.closed)
}
