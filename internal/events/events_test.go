package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startTestNATS(t *testing.T) string {
	t.Helper()
	srv, err := natsserver.NewServer(&natsserver.Options{Host: "127.0.0.1", Port: -1})
	require.NoError(t, err)
	srv.Start()
	t.Cleanup(srv.Shutdown)
	require.True(t, srv.ReadyForConnections(5*time.Second), "embedded NATS not ready")
	return srv.ClientURL()
}

type recordingPublisher struct {
	topics []string
	events []any
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, event any) error {
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSinkPublishesSelection(t *testing.T) {
	pub := &recordingPublisher{}
	sink := NewSink(pub, "", "s1", quietLogger())
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	sink.now = func() time.Time { return fixed }

	sink.NodeSelected(map[string]any{"id": "lesson-1", "title": "Variables"})
	sink.NodeSelected(nil)

	require.Len(t, pub.events, 2)
	assert.Equal(t, []string{TopicNodeSelected, TopicNodeSelected}, pub.topics)

	first := pub.events[0].(NodeSelected)
	assert.Equal(t, "s1", first.Session)
	assert.Equal(t, "lesson-1", first.Node)
	assert.Equal(t, "Variables", first.Payload["title"])
	assert.Equal(t, fixed, first.Time)

	cleared := pub.events[1].(NodeSelected)
	assert.Empty(t, cleared.Node)
	assert.Nil(t, cleared.Payload)
}

func TestSinkSwallowsPublishErrors(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("down")}
	sink := NewSink(pub, "custom.subject", "s1", quietLogger())

	assert.NotPanics(t, func() { sink.NodeSelected(map[string]any{"id": "a"}) })
	assert.Equal(t, []string{"custom.subject"}, pub.topics)
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), "x", 1))
	assert.NoError(t, p.Close())
}

func TestNATSPublisherDeliversJSON(t *testing.T) {
	url := startTestNATS(t)

	nc, err := nats.Connect(url)
	require.NoError(t, err)
	defer nc.Close()
	ch := make(chan *nats.Msg, 4)
	sub, err := nc.ChanSubscribe("learnpath.>", ch)
	require.NoError(t, err)
	defer sub.Unsubscribe()
	require.NoError(t, nc.Flush())

	pub, err := NewNATSPublisher(url)
	require.NoError(t, err)
	sink := NewSink(pub, TopicNodeSelected, "s42", quietLogger())
	sink.NodeSelected(map[string]any{"id": "module-2"})
	require.NoError(t, pub.Close())

	select {
	case msg := <-ch:
		assert.Equal(t, TopicNodeSelected, msg.Subject)
		var got NodeSelected
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		assert.Equal(t, "s42", got.Session)
		assert.Equal(t, "module-2", got.Node)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestNATSPublisherHonoursCancelledContext(t *testing.T) {
	url := startTestNATS(t)
	pub, err := NewNATSPublisher(url)
	require.NoError(t, err)
	defer pub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, pub.Publish(ctx, TopicNodeSelected, NodeSelected{}), context.Canceled)
}

func TestNewNATSPublisherBadURL(t *testing.T) {
	_, err := NewNATSPublisher("nats://127.0.0.1:1", nats.MaxReconnects(0), nats.Timeout(200*time.Millisecond))
	assert.Error(t, err)
}
