package messaging_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/lucid-hq/lucid-api/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	published  map[string][]*message.Message
	publishErr error
	closed     bool
}

func newMockPublisher() *mockPublisher {
	return &mockPublisher{published: make(map[string][]*message.Message)}
}

func (m *mockPublisher) Publish(topic string, messages ...*message.Message) error {
	if m.publishErr != nil {
		return m.publishErr
	}

	m.published[topic] = append(m.published[topic], messages...)

	return nil
}

func (m *mockPublisher) Close() error {
	m.closed = true

	return nil
}

func TestNewPublishFunc(t *testing.T) {
	t.Run("publishes json payload with a message id", func(t *testing.T) {
		pub := newMockPublisher()
		publish := messaging.NewPublishFunc[testEvent](pub, "usage.enhancement")

		err := publish(&testEvent{ID: "e1", Kind: "enhance"})

		require.NoError(t, err)
		require.Len(t, pub.published["usage.enhancement"], 1)

		msg := pub.published["usage.enhancement"][0]
		assert.NotEmpty(t, msg.UUID)

		var decoded testEvent
		require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
		assert.Equal(t, "e1", decoded.ID)
	})

	t.Run("propagates publish errors", func(t *testing.T) {
		pub := newMockPublisher()
		pub.publishErr = errors.New("broker down")

		publish := messaging.NewPublishFunc[testEvent](pub, "usage.enhancement")

		assert.Error(t, publish(&testEvent{ID: "e1"}))
	})
}

func TestPublisherGroup(t *testing.T) {
	pub := newMockPublisher()
	group := messaging.NewPublisherGroup(pub)

	assert.Equal(t, message.Publisher(pub), group.Publisher())

	require.NoError(t, group.Shutdown())
	assert.True(t, pub.closed)
}
