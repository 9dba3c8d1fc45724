package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storerating/internal/events"
	"storerating/internal/logger"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}

func TestEmitter_Emit(t *testing.T) {
	pub := new(MockPublisher)
	var sent []byte
	pub.On("Publish", events.StoreCreated, mock.AnythingOfType("[]uint8")).
		Run(func(args mock.Arguments) { sent = args.Get(1).([]byte) }).
		Return(nil).Once()

	em := events.NewEmitter(pub, logger.Discard())
	em.Emit(context.Background(), events.Event{
		Type:       events.StoreCreated,
		ActorID:    events.Actor(1),
		EntityType: "store",
		EntityID:   7,
		Data:       map[string]interface{}{"ownerId": 3},
	})
	pub.AssertExpectations(t)

	ev, err := events.Decode(sent)
	require.NoError(t, err)
	assert.NotEmpty(t, ev.ID)
	assert.False(t, ev.OccurredAt.IsZero())
	assert.Equal(t, uint(7), ev.EntityID)
	require.NotNil(t, ev.ActorID)
	assert.Equal(t, uint(1), *ev.ActorID)
}

func TestEmitter_PublishFailureIsSwallowed(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	em := events.NewEmitter(pub, logger.Discard())
	assert.NotPanics(t, func() {
		em.Emit(context.Background(), events.Event{Type: events.RatingSubmitted, EntityType: "rating", EntityID: 1})
	})
	pub.AssertExpectations(t)
}

func TestEmitter_NilPublisher(t *testing.T) {
	var em *events.Emitter
	assert.NotPanics(t, func() { em.Emit(context.Background(), events.Event{Type: "x"}) })
	assert.NotPanics(t, func() {
		events.NewEmitter(nil, nil).Emit(context.Background(), events.Event{Type: "x"})
	})
}

func TestDecode_Rejects(t *testing.T) {
	_, err := events.Decode([]byte("not json"))
	assert.Error(t, err)
	_, err = events.Decode([]byte(`{"eventId":"nope","type":"a","entityType":"b"}`))
	assert.Error(t, err)
	_, err = events.Decode([]byte(`{"eventId":"c7b5f9a4-0d43-4e0c-9a55-0e7f0d7a2b11","entityType":"b"}`))
	assert.Error(t, err)
}
