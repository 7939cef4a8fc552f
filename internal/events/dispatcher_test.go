package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDispatcherDeliversInOrderAndSurvivesErrors(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	d := NewInMemoryDispatcher(zap.New(core))

	var got []string
	d.Subscribe(EventStageChanged, func(context.Context, Event) error {
		got = append(got, "first")
		return errors.New("boom")
	})
	d.Subscribe(EventStageChanged, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.SessionID)
		return nil
	})
	d.Subscribe(EventRatingSubmitted, func(context.Context, Event) error {
		got = append(got, "unrelated")
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), New(EventStageChanged, "s1", StageChangedPayload{})))

	assert.Equal(t, []string{"first", "second:s1"}, got)
	assert.Equal(t, 1, logs.FilterMessage("event handler failed").Len())
}

func TestNewStampsEvent(t *testing.T) {
	a := New(EventChatExchanged, "s", nil)
	b := New(EventChatExchanged, "s", nil)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.Timestamp.IsZero())
}
