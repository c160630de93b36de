package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPublisher_Sync(t *testing.T) {
	pub := NewMemory()
	defer pub.Close()

	err := pub.Emit(context.Background(), Event{Type: EventFriendRequested, Email: "a@b.c"})
	require.NoError(t, err)

	events := pub.Events()
	require.Len(t, events, 1)
	assert.Equal(t, EventFriendRequested, events[0].Type)
}

func TestMemoryPublisher_AsyncDrainsOnClose(t *testing.T) {
	pub := NewMemory(WithAsyncBuffer(100))

	for range 10 {
		require.NoError(t, pub.Emit(context.Background(), Event{Type: EventUserRegistered}))
	}

	pub.Close()
	assert.Len(t, pub.Events(), 10, "all events should be drained on close")
}

func TestMemoryPublisher_AsyncDelivers(t *testing.T) {
	pub := NewMemory(WithAsyncBuffer(10))
	defer pub.Close()

	require.NoError(t, pub.Emit(context.Background(), Event{Type: EventFriendAccepted}))

	assert.Eventually(t, func() bool {
		return len(pub.Events()) == 1
	}, time.Second, 10*time.Millisecond)
}
