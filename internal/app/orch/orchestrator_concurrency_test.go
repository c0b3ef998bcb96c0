package orch

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
)

// Run with -race. Every connection joins the same call and stream, chats,
// then leaves, all of them at once.
func TestConcurrentJoinChatDisconnect(t *testing.T) {
	const n = 40
	ids := make([]domain.ConnectionID, n)
	for i := range ids {
		ids[i] = domain.ConnectionID(fmt.Sprintf("conn-%02d", i))
	}
	ft := newFakeTransport(ids...)
	o := newOrchestrator(ft)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id domain.ConnectionID) {
			defer wg.Done()
			o.OnConnect(id)
			o.Dispatch(ctx, id, core.SetUsername{DisplayName: "user " + string(id)})
			o.Dispatch(ctx, id, core.JoinCall{Session: "room"})
			o.Dispatch(ctx, id, core.JoinStream{Session: "live"})
			o.Dispatch(ctx, id, core.ChatMessage{To: "room", Message: "hello from " + string(id)})
		}(id)
	}
	wg.Wait()

	require.Equal(t, n, o.Calls.MemberCount("room"))
	require.Equal(t, n, o.Streams.MemberCount("live"))
	for _, id := range ids {
		var own int
		for _, r := range ft.named(id, core.EventBroadcastMessage) {
			var msg struct {
				From domain.ConnectionID `json:"from"`
			}
			decodeData(t, r, &msg)
			if msg.From == id {
				own++
			}
		}
		assert.Equal(t, 1, own, "own chat message for %s", id)
	}

	for _, id := range ids {
		wg.Add(1)
		go func(id domain.ConnectionID) {
			defer wg.Done()
			o.Dispatch(ctx, id, core.ChatMessage{To: "live", Message: "bye"})
			o.OnDisconnect(id)
			ft.drop(id)
		}(id)
	}
	wg.Wait()

	assert.False(t, o.Calls.Has("room"))
	assert.Zero(t, o.Registry.Len())
	assert.Zero(t, testutil.ToFloat64(o.Metrics.Connections))

	// Leavers are serialized, so the k-th one is announced to the n-k still present.
	var left int
	for _, id := range ids {
		left += len(ft.named(id, core.EventParticipantLeft))
	}
	assert.Equal(t, n*(n-1)/2, left)

	o.SweepStreams(ctx)
	assert.False(t, o.Streams.Has("live"))
	assert.Zero(t, o.Streams.Len())
}
