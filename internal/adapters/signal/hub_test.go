package signal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
)

type stubConn struct {
	frames []core.Frame
	err    error
	closed bool
}

func (s *stubConn) TrySend(f core.Frame) error {
	if s.err != nil {
		return s.err
	}
	s.frames = append(s.frames, f)
	return nil
}

func (s *stubConn) Close() { s.closed = true }

func TestHubSend(t *testing.T) {
	h := NewHub()
	a := &stubConn{}
	h.Add("a", a)

	require.NoError(t, h.Send("a", core.Frame("x")))
	assert.Equal(t, []core.Frame{core.Frame("x")}, a.frames)

	assert.ErrorIs(t, h.Send("ghost", core.Frame("x")), core.ErrUnknownConnection)

	a.err = ErrClosed
	assert.ErrorIs(t, h.Send("a", core.Frame("x")), core.ErrUnknownConnection)

	a.err = core.ErrBackpressure
	assert.ErrorIs(t, h.Send("a", core.Frame("x")), core.ErrBackpressure)
}

func TestHubAliveKeepsOrder(t *testing.T) {
	h := NewHub()
	h.Add("a", &stubConn{})
	h.Add("c", &stubConn{})

	alive, err := h.Alive(context.Background(), []domain.ConnectionID{"c", "b", "a"})
	require.NoError(t, err)
	assert.Equal(t, []domain.ConnectionID{"c", "a"}, alive)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = h.Alive(ctx, []domain.ConnectionID{"a"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHubKickAndRemove(t *testing.T) {
	h := NewHub()
	a := &stubConn{}
	h.Add("a", a)

	h.Kick("a")
	h.Kick("ghost")
	assert.True(t, a.closed)

	assert.True(t, h.Remove("a"))
	assert.False(t, h.Remove("a"))
	assert.Zero(t, h.Len())
}

func TestHubCloseAll(t *testing.T) {
	h := NewHub()
	a, b := &stubConn{}, &stubConn{}
	h.Add("a", a)
	h.Add("b", b)

	h.CloseAll()
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}
