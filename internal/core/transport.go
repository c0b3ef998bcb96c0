package core

import (
	"context"
	"errors"

	"github.com/dkeye/Relay/internal/domain"
)

//go:generate mockgen -source=transport.go -destination=mock_transport.go -package=core

var (
	ErrUnknownConnection = errors.New("unknown connection")
	ErrBackpressure      = errors.New("backpressure")
)

// Transport is everything the router needs from the connection layer.
// Send never blocks: it enqueues or fails.
type Transport interface {
	Send(to domain.ConnectionID, f Frame) error
	// Alive returns the subset of ids whose channel is still open, in input order.
	Alive(ctx context.Context, ids []domain.ConnectionID) ([]domain.ConnectionID, error)
	// Kick closes the connection; its disconnect is reported the usual way.
	Kick(id domain.ConnectionID)
}
