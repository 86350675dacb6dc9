package notification

import (
	"context"
	"fmt"
	"sync"

	"tattooage/internal/pkg/logger"
)

// PermissionGate lazily checks delivery authorization. The underlying probe
// runs at most once per process; the determination is cached so a denial
// never re-prompts within the same process lifetime. The gate is an
// injectable value rather than an ambient singleton so the lifecycle manager
// can be tested without a real platform round trip.
type PermissionGate struct {
	sender  Sender
	log     logger.Logger
	once    sync.Once
	granted bool
}

// NewPermissionGate creates a gate over the given sender.
func NewPermissionGate(sender Sender, log logger.Logger) *PermissionGate {
	return &PermissionGate{
		sender: sender,
		log:    log,
	}
}

// Ensure returns whether notification delivery is authorized. The first call
// issues the platform authorization request; later calls return the cached
// determination.
func (g *PermissionGate) Ensure(ctx context.Context) bool {
	g.once.Do(func() {
		if err := g.sender.Probe(ctx); err != nil {
			g.log.Warn(fmt.Sprintf("Notification delivery not authorized: %v", err))
			return
		}
		g.granted = true
		g.log.Info(fmt.Sprintf("Notification delivery authorized for channel %q.", ChannelID))
	})
	return g.granted
}
