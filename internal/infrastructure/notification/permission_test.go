package notification

import (
	"context"
	"errors"
	"testing"

	"tattooage/internal/pkg/logger"
)

func TestPermissionGate_GrantIsCached(t *testing.T) {
	sender := &fakeSender{}
	gate := NewPermissionGate(sender, logger.New())

	if !gate.Ensure(context.Background()) {
		t.Fatal("expected permission to be granted")
	}
	if !gate.Ensure(context.Background()) {
		t.Fatal("expected cached grant on second call")
	}
	if sender.probes != 1 {
		t.Fatalf("expected exactly one probe, got %d", sender.probes)
	}
}

func TestPermissionGate_DenialDoesNotReprompt(t *testing.T) {
	sender := &fakeSender{probeErr: errors.New("unauthorized")}
	gate := NewPermissionGate(sender, logger.New())

	if gate.Ensure(context.Background()) {
		t.Fatal("expected permission to be denied")
	}
	if gate.Ensure(context.Background()) {
		t.Fatal("expected cached denial on second call")
	}
	if sender.probes != 1 {
		t.Fatalf("denied determination must not re-prompt, got %d probes", sender.probes)
	}
}
