package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smokefree/internal/device/coordinator"
	"smokefree/internal/device/localcache"
	"smokefree/internal/device/remote"
)

// newOfflineCLI wires the CLI to a store address nothing listens on.
func newOfflineCLI(t *testing.T) (*cli, *bytes.Buffer) {
	t.Helper()
	local, err := localcache.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { local.Close() })

	client, err := remote.NewClient("127.0.0.1:1", 200*time.Millisecond)
	require.NoError(t, err)

	now := func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local) }
	coord := coordinator.New(local, client, coordinator.Options{
		DeviceID:       "dev-1",
		RequestTimeout: 200 * time.Millisecond,
		Now:            now,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(coord.Wait)

	var out bytes.Buffer
	return &cli{coord: coord, out: &out, now: now}, &out
}

func TestCLI_OfflineDay(t *testing.T) {
	c, out := newOfflineCLI(t)
	ctx := context.Background()

	require.NoError(t, c.dispatch(ctx, []string{"settings", "set", "-wake", "07:00", "-sleep", "23:00", "-goal", "4"}))
	assert.Contains(t, out.String(), "saved: 07:00-23:00, goal 4")

	out.Reset()
	require.NoError(t, c.dispatch(ctx, []string{"day", "setup"}))
	assert.Contains(t, out.String(), "2026-03-10: goal 4, 0 smoked")
	assert.Contains(t, out.String(), "reminders: 07:00 11:00 15:00 19:00")

	out.Reset()
	require.NoError(t, c.dispatch(ctx, []string{"smoke"}))
	assert.Equal(t, "1 of 4 today\n", out.String())

	out.Reset()
	require.NoError(t, c.dispatch(ctx, []string{"today"}))
	assert.Equal(t, "2026-03-10: 1 of 4\n", out.String())

	out.Reset()
	require.NoError(t, c.dispatch(ctx, []string{"stats"}))
	assert.Contains(t, out.String(), "total:   1")

	out.Reset()
	require.NoError(t, c.dispatch(ctx, []string{"status"}))
	assert.Contains(t, out.String(), "offline: true")
}

func TestCLI_SmokeWithoutSetup(t *testing.T) {
	c, out := newOfflineCLI(t)

	require.NoError(t, c.dispatch(context.Background(), []string{"smoke"}))
	assert.Contains(t, out.String(), "no log for today")
}

func TestCLI_PromoCodes(t *testing.T) {
	c, out := newOfflineCLI(t)
	ctx := context.Background()

	require.NoError(t, c.dispatch(ctx, []string{"promo", "Easy22"}))
	assert.Contains(t, out.String(), coordinator.MessageActivated)

	out.Reset()
	require.NoError(t, c.dispatch(ctx, []string{"promo", "SPRING"}))
	assert.Contains(t, out.String(), coordinator.MessageUnreachable)
}

func TestCLI_UsageErrors(t *testing.T) {
	c, _ := newOfflineCLI(t)
	ctx := context.Background()

	for _, args := range [][]string{{"fly"}, {"settings"}, {"settings", "drop"}, {"day"}, {"promo"}, {"stats", "-days", "x"}} {
		assert.ErrorIs(t, c.dispatch(ctx, args), errUsage, "args %v", args)
	}
}
