package devserver

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/deskremote/internal/remote"
)

func TestPowerCommand(t *testing.T) {
	tests := []struct {
		goos string
		kind remote.ActionKind
		want []string
	}{
		{"darwin", remote.ActionSleep, []string{"pmset", "sleepnow"}},
		{"darwin", remote.ActionRestart, []string{"shutdown", "-r", "now"}},
		{"darwin", remote.ActionShutdown, []string{"shutdown", "-h", "now"}},
		{"linux", remote.ActionSleep, []string{"systemctl", "suspend"}},
		{"linux", remote.ActionRestart, []string{"systemctl", "reboot"}},
		{"linux", remote.ActionShutdown, []string{"systemctl", "poweroff"}},
	}
	for _, tt := range tests {
		got, err := PowerCommand(tt.goos, tt.kind)
		require.NoError(t, err, "%s/%s", tt.goos, tt.kind)
		assert.Equal(t, tt.want, got, "%s/%s", tt.goos, tt.kind)
	}

	_, err := PowerCommand("plan9", remote.ActionSleep)
	assert.Error(t, err)
	_, err = PowerCommand("linux", remote.ActionKind("hibernate"))
	assert.Error(t, err)
}

func TestCommandPower_DryRunDoesNotExecute(t *testing.T) {
	p := NewPower(false, zerolog.Nop())
	p.GOOS = "linux"
	p.run = func(context.Context, string, ...string) error {
		t.Fatal("dry run must not execute commands")
		return nil
	}

	require.NoError(t, p.Perform(context.Background(), remote.ActionShutdown))
}

func TestCommandPower_AllowedRunsCommand(t *testing.T) {
	var gotName string
	var gotArgs []string
	p := NewPower(true, zerolog.Nop())
	p.GOOS = "linux"
	p.run = func(_ context.Context, name string, args ...string) error {
		gotName, gotArgs = name, args
		return nil
	}

	require.NoError(t, p.Perform(context.Background(), remote.ActionRestart))
	assert.Equal(t, "systemctl", gotName)
	assert.Equal(t, []string{"reboot"}, gotArgs)

	p.run = func(context.Context, string, ...string) error { return errors.New("boom") }
	assert.EqualError(t, p.Perform(context.Background(), remote.ActionSleep), "boom")
}
