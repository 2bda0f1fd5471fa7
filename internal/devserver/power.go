package devserver

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/rs/zerolog"

	"github.com/five82/deskremote/internal/remote"
)

// CommandPower maps actions to platform commands. Unless Allow is set it
// only logs what it would run.
type CommandPower struct {
	Allow bool
	GOOS  string
	log   zerolog.Logger
	run   func(ctx context.Context, name string, args ...string) error
}

func NewPower(allow bool, logger zerolog.Logger) *CommandPower {
	return &CommandPower{
		Allow: allow,
		GOOS:  runtime.GOOS,
		log:   logger.With().Str("component", "power").Logger(),
		run:   runCommand,
	}
}

func (p *CommandPower) Perform(ctx context.Context, kind remote.ActionKind) error {
	argv, err := PowerCommand(p.GOOS, kind)
	if err != nil {
		return err
	}
	logger := p.log.With().Str("action", string(kind)).Str("command", strings.Join(argv, " ")).Logger()
	if !p.Allow {
		logger.Warn().Msg("power actions disabled; dry run")
		return nil
	}
	logger.Info().Msg("running power command")
	return p.run(ctx, argv[0], argv[1:]...)
}

// PowerCommand returns the command line for kind on goos.
func PowerCommand(goos string, kind remote.ActionKind) ([]string, error) {
	switch goos {
	case "darwin":
		switch kind {
		case remote.ActionSleep:
			return []string{"pmset", "sleepnow"}, nil
		case remote.ActionRestart:
			return []string{"shutdown", "-r", "now"}, nil
		case remote.ActionShutdown:
			return []string{"shutdown", "-h", "now"}, nil
		}
	case "linux":
		switch kind {
		case remote.ActionSleep:
			return []string{"systemctl", "suspend"}, nil
		case remote.ActionRestart:
			return []string{"systemctl", "reboot"}, nil
		case remote.ActionShutdown:
			return []string{"systemctl", "poweroff"}, nil
		}
	default:
		return nil, fmt.Errorf("power actions unsupported on %s", goos)
	}
	return nil, fmt.Errorf("unknown action %q", kind)
}

func runCommand(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %s", name, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
