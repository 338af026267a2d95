//go:build darwin

package voice

import (
	"context"
	"os/exec"
)

func newSpeaker(v Voice) (Speaker, error) {
	bin, err := lookPath("say")
	if err != nil {
		return nil, err
	}

	return &cmdSpeaker{command: func(ctx context.Context) *exec.Cmd {
		// Без текста в аргументах say читает stdin
		if v.ID != "" {
			return exec.CommandContext(ctx, bin, "-v", v.ID)
		}
		return exec.CommandContext(ctx, bin)
	}}, nil
}

func listVoices(ctx context.Context) ([]Voice, error) {
	out, err := exec.CommandContext(ctx, "say", "-v", "?").Output()
	if err != nil {
		return nil, err
	}
	return parseSayVoices(string(out)), nil
}
