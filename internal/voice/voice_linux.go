//go:build linux

package voice

import (
	"context"
	"os/exec"
)

func newSpeaker(v Voice) (Speaker, error) {
	bin, err := lookPath("espeak-ng", "espeak")
	if err != nil {
		return nil, err
	}

	return &cmdSpeaker{command: func(ctx context.Context) *exec.Cmd {
		args := []string{"--stdin"}
		if v.ID != "" {
			args = append(args, "-v", v.ID)
		}
		return exec.CommandContext(ctx, bin, args...)
	}}, nil
}

func listVoices(ctx context.Context) ([]Voice, error) {
	bin, err := lookPath("espeak-ng", "espeak")
	if err != nil {
		return nil, err
	}

	out, err := exec.CommandContext(ctx, bin, "--voices").Output()
	if err != nil {
		return nil, err
	}
	return parseEspeakVoices(string(out)), nil
}
