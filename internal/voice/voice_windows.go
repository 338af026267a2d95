//go:build windows

package voice

import (
	"context"
	"os/exec"
	"strings"
)

const sapiPrelude = "Add-Type -AssemblyName System.Speech; " +
	"$s = New-Object System.Speech.Synthesis.SpeechSynthesizer; "

func powershell(ctx context.Context, script string) *exec.Cmd {
	return exec.CommandContext(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command", script)
}

func newSpeaker(v Voice) (Speaker, error) {
	if _, err := lookPath("powershell"); err != nil {
		return nil, err
	}

	script := sapiPrelude
	if v.ID != "" {
		// Одинарные кавычки в PowerShell экранируются удвоением
		script += "$s.SelectVoice('" + strings.ReplaceAll(v.ID, "'", "''") + "'); "
	}
	script += "$s.Speak([Console]::In.ReadToEnd())"

	return &cmdSpeaker{command: func(ctx context.Context) *exec.Cmd {
		return powershell(ctx, script)
	}}, nil
}

func listVoices(ctx context.Context) ([]Voice, error) {
	script := sapiPrelude +
		"$s.GetInstalledVoices() | ForEach-Object { $_.VoiceInfo.Name + '|' + $_.VoiceInfo.Culture.Name }"
	out, err := powershell(ctx, script).Output()
	if err != nil {
		return nil, err
	}
	return parseSAPIVoices(string(out)), nil
}
