package notify

import (
	"strings"
	"testing"
	"unicode/utf8"
)

type sent struct{ title, message string }

func newTestNotifier(enabled bool) (*Notifier, *[]sent) {
	var got []sent
	n := New(enabled)
	n.send = func(title, message, icon string) error {
		got = append(got, sent{title, message})
		return nil
	}
	return n, &got
}

func TestNotifier_SessionDone(t *testing.T) {
	t.Parallel()

	n, got := newTestNotifier(true)
	n.SessionDone(87.25)

	if len(*got) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(*got))
	}
	if !strings.Contains((*got)[0].message, "87.2") && !strings.Contains((*got)[0].message, "87.3") {
		t.Fatalf("message %q does not contain the score", (*got)[0].message)
	}
}

func TestNotifier_Disabled(t *testing.T) {
	t.Parallel()

	n, got := newTestNotifier(false)
	n.SessionDone(50)
	n.Error("boom")

	if len(*got) != 0 {
		t.Fatalf("disabled notifier sent %d notifications", len(*got))
	}
}

func TestNotifier_ErrorTruncatesRunes(t *testing.T) {
	t.Parallel()

	n, got := newTestNotifier(true)
	n.Error(strings.Repeat("ошибка ", 40))

	msg := (*got)[0].message
	if !utf8.ValidString(msg) {
		t.Fatal("truncated message is not valid UTF-8")
	}
	if utf8.RuneCountInString(msg) != 103 {
		t.Fatalf("message has %d runes, want 103", utf8.RuneCountInString(msg))
	}
}
