package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestAskReturnsAnswer(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("my-repo\n"), &out)

	got, err := p.Ask("GitHub repo name", "project")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if got != "my-repo" {
		t.Errorf("got %q, want %q", got, "my-repo")
	}
	if !strings.Contains(out.String(), "GitHub repo name") {
		t.Error("label not rendered")
	}
}

func TestAskEmptyAnswerReturnsDefault(t *testing.T) {
	p := New(strings.NewReader("\n"), &bytes.Buffer{})

	got, err := p.Ask("Commit message", "init")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if got != "init" {
		t.Errorf("got %q, want default %q", got, "init")
	}
}

func TestAskEOFIsCanceled(t *testing.T) {
	p := New(strings.NewReader(""), &bytes.Buffer{})

	if _, err := p.Ask("Anything", ""); !errors.Is(err, ErrCanceled) {
		t.Fatalf("err = %v, want ErrCanceled", err)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"y\n", false, true},
		{"Yes\n", false, true},
		{"n\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
		{"whatever\n", true, false},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input)+"-default", func(t *testing.T) {
			p := New(strings.NewReader(tt.input), &bytes.Buffer{})
			got, err := p.Confirm("Use Docker?", tt.def)
			if err != nil {
				t.Fatalf("Confirm: %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm(%q, def=%v) = %v, want %v", tt.input, tt.def, got, tt.want)
			}
		})
	}
}
