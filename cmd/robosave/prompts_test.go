package main

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/robosave/robosave/internal/input"
)

func reader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestPromptYesNo(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		defaultYes bool
		want       bool
	}{
		{"yes", "y\n", false, true},
		{"yes word", "yes\n", false, true},
		{"no", "n\n", true, false},
		{"empty uses default yes", "\n", true, true},
		{"empty uses default no", "\n", false, false},
		{"garbage is no", "maybe\n", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := promptYesNo(context.Background(), reader(tt.in), "? ", tt.defaultYes)
			if err != nil {
				t.Fatalf("promptYesNo: %v", err)
			}
			if got != tt.want {
				t.Fatalf("promptYesNo(%q) = %v; want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPromptYesNoAborted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := promptYesNo(ctx, reader("y\n"), "? ", false)
	if !input.IsAborted(err) {
		t.Fatalf("expected aborted error, got %v", err)
	}
}

func TestPromptChoice(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"first", "1\n", 1},
		{"second", "2\n", 2},
		{"empty default", "\n", 1},
		{"retry after invalid", "9\n2\n", 2},
		{"retry after garbage", "two\n1\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := promptChoice(context.Background(), reader(tt.in), "? ", 2, 1)
			if err != nil {
				t.Fatalf("promptChoice: %v", err)
			}
			if got != tt.want {
				t.Fatalf("promptChoice(%q) = %d; want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestPromptPath(t *testing.T) {
	path, ok, err := promptPath(context.Background(), reader("/data/src\n"), "? ")
	if err != nil || !ok || path != "/data/src" {
		t.Fatalf("promptPath = (%q, %v, %v)", path, ok, err)
	}

	_, ok, err = promptPath(context.Background(), reader("\n"), "? ")
	if err != nil || ok {
		t.Fatalf("empty input must mean no selection, got ok=%v err=%v", ok, err)
	}
}
