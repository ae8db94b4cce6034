package input

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestMapInputError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		aborted bool
	}{
		{"nil", nil, false},
		{"eof", io.EOF, true},
		{"closed file", errors.New("read: use of closed file"), true},
		{"bad fd", errors.New("read: bad file descriptor"), true},
		{"other", errors.New("disk on fire"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapInputError(tt.err)
			if tt.err == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if aborted := errors.Is(got, ErrInputAborted); aborted != tt.aborted {
				t.Fatalf("MapInputError(%v) aborted = %v; want %v", tt.err, aborted, tt.aborted)
			}
		})
	}
}

func TestReadLineWithContext(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("hello\n"))
	line, err := ReadLineWithContext(context.Background(), reader)
	if err != nil {
		t.Fatalf("ReadLineWithContext error: %v", err)
	}
	if line != "hello\n" {
		t.Fatalf("line = %q; want %q", line, "hello\n")
	}
}

func TestReadLineWithContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A reader that blocks forever.
	pr, _ := io.Pipe()
	reader := bufio.NewReader(pr)

	_, err := ReadLineWithContext(ctx, reader)
	if !IsAborted(err) {
		t.Fatalf("expected aborted error, got %v", err)
	}
}

func TestReadLineWithContextEOF(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader(""))
	_, err := ReadLineWithContext(context.Background(), reader)
	if !errors.Is(err, ErrInputAborted) {
		t.Fatalf("expected ErrInputAborted on EOF, got %v", err)
	}
}
