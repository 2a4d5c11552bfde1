package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	apperrors "github.com/Adithya-Monish-Kumar-K/people-search/pkg/errors"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "people.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"unix newlines", "Mary Smith\nJohn  Smith \n", []string{"Mary Smith", "John  Smith "}},
		{"crlf", "Mary Smith\r\nJohn Smith\r\n", []string{"Mary Smith", "John Smith"}},
		{"no trailing newline", "a\nb", []string{"a", "b"}},
		{"blank lines kept", "a\n\nb\n", []string{"a", "", "b"}},
		{"empty file", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := File{Path: writeFile(t, tt.content)}.Load(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Load() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFileLoadLongLines(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"200 KiB", 200 * 1024},
		{"2 MiB", 2 << 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			long := strings.Repeat("x", tt.size-len(" smith")) + " smith"
			got, err := File{Path: writeFile(t, "Mary Smith\n"+long+"\nJohn Smith")}.Load(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != 3 || got[1] != long || got[2] != "John Smith" {
				t.Errorf("Load() returned %d lines, long line preserved = %v", len(got), len(got) > 1 && got[1] == long)
			}
		})
	}
}

func TestFileLoadMissing(t *testing.T) {
	_, err := File{Path: filepath.Join(t.TempDir(), "missing.txt")}.Load(context.Background())
	if !errors.Is(err, apperrors.ErrUnreadableInput) {
		t.Fatalf("Load() error = %v, want ErrUnreadableInput", err)
	}
	if apperrors.ExitCode(err) != apperrors.ExitUnreadable {
		t.Errorf("ExitCode() = %d", apperrors.ExitCode(err))
	}
}

func TestFileLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (File{Path: writeFile(t, "a\n")}).Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}
