// Package menu runs the interactive people-search loop over a line-oriented
// reader and writer.
package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/people-search/internal/people"
)

const (
	mainMenu        = "\n=== Menu ===\n1. Find a person\n2. Print all people\n0. Exit"
	strategyPrompt  = "Select a matching strategy: ALL, ANY, NONE"
	keyPrompt       = "Enter a name or email to search all suitable people."
	farewell        = "\nBye!"
	incorrectOption = "\nIncorrect option! Try again."
)

const (
	itemExit           = "0"
	itemFindPerson     = "1"
	itemPrintAllPeople = "2"
)

// Finder answers searches over the loaded people.
type Finder interface {
	Find(ctx context.Context, key string, strategy string) *people.People
	People() *people.People
}

type Menu struct {
	finder Finder
	in     *bufio.Reader
	out    io.Writer
	logger *slog.Logger
	// readErr holds the first read failure other than io.EOF.
	readErr error
}

func New(finder Finder, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		finder: finder,
		in:     bufio.NewReader(in),
		out:    out,
		logger: slog.Default().With("component", "menu"),
	}
}

// Run shows the menu until the user exits, the input ends, or ctx is done.
// Reaching the end of the input is a normal exit.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.println(mainMenu); err != nil {
			return err
		}
		choice, ok := m.readLine()
		if !ok {
			return m.readErr
		}
		var err error
		switch choice {
		case itemExit:
			return m.println(farewell)
		case itemFindPerson:
			var done bool
			done, err = m.findPerson(ctx)
			if done {
				return m.readErr
			}
		case itemPrintAllPeople:
			err = m.finder.People().PrintAll(m.out)
		default:
			m.logger.Debug("unknown menu option", "choice", choice)
			err = m.println(incorrectOption)
		}
		if err != nil {
			return err
		}
	}
}

// findPerson reports done when the input ended mid-dialogue.
func (m *Menu) findPerson(ctx context.Context) (done bool, err error) {
	if err := m.println(strategyPrompt); err != nil {
		return false, err
	}
	strategy, ok := m.readLine()
	if !ok {
		return true, nil
	}
	if err := m.println(keyPrompt); err != nil {
		return false, err
	}
	key, ok := m.readLine()
	if !ok {
		return true, nil
	}
	return false, m.finder.Find(ctx, key, strategy).PrintAll(m.out)
}

// readLine returns the next input line without its terminator. Lines have
// no length limit; a final line without a newline still counts.
func (m *Menu) readLine() (string, bool) {
	line, err := m.in.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			m.readErr = fmt.Errorf("reading menu input: %w", err)
			return "", false
		}
		if line == "" {
			return "", false
		}
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), true
}

func (m *Menu) println(s string) error {
	if _, err := fmt.Fprintln(m.out, s); err != nil {
		return fmt.Errorf("writing menu output: %w", err)
	}
	return nil
}
