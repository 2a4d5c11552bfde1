package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/people-search/pkg/errors"
)

// File loads records from a text file. Line terminators (\n or \r\n) are
// stripped; everything else on the line is kept verbatim, including blank
// lines. Lines have no length limit.
type File struct {
	Path string
}

func (f File) Name() string {
	return "file"
}

func (f File) Load(ctx context.Context) ([]string, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, apperrors.Newf(apperrors.ErrUnreadableInput, apperrors.ExitUnreadable, "opening %s: %v", f.Path, err)
	}
	defer fh.Close()

	lines := make([]string, 0, 64)
	r := bufio.NewReader(fh)
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Path, err)
		}
		line, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, apperrors.Newf(apperrors.ErrUnreadableInput, apperrors.ExitUnreadable, "reading %s: %v", f.Path, err)
		}
		// a trailing newline does not start another record
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			lines = append(lines, strings.TrimSuffix(line, "\r"))
		}
		if err == io.EOF {
			return lines, nil
		}
	}
}
