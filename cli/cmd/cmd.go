package cmd

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/ardnew/apml/lang"
	"github.com/ardnew/apml/lang/lst"
	"github.com/ardnew/apml/log"
)

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// ErrNotDefined is returned by commands addressing a variable the
// document does not define.
var ErrNotDefined = lang.NewError("variable not defined")

// parseSource parses the document at path, reading stdin when path is
// "-".
func parseSource(ctx context.Context, path string) (*lst.LST, error) {
	if path == stdinSource {
		return lst.ParseReader(ctx, bufio.NewReader(os.Stdin),
			lst.WithLogger(log.Default()))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, lang.WrapError(err)
	}
	defer file.Close()

	return lst.ParseReader(ctx, bufio.NewReader(file),
		lst.WithLogger(log.Default()))
}

// writeResult writes the rewritten document in place when requested,
// or to stdout otherwise. Stdin sources always go to stdout.
func writeResult(path string, inPlace bool, text string) error {
	if inPlace && path != stdinSource {
		mode := os.FileMode(0o644)
		if info, err := os.Stat(path); err == nil {
			mode = info.Mode().Perm()
		}

		if err := os.WriteFile(path, []byte(text), mode); err != nil {
			return lang.WrapError(err)
		}

		return nil
	}

	if _, err := io.WriteString(os.Stdout, text); err != nil {
		return lang.WrapError(err)
	}

	return nil
}
