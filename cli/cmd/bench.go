package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ardnew/apml/lang"
	"github.com/ardnew/apml/lang/editor"
	"github.com/ardnew/apml/lang/lst"
	"github.com/ardnew/apml/log"
)

// Bench measures parser throughput over a tree of definition files.
// It collects every file named "spec" or prefixed "defines" under the
// given directory and times repeated parse passes over the set.
type Bench struct {
	Count int  `default:"10" help:"Repetitions over the file set"                    short:"n"`
	Emit  bool `help:"Also interpret every definition to semantic form" xor:"mode"`
	Scan  bool `help:"Tokenize only, without building trees"            xor:"mode"`

	Tree string `arg:"" help:"Directory tree to search for definition files" name:"tree" type:"existingdir"`
}

// Run executes the bench command.
func (b *Bench) Run(ctx context.Context) error {
	paths, err := collectSources(b.Tree)
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		return lang.NewError("no definition files found").
			With(slog.String("tree", b.Tree))
	}

	var total int64

	docs := make([]string, 0, len(paths))

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return lang.WrapError(err)
		}

		docs = append(docs, string(data))
		total += int64(len(data))
	}

	log.Default().DebugContext(ctx, "bench corpus loaded",
		slog.Int("files", len(docs)),
		slog.Int64("bytes", total),
	)

	start := time.Now()

	for range b.Count {
		for i, src := range docs {
			if err := b.pass(ctx, src); err != nil {
				return lang.WrapError(err).
					With(slog.String("file", paths[i]))
			}
		}
	}

	elapsed := time.Since(start)
	rate := float64(total*int64(b.Count)) / elapsed.Seconds() / (1 << 20)

	fmt.Printf("%d files, %d passes, %s, %.2f MiB/s\n",
		len(docs), b.Count, elapsed.Round(time.Millisecond), rate)

	return nil
}

// pass runs one timed pass over one document.
func (b *Bench) pass(ctx context.Context, src string) error {
	if b.Scan {
		_, err := lst.Scan(src)

		return err
	}

	tree, err := lst.Parse(ctx, src)
	if err != nil {
		return err
	}

	if b.Emit {
		if _, err := editor.Wrap(tree).ASTVariables(); err != nil {
			return err
		}
	}

	return nil
}

// collectSources walks root gathering benchmark input files.
func collectSources(root string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			name := d.Name()
			if name == "spec" || strings.HasPrefix(name, "defines") {
				paths = append(paths, path)
			}

			return nil
		})
	if err != nil {
		return nil, lang.WrapError(err)
	}

	return paths, nil
}
