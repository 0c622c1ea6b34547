// SPDX-License-Identifier: MPL-2.0

package opener

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/shaderkit/openinclude/pkg/platform"

	"mvdan.cc/sh/v3/shell"
)

const (
	// FileVar expands to the absolute path of the file being opened.
	FileVar = "FILE"
	// DirVar expands to the directory containing the file being opened.
	DirVar = "DIR"
)

var (
	// ErrEmptyCommand is returned when a template expands to no words.
	ErrEmptyCommand = errors.New("editor command is empty")
	// ErrInvalidTemplate is returned when a template cannot be split into words.
	ErrInvalidTemplate = errors.New("invalid editor command")
)

type (
	// Opener opens a file by path.
	Opener interface {
		Open(ctx context.Context, path string) error
	}

	// Command opens files by running an external program built from a
	// template. $FILE and $DIR are expanded; other variables come from the
	// process environment.
	Command struct {
		// Template is the command line. Empty uses DefaultTemplate for the
		// running platform.
		Template string
		// Stdout and Stderr receive the program's output. Nil discards it.
		Stdout io.Writer
		Stderr io.Writer
		// Getenv looks up variables other than FILE and DIR. Nil uses os.Getenv.
		Getenv func(string) string
	}

	// Printer "opens" a file by writing its path followed by a newline.
	Printer struct {
		W io.Writer
	}
)

// DefaultTemplate returns the platform file opener for goos.
func DefaultTemplate(goos string) string {
	switch goos {
	case platform.Windows:
		return `cmd /c start "" "$FILE"`
	case platform.Darwin:
		return `open "$FILE"`
	default:
		return `xdg-open "$FILE"`
	}
}

// NewCommand returns a Command for template, falling back to the platform
// default when template is empty.
func NewCommand(template string) *Command {
	return &Command{Template: template}
}

// Args expands the template for path and returns the program and its
// arguments.
func (c *Command) Args(path string) ([]string, error) {
	template := c.Template
	if template == "" {
		template = DefaultTemplate(runtime.GOOS)
	}

	getenv := c.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	fields, err := shell.Fields(template, func(name string) string {
		switch name {
		case FileVar:
			return path
		case DirVar:
			return filepath.Dir(path)
		default:
			return getenv(name)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidTemplate, template, err)
	}
	if len(fields) == 0 {
		return nil, ErrEmptyCommand
	}

	return fields, nil
}

// Open runs the expanded command and waits for it to exit.
func (c *Command) Open(ctx context.Context, path string) error {
	args, err := c.Args(path)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run %s: %w", args[0], err)
	}
	return nil
}

// Open writes path to the underlying writer.
func (p Printer) Open(_ context.Context, path string) error {
	if _, err := fmt.Fprintln(p.W, path); err != nil {
		return fmt.Errorf("failed to print path: %w", err)
	}
	return nil
}
