package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/alnah/go-mdview/internal/browser"
	"github.com/alnah/go-mdview/internal/opener"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, process environment, terminal geometry, and the browser.
type Environment struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string

	// IsTerminal reports whether Stdout is an interactive terminal.
	IsTerminal func() bool

	// Columns returns the terminal width in cells, or 0 when unknown.
	Columns func() int

	Opener   opener.Opener
	Launcher browser.Launcher // nil uses go-rod
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Getenv:     os.Getenv,
		Environ:    os.Environ,
		IsTerminal: stdoutIsTerminal,
		Columns:    stdoutColumns,
		Opener:     &opener.System{},
	}
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func stdoutColumns() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd())) // #nosec G115 -- file descriptors fit in int
	if err != nil || w <= 0 {
		return 0
	}
	return w
}

// getenv returns Getenv, or a lookup that finds nothing when unset.
func (e *Environment) getenv() func(string) string {
	if e.Getenv == nil {
		return func(string) string { return "" }
	}
	return e.Getenv
}

// columns returns the terminal width, or 0 when unknown.
func (e *Environment) columns() int {
	if e.Columns == nil {
		return 0
	}
	return e.Columns()
}
