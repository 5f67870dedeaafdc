package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Console writes operator-facing lines. Callers include the leading
// symbol ("+", "→", "×") in the message; Console only colors it.
type Console struct {
	out      io.Writer
	errOut   io.Writer
	styles   styles
	errStyle styles
	markdown *MarkdownRenderer
}

// NewConsole creates a Console writing to out and errOut. Colors and
// markdown styling are enabled only when out is a terminal.
func NewConsole(out, errOut io.Writer) *Console {
	if out == nil {
		panic("out is required")
	}
	if errOut == nil {
		panic("errOut is required")
	}
	md, err := NewMarkdownRenderer(IsTerminal(out))
	if err != nil {
		md = nil
	}
	return &Console{
		out:      out,
		errOut:   errOut,
		styles:   newStyles(out),
		errStyle: newStyles(errOut),
		markdown: md,
	}
}

// IsTerminal reports whether v is an *os.File attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (c *Console) Println(msg string) {
	fmt.Fprintln(c.out, msg)
}

func (c *Console) Success(msg string) {
	fmt.Fprintln(c.out, c.styles.success.Render(msg))
}

func (c *Console) Info(msg string) {
	fmt.Fprintln(c.out, c.styles.info.Render(msg))
}

func (c *Console) Warn(msg string) {
	fmt.Fprintln(c.out, c.styles.warn.Render(msg))
}

func (c *Console) Error(msg string) {
	fmt.Fprintln(c.out, c.styles.err.Render(msg))
}

// Muted prints secondary text such as usage hints.
func (c *Console) Muted(msg string) {
	fmt.Fprintln(c.out, c.styles.muted.Render(msg))
}

// Markdown prints text rendered as markdown. Text that fails to render is
// printed as is.
func (c *Console) Markdown(text string) {
	if c.markdown != nil {
		if rendered, err := c.markdown.Render(text); err == nil {
			fmt.Fprintln(c.out, rendered)
			return
		}
	}
	fmt.Fprintln(c.out, text)
}

// Box prints title inside a rounded border.
func (c *Console) Box(title string) {
	fmt.Fprintln(c.out, c.styles.box.Render(c.styles.title.Render(title)))
}

// PrintError writes the formatted error chain to the error stream.
func (c *Console) PrintError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(c.errOut, c.errStyle.err.Render(FormatError(err)))
}
