package reporting

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss/v2"

	"github.com/ajkula/moni/domain/port/outbound"
)

var (
	startStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	lineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// ConsolePrinter writes the action banners and command output to a terminal.
type ConsolePrinter struct {
	out      io.Writer
	messages Messages
	plain    bool
	mu       sync.Mutex
}

// NewConsolePrinter writes to out, or to stdout when out is nil.
func NewConsolePrinter(out io.Writer, messages Messages, plain bool) *ConsolePrinter {
	if out == nil {
		out = os.Stdout
	}
	return &ConsolePrinter{
		out:      out,
		messages: messages,
		plain:    plain,
	}
}

var _ outbound.Reporter = (*ConsolePrinter)(nil)

func (p *ConsolePrinter) OnStart() {
	p.println(startStyle, p.messages.Start)
}

// OnCommandAbout prints the separator in stars, then the execute line
func (p *ConsolePrinter) OnCommandAbout(command string) {
	p.println(lineStyle, strings.ReplaceAll(p.messages.Line, "-", "*"))
	p.println(commandStyle, p.messages.ExecuteLine(command))
}

func (p *ConsolePrinter) OnSuccess(output string) {
	p.println(successStyle, p.messages.Success)
	p.raw(output)
}

func (p *ConsolePrinter) OnError(output string) {
	p.println(errorStyle, p.messages.Error)
	p.raw(output)
}

func (p *ConsolePrinter) OnSeparator() {
	p.println(lineStyle, p.messages.Line)
}

func (p *ConsolePrinter) println(style lipgloss.Style, msg string) {
	if !p.plain {
		msg = style.Render(msg)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, msg)
}

// raw writes command output untouched, ending it with a newline
func (p *ConsolePrinter) raw(output string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if output == "" || strings.HasSuffix(output, "\n") {
		fmt.Fprint(p.out, output)
		return
	}
	fmt.Fprintln(p.out, output)
}
