package reporting

import (
	"strings"

	"github.com/ajkula/moni/config"
)

// ExecuteMarker is replaced by the expanded command in Messages.Execute
const ExecuteMarker = "MONI_EXE"

const (
	defaultTitle     = " start monitaring "
	defaultSeparator = "-"
	defaultPadding   = 25
)

// Messages are the lines written by the console printer.
type Messages struct {
	Start   string
	Success string
	Error   string
	Line    string
	Execute string
}

// DefaultMessages returns the centered banner lines, all as wide as the
// title line.
func DefaultMessages() Messages {
	b := banner{title: defaultTitle, separator: defaultSeparator, padding: defaultPadding}
	return Messages{
		Start:   b.start(),
		Success: b.center(" ok "),
		Error:   b.center(" error "),
		Line:    b.center("--"),
		Execute: "execute " + ExecuteMarker,
	}
}

// MessagesFromConfig overrides the defaults with the non-empty fields of dm.
func MessagesFromConfig(dm *config.DebugMessage) Messages {
	m := DefaultMessages()
	if dm == nil {
		return m
	}
	if dm.Title != "" {
		m.Start = dm.Title
	}
	if dm.Success != "" {
		m.Success = dm.Success
	}
	if dm.Error != "" {
		m.Error = dm.Error
	}
	if dm.Line != "" {
		m.Line = dm.Line
	}
	if dm.Execute != "" {
		m.Execute = dm.Execute
	}
	return m
}

// ExecuteLine substitutes command into the execute message. A message
// without the marker gets the command appended.
func (m Messages) ExecuteLine(command string) string {
	if strings.Contains(m.Execute, ExecuteMarker) {
		return strings.ReplaceAll(m.Execute, ExecuteMarker, command)
	}
	return strings.TrimRight(m.Execute, " ") + " " + command
}

type banner struct {
	title     string
	separator string
	padding   int
}

// center pads msg with separators so that it is as wide as the padded title.
// Messages longer than the title get the bare padding.
func (b banner) center(msg string) string {
	diff := len(b.title) - len(msg)
	if diff < 0 {
		diff = 0
	}
	side := strings.Repeat(b.separator, b.padding+diff/2)
	line := side + msg + side
	if diff%2 != 0 {
		line += "-"
	}
	return line
}

func (b banner) start() string {
	edge := b.center(strings.Repeat(b.separator, len(b.title)))
	return "\n" + edge + "\n" + b.center(b.title) + "\n" + edge + "\n"
}
