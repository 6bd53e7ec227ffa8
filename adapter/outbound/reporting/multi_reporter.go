package reporting

import (
	"github.com/ajkula/moni/domain/port/outbound"
)

// MultiReporter fans every notification out to its sinks, in order.
type MultiReporter struct {
	sinks []outbound.Reporter
}

// NewMultiReporter skips nil sinks.
func NewMultiReporter(sinks ...outbound.Reporter) *MultiReporter {
	m := &MultiReporter{}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

var _ outbound.Reporter = (*MultiReporter)(nil)

func (m *MultiReporter) Len() int {
	return len(m.sinks)
}

func (m *MultiReporter) OnStart() {
	for _, s := range m.sinks {
		s.OnStart()
	}
}

func (m *MultiReporter) OnCommandAbout(command string) {
	for _, s := range m.sinks {
		s.OnCommandAbout(command)
	}
}

func (m *MultiReporter) OnSuccess(output string) {
	for _, s := range m.sinks {
		s.OnSuccess(output)
	}
}

func (m *MultiReporter) OnError(output string) {
	for _, s := range m.sinks {
		s.OnError(output)
	}
}

func (m *MultiReporter) OnSeparator() {
	for _, s := range m.sinks {
		s.OnSeparator()
	}
}
