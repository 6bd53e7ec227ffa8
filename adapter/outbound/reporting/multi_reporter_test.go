package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ajkula/moni/domain/port/outbound"
)

// MockReporter is a mock implementation of outbound.Reporter
type MockReporter struct {
	mock.Mock
}

func (m *MockReporter) OnStart()                      { m.Called() }
func (m *MockReporter) OnCommandAbout(command string) { m.Called(command) }
func (m *MockReporter) OnSuccess(output string)       { m.Called(output) }
func (m *MockReporter) OnError(output string)         { m.Called(output) }
func (m *MockReporter) OnSeparator()                  { m.Called() }

// MockLogger is a mock implementation of outbound.Logger
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Error(msg string, args ...any) { m.Called(msg, args) }
func (m *MockLogger) Warn(msg string, args ...any)  { m.Called(msg, args) }
func (m *MockLogger) Info(msg string, args ...any)  { m.Called(msg, args) }
func (m *MockLogger) Debug(msg string, args ...any) { m.Called(msg, args) }

// recorder keeps the order of notifications across sinks
type recorder struct {
	name  string
	calls *[]string
}

func (r recorder) OnStart()                { *r.calls = append(*r.calls, r.name+":start") }
func (r recorder) OnCommandAbout(c string) { *r.calls = append(*r.calls, r.name+":command:"+c) }
func (r recorder) OnSuccess(o string)      { *r.calls = append(*r.calls, r.name+":success:"+o) }
func (r recorder) OnError(o string)        { *r.calls = append(*r.calls, r.name+":error:"+o) }
func (r recorder) OnSeparator()            { *r.calls = append(*r.calls, r.name+":separator") }

func TestMultiReporter_FanOutInOrder(t *testing.T) {
	var calls []string
	multi := NewMultiReporter(recorder{"a", &calls}, nil, recorder{"b", &calls})

	assert.Equal(t, 2, multi.Len())

	multi.OnCommandAbout("ls")
	multi.OnError("bad")
	multi.OnSeparator()

	assert.Equal(t, []string{
		"a:command:ls", "b:command:ls",
		"a:error:bad", "b:error:bad",
		"a:separator", "b:separator",
	}, calls)
}

func TestMultiReporter_WithMocks(t *testing.T) {
	first := new(MockReporter)
	second := new(MockReporter)

	first.On("OnStart").Return()
	second.On("OnStart").Return()
	first.On("OnSuccess", "done").Return()
	second.On("OnSuccess", "done").Return()

	var sink outbound.Reporter = NewMultiReporter(first, second)
	sink.OnStart()
	sink.OnSuccess("done")

	first.AssertExpectations(t)
	second.AssertExpectations(t)
}

func TestLogReporter(t *testing.T) {
	logger := new(MockLogger)
	logger.On("Info", "Watch started", mock.Anything).Return()
	logger.On("Info", "Executing command", []any{"command", "make"}).Return()
	logger.On("Debug", "Action succeeded", []any{"output", "ok"}).Return()
	logger.On("Warn", "Action failed", []any{"output", "ko"}).Return()

	r := NewLogReporter(logger)
	r.OnStart()
	r.OnCommandAbout("make")
	r.OnSuccess("ok")
	r.OnError("ko")
	r.OnSeparator()

	logger.AssertExpectations(t)
}
