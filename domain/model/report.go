package model

import "time"

// ReportKind names a reporting sink callback point
type ReportKind string

const (
	ReportStart     ReportKind = "start"
	ReportCommand   ReportKind = "command"
	ReportSuccess   ReportKind = "success"
	ReportError     ReportKind = "error"
	ReportSeparator ReportKind = "separator"
)

// ReportEvent is one reporter notification in serializable form.
type ReportEvent struct {
	ID      string     `json:"id"`
	Kind    ReportKind `json:"kind"`
	Message string     `json:"message,omitempty"`
	Time    time.Time  `json:"time"`
}
