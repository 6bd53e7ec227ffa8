package model

// ChangeKind tells why a path was dispatched.
type ChangeKind string

const (
	ChangeCreated  ChangeKind = "created"
	ChangeModified ChangeKind = "modified"
)

// DetectMode selects the observed value stored per file.
type DetectMode string

const (
	DetectBySize    DetectMode = "size"
	DetectByModTime DetectMode = "mtime"
)
