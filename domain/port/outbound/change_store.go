package outbound

// ChangeStore remembers the last observed value per path and decides what
// counts as a change.
type ChangeStore interface {
	// true if the path was never recorded
	IsNew(path string) bool

	// true if the path is recorded with a value different from value
	IsModified(path string, value int64) bool

	// records value only when the path is new
	Insert(path string, value int64)

	// records value only when the path is modified
	Update(path string, value int64)

	// drops every recorded path missing from present and returns how many went
	Prune(present map[string]struct{}) int

	// number of recorded paths
	Len() int

	// copy of every recorded path and value
	Snapshot() map[string]int64
}
