package index

// Tracker defines the bookkeeping operations the pipelines depend on.
// Consumers should depend on this interface rather than the concrete *DB
// type to facilitate testing with mocks.
type Tracker interface {
	MarkProcessed(path, checksum, kind string) error
	IsProcessed(path, checksum string) (bool, error)
	AllProcessed(kind string) (map[string]string, error)
	ForgetProcessed(path string) error
	LogRun(pipeline, target, status, detail string) error
	RecentRuns(limit int) ([]RunRecord, error)
	Close() error
}

// Verify *DB satisfies Tracker at compile time.
var _ Tracker = (*DB)(nil)
