package malloc

import "github.com/dustin/go-humanize"

import "github.com/bnclabs/segmalloc/api"
import "github.com/bnclabs/segmalloc/log"

// defaultDiagnostics formats api.Stats through the package's own
// logger at Verbose level, human-readable sizes courtesy of
// go-humanize — the same library the teacher's tools/ commands use for
// printing byte counts.
type defaultDiagnostics struct{}

// NewDiagnostics returns the default api.Diagnostics sink: a log line
// per snapshot, sizes rendered with humanize.Bytes.
func NewDiagnostics() api.Diagnostics {
	return defaultDiagnostics{}
}

func (defaultDiagnostics) Snapshot(stats api.Stats) {
	log.Verbosef(
		"malloc: heap %s alloc %s overhead %s capacity %s\n",
		humanize.Bytes(uint64(stats.Heap)),
		humanize.Bytes(uint64(stats.Alloc)),
		humanize.Bytes(uint64(stats.Overhead)),
		humanize.Bytes(uint64(stats.Capacity)),
	)
}
