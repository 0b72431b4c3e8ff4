package results

import (
	"sort"
	"sync"

	"idextract/internal/entity"
)

// Aggregator merges per-image outcomes into one identifier-keyed set. It is
// the only state shared between workers; every mutation goes through Record
// under the lock. A failed image gets a full placeholder record so the
// output shape stays uniform; its cause goes to the log channel, never into
// the record itself.
type Aggregator struct {
	mu        sync.Mutex
	records   map[string]entity.IdentityRecord
	succeeded int
	failed    int
}

func NewAggregator() *Aggregator {
	return &Aggregator{records: make(map[string]entity.IdentityRecord)}
}

// Record stores one completed outcome. Safe for concurrent use.
func (a *Aggregator) Record(imageID string, rec entity.IdentityRecord, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.records[imageID] = entity.NewDefaultRecord()
		a.failed++
		return
	}
	a.records[imageID] = rec
	a.succeeded++
}

// Len returns the number of recorded outcomes.
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.records)
}

// Counts returns successes and failures recorded so far.
func (a *Aggregator) Counts() (succeeded, failed int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.succeeded, a.failed
}

// ResultSet snapshots the aggregated records. Callers only read it after
// the dispatcher has drained, but the copy keeps it safe regardless.
func (a *Aggregator) ResultSet() map[string]entity.IdentityRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string]entity.IdentityRecord, len(a.records))
	for k, v := range a.records {
		out[k] = v
	}
	return out
}

// SortedIDs returns the image identifiers in the stable output order.
func SortedIDs(set map[string]entity.IdentityRecord) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
