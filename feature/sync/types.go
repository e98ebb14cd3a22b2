package sync

import (
	gosync "sync"

	"github.com/Zurki/immich-avif-generator/core/immich"
	"github.com/Zurki/immich-avif-generator/core/store"
)

// Outcome is the terminal state of one asset within a pass.
type Outcome string

const (
	OutcomeDownloaded Outcome = "downloaded"
	OutcomeConverted  Outcome = "converted"
	OutcomeSkipped    Outcome = "skipped"
	OutcomeFailed     Outcome = "failed"
	OutcomeRemoved    Outcome = "removed"
)

// Result summarizes one reconciliation pass.
type Result struct {
	Downloaded int
	Converted  int
	Skipped    int
	Failed     int
	Removed    int
	// Retained counts images that disappeared remotely but were kept
	// because delete_removed is off.
	Retained int
}

// Delta is the computed difference between a remote album listing and the
// local index for that album.
type Delta struct {
	// ToAdd lists assets missing locally or changed remotely, in listing
	// order.
	ToAdd []immich.Asset
	// ToRemove lists indexed images whose asset no longer exists remotely.
	ToRemove []store.Image
}

// passState tracks per-item outcomes and the aggregate result while worker
// pools mutate it concurrently. It lives for one pass and is then discarded;
// the index is the only persisted artifact.
type passState struct {
	mu       gosync.Mutex
	outcomes map[string]Outcome
	result   Result
}

func newPassState() *passState {
	return &passState{outcomes: make(map[string]Outcome)}
}

func (p *passState) record(assetID string, outcome Outcome) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.outcomes[assetID] = outcome
	switch outcome {
	case OutcomeDownloaded:
		p.result.Downloaded++
	case OutcomeConverted:
		p.result.Converted++
	case OutcomeSkipped:
		p.result.Skipped++
	case OutcomeFailed:
		p.result.Failed++
	case OutcomeRemoved:
		p.result.Removed++
	}
}

// skip counts assets that already match the index and need no work.
func (p *passState) skip(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.result.Skipped += n
}

func (p *passState) retain(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.result.Retained += n
}

func (p *passState) snapshot() Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result
}
