package gc

import "github.com/lis05/cotton/internal/object"

// DefaultStrategy is the default GCStrategy: a cycle is triggered when the
// tracked-entity count has grown sixfold since the last cycle, when the
// tracked byte size has grown sixfold and crossed a minimum floor, or
// every opsMod tracking operations, whichever comes first.
type DefaultStrategy struct {
	numTrackedInit int64
	numTrackedMult int64
	count          int64
	prevCount      int64

	minCycleSize     int64
	sizeofTrackedInit int64
	sizeofTrackedMult int64
	size             int64
	prevSize         int64

	opsMod int64
	ops    int64
}

// NewDefaultStrategy constructs the default strategy with the constants
// from the runtime specification §4.2 (illustrative; any strategy with
// amortised O(live) cost is acceptable).
func NewDefaultStrategy() *DefaultStrategy {
	return &DefaultStrategy{
		numTrackedInit:    10_000,
		numTrackedMult:    6,
		prevCount:         10_000,
		minCycleSize:      80_000,
		sizeofTrackedInit: 80_000,
		sizeofTrackedMult: 6,
		prevSize:          80_000,
		opsMod:            100_000,
	}
}

func (s *DefaultStrategy) AcknowledgeTrackObject(*object.Object) { s.bumpCount() }
func (s *DefaultStrategy) AcknowledgeTrackType(*object.Type)     { s.bumpCount() }
func (s *DefaultStrategy) AcknowledgeTrackInstance(_ *object.Instance, bytes int64) {
	s.bumpCount()
	s.size += bytes
}

func (s *DefaultStrategy) AcknowledgeUntrackObject(*object.Object) { s.dropCount() }
func (s *DefaultStrategy) AcknowledgeUntrackType(*object.Type)     { s.dropCount() }
func (s *DefaultStrategy) AcknowledgeUntrackInstance(in *object.Instance) {
	s.dropCount()
	s.size -= in.ByteSize
}

func (s *DefaultStrategy) bumpCount() {
	s.count++
	s.tickOps()
}

func (s *DefaultStrategy) dropCount() {
	s.count--
	s.tickOps()
}

func (s *DefaultStrategy) tickOps() {
	s.ops++
	if s.ops >= s.opsMod {
		s.ops = 0
	}
}

// AcknowledgePing reports whether conditions for running a cycle have been
// met, per the three triggers in the runtime specification §4.2.
func (s *DefaultStrategy) AcknowledgePing(RootProvider) bool {
	if s.prevCount < s.count/s.numTrackedMult {
		return true
	}
	if s.prevSize < s.size/s.sizeofTrackedMult && s.size >= s.minCycleSize {
		return true
	}
	if s.ops%s.opsMod == 0 {
		return true
	}
	return false
}

// AcknowledgeEndOfCycle resets the prev_* baselines to the post-sweep
// state.
func (s *DefaultStrategy) AcknowledgeEndOfCycle(RootProvider) {
	s.prevCount = s.count
	s.prevSize = s.size
}
