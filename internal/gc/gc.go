// Package gc implements Cotton's tracing garbage collector: tracking,
// reachability, mark-and-sweep, and the pluggable trigger strategy
// described in the runtime specification §4.2.
package gc

import "github.com/lis05/cotton/internal/object"

// RootProvider is implemented by the orchestrator (package rt) to expose
// every GC root: scope-bound variables, the builtin type table, the three
// protected singletons, held objects, cached literals, globals, and the
// type-object registry. Marking walks outward from these.
type RootProvider interface {
	// RootObjects returns every Object directly reachable as a root.
	RootObjects() []*object.Object
	// RootTypes returns every Type directly reachable as a root (the
	// builtin type table, plus any record types reachable only via a
	// global or scope variable are already covered through RootObjects).
	RootTypes() []*object.Type
}

// Strategy decides when a GC cycle should run. It receives an
// acknowledgement call for every track/untrack of an object, instance or
// type (six hooks), plus AcknowledgePing and AcknowledgeEndOfCycle around
// cycles, mirroring the GCStrategy interface of the original
// implementation.
type Strategy interface {
	AcknowledgeTrackObject(o *object.Object)
	AcknowledgeTrackInstance(in *object.Instance, bytes int64)
	AcknowledgeTrackType(t *object.Type)
	AcknowledgeUntrackObject(o *object.Object)
	AcknowledgeUntrackInstance(in *object.Instance)
	AcknowledgeUntrackType(t *object.Type)
	AcknowledgeEndOfCycle(rt RootProvider)
	AcknowledgePing(rt RootProvider) bool // returns true if a cycle should run now
}

// GC owns the three tracked sets and the held-object multiset, and runs
// mark-and-sweep cycles on demand.
type GC struct {
	objects   map[*object.Object]struct{}
	instances map[*object.Instance]struct{}
	types     map[*object.Type]struct{}

	held map[*object.Object]int64

	mark     bool
	enabled  bool
	strategy Strategy

	// byteSize tracks total tracked instance bytes, used by the default
	// strategy and exposed for diagnostics.
	byteSize int64
}

// New constructs a GC using the given trigger strategy. Pass nil to use
// NewDefaultStrategy().
func New(strategy Strategy) *GC {
	if strategy == nil {
		strategy = NewDefaultStrategy()
	}
	return &GC{
		objects:   map[*object.Object]struct{}{},
		instances: map[*object.Instance]struct{}{},
		types:     map[*object.Type]struct{}{},
		held:      map[*object.Object]int64{},
		enabled:   true,
		strategy:  strategy,
	}
}

// Enable turns the collector on.
func (g *GC) Enable() { g.enabled = true }

// Disable turns the collector off; Ping becomes a no-op until re-enabled.
func (g *GC) Disable() { g.enabled = false }

// Track registers o with the GC.
func (g *GC) Track(o *object.Object) {
	o.GCMark = g.mark
	g.objects[o] = struct{}{}
	g.strategy.AcknowledgeTrackObject(o)
}

// TrackInstance registers in with the GC, recording its byte size for the
// default strategy's size-based trigger.
func (g *GC) TrackInstance(in *object.Instance) {
	in.GCMark = g.mark
	g.instances[in] = struct{}{}
	g.byteSize += in.ByteSize
	g.strategy.AcknowledgeTrackInstance(in, in.ByteSize)
}

// TrackType registers t with the GC.
func (g *GC) TrackType(t *object.Type) {
	t.GCMark = g.mark
	g.types[t] = struct{}{}
	g.strategy.AcknowledgeTrackType(t)
}

func (g *GC) untrackObject(o *object.Object) {
	delete(g.objects, o)
	g.strategy.AcknowledgeUntrackObject(o)
}

func (g *GC) untrackInstance(in *object.Instance) {
	delete(g.instances, in)
	g.byteSize -= in.ByteSize
	g.strategy.AcknowledgeUntrackInstance(in)
}

func (g *GC) untrackType(t *object.Type) {
	delete(g.types, t)
	g.strategy.AcknowledgeUntrackType(t)
}

// Hold registers obj as a GC root regardless of lexical reachability,
// incrementing its hold count.
func (g *GC) Hold(obj *object.Object) {
	g.held[obj]++
}

// Release decrements obj's hold count; once it reaches zero the object is
// no longer held.
func (g *GC) Release(obj *object.Object) {
	if g.held[obj] <= 1 {
		delete(g.held, obj)
		return
	}
	g.held[obj]--
}

// IsHeld reports whether obj currently has a positive hold count.
func (g *GC) IsHeld(obj *object.Object) bool {
	return g.held[obj] > 0
}

// Ping asks the strategy whether a cycle should run now, and runs one if
// so. No-op when the collector is disabled.
func (g *GC) Ping(rt RootProvider) {
	if !g.enabled {
		return
	}
	if g.strategy.AcknowledgePing(rt) {
		g.RunCycle(rt)
	}
}

// Stats summarizes the tracked sets, useful for tests and diagnostics.
type Stats struct {
	Objects   int
	Instances int
	Types     int
	Bytes     int64
}

// Stats returns a snapshot of the tracked-set sizes.
func (g *GC) Stats() Stats {
	return Stats{
		Objects:   len(g.objects),
		Instances: len(g.instances),
		Types:     len(g.types),
		Bytes:     g.byteSize,
	}
}

// RunCycle performs one mark-and-sweep cycle: marks everything reachable
// from rt's roots, then destroys every tracked entity whose mark doesn't
// match the new current mark bit.
func (g *GC) RunCycle(rt RootProvider) {
	if !g.enabled {
		return
	}
	newMark := !g.mark

	visitedObjects := map[*object.Object]struct{}{}
	visitedInstances := map[*object.Instance]struct{}{}
	visitedTypes := map[*object.Type]struct{}{}

	var markObject func(o *object.Object)
	var markInstance func(in *object.Instance)
	var markType func(t *object.Type)

	markObject = func(o *object.Object) {
		if o == nil {
			return
		}
		if _, ok := visitedObjects[o]; ok {
			return
		}
		visitedObjects[o] = struct{}{}
		o.GCMark = newMark
		objs, insts, types := o.GCReachable()
		for _, c := range objs {
			markObject(c)
		}
		for _, c := range insts {
			markInstance(c)
		}
		for _, c := range types {
			markType(c)
		}
	}
	markInstance = func(in *object.Instance) {
		if in == nil {
			return
		}
		if _, ok := visitedInstances[in]; ok {
			return
		}
		visitedInstances[in] = struct{}{}
		in.GCMark = newMark
		for _, c := range in.GCReachable() {
			markObject(c)
		}
		// FuncData.DefiningEnv is not walked here: a defining scope's
		// variables are marked only while that frame is on the live scope
		// stack that RootProvider.RootObjects() walks.
	}
	markType = func(t *object.Type) {
		if t == nil {
			return
		}
		if _, ok := visitedTypes[t]; ok {
			return
		}
		visitedTypes[t] = struct{}{}
		t.GCMark = newMark
		for _, c := range t.GCReachable() {
			markObject(c)
		}
	}

	for _, o := range rt.RootObjects() {
		markObject(o)
	}
	for held := range g.held {
		markObject(held)
	}
	for _, t := range rt.RootTypes() {
		markType(t)
	}

	// Sweep.
	for o := range g.objects {
		if o.GCMark != newMark {
			g.untrackObject(o)
		}
	}
	for in := range g.instances {
		if in.GCMark != newMark {
			g.untrackInstance(in)
		}
	}
	for t := range g.types {
		if t.GCMark != newMark {
			g.untrackType(t)
		}
	}

	g.mark = newMark
	g.strategy.AcknowledgeEndOfCycle(rt)
}
