package rt

import "github.com/lis05/cotton/internal/object"

// BeginImport marks path as currently loading, for cycle detection in
// package module's source importer. Reports false if path is already
// being loaded (a cycle).
func (rt *Runtime) BeginImport(path string) bool {
	if rt.importing[path] {
		return false
	}
	rt.importing[path] = true
	return true
}

// EndImport clears path's in-progress marker. Deferred by the caller
// immediately after a successful BeginImport.
func (rt *Runtime) EndImport(path string) {
	delete(rt.importing, path)
}

// CachedImport returns a previously loaded source-import result for
// path, if any.
func (rt *Runtime) CachedImport(path string) (*object.Object, bool) {
	obj, ok := rt.imported[path]
	return obj, ok
}

// CacheImport records the namespace object produced by loading path, so
// a second import of the same path is a cache hit rather than a reload.
func (rt *Runtime) CacheImport(path string, obj *object.Object) {
	rt.imported[path] = obj
}
