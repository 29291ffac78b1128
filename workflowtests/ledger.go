package workflowtests

import (
	"fmt"
	"sync"
)

// ResourceKind distinguishes the kinds of remote resources the workflow
// creates.
type ResourceKind string

const (
	ResourceUser     ResourceKind = "user"
	ResourceDatabase ResourceKind = "database"
	ResourceEntry    ResourceKind = "entry"
)

// Resource identifies one remote resource created during a run.
type Resource struct {
	Kind ResourceKind

	// Key is the server-assigned id for users and entries, or the name for
	// databases.
	Key string

	// Database is the owning database name; set for entries only.
	Database string
}

func (r Resource) String() string {
	if r.Kind == ResourceEntry {
		return fmt.Sprintf("%s %s in %q", r.Kind, r.Key, r.Database)
	}
	return fmt.Sprintf("%s %s", r.Kind, r.Key)
}

// ResourceLedger records every remote resource a run creates, so teardown
// can delete them all even after a mid-workflow failure. It is append-only
// while the scenario runs; reading it does not clear it, so teardown can
// safely be invoked more than once (deleting an already-deleted resource is
// tolerated downstream).
type ResourceLedger struct {
	lock      sync.Mutex
	resources []Resource
}

// Record appends a resource. Call it the moment a create call returns a
// key, before making any further assertion about the response, so a
// failure later in the stage still leaves the resource cleanable.
func (l *ResourceLedger) Record(r Resource) {
	l.lock.Lock()
	l.resources = append(l.resources, r)
	l.lock.Unlock()
}

// Snapshot returns a copy of everything recorded so far, in recording
// order.
func (l *ResourceLedger) Snapshot() []Resource {
	l.lock.Lock()
	ret := append([]Resource(nil), l.resources...)
	l.lock.Unlock()
	return ret
}

// OfKind returns the recorded resources of one kind, in recording order.
func (l *ResourceLedger) OfKind(kind ResourceKind) []Resource {
	var ret []Resource
	for _, r := range l.Snapshot() {
		if r.Kind == kind {
			ret = append(ret, r)
		}
	}
	return ret
}
