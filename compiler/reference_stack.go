package compiler

import "fmt"

type namedReference struct {
	name string
	ref  Reference
}

type refHandler struct {
	entries []namedReference
}

// ReferenceStack is the scoped symbol table: a stack of handlers, one
// per active block, searched top-down from whatever depth limit is
// currently in force. A depth limit quarantines a function body from
// its lexical surroundings while it compiles; the sentinel name "self"
// escapes the quarantine by one level so a method can still reach its
// own class.
type ReferenceStack struct {
	handlers   []*refHandler
	depthLimit int
}

const SelfName = "self"

func NewReferenceStack() *ReferenceStack { return &ReferenceStack{} }

func (r *ReferenceStack) AddHandler() { r.handlers = append(r.handlers, &refHandler{}) }

func (r *ReferenceStack) RemoveHandler() {
	r.handlers = r.handlers[:len(r.handlers)-1]
}

// Depth is the number of handlers currently pushed.
func (r *ReferenceStack) Depth() int { return len(r.handlers) }

func (r *ReferenceStack) DepthLimit() int { return r.depthLimit }

func (r *ReferenceStack) SetDepthLimit(n int) { r.depthLimit = n }

// Register binds ref under path. A single-segment path is registered
// into the handler offsetFromTop handlers below the current top (0 is
// the top handler itself). A multi-segment path resolves every segment
// but the last through GetReference and registers the final segment
// into the resulting class's member map, ignoring offsetFromTop: a
// class's own members always live on the class, not on the handler
// stack.
func (r *ReferenceStack) Register(ref Reference, path []string, offsetFromTop int) error {
	if len(path) == 0 {
		return fmt.Errorf("internal error: empty reference path")
	}
	if len(path) > 1 {
		owner, err := r.GetReference(path[:len(path)-1])
		if err != nil {
			return err
		}
		class, err := owner.GetClass()
		if err != nil {
			return err
		}
		return class.Register(path[len(path)-1], ref)
	}

	idx := len(r.handlers) - 1 - offsetFromTop
	if idx < 0 || idx >= len(r.handlers) {
		return fmt.Errorf("internal error: invalid reference handler offset %d", offsetFromTop)
	}
	h := r.handlers[idx]
	name := path[0]
	for _, e := range h.entries {
		if e.name == name {
			return fmt.Errorf("'%s' is already declared in this scope", name)
		}
	}
	h.entries = append(h.entries, namedReference{name: name, ref: ref})
	return nil
}

// GetReference resolves a dotted path against the handlers visible at
// the current depth limit, then descends into class namespaces for any
// remaining segments.
func (r *ReferenceStack) GetReference(path []string) (*Reference, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("internal error: empty reference path")
	}
	head := path[0]
	var found *Reference
	for i := len(r.handlers) - 1; i >= r.depthLimit && i >= 0; i-- {
		h := r.handlers[i]
		for j := range h.entries {
			if h.entries[j].name == head {
				found = &h.entries[j].ref
				break
			}
		}
		if found != nil {
			break
		}
	}
	if found == nil {
		return nil, fmt.Errorf("reference '%s' not found", head)
	}
	for _, seg := range path[1:] {
		class, err := found.GetClass()
		if err != nil {
			return nil, err
		}
		found, err = class.Get(seg)
		if err != nil {
			return nil, err
		}
	}
	return found, nil
}
