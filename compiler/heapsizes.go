package compiler

// HeapSizes is a single monotonically growing counter used to reserve
// heap-backed scratch space that must stay addressable independent of
// whichever stack frame happens to be active. Its users are the
// per-function argument relay in FunctionReference.Call and class
// property storage (allocateDeclaredVariable): a StackDirect address is
// only meaningful while the frame that owns it is the active one, so
// values that have to survive a call's frame activation boundary are
// routed through a fixed heap offset instead.
type HeapSizes struct {
	next int
}

func NewHeapSizes() *HeapSizes { return &HeapSizes{} }

// Allocate reserves n bytes and returns the offset they start at.
func (h *HeapSizes) Allocate(n int) int {
	offset := h.next
	h.next += n
	return offset
}
