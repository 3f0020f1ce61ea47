package port

// Region is memory that plugin buffers can be carved from, possibly shared
// with another process.
type Region interface {
	// Resize returns size bytes of zeroed memory. Memory returned by
	// earlier calls stays valid until Close.
	Resize(size int) ([]byte, error)
	// Name identifies the current memory to another process.
	Name() string
	Close() error
}

// HeapRegion is a Region in process memory.
type HeapRegion struct{}

// NewHeapRegion creates a heap region
func NewHeapRegion() *HeapRegion { return &HeapRegion{} }

// Resize implements Region
func (r *HeapRegion) Resize(size int) ([]byte, error) {
	return make([]byte, size), nil
}

// Name implements Region
func (r *HeapRegion) Name() string { return "heap" }

// Close implements Region
func (r *HeapRegion) Close() error { return nil }
