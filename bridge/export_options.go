package bridge

import "github.com/apache/arrow-go/v18/arrow/memory"

// ExportOption configures ExportSchema and ExportArray.
type ExportOption func(*exportConfig)

type exportConfig struct {
	alloc     memory.Allocator
	onRelease func(path string)
}

// WithAllocator sets the allocator used for every record, string and
// pointer table of the exported tree. The memory is handed to foreign code,
// so the allocator must not return Go heap memory; the default is a
// mallocator.
func WithAllocator(alloc memory.Allocator) ExportOption {
	return func(c *exportConfig) { c.alloc = alloc }
}

// WithReleaseHook registers fn to be called each time a node of the
// exported tree finishes releasing. path is "" for the root, the child
// index chain ("0", "1.0") for children and ends in "d" for a dictionary.
// Children always report before their parent.
func WithReleaseHook(fn func(path string)) ExportOption {
	return func(c *exportConfig) { c.onRelease = fn }
}

func newExportConfig(opts []ExportOption) *exportConfig {
	cfg := &exportConfig{}
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}
