package leveled

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultActiveCapacity is the active page size used when Options leaves
// ActiveCapacity unset.
const DefaultActiveCapacity = 4096

// Options configures a Storage.
type Options struct {
	// ActiveCapacity is the fixed slot count of the active page (C0).
	ActiveCapacity int `yaml:"active_capacity"`
	// WarmThreshold is the warm page length above which compaction
	// cascades into the cold page. Defaults to 2*ActiveCapacity.
	WarmThreshold int `yaml:"warm_threshold"`
	// BloomFpRate is the false-positive rate of the per-page bloom
	// filters attached to merge-produced pages. Zero disables them.
	BloomFpRate float64 `yaml:"bloom_fp_rate"`

	// Allocator admits page capacity; nil means the unbounded Go heap.
	Allocator Allocator `yaml:"-"`
	// Logger receives compaction debug events; nil means no logging.
	Logger *zap.Logger `yaml:"-"`
}

// DefaultOptions returns the stock configuration: 4096-slot active page,
// cascade threshold at twice that, filters at 1% false positives.
func DefaultOptions() Options {
	return Options{
		ActiveCapacity: DefaultActiveCapacity,
		WarmThreshold:  2 * DefaultActiveCapacity,
		BloomFpRate:    0.01,
	}
}

func (o Options) withDefaults() Options {
	if o.ActiveCapacity <= 0 {
		o.ActiveCapacity = DefaultActiveCapacity
	}
	if o.WarmThreshold <= 0 {
		o.WarmThreshold = 2 * o.ActiveCapacity
	}
	if o.BloomFpRate < 0 || o.BloomFpRate >= 1 {
		o.BloomFpRate = 0
	}
	if o.Allocator == nil {
		o.Allocator = heapAllocator{}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// LoadOptions reads Options from a YAML file. Fields absent from the file
// keep their DefaultOptions values.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read options: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse options: %w", err)
	}
	return opts, nil
}
