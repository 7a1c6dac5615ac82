package assertion

import (
	"sort"
	"sync"

	"github.com/specvital/testdoc/pkg/domain"
)

// DefaultPriority is the default priority for detectors.
const DefaultPriority = 100

// NameTestNG identifies the built-in TestNG/JUnit keyword detector.
const NameTestNG = "testng"

var defaultRegistry = NewRegistry()

func init() {
	Register(NewKeywordDetector(NameTestNG, DefaultPriority, TestNGRules))
}

// Registry holds detectors ordered by priority. It is itself a Detector:
// detectors are tried in order and the first hit wins.
type Registry struct {
	mu        sync.RWMutex
	detectors []Detector
}

// NewRegistry creates a new empty detector registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry returns the global registry holding the built-in detectors.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds a detector to the default registry.
func Register(d Detector) {
	defaultRegistry.Register(d)
}

// Register adds a detector to the registry.
// Detectors with equal priority keep their registration order.
func (r *Registry) Register(d Detector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detectors = append(r.detectors, d)
	sort.SliceStable(r.detectors, func(i, j int) bool {
		return r.detectors[i].Priority() > r.detectors[j].Priority()
	})
}

// Detectors returns a copy of all registered detectors.
func (r *Registry) Detectors() []Detector {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]Detector, len(r.detectors))
	copy(result, r.detectors)
	return result
}

// FindByName returns the detector with the given name, or nil.
func (r *Registry) FindByName(name string) Detector {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.detectors {
		if d.Name() == name {
			return d
		}
	}
	return nil
}

// Clear removes all registered detectors.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detectors = nil
}

// Name returns "registry".
func (r *Registry) Name() string { return "registry" }

// Priority returns DefaultPriority, so a registry can be nested in another one.
func (r *Registry) Priority() int { return DefaultPriority }

// Detect tries every registered detector in priority order.
func (r *Registry) Detect(line string) (domain.AssertionFragment, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.detectors {
		if f, ok := d.Detect(line); ok {
			return f, true
		}
	}
	return domain.AssertionFragment{}, false
}
