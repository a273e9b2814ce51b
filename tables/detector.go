package tables

import (
	"fmt"

	"github.com/tsawler/contour/model"
)

// Detector is the interface for table detection algorithms.
type Detector interface {
	// Detect finds tables among one page's fragment rows. Rows arrive in
	// reading order, fragments within a row left to right.
	Detect(page int, rows [][]model.Span) ([]model.Table, error)

	// Name returns the detector name.
	Name() string

	// Configure sets detector parameters.
	Configure(config Config) error
}

// Config holds detector configuration.
type Config struct {
	// Minimum rows for a valid table.
	MinRows int

	// Minimum columns for a valid table.
	MinCols int

	// Tolerance for column alignment (points).
	AlignmentTolerance float64

	// Maximum vertical gap between consecutive rows of one table,
	// as a multiple of the row height.
	MaxRowGap float64
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		MinRows:            2,
		MinCols:            2,
		AlignmentTolerance: 4.0,
		MaxRowGap:          2.5,
	}
}

// validate reports the first invalid field, if any.
func (c Config) validate() error {
	if c.MinRows < 1 {
		return fmt.Errorf("tables: MinRows must be at least 1, got %d", c.MinRows)
	}
	if c.MinCols < 1 {
		return fmt.Errorf("tables: MinCols must be at least 1, got %d", c.MinCols)
	}
	if c.AlignmentTolerance <= 0 {
		return fmt.Errorf("tables: AlignmentTolerance must be positive, got %v", c.AlignmentTolerance)
	}
	return nil
}

// DetectorRegistry holds registered detectors.
type DetectorRegistry struct {
	detectors map[string]Detector
}

// NewRegistry creates a new detector registry.
func NewRegistry() *DetectorRegistry {
	return &DetectorRegistry{
		detectors: make(map[string]Detector),
	}
}

// Register registers a detector.
func (r *DetectorRegistry) Register(detector Detector) {
	r.detectors[detector.Name()] = detector
}

// Get retrieves a detector by name, or nil if none is registered.
func (r *DetectorRegistry) Get(name string) Detector {
	return r.detectors[name]
}

// List returns all registered detector names.
func (r *DetectorRegistry) List() []string {
	names := make([]string, 0, len(r.detectors))
	for name := range r.detectors {
		names = append(names, name)
	}
	return names
}

// Global registry
var globalRegistry = NewRegistry()

// RegisterDetector registers a detector globally.
func RegisterDetector(detector Detector) {
	globalRegistry.Register(detector)
}

// GetDetector retrieves a detector by name from the global registry.
func GetDetector(name string) Detector {
	return globalRegistry.Get(name)
}

// ListDetectors returns all registered detector names.
func ListDetectors() []string {
	return globalRegistry.List()
}

func init() {
	RegisterDetector(NewGeometricDetector())
}
