package collections

import (
	"fmt"
	"strings"

	"github.com/joshuapare/slabkit/internal/buf"
)

// CapacityPolicy picks a container's starting capacity.
type CapacityPolicy interface {
	Initial(requested int) int
}

// ResizingPolicy additionally decides how capacity follows the length.
// Implementations are pure functions of their arguments and must not allocate.
type ResizingPolicy interface {
	CapacityPolicy

	// Grow returns the capacity to use when a push finds size == capacity.
	Grow(size int) int

	// Shrink returns the capacity to use after a pop leaves size elements in
	// a buffer of the given capacity. Returning capacity means no change.
	Shrink(size, capacity int) int
}

// FixedCapacity is the policy of bounded containers: the requested capacity
// is final.
type FixedCapacity struct{}

func (FixedCapacity) Initial(requested int) int { return requested }

// GrowthConfig is a ResizingPolicy built from integer ratios. All arithmetic
// saturates rather than overflowing.
//
//	Initial(n)    = max(Floor, n)
//	Grow(s)       = s * GrowNum / GrowDen
//	Shrink(s, c)  = max(Floor, s * TargetNum / TargetDen)   if s * TriggerNum / TriggerDen < c
//	              = c                                        otherwise
type GrowthConfig struct {
	// Name for this configuration (for CLI output and lookup)
	Name string `yaml:"name" json:"name"`

	// Floor is the smallest capacity the policy ever asks for.
	Floor int `yaml:"floor" json:"floor"`

	// Growth factor applied to a full buffer.
	GrowNum int `yaml:"grow_num" json:"grow_num"`
	GrowDen int `yaml:"grow_den" json:"grow_den"`

	// Shrink fires once capacity exceeds size * TriggerNum / TriggerDen.
	TriggerNum int `yaml:"trigger_num" json:"trigger_num"`
	TriggerDen int `yaml:"trigger_den" json:"trigger_den"`

	// Shrink target relative to size.
	TargetNum int `yaml:"target_num" json:"target_num"`
	TargetDen int `yaml:"target_den" json:"target_den"`
}

// Predefined configurations.
var (
	// DefaultGrowth: 50% over-allocation, shrink below 4/9 utilisation.
	DefaultGrowth = GrowthConfig{
		Name:       "default",
		Floor:      10,
		GrowNum:    3,
		GrowDen:    2,
		TriggerNum: 9,
		TriggerDen: 4,
		TargetNum:  3,
		TargetDen:  2,
	}

	// Doubling: fewer resizes at the price of up to 50% slack.
	Doubling = GrowthConfig{
		Name:       "doubling",
		Floor:      8,
		GrowNum:    2,
		GrowDen:    1,
		TriggerNum: 4,
		TriggerDen: 1,
		TargetNum:  2,
		TargetDen:  1,
	}

	// Conservative: tight packing for memory-bound workloads.
	Conservative = GrowthConfig{
		Name:       "conservative",
		Floor:      16,
		GrowNum:    5,
		GrowDen:    4,
		TriggerNum: 2,
		TriggerDen: 1,
		TargetNum:  5,
		TargetDen:  4,
	}
)

// Presets returns the predefined configurations.
func Presets() []GrowthConfig {
	return []GrowthConfig{DefaultGrowth, Doubling, Conservative}
}

// PresetByName looks up a predefined configuration, ignoring case.
func PresetByName(name string) (GrowthConfig, bool) {
	for _, p := range Presets() {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return GrowthConfig{}, false
}

// Validate reports whether the ratios describe a policy that grows on push
// and leaves a hysteresis gap between the shrink trigger and target.
func (g GrowthConfig) Validate() error {
	switch {
	case g.Floor < 0:
		return fmt.Errorf("%w: floor %d < 0", ErrInvalidPolicy, g.Floor)
	case g.GrowDen <= 0 || g.TriggerDen <= 0 || g.TargetDen <= 0:
		return fmt.Errorf("%w: denominators must be positive", ErrInvalidPolicy)
	case g.GrowNum <= g.GrowDen:
		return fmt.Errorf("%w: growth factor %d/%d must exceed 1", ErrInvalidPolicy, g.GrowNum, g.GrowDen)
	case g.TargetNum < g.TargetDen:
		return fmt.Errorf("%w: shrink target %d/%d must be at least 1", ErrInvalidPolicy, g.TargetNum, g.TargetDen)
	case g.TriggerNum*g.TargetDen <= g.TargetNum*g.TriggerDen:
		return fmt.Errorf("%w: shrink trigger %d/%d must exceed target %d/%d",
			ErrInvalidPolicy, g.TriggerNum, g.TriggerDen, g.TargetNum, g.TargetDen)
	}
	return nil
}

func (g GrowthConfig) Initial(requested int) int {
	return max(g.Floor, requested)
}

func (g GrowthConfig) Grow(size int) int {
	return buf.MulDiv(size, g.GrowNum, g.GrowDen)
}

func (g GrowthConfig) Shrink(size, capacity int) int {
	if g.ShrinkAbove(size) < capacity {
		return max(g.Floor, buf.MulDiv(size, g.TargetNum, g.TargetDen))
	}
	return capacity
}

// ShrinkAbove returns the largest capacity that a buffer holding size
// elements keeps without shrinking.
func (g GrowthConfig) ShrinkAbove(size int) int {
	return buf.MulDiv(size, g.TriggerNum, g.TriggerDen)
}

func (g GrowthConfig) String() string {
	if g.Name != "" {
		return g.Name
	}
	return fmt.Sprintf("growth(x%d/%d)", g.GrowNum, g.GrowDen)
}

var (
	_ CapacityPolicy = FixedCapacity{}
	_ ResizingPolicy = GrowthConfig{}
)
