package meta

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds the scoring constants shared by the planners.
type Tuning struct {
	CaptureRatio     float64 `yaml:"capture_ratio"`
	DefendRatio      float64 `yaml:"defend_ratio"`
	AllInAttackRatio float64 `yaml:"all_in_attack_ratio"`
	AllInDefendRatio float64 `yaml:"all_in_defend_ratio"`
	UnknownCost      int     `yaml:"unknown_cost"`
	WastelandCost    int     `yaml:"wasteland_cost"`
}

// DefaultTuning returns the constants the bot plays with out of the box.
func DefaultTuning() Tuning {
	return Tuning{
		CaptureRatio:     CAPTURE_RATIO,
		DefendRatio:      DEFEND_RATIO,
		AllInAttackRatio: ALL_IN_ATTACK_RATIO,
		AllInDefendRatio: ALL_IN_DEFEND_RATIO,
		UnknownCost:      UNKNOWN_COST,
		WastelandCost:    WASTELAND_COST,
	}
}

// LoadTuning reads a yaml file on top of the defaults, so a file only needs
// the keys it overrides.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("failed to read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("failed to parse tuning file %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

// Validate rejects constants that would make the planners loop or divide by zero.
func (t Tuning) Validate() error {
	if t.CaptureRatio <= 0 {
		return fmt.Errorf("capture_ratio must be positive, got %v", t.CaptureRatio)
	}
	if t.DefendRatio < 0 {
		return fmt.Errorf("defend_ratio must not be negative, got %v", t.DefendRatio)
	}
	if t.AllInAttackRatio <= 0 || t.AllInDefendRatio <= 0 {
		return fmt.Errorf("all-in ratios must be positive, got %v/%v", t.AllInAttackRatio, t.AllInDefendRatio)
	}
	if t.UnknownCost < 0 || t.WastelandCost < 0 {
		return fmt.Errorf("unknown region costs must not be negative, got %d/%d", t.UnknownCost, t.WastelandCost)
	}
	return nil
}
