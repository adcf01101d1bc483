package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnitMode selects how property categories decide whether a unit number is required
type UnitMode string

const (
	// UnitModeWhitelist requires a unit when any category is in TypesRequiringUnit
	UnitModeWhitelist UnitMode = "whitelist"
	// UnitModeBlacklist requires a unit when any category is outside TypesNotRequiringUnit
	UnitModeBlacklist UnitMode = "blacklist"
)

// EmptyCategoryPolicy decides what happens when every category result is filtered out
type EmptyCategoryPolicy string

const (
	EmptyCategoryIgnore EmptyCategoryPolicy = "ignore"
	EmptyCategoryFail   EmptyCategoryPolicy = "fail"
)

// Rules are the validation toggles loaded once at startup
type Rules struct {
	UnitRequirementMode   UnitMode            `yaml:"unit_requirement_mode"`
	TypesRequiringUnit    []string            `yaml:"types_requiring_unit"`
	TypesNotRequiringUnit []string            `yaml:"types_not_requiring_unit"`
	ExactExclusions       []string            `yaml:"exact_category_exclusions"`
	SubstringExclusions   []string            `yaml:"substring_category_exclusions"`
	StripTrailingAlpha    bool                `yaml:"block_strip_trailing_alpha"`
	EmptyCategoryPolicy   EmptyCategoryPolicy `yaml:"empty_category_policy"`
}

// DefaultRules returns the Singapore defaults
func DefaultRules() Rules {
	return Rules{
		UnitRequirementMode: UnitModeWhitelist,
		TypesRequiringUnit: []string{
			"Apartments",
			"Commercial Building",
			"Condominium",
			"DBSS Blocks",
			"Dormitory",
			"HDB Blocks",
			"Industrial Building",
			"Industrial Estate",
			"Shopping Malls",
		},
		TypesNotRequiringUnit: []string{
			"Bungalow",
			"Semi Detached House",
			"International School",
			"Terrace House",
			"Hospital",
			"Primary School",
			"Methodist Church",
			"Church",
			"Kindergarten",
			"Preschool",
			"Shop Houses",
			"Bank Branches",
			"Supermarket",
			"Public Building",
		},
		ExactExclusions:     []string{"SCDF Bomb Shelter", "Multi Storey Car Park (MSCP)", "Car Park", "Fire Post"},
		SubstringExclusions: []string{"Business dealing with"},
		StripTrailingAlpha:  false,
		EmptyCategoryPolicy: EmptyCategoryIgnore,
	}
}

// LoadRules starts from DefaultRules, overlays the YAML file at path (if non-empty)
// and then any rule set in the environment.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return rules, fmt.Errorf("failed to read rules file: %w", err)
		}
		if err := yaml.Unmarshal(data, &rules); err != nil {
			return rules, fmt.Errorf("failed to parse rules file %s: %w", path, err)
		}
	}

	rules.UnitRequirementMode = UnitMode(strings.ToLower(GetEnv("UNIT_REQUIREMENT_MODE", string(rules.UnitRequirementMode))))
	rules.StripTrailingAlpha = GetEnvBool("BLOCK_STRIP_TRAILING_ALPHA", rules.StripTrailingAlpha)
	rules.EmptyCategoryPolicy = EmptyCategoryPolicy(strings.ToLower(GetEnv("EMPTY_CATEGORY_POLICY", string(rules.EmptyCategoryPolicy))))
	rules.TypesRequiringUnit = GetEnvList("TYPES_REQUIRING_UNIT", rules.TypesRequiringUnit)
	rules.TypesNotRequiringUnit = GetEnvList("TYPES_NOT_REQUIRING_UNIT", rules.TypesNotRequiringUnit)
	rules.ExactExclusions = GetEnvList("CATEGORY_EXACT_EXCLUSIONS", rules.ExactExclusions)
	rules.SubstringExclusions = GetEnvList("CATEGORY_SUBSTRING_EXCLUSIONS", rules.SubstringExclusions)

	if err := rules.Validate(); err != nil {
		return rules, err
	}
	return rules, nil
}

// Validate checks the enumerated options
func (r Rules) Validate() error {
	switch r.UnitRequirementMode {
	case UnitModeWhitelist, UnitModeBlacklist:
	default:
		return fmt.Errorf("invalid unit requirement mode %q", r.UnitRequirementMode)
	}
	switch r.EmptyCategoryPolicy {
	case EmptyCategoryIgnore, EmptyCategoryFail:
	default:
		return fmt.Errorf("invalid empty category policy %q", r.EmptyCategoryPolicy)
	}
	return nil
}
