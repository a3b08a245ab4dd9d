package finance

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// Bracket taxes income up to UpTo at Rate percent. The last bracket leaves
// UpTo at zero and is unbounded.
type Bracket struct {
	UpTo float64 `yaml:"up_to" json:"up_to,omitempty"`
	Rate float64 `yaml:"rate" json:"rate"`
}

type TaxBrackets struct {
	Brackets []Bracket `yaml:"brackets"`
}

type HousingBenefitRule struct {
	Name           string  `yaml:"name"`
	PerPersonLimit float64 `yaml:"per_person_limit"`
	Rate           float64 `yaml:"rate"`
}

type ChildBenefitRule struct {
	Name             string  `yaml:"name"`
	PerPersonLimit   float64 `yaml:"per_person_limit"`
	MonthlyPerMember float64 `yaml:"monthly_per_member"`
}

type SocialAssistanceRule struct {
	Name string  `yaml:"name"`
	Rate float64 `yaml:"rate"`
}

type SupportRules struct {
	HousingBenefit   HousingBenefitRule   `yaml:"housing_benefit"`
	ChildBenefit     ChildBenefitRule     `yaml:"child_benefit"`
	SocialAssistance SocialAssistanceRule `yaml:"social_assistance"`
}

// Rules is the configurable data behind the tax and support estimators.
type Rules struct {
	Tax     TaxBrackets  `yaml:"tax"`
	Support SupportRules `yaml:"support"`
}

// DefaultRules returns the built-in tables.
func DefaultRules() Rules {
	r, err := ParseRules(defaultRulesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded rules: %v", err))
	}
	return r
}

// LoadRules reads a rules file. An empty path returns the defaults.
func LoadRules(path string) (Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules file: %w", err)
	}
	return ParseRules(data)
}

// ParseRules decodes YAML rules and checks that the brackets are usable.
func ParseRules(data []byte) (Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Rules{}, fmt.Errorf("decode rules: %w", err)
	}
	if err := r.Tax.Validate(); err != nil {
		return Rules{}, err
	}
	return r, nil
}

// Validate requires ascending bounded brackets followed by one open bracket.
func (t TaxBrackets) Validate() error {
	if len(t.Brackets) == 0 {
		return errors.New("tax brackets: at least one bracket required")
	}
	var prev float64
	for i, b := range t.Brackets {
		last := i == len(t.Brackets)-1
		if b.Rate < 0 || b.Rate > 100 {
			return fmt.Errorf("tax brackets: bracket %d rate %v out of range", i, b.Rate)
		}
		if last {
			if b.UpTo != 0 {
				return fmt.Errorf("tax brackets: last bracket must be unbounded")
			}
			continue
		}
		if b.UpTo <= prev {
			return fmt.Errorf("tax brackets: bracket %d upper bound %v not above %v", i, b.UpTo, prev)
		}
		prev = b.UpTo
	}
	return nil
}
