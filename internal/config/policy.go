package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Policy overrides the severity of graph validation checks.
type Policy struct {
	Version int    `yaml:"version"`
	Rules   []Rule `yaml:"rules"`

	index map[string]string
}

type Rule struct {
	Code     string `yaml:"code"`
	Severity string `yaml:"severity"`
}

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityOff     = "off"
)

func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading policy: %w", err)
	}

	var policy Policy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, fmt.Errorf("loading policy: %w", err)
	}

	if err := validatePolicy(&policy); err != nil {
		return nil, fmt.Errorf("loading policy: %w", err)
	}

	policy.index = make(map[string]string, len(policy.Rules))
	for _, rule := range policy.Rules {
		policy.index[strings.ToLower(rule.Code)] = strings.ToLower(rule.Severity)
	}

	return &policy, nil
}

func validatePolicy(p *Policy) error {
	if p.Version != 1 {
		return fmt.Errorf("unsupported version: %d", p.Version)
	}

	seen := make(map[string]struct{})
	for i, rule := range p.Rules {
		code := strings.ToLower(strings.TrimSpace(rule.Code))
		if code == "" {
			return fmt.Errorf("rule %d code is required", i)
		}
		if _, exists := seen[code]; exists {
			return fmt.Errorf("duplicate rule code: %s", rule.Code)
		}
		seen[code] = struct{}{}

		switch strings.ToLower(rule.Severity) {
		case SeverityError, SeverityWarning, SeverityOff:
		default:
			return fmt.Errorf("rule %s has unknown severity: %q", rule.Code, rule.Severity)
		}
	}

	return nil
}

// SeverityFor returns the configured severity for code, or fallback when no
// rule names it. A nil policy always returns fallback.
func (p *Policy) SeverityFor(code, fallback string) string {
	if p == nil {
		return fallback
	}
	if severity, ok := p.index[strings.ToLower(code)]; ok {
		return severity
	}
	return fallback
}
