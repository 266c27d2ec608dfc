package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"sjsage522/jackpotworker/logger"
	"sjsage522/jackpotworker/pkg/errors"
)

// Game names of the built-in targets
const (
	GameLotto       = "LOTTO"
	GameVikinglotto = "VIKINGLOTTO"
	GameEurojackpot = "EUROJACKPOT"
)

// DefaultKeywords mark the jackpot figure on Veikkaus pages
var DefaultKeywords = []string{"Jättipotti", "Potti", "Päävoitto", "jackpot", "Jackpot"}

// DefaultSelectors are tried before any keyword search
var DefaultSelectors = []string{".jackpot", "[class*='jackpot']", "[id*='jackpot']", ".pot-value"}

// Target is one lottery page to check
type Target struct {
	Name      string   `yaml:"name"`
	URL       string   `yaml:"url"`
	Limit     int64    `yaml:"limit"`
	Keywords  []string `yaml:"keywords"`
	Selectors []string `yaml:"selectors"`
}

type targetFile struct {
	Targets []Target `yaml:"targets"`
}

// Targets returns the configured target list, read from TargetsFile when set
func (c *Config) Targets() ([]Target, error) {
	if c.TargetsFile == "" {
		return DefaultTargets(c), nil
	}
	return LoadTargets(c.TargetsFile, c)
}

// DefaultTargets returns the three Veikkaus games with limits from the configuration
func DefaultTargets(c *Config) []Target {
	return []Target{
		newTarget(GameLotto, "https://www.veikkaus.fi/fi/lotto", c.LimitLotto),
		newTarget(GameVikinglotto, "https://www.veikkaus.fi/fi/vikinglotto", c.LimitVikinglotto),
		newTarget(GameEurojackpot, "https://www.veikkaus.fi/fi/eurojackpot", c.LimitEurojackpot),
	}
}

func newTarget(name, url string, limit int64) Target {
	return Target{
		Name:      name,
		URL:       url,
		Limit:     limit,
		Keywords:  append([]string(nil), DefaultKeywords...),
		Selectors: append([]string(nil), DefaultSelectors...),
	}
}

// LoadTargets reads a YAML target list. Missing limits, keywords and selectors
// are filled from the configuration and the built-in defaults.
func LoadTargets(path string, c *Config) ([]Target, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewConfiguration("failed to open targets file", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logger.Warn("Failed to close targets file: %v", closeErr)
		}
	}()

	var tf targetFile
	if err := yaml.NewDecoder(file).Decode(&tf); err != nil {
		return nil, errors.NewConfiguration("failed to parse targets file", err)
	}
	if len(tf.Targets) == 0 {
		return nil, errors.NewConfiguration(fmt.Sprintf("no targets in %s", path), nil)
	}

	seen := make(map[string]bool, len(tf.Targets))
	targets := make([]Target, 0, len(tf.Targets))
	for i, t := range tf.Targets {
		t.Name = strings.ToUpper(strings.TrimSpace(t.Name))
		if t.Name == "" || t.URL == "" {
			return nil, errors.NewConfiguration(fmt.Sprintf("target %d needs a name and a url", i+1), nil)
		}
		if seen[t.Name] {
			return nil, errors.NewConfiguration(fmt.Sprintf("duplicate target %s", t.Name), nil)
		}
		seen[t.Name] = true

		if t.Limit <= 0 {
			t.Limit = c.limitFor(t.Name)
		}
		if t.Limit <= 0 {
			return nil, errors.NewConfiguration(fmt.Sprintf("target %s has no limit", t.Name), nil)
		}
		if len(t.Keywords) == 0 {
			t.Keywords = append([]string(nil), DefaultKeywords...)
		}
		if len(t.Selectors) == 0 {
			t.Selectors = append([]string(nil), DefaultSelectors...)
		}
		targets = append(targets, t)
	}
	return targets, nil
}

func (c *Config) limitFor(name string) int64 {
	switch name {
	case GameLotto:
		return c.LimitLotto
	case GameVikinglotto:
		return c.LimitVikinglotto
	case GameEurojackpot:
		return c.LimitEurojackpot
	}
	return 0
}

// FilterTargets keeps the targets named in games, in configured order.
// Names are matched case-insensitively; an empty list keeps everything.
// The second return value holds names that matched no target.
func FilterTargets(targets []Target, games []string) ([]Target, []string) {
	if len(games) == 0 {
		return targets, nil
	}

	wanted := make(map[string]bool, len(games))
	for _, g := range games {
		if name := strings.ToUpper(strings.TrimSpace(g)); name != "" {
			wanted[name] = true
		}
	}

	var filtered []Target
	for _, t := range targets {
		if wanted[strings.ToUpper(t.Name)] {
			filtered = append(filtered, t)
			delete(wanted, strings.ToUpper(t.Name))
		}
	}

	var unknown []string
	for _, g := range games {
		name := strings.ToUpper(strings.TrimSpace(g))
		if wanted[name] {
			unknown = append(unknown, name)
			delete(wanted, name)
		}
	}
	return filtered, unknown
}
