// Package styles classifies bibliographic references against known
// citation style fingerprints (APA, MLA, Chicago, IEEE, ACM) and pulls
// structured components out of them.
package styles

import (
	_ "embed"
	"fmt"
	"regexp"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var stylesYAML []byte

// Rule is the on-disk description of one citation style.
type Rule struct {
	Name              string            `yaml:"name"`
	StructurePatterns []string          `yaml:"structure_patterns"`
	YearPattern       string            `yaml:"year_pattern"`
	AuthorPattern     string            `yaml:"author_pattern"`
	Punctuation       map[string]string `yaml:"punctuation"`
}

type ruleFile struct {
	Styles []Rule `yaml:"styles"`
}

// compiledRule carries a Rule with its regexes ready to match.
type compiledRule struct {
	rule      Rule
	structure []*regexp.Regexp
	year      *regexp.Regexp
	author    *regexp.Regexp
}

// Registry holds the citation styles in scoring order.
type Registry struct {
	rules []compiledRule
}

// Load parses and compiles a YAML rule set.
func Load(data []byte) (*Registry, error) {
	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse style rules: %w", err)
	}
	if len(file.Styles) == 0 {
		return nil, fmt.Errorf("style rules contain no styles")
	}

	reg := &Registry{rules: make([]compiledRule, 0, len(file.Styles))}
	for _, rule := range file.Styles {
		cr := compiledRule{rule: rule}
		for _, p := range rule.StructurePatterns {
			// Structure is matched loosely; case differences in
			// author names or venue words should not break it.
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return nil, fmt.Errorf("style %s: invalid structure pattern %q: %w", rule.Name, p, err)
			}
			cr.structure = append(cr.structure, re)
		}

		var err error
		if cr.year, err = regexp.Compile(rule.YearPattern); err != nil {
			return nil, fmt.Errorf("style %s: invalid year pattern: %w", rule.Name, err)
		}
		if cr.author, err = regexp.Compile(rule.AuthorPattern); err != nil {
			return nil, fmt.Errorf("style %s: invalid author pattern: %w", rule.Name, err)
		}
		reg.rules = append(reg.rules, cr)
	}
	return reg, nil
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the registry built from the embedded rule set. The
// embedded rules are validated at build time by the package tests, so a
// parse failure here is a programming error.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := Load(stylesYAML)
		if err != nil {
			panic(fmt.Sprintf("styles: embedded rules are invalid: %v", err))
		}
		defaultRegistry = reg
	})
	return defaultRegistry
}

// Names lists the registered style names in scoring order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.rules))
	for i, cr := range r.rules {
		names[i] = cr.rule.Name
	}
	return names
}

// Rule returns the rule for a style name, if registered.
func (r *Registry) Rule(name string) (Rule, bool) {
	for _, cr := range r.rules {
		if cr.rule.Name == name {
			return cr.rule, true
		}
	}
	return Rule{}, false
}
