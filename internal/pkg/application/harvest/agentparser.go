package harvest

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Rule is a configured extraction regex. When Groups is set, the named
// capture groups are concatenated in order; otherwise the whole match is
// taken. A rule that does not match yields nothing.
type Rule struct {
	Pattern string `yaml:"regex"`
	Groups  []int  `yaml:"groups,omitempty"`

	re *regexp.Regexp
}

func (r *Rule) compile() error {
	if r == nil || r.re != nil {
		return nil
	}

	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return fmt.Errorf("failed to compile rule %q: %w", r.Pattern, err)
	}

	r.re = re
	return nil
}

func (r *Rule) apply(raw string) string {
	if r == nil || r.re == nil {
		return ""
	}

	m := r.re.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}

	if len(r.Groups) == 0 {
		return m[0]
	}

	var out strings.Builder
	for _, g := range r.Groups {
		if g < len(m) {
			out.WriteString(m[g])
		}
	}
	return out.String()
}

// AgentRules holds the code and name extraction rules for one metadata
// role. Either rule may be nil, in which case the role wide fallback rules
// apply for that part.
type AgentRules struct {
	Role     string `yaml:"role,omitempty"`
	CodeRule *Rule  `yaml:"code_regex,omitempty"`
	NameRule *Rule  `yaml:"name_regex,omitempty"`
}

func (a *AgentRules) compile() error {
	if a == nil {
		return nil
	}
	if err := a.CodeRule.compile(); err != nil {
		return err
	}
	return a.NameRule.compile()
}

// AgentParser extracts an agent code and display name out of a raw
// responsible party string, using role specific rules when configured and
// fallback rules otherwise.
type AgentParser struct {
	rules    map[string]AgentRules
	fallback AgentRules
}

func NewAgentParser(rules map[string]AgentRules, fallback AgentRules) (*AgentParser, error) {
	for role := range rules {
		r := rules[role]
		if err := r.compile(); err != nil {
			return nil, err
		}
		rules[role] = r
	}
	if err := fallback.compile(); err != nil {
		return nil, err
	}

	return &AgentParser{rules: rules, fallback: fallback}, nil
}

// Parse extracts (code, name) from raw for the given role. The code is
// lowercased and trimmed; the name keeps trailing whitespace but loses the
// leading run. An empty return value means the rule found nothing.
func (p *AgentParser) Parse(role, raw string) (code, name string) {
	codeRule := p.fallback.CodeRule
	nameRule := p.fallback.NameRule

	if r, ok := p.rules[role]; ok {
		if r.CodeRule != nil {
			codeRule = r.CodeRule
		}
		if r.NameRule != nil {
			nameRule = r.NameRule
		}
	}

	code = strings.ToLower(strings.TrimSpace(codeRule.apply(raw)))
	name = strings.TrimLeftFunc(nameRule.apply(raw), unicode.IsSpace)

	return code, name
}
