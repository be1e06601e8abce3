package policy

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hnrobert/lusu/internal/usermgr"
)

// Load reads a policy file. A missing file yields DefaultPolicy.
func Load(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultPolicy(), nil
		}
		return nil, err
	}

	var policy Policy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if policy.Defaults.Decision == "" {
		policy.Defaults.Decision = DecisionDeny
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &policy, nil
}

// Validate rejects unknown decisions and user names that cannot exist.
func (p *Policy) Validate() error {
	if !validDecision(p.Defaults.Decision) {
		return fmt.Errorf("defaults: unknown decision %q", p.Defaults.Decision)
	}
	for i, r := range p.Rules {
		id := r.ID
		if id == "" {
			id = fmt.Sprintf("#%d", i)
		}
		if !validDecision(r.Decision) {
			return fmt.Errorf("rule %s: unknown decision %q", id, r.Decision)
		}
		for _, u := range r.Users {
			name := strings.TrimPrefix(u, "%")
			if u != All && !usermgr.ValidUsername(name) {
				return fmt.Errorf("rule %s: invalid user %q", id, u)
			}
		}
		for _, u := range r.Runas {
			if u != All && !strings.HasPrefix(u, "#") && !usermgr.ValidUsername(u) {
				return fmt.Errorf("rule %s: invalid runas %q", id, u)
			}
		}
		for _, c := range r.Commands {
			if c != All && !strings.HasPrefix(c, "/") {
				return fmt.Errorf("rule %s: command %q must be ALL or an absolute path", id, c)
			}
		}
	}
	return nil
}

func validDecision(d Decision) bool {
	return d == DecisionAllow || d == DecisionDeny
}

// DefaultPolicy lets root run anything as anyone and denies everybody else.
func DefaultPolicy() *Policy {
	return &Policy{
		Version: "1",
		Defaults: Defaults{
			Decision: DecisionDeny,
		},
		Rules: []Rule{
			{
				ID:       "root-all",
				Users:    StringOrList{"root"},
				Runas:    StringOrList{All},
				Commands: StringOrList{All},
				Decision: DecisionAllow,
				Reason:   "root may run any command as any user.",
			},
		},
	}
}
