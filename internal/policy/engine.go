package policy

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Engine evaluates requests against a rule list. Of all matching rules the
// most restrictive decision wins; with no match the default applies.
type Engine struct {
	policy *Policy
}

var _ Evaluator = (*Engine)(nil)

func NewEngine(p *Policy) *Engine {
	return &Engine{policy: p}
}


func (e *Engine) Evaluate(req Request) Result {
	result := Result{
		Decision: e.policy.Defaults.Decision,
		Rule:     "default",
		Reason:   "no rule matched",
	}
	if result.Decision == "" {
		result.Decision = DecisionDeny
	}

	matched := false
	for _, rule := range e.policy.Rules {
		if !e.matchRule(req, rule) {
			continue
		}
		if !matched || decisionSeverity(rule.Decision) > decisionSeverity(result.Decision) {
			result = Result{Decision: rule.Decision, Rule: rule.ID, Reason: rule.Reason}
			matched = true
		}
	}
	return result
}

// decisionSeverity returns a numeric severity for priority comparison.
// Higher number = more restrictive decision.
func decisionSeverity(d Decision) int {
	switch d {
	case DecisionDeny:
		return 2
	case DecisionAllow:
		return 1
	default:
		return 0
	}
}

func (e *Engine) matchRule(req Request, rule Rule) bool {
	return matchUsers(req, rule.Users) &&
		matchRunas(req, rule.Runas) &&
		matchCommands(req.Command, rule.Commands)
}

func matchUsers(req Request, users []string) bool {
	for _, u := range users {
		switch {
		case u == All:
			return true
		case strings.HasPrefix(u, "%"):
			for _, g := range req.Invoker.GroupNames {
				if g == u[1:] {
					return true
				}
			}
		case u == req.Invoker.Name:
			return true
		}
	}
	return false
}

func matchRunas(req Request, runas []string) bool {
	for _, r := range runas {
		switch {
		case r == All:
			return true
		case strings.HasPrefix(r, "#"):
			if uid, err := strconv.ParseUint(r[1:], 10, 32); err == nil && uint32(uid) == req.Target.UID {
				return true
			}
		case r == req.Target.Name:
			return true
		}
	}
	return false
}

func matchCommands(argv []string, commands []string) bool {
	if len(argv) == 0 {
		return false
	}
	path := argv[0]
	for _, c := range commands {
		if c == All || c == path {
			return true
		}
		if ok, _ := filepath.Match(c, path); ok {
			return true
		}
	}
	return false
}
