package policy

import "github.com/hnrobert/lusu/internal/identity"

type Decision string

const (
	DecisionAllow Decision = "ALLOW"
	DecisionDeny  Decision = "DENY"
)

// All matches any invoker, target or command.
const All = "ALL"

type Policy struct {
	Version  string   `yaml:"version"`
	Defaults Defaults `yaml:"defaults"`
	Rules    []Rule   `yaml:"rules"`
}

type Defaults struct {
	Decision Decision `yaml:"decision"`
}

// Rule grants or refuses running Commands as Runas to Users.
//
// Users entries are invoker names, "%group" or ALL. Runas entries are target
// names, "#uid" or ALL. Commands entries are ALL, an absolute path or a
// filepath.Match pattern over absolute paths.
type Rule struct {
	ID       string       `yaml:"id"`
	Users    StringOrList `yaml:"users"`
	Runas    StringOrList `yaml:"runas"`
	Commands StringOrList `yaml:"commands"`
	Decision Decision     `yaml:"decision"`
	Reason   string       `yaml:"reason"`
}

// StringOrList allows YAML fields to accept either a single string or a list.
// "ALL" → ["ALL"], ["alice", "bob"] → ["alice", "bob"]
type StringOrList []string

func (s *StringOrList) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		*s = []string{single}
		return nil
	}
	var list []string
	if err := unmarshal(&list); err != nil {
		return err
	}
	*s = list
	return nil
}

// Request is what an Evaluator decides on. Command[0] is the resolved
// executable path.
type Request struct {
	Invoker identity.InvokingContext
	Target  identity.Account
	Command []string
}

type Result struct {
	Decision Decision
	Rule     string
	Reason   string
}

func (r Result) Allowed() bool {
	return r.Decision == DecisionAllow
}

// Evaluator is the authorization gate consulted once per invocation.
type Evaluator interface {
	Evaluate(req Request) Result
}

// EvaluatorFunc adapts a function to Evaluator.
type EvaluatorFunc func(req Request) Result

func (f EvaluatorFunc) Evaluate(req Request) Result { return f(req) }

// AllowAll permits every request.
var AllowAll Evaluator = EvaluatorFunc(func(Request) Result {
	return Result{Decision: DecisionAllow, Rule: "allow-all", Reason: "all requests allowed"}
})

// DenyAll refuses every request.
var DenyAll Evaluator = EvaluatorFunc(func(Request) Result {
	return Result{Decision: DecisionDeny, Rule: "deny-all", Reason: "all requests denied"}
})
