package policy

import (
	"fmt"
	"strings"
)

// DeniedError is returned when the evaluator refuses a request.
type DeniedError struct {
	Invoker string
	Target  string
	Command []string
	Result  Result
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("%s is not allowed to run %s as %s", e.Invoker, strings.Join(e.Command, " "), e.Target)
}
