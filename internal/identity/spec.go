package identity

import (
	"strconv"
	"strings"
)

// SpecKind tells how a TargetSpec names its account.
type SpecKind int

const (
	ByName SpecKind = iota
	ByUID
)

// TargetSpec is a parsed -u argument.
type TargetSpec struct {
	Kind    SpecKind
	Name    string
	UID     uint32
	Literal string
}

// ParseSpec parses "name" or "#uid". The numeric form must be a base-10
// unsigned 32-bit integer; anything else after '#' is a FormatError.
func ParseSpec(s string) (TargetSpec, error) {
	if !strings.HasPrefix(s, "#") {
		return TargetSpec{Kind: ByName, Name: s, Literal: s}, nil
	}
	n, err := strconv.ParseUint(s[1:], 10, 32)
	if err != nil {
		return TargetSpec{}, &FormatError{Literal: s, Err: err}
	}
	return TargetSpec{Kind: ByUID, UID: uint32(n), Literal: s}, nil
}

func (s TargetSpec) String() string {
	return s.Literal
}
