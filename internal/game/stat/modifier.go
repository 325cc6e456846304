package stat

import "fmt"

// Kind defines how a modifier takes part in stat composition.
type Kind int8

const (
	Flat        Kind = iota // added to the base value (e.g. +100 armor)
	PercentAdd              // summed with other PercentAdd, then applied once
	PercentMult             // each one multiplies the result independently
)

func (k Kind) String() string {
	switch k {
	case Flat:
		return "flat"
	case PercentAdd:
		return "percent_add"
	case PercentMult:
		return "percent_mult"
	default:
		return fmt.Sprintf("kind(%d)", int8(k))
	}
}

// ParseKind parses the catalog spelling of a modifier kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "flat", "":
		return Flat, nil
	case "percent_add", "add":
		return PercentAdd, nil
	case "percent_mult", "mult", "mul":
		return PercentMult, nil
	default:
		return Flat, fmt.Errorf("unknown modifier kind %q", s)
	}
}

// Source identifies who owns a modifier. It is only a lookup key for bulk
// removal and carries no other meaning.
type Source string

// Modifier represents a single adjustment of a stat.
// Multiple modifiers can stack on the same stat.
type Modifier struct {
	Value  float64
	Kind   Kind
	Source Source
}
