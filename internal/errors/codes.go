// Package errors catalogs the error codes the executor reports,
// grouped into the three strata the driver distinguishes: parse
// errors, per-path errors, and fatal errors.
package errors

// Error code ranges:
// E01xx: parse errors (malformed program text)
// E02xx: per-path errors (recorded on a State, never fatal)
// E03xx: fatal errors (abort exploration)
const (
	ParseSyntax             = "E0100"
	ParseUndeclaredVariable = "E0101"
	ParseUndeclaredBlock    = "E0102"
	ParseInvalidLiteral     = "E0103"
	ParseRedeclaration      = "E0104"

	PathUnknownValue    = "E0200"
	PathAssertionFailed = "E0201"

	FatalSolverUnknown       = "E0300"
	FatalBothUnsat           = "E0301"
	FatalUnknownInstruction  = "E0302"
	FatalPathBudgetExhausted = "E0303"
)

var descriptions = map[string]string{
	ParseSyntax:             "malformed program text",
	ParseUndeclaredVariable: "reference to a variable that was never declared",
	ParseUndeclaredBlock:    "jump names a block label that was never declared",
	ParseInvalidLiteral:     "integer literal out of range or malformed",
	ParseRedeclaration:      "variable declared more than once",

	PathUnknownValue:    "an operand referenced a value that was never computed on this path",
	PathAssertionFailed: "the assertion's negation is satisfiable: a counterexample exists",

	FatalSolverUnknown:       "the solver returned unknown for a feasibility query",
	FatalBothUnsat:           "both branches of a decision were proven infeasible",
	FatalUnknownInstruction:  "the interpreter met an instruction kind it does not dispatch",
	FatalPathBudgetExhausted: "the configured path budget was exhausted before exploration finished",
}

// Describe returns a human-readable description of code, or a
// placeholder if code is not one of this package's constants.
func Describe(code string) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return "unknown error code"
}

// Category names the stratum a code belongs to.
func Category(code string) string {
	switch {
	case len(code) == 5 && code[:3] == "E01":
		return "parse"
	case len(code) == 5 && code[:3] == "E02":
		return "path"
	case len(code) == 5 && code[:3] == "E03":
		return "fatal"
	default:
		return "unknown"
	}
}

// IsFatal reports whether code belongs to the E03xx range.
func IsFatal(code string) bool { return Category(code) == "fatal" }
