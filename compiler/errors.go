package compiler

import "fmt"

// CompileError wraps a compilation failure with the source position it
// occurred at. The file/line context is attached once, at the boundary
// between a line handler and the driver that iterates the line stream;
// everything underneath just returns a plain error.
type CompileError struct {
	File string
	Line int
	Err  error
}

func (e *CompileError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

func operatorNotImplementedError(lhs TypeSymbol, op Operator, rhs *TypeSymbol) error {
	if rhs == nil {
		return fmt.Errorf("operator %s is not implemented for type %s", op, lhs)
	}
	return fmt.Errorf("operator %s is not implemented between types %s and %s", op, lhs, *rhs)
}

func incorrectTypeError(got TypeSymbol, want ...TypeSymbol) error {
	if len(want) == 1 {
		return fmt.Errorf("expected type %s, got %s", want[0], got)
	}
	return fmt.Errorf("expected one of %v, got %s", want, got)
}

func breakContinueAcrossFunctionError(keyword string) error {
	return fmt.Errorf("'%s' cannot cross a function boundary", keyword)
}

func errShortRead(what string) error {
	return fmt.Errorf("unexpected end of program buffer reading %s", what)
}
