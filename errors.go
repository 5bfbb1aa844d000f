package sheet

import "fmt"

// InvalidPositionError is returned by any Sheet operation given an
// out-of-range position.
type InvalidPositionError struct {
	Text string
}

func (e *InvalidPositionError) Error() string {
	return fmt.Sprintf("invalid position: %q", e.Text)
}

// FormulaSyntaxError is returned by ParseFormula, and transitively by
// Sheet.Set, when a formula's text is malformed or contains a
// syntactically well-formed reference to an invalid position.
type FormulaSyntaxError struct {
	Message string
	Pos     int // byte offset into the parsed text, or -1 if not applicable
}

func (e *FormulaSyntaxError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("formula syntax error at offset %d: %s", e.Pos, e.Message)
	}
	return fmt.Sprintf("formula syntax error: %s", e.Message)
}

// CircularDependencyError is returned by Sheet.Set when the new cell's
// transitive forward closure would contain its own position. The Set call
// that produced it has no observable effect on the sheet.
type CircularDependencyError struct {
	Position Position
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency involving %s", e.Position.ToText())
}

// ErrorKind discriminates the formula runtime error values a formula can
// evaluate to. These are values carried through normal data flow, not
// exceptions: a formula that reads an error-valued cell simply propagates
// the same error value.
type ErrorKind uint8

const (
	// ArithmError marks a non-finite arithmetic result (division by zero,
	// overflow, or any NaN-producing combination).
	ArithmError ErrorKind = iota
	// RefError marks a reference that would be out of the sheet's
	// coordinate space. In practice the parser rejects such references
	// before a FormulaError can be constructed; the kind exists for
	// completeness per spec.
	RefError
	// ValueError marks a reference whose target is text that is not a
	// complete number.
	ValueError
)

var errorKindText = map[ErrorKind]string{
	ArithmError: "#ARITHM!",
	RefError:    "#REF!",
	ValueError:  "#VALUE!",
}

func (k ErrorKind) String() string {
	if s, ok := errorKindText[k]; ok {
		return s
	}
	return "#ARITHM!"
}

// FormulaError is a formula runtime error value. It implements error so it
// can travel through the (float64, error) return shape AST evaluation
// uses, but it is never raised as an exception: binary operators and cell
// references propagate it as data.
type FormulaError struct {
	Kind ErrorKind
}

func (e *FormulaError) Error() string {
	return e.Kind.String()
}

func newFormulaError(kind ErrorKind) *FormulaError {
	return &FormulaError{Kind: kind}
}
