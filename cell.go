package sheet

import "strconv"

// CellKind classifies a cell's stored contents.
type CellKind int

const (
	// EmptyKind is a cell set to the empty string, or a placeholder
	// materialized during cycle detection.
	EmptyKind CellKind = iota
	// TextKind is literal text, possibly escape-prefixed.
	TextKind
	// FormulaKind is a parsed formula expression.
	FormulaKind
)

// CellValueKind discriminates the tagged union a cell's computed value
// belongs to.
type CellValueKind int

const (
	NumberValue CellValueKind = iota
	TextValue
	ErrorValue
)

// CellValue is the tagged-union result of Cell.GetValue: exactly one of
// Number, Text, or Error is meaningful, selected by Kind.
type CellValue struct {
	Kind   CellValueKind
	Number float64
	Text   string
	Error  ErrorKind
}

func numberCellValue(n float64) CellValue {
	return CellValue{Kind: NumberValue, Number: n}
}

func textCellValue(s string) CellValue {
	return CellValue{Kind: TextValue, Text: s}
}

func errorCellValue(k ErrorKind) CellValue {
	return CellValue{Kind: ErrorValue, Error: k}
}

// String renders the value the way PrintValues does: numbers via the
// platform's default double formatting, text verbatim, errors as
// "#KIND!".
func (v CellValue) String() string {
	switch v.Kind {
	case NumberValue:
		return formatNumber(v.Number)
	case TextValue:
		return v.Text
	case ErrorValue:
		return v.Error.String()
	}
	return ""
}

const (
	escapeSign  = '\''
	formulaSign = '='
)

// Cell holds one sheet position's contents: empty, literal text, or a
// parsed formula. It keeps the raw text it was last Set with (used by
// Sheet.Set's identical-text no-op check and returned verbatim by
// GetText for text cells) separately from any derived/cached state.
type Cell struct {
	kind CellKind

	rawText string   // exact text passed to Sheet.Set; "" for EmptyKind
	formula *Formula // non-nil only for FormulaKind

	cached    CellValue
	hasCached bool
}

// newCell classifies text and, for a formula, parses it. A leading '='
// immediately followed by more text makes a formula cell; a bare "="
// is literal text (there is nothing to parse). ParseFormula's error, if
// any, is returned unwrapped so callers can distinguish syntax errors
// from other Sheet.Set failures.
func newCell(text string) (*Cell, error) {
	if text == "" {
		return &Cell{kind: EmptyKind}, nil
	}
	if text[0] == formulaSign && len(text) > 1 {
		f, err := ParseFormula(text[1:])
		if err != nil {
			return nil, err
		}
		return &Cell{kind: FormulaKind, rawText: text, formula: f}, nil
	}
	return &Cell{kind: TextKind, rawText: text}, nil
}

// GetText returns the cell's stored text: "" for empty, the raw text for
// text cells (escape marker included), or "=" + the formula's canonical
// pretty-printed expression for formula cells.
func (c *Cell) GetText() string {
	switch c.kind {
	case EmptyKind:
		return ""
	case TextKind:
		return c.rawText
	case FormulaKind:
		return string(formulaSign) + c.formula.GetExpression()
	}
	return ""
}

// GetValue computes the cell's display value. Formula cells memoize
// their result; GetValue returns the cache if present, else evaluates,
// caches, and returns.
func (c *Cell) GetValue(s *Sheet) CellValue {
	switch c.kind {
	case EmptyKind:
		return numberCellValue(0)
	case TextKind:
		return textValueOf(c.rawText)
	case FormulaKind:
		if c.hasCached {
			return c.cached
		}
		v, err := c.formula.Evaluate(s)
		var result CellValue
		if err != nil {
			if fe, ok := err.(*FormulaError); ok {
				result = errorCellValue(fe.Kind)
			} else {
				result = errorCellValue(ArithmError)
			}
		} else {
			result = numberCellValue(v)
		}
		c.cached = result
		c.hasCached = true
		return result
	}
	return numberCellValue(0)
}

// textValueOf implements the display rule for literal text: a string
// that starts with a digit and parses in full as a number displays as
// that number; otherwise a leading escape sigil is stripped; otherwise
// the text displays verbatim. This is the GetValue-side rule, distinct
// from refValueAsNumber's reference-side rule below.
func textValueOf(text string) CellValue {
	if text != "" && isDigit(text[0]) {
		if n, err := strconv.ParseFloat(text, 64); err == nil {
			return numberCellValue(n)
		}
	}
	if text != "" && text[0] == escapeSign {
		return textCellValue(text[1:])
	}
	return textCellValue(text)
}

// refValueAsNumber implements spec.md's Ref(pos) reference rule, applied
// to the already-resolved value of the cell being referenced (i.e. after
// any escape-stripping and digit-prefix coercion GetValue performs): a
// Number passes through, an empty Text reads as zero, any other Text
// that fully parses as a number reads as that number, a non-parseable
// Text is a #VALUE! error, and an Error value propagates unchanged
// rather than being recoerced into #VALUE!.
func refValueAsNumber(v CellValue) (float64, error) {
	switch v.Kind {
	case NumberValue:
		return v.Number, nil
	case TextValue:
		if v.Text == "" {
			return 0, nil
		}
		if n, err := strconv.ParseFloat(v.Text, 64); err == nil {
			return n, nil
		}
		return 0, newFormulaError(ValueError)
	case ErrorValue:
		return 0, newFormulaError(v.Error)
	}
	return 0, nil
}

// GetReferencedCells returns the positions a formula cell reads from;
// nil for empty or text cells.
func (c *Cell) GetReferencedCells() []Position {
	if c.kind != FormulaKind {
		return nil
	}
	return c.formula.GetReferencedCells()
}

func (c *Cell) clearCache() {
	c.hasCached = false
}
