// Package sheet implements the evaluation core of a spreadsheet: a sparse
// grid of cells addressed by Position, holding text, numbers, or formulas
// that reference other cells and are evaluated on demand.
//
// The package is organized around five pieces: Position (A1-style
// coordinates), the formula lexer/parser/AST (package-private, reachable
// through ParseFormula), Cell (content classification and cached
// evaluation), Sheet (the position -> cell map and its dependency
// bookkeeping), and the error types returned across the package boundary.
package sheet
