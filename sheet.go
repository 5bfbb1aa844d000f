package sheet

import (
	"io"
)

// cellEntry pairs a stored cell with the positions that currently read
// from it. The forward set is not stored separately: it is derived on
// demand from the cell's own (stable, AST-backed) GetReferencedCells.
type cellEntry struct {
	cell    *Cell
	reverse map[Position]struct{}
}

// Sheet is the sole owner of its cells, keyed by position. Forward and
// reverse edges are sets of positions, not cell pointers, so that
// neither the sheet nor a cell ever needs a reference cycle: peer cells
// are always resolved back through the sheet.
type Sheet struct {
	cells map[Position]*cellEntry
}

// NewSheet returns an empty sheet.
func NewSheet() *Sheet {
	return &Sheet{cells: make(map[Position]*cellEntry)}
}

// Set parses text and installs it at pos, replacing whatever was there.
// It validates pos, no-ops if text is identical to the position's
// current stored text, rejects a write that would introduce a cycle
// (leaving the sheet exactly as it was, with any placeholders the cycle
// walk materialized removed again), and otherwise
// transfers the old cell's dependents to the new one and patches
// forward/reverse edges.
func (s *Sheet) Set(pos Position, text string) error {
	if !pos.IsValid() {
		return &InvalidPositionError{Text: pos.ToText()}
	}

	if old, ok := s.cells[pos]; ok && old.cell.rawText == text {
		return nil
	}

	newCell, err := newCell(text)
	if err != nil {
		return err
	}

	if err := s.checkCycle(pos, newCell); err != nil {
		return err
	}

	old, hadOld := s.cells[pos]

	entry := &cellEntry{cell: newCell, reverse: make(map[Position]struct{})}
	if hadOld {
		s.invalidate(pos)
		for oldRef := range refSet(old.cell) {
			if _, stillRef := refSet(newCell)[oldRef]; !stillRef {
				s.dropReverse(oldRef, pos)
			}
		}
		for dependent := range old.reverse {
			entry.reverse[dependent] = struct{}{}
		}
	}

	s.cells[pos] = entry
	for newRef := range refSet(newCell) {
		s.ensurePlaceholder(newRef)
		s.cells[newRef].reverse[pos] = struct{}{}
	}

	return nil
}

func refSet(c *Cell) map[Position]struct{} {
	set := make(map[Position]struct{})
	for _, p := range c.GetReferencedCells() {
		set[p] = struct{}{}
	}
	return set
}

func (s *Sheet) dropReverse(from, dependent Position) {
	if entry, ok := s.cells[from]; ok {
		delete(entry.reverse, dependent)
	}
}

// checkCycle breadth-first walks the forward references reachable from
// newCell, starting at pos's prospective new contents. A position
// referenced but absent from the sheet is materialized in place as an
// Empty placeholder so reverse-edge bookkeeping always has a stable
// target. If the walk aborts on a cycle, the placeholders it materialized
// are removed again.
func (s *Sheet) checkCycle(pos Position, newCell *Cell) error {
	queue := newCell.GetReferencedCells()
	visited := make(map[Position]bool)
	var materialized []Position
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == pos {
			for _, p := range materialized {
				delete(s.cells, p)
			}
			return &CircularDependencyError{Position: pos}
		}
		if entry, ok := s.cells[current]; ok {
			for _, ref := range entry.cell.GetReferencedCells() {
				if !visited[ref] {
					queue = append(queue, ref)
				}
			}
		} else {
			s.ensurePlaceholder(current)
			materialized = append(materialized, current)
		}
		visited[current] = true
	}
	return nil
}

func (s *Sheet) ensurePlaceholder(pos Position) {
	if _, ok := s.cells[pos]; !ok {
		s.cells[pos] = &cellEntry{cell: &Cell{kind: EmptyKind}, reverse: make(map[Position]struct{})}
	}
}

// invalidate clears pos's own cache, if any, then walks its reverse set
// with an iterative worklist (not recursion, so a long dependency chain
// doesn't grow the call stack) clearing every transitive dependent's
// cache exactly once.
func (s *Sheet) invalidate(pos Position) {
	visited := make(map[Position]bool)
	queue := []Position{pos}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		entry, ok := s.cells[current]
		if !ok {
			continue
		}
		entry.cell.clearCache()
		for dependent := range entry.reverse {
			queue = append(queue, dependent)
		}
	}
}

// GetCell returns the cell stored at pos, or nil if none is stored.
// Empty placeholders materialized by a cycle check are stored cells and
// are returned like any other (they report empty text and GetValue ==
// Number(0)).
func (s *Sheet) GetCell(pos Position) (*Cell, error) {
	if !pos.IsValid() {
		return nil, &InvalidPositionError{Text: pos.ToText()}
	}
	entry, ok := s.cells[pos]
	if !ok {
		return nil, nil
	}
	return entry.cell, nil
}

// refValue is how a Ref AST node reads another cell during evaluation:
// an absent position reads as zero, and otherwise the target cell's
// resolved value (which has already had any escape-stripping and
// digit-prefix coercion applied) is coerced to a number by
// refValueAsNumber.
func (s *Sheet) refValue(pos Position) (float64, error) {
	entry, ok := s.cells[pos]
	if !ok {
		return 0, nil
	}
	return refValueAsNumber(entry.cell.GetValue(s))
}

// Clear removes the cell at pos, if any, invalidating its cache (and
// cascading to dependents) and dropping its forward edges from the
// corresponding reverse sets first.
func (s *Sheet) Clear(pos Position) error {
	if !pos.IsValid() {
		return &InvalidPositionError{Text: pos.ToText()}
	}
	entry, ok := s.cells[pos]
	if !ok {
		return nil
	}
	s.invalidate(pos)
	for ref := range refSet(entry.cell) {
		s.dropReverse(ref, pos)
	}
	delete(s.cells, pos)
	return nil
}

// GetPrintableSize returns the smallest (rows, cols) box covering every
// position whose stored cell has non-empty GetText, or (0, 0) if none
// does. Empty placeholders never contribute: their GetText is "".
func (s *Sheet) GetPrintableSize() (rows, cols int) {
	found := false
	for pos, entry := range s.cells {
		if entry.cell.GetText() == "" {
			continue
		}
		found = true
		if pos.Row+1 > rows {
			rows = pos.Row + 1
		}
		if pos.Col+1 > cols {
			cols = pos.Col + 1
		}
	}
	if !found {
		return 0, 0
	}
	return rows, cols
}

// PrintTexts writes the printable rectangle's GetText values, tab
// separated within a row and newline separated between rows.
func (s *Sheet) PrintTexts(w io.Writer) error {
	return s.printRect(w, func(entry *cellEntry) string {
		return entry.cell.GetText()
	})
}

// PrintValues writes the printable rectangle's GetValue values,
// rendered the same way CellValue.String does.
func (s *Sheet) PrintValues(w io.Writer) error {
	return s.printRect(w, func(entry *cellEntry) string {
		return entry.cell.GetValue(s).String()
	})
}

func (s *Sheet) printRect(w io.Writer, render func(*cellEntry) string) error {
	rows, cols := s.GetPrintableSize()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if entry, ok := s.cells[Position{Row: i, Col: j}]; ok && entry.cell.GetText() != "" {
				if _, err := io.WriteString(w, render(entry)); err != nil {
					return err
				}
			}
			sep := "\t"
			if j == cols-1 {
				sep = "\n"
			}
			if _, err := io.WriteString(w, sep); err != nil {
				return err
			}
		}
	}
	return nil
}
