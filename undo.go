package main

import "fmt"

func (m *model) undo() error {
	if len(m.undoStack) == 0 {
		return ErrNothingToUndo
	}

	lastIndex := len(m.undoStack) - 1
	action := m.undoStack[lastIndex]

	switch action.Type {
	case ActionMovePiece:
		data := action.Inverse.(MovePieceData)
		if err := m.puzzle.MovePiece(data.Index, data.Pos); err != nil {
			// The move can never be undone once its piece is placed.
			m.undoStack = m.undoStack[:lastIndex]
			return fmt.Errorf("undo: %w", err)
		}
	}

	m.undoStack = m.undoStack[:lastIndex]
	m.redoStack = append(m.redoStack, action)
	return nil
}

func (m *model) redo() error {
	if len(m.redoStack) == 0 {
		return ErrNothingToUndo
	}

	lastIndex := len(m.redoStack) - 1
	action := m.redoStack[lastIndex]

	switch action.Type {
	case ActionMovePiece:
		data := action.Data.(MovePieceData)
		if err := m.puzzle.MovePiece(data.Index, data.Pos); err != nil {
			m.redoStack = m.redoStack[:lastIndex]
			return fmt.Errorf("redo: %w", err)
		}
	}

	m.redoStack = m.redoStack[:lastIndex]
	m.undoStack = append(m.undoStack, action)
	return nil
}

func (m *model) recordAction(actionType ActionType, data, inverse interface{}) {
	action := Action{
		Type:    actionType,
		Data:    data,
		Inverse: inverse,
	}
	m.undoStack = append(m.undoStack, action)
	m.redoStack = m.redoStack[:0]
}

// recordDrop keeps an undo entry for a drop that left the piece loose.
func (m *model) recordDrop(r DropResult) {
	if r.Snapped || r.From == r.To {
		return
	}
	m.recordAction(ActionMovePiece,
		MovePieceData{Index: r.Index, Pos: r.To},
		MovePieceData{Index: r.Index, Pos: r.From},
	)
}

func (m *model) clearHistory() {
	m.undoStack = m.undoStack[:0]
	m.redoStack = m.redoStack[:0]
}
