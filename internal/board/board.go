package board

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

// Board owns the 9 cells of the grid. A cell is marked at most once until Reset.
type Board struct {
	cells entity.Board
}

func New() *Board {
	return &Board{}
}

// GetBoard - returns a copy of the cells.
func (that *Board) GetBoard() entity.Board {
	return that.cells
}

func (that *Board) Cell(index int) (entity.Mark, error) {
	if err := validateIndex(index); err != nil {
		return entity.EmptyCell, err
	}

	return that.cells[index], nil
}

// SetMark - places mark on an empty cell. It returns false without touching the board
// when the cell is already taken.
func (that *Board) SetMark(index int, mark entity.Mark) (bool, error) {
	if err := validateIndex(index); err != nil {
		return false, err
	}

	if !mark.IsPlayer() {
		return false, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	if that.cells[index] != entity.EmptyCell {
		return false, nil
	}

	that.cells[index] = mark

	return true, nil
}

func (that *Board) Reset() {
	that.cells = entity.Board{}
}

func (that *Board) IsFull() bool {
	for _, cell := range that.cells {
		if cell == entity.EmptyCell {
			return false
		}
	}

	return true
}

func validateIndex(index int) error {
	if index < 0 || index >= entity.BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, index)
	}

	return nil
}
