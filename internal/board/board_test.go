package board

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	// When: creating a board
	b := New()

	// Then: every cell is empty
	assert.Equal(t, entity.Board{}, b.GetBoard())
	assert.False(t, b.IsFull())
}

func TestBoard_SetMark(t *testing.T) {
	t.Run("Marks every empty cell once", func(t *testing.T) {
		for index := range entity.BoardSize {
			// Given: an empty board
			b := New()

			// When: marking the cell with X
			ok, err := b.SetMark(index, entity.PlayerX)

			// Then: the mark is placed
			require.NoError(t, err)
			assert.True(t, ok)

			cell, err := b.Cell(index)
			require.NoError(t, err)
			assert.Equal(t, entity.PlayerX, cell)

			// When: marking the same cell again with any mark
			for _, mark := range []entity.Mark{entity.PlayerX, entity.PlayerO} {
				ok, err = b.SetMark(index, mark)

				// Then: the move is rejected and the cell keeps X
				require.NoError(t, err)
				assert.False(t, ok)

				cell, err = b.Cell(index)
				require.NoError(t, err)
				assert.Equal(t, entity.PlayerX, cell)
			}
		}
	})

	t.Run("Does not touch other cells", func(t *testing.T) {
		// Given: an empty board
		b := New()

		// When: marking the centre with O
		ok, err := b.SetMark(4, entity.PlayerO)
		require.NoError(t, err)
		require.True(t, ok)

		// Then: only the centre is marked
		expected := entity.Board{}
		expected[4] = entity.PlayerO
		assert.Equal(t, expected, b.GetBoard())
	})

	t.Run("Error on invalid cell index", func(t *testing.T) {
		b := New()

		for _, index := range []int{-1, 9, 20} {
			// When: an index outside the board is passed
			ok, err := b.SetMark(index, entity.PlayerX)

			// Then: ErrInvalidCell is returned and nothing changes
			require.ErrorIs(t, err, apperror.ErrInvalidCell)
			assert.False(t, ok)
		}

		assert.Equal(t, entity.Board{}, b.GetBoard())
	})

	t.Run("Error on empty mark", func(t *testing.T) {
		b := New()

		// When: placing the empty mark
		ok, err := b.SetMark(0, entity.EmptyCell)

		// Then: ErrInvalidMark is returned
		require.ErrorIs(t, err, apperror.ErrInvalidMark)
		assert.False(t, ok)
	})
}

func TestBoard_GetBoard(t *testing.T) {
	// Given: a board with one mark
	b := New()
	_, err := b.SetMark(0, entity.PlayerX)
	require.NoError(t, err)

	// When: the caller changes its snapshot
	snapshot := b.GetBoard()
	snapshot[1] = entity.PlayerO

	// Then: the board is not affected
	cell, err := b.Cell(1)
	require.NoError(t, err)
	assert.Equal(t, entity.EmptyCell, cell)
}

func TestBoard_Cell(t *testing.T) {
	b := New()

	_, err := b.Cell(9)
	require.ErrorIs(t, err, apperror.ErrInvalidCell)

	_, err = b.Cell(-1)
	require.ErrorIs(t, err, apperror.ErrInvalidCell)
}

func TestBoard_Reset(t *testing.T) {
	// Given: a completely filled board
	b := New()
	marks := entity.Board{
		entity.PlayerX, entity.PlayerO, entity.PlayerX,
		entity.PlayerO, entity.PlayerX, entity.PlayerO,
		entity.PlayerO, entity.PlayerX, entity.PlayerO,
	}
	for index, mark := range marks {
		_, err := b.SetMark(index, mark)
		require.NoError(t, err)
	}
	require.True(t, b.IsFull())

	// When: resetting the board
	b.Reset()

	// Then: every cell reads empty and can be marked again
	assert.Equal(t, entity.Board{}, b.GetBoard())
	assert.False(t, b.IsFull())

	ok, err := b.SetMark(0, entity.PlayerO)
	require.NoError(t, err)
	assert.True(t, ok)
}
