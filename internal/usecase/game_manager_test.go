package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/board"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

var errRedisDown = errors.New("redis down")

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, view *entity.View) error {
	args := m.Called(ctx, view)
	return args.Error(0)
}

func newManager(t *testing.T, names PlayerNames, publishers ...SnapshotPublisher) *GameManager {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	controller := tictactoe.NewGameController(board.New())

	return NewGameManager(logger, controller, names, publishers...)
}

func TestGameManager_View(t *testing.T) {
	// Given: a manager with no game started
	manager := newManager(t, PlayerNames{})

	// When: reading the view
	view := manager.View(context.Background())

	// Then: the idle view is returned without a restart button
	assert.Equal(t, entity.StatusNotStarted, view.Status)
	assert.Equal(t, entity.StatusTextIdle, view.StatusText)
	assert.False(t, view.ShowRestart)
	assert.Nil(t, view.CurrentPlayer)
}

func TestGameManager_StartGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Uses given names", func(t *testing.T) {
		manager := newManager(t, PlayerNames{})

		// When: starting with two names
		view, err := manager.StartGame(ctx, "  Alice ", "Bob")

		// Then: the names are trimmed and Alice holds X
		require.NoError(t, err)
		assert.Equal(t, &entity.Player{Name: "Alice", Mark: entity.PlayerX}, view.CurrentPlayer)
		assert.Equal(t, "awaiting move by Alice (X)", view.StatusText)
		assert.True(t, view.ShowRestart)
	})

	t.Run("Blank names fall back to defaults", func(t *testing.T) {
		manager := newManager(t, PlayerNames{})

		// When: starting with blank names
		_, err := manager.StartGame(ctx, "", "   ")
		require.NoError(t, err)
		view, err := manager.PlayTurn(ctx, 0)
		require.NoError(t, err)

		// Then: the default names are used
		assert.Equal(t, &entity.Player{Name: DefaultSecondPlayer, Mark: entity.PlayerO}, view.CurrentPlayer)

		_, err = manager.StartGame(ctx, "", "")
		require.NoError(t, err)
		assert.Equal(t, DefaultFirstPlayer, manager.View(ctx).CurrentPlayer.Name)
	})

	t.Run("Configured defaults", func(t *testing.T) {
		manager := newManager(t, PlayerNames{First: "Crosses", Second: "Noughts"})

		// When: starting with blank names
		view, err := manager.StartGame(ctx, "", "")

		// Then: the configured names are used
		require.NoError(t, err)
		assert.Equal(t, "Crosses", view.CurrentPlayer.Name)
	})

	t.Run("Publishes the new session", func(t *testing.T) {
		// Given: a publisher expecting the started view
		publisher := &mockPublisher{}
		publisher.On("Publish", ctx, mock.MatchedBy(func(v *entity.View) bool {
			return v.Status == entity.StatusOngoing && v.SessionID != ""
		})).Return(nil).Once()

		manager := newManager(t, PlayerNames{}, publisher)

		// When: starting a game
		_, err := manager.StartGame(ctx, "Alice", "Bob")

		// Then: the view was published
		require.NoError(t, err)
		publisher.AssertExpectations(t)
	})

	t.Run("Publish failure is not fatal", func(t *testing.T) {
		// Given: a publisher that always fails and one that works
		failing := &mockPublisher{}
		failing.On("Publish", ctx, mock.AnythingOfType("*entity.View")).Return(errRedisDown).Once()

		working := &mockPublisher{}
		working.On("Publish", ctx, mock.AnythingOfType("*entity.View")).Return(nil).Once()

		manager := newManager(t, PlayerNames{}, failing, working)

		// When: starting a game
		view, err := manager.StartGame(ctx, "Alice", "Bob")

		// Then: the game starts and the second publisher still gets the view
		require.NoError(t, err)
		assert.Equal(t, entity.StatusOngoing, view.Status)
		failing.AssertExpectations(t)
		working.AssertExpectations(t)
	})
}

func TestGameManager_PlayTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Error before start", func(t *testing.T) {
		manager := newManager(t, PlayerNames{})

		// When: playing before any start
		view, err := manager.PlayTurn(ctx, 0)

		// Then: ErrGameIsNotStarted is returned with the idle view
		require.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
		assert.Equal(t, entity.StatusNotStarted, view.Status)
	})

	t.Run("Rejected move is not published", func(t *testing.T) {
		// Given: a started game where X took cell 0
		publisher := &mockPublisher{}
		publisher.On("Publish", ctx, mock.AnythingOfType("*entity.View")).Return(nil).Twice()

		manager := newManager(t, PlayerNames{}, publisher)
		_, err := manager.StartGame(ctx, "A", "B")
		require.NoError(t, err)
		_, err = manager.PlayTurn(ctx, 0)
		require.NoError(t, err)

		// When: O tries cell 0
		view, err := manager.PlayTurn(ctx, 0)

		// Then: the move is rejected and the view still shows O on turn
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, "awaiting move by B (O)", view.StatusText)
		assert.Equal(t, entity.PlayerX, view.Board[0])
		publisher.AssertExpectations(t)
		publisher.AssertNumberOfCalls(t, "Publish", 2)
	})

	t.Run("Win and tie status text", func(t *testing.T) {
		manager := newManager(t, PlayerNames{})

		// Given: Alice and Bob
		_, err := manager.StartGame(ctx, "Alice", "Bob")
		require.NoError(t, err)

		// When: Alice completes the left column
		var view *entity.View
		for _, cell := range []int{0, 1, 3, 4, 6} {
			view, err = manager.PlayTurn(ctx, cell)
			require.NoError(t, err)
		}

		// Then: she wins and further moves are rejected
		assert.Equal(t, "Alice wins", view.StatusText)
		assert.True(t, view.IsOver)

		_, err = manager.PlayTurn(ctx, 8)
		require.ErrorIs(t, err, apperror.ErrGameFinished)

		// When: a new game is drawn
		_, err = manager.StartGame(ctx, "Alice", "Bob")
		require.NoError(t, err)
		for _, cell := range []int{0, 1, 2, 3, 4, 6, 7, 8, 5} {
			view, err = manager.PlayTurn(ctx, cell)
			require.NoError(t, err)
		}

		// Then: the status is tie
		assert.Equal(t, "tie", view.StatusText)
		assert.Nil(t, view.Winner)
		assert.True(t, view.ShowRestart)
	})

	t.Run("Concurrent callers are serialized", func(t *testing.T) {
		manager := newManager(t, PlayerNames{})
		_, err := manager.StartGame(ctx, "A", "B")
		require.NoError(t, err)

		// When: all nine cells are played from separate goroutines
		var wg sync.WaitGroup
		for cell := range entity.BoardSize {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = manager.PlayTurn(ctx, cell)
			}()
		}
		wg.Wait()

		// Then: the game ended and X and O marks differ by at most one
		view := manager.View(ctx)
		assert.True(t, view.IsOver)

		var x, o int
		for _, cell := range view.Board {
			switch cell {
			case entity.PlayerX:
				x++
			case entity.PlayerO:
				o++
			}
		}
		assert.Contains(t, []int{0, 1}, x-o)
	})
}
