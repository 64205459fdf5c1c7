package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var startLayout = []string{
	"rnbkqbnr",
	"pppppppp",
	"........",
	"........",
	"........",
	"........",
	"PPPPPPPP",
	"RNBKQBNR",
}

func mustLayout(t *testing.T, moveCount int, rows ...string) *Board {
	t.Helper()
	b, err := ParseLayout(rows, moveCount)
	require.NoError(t, err)
	return b
}

func assertLayout(t *testing.T, b *Board, want []string) {
	t.Helper()
	if diff := cmp.Diff(want, b.Layout()); diff != "" {
		t.Errorf("layout mismatch (-want +got):\n%s", diff)
	}
}

func TestNewBoard(t *testing.T) {
	b := NewBoard()

	assertLayout(t, b, startLayout)
	assert.Equal(t, 0, b.MoveCount())
	assert.Equal(t, FirstSide, b.CurrentSide())
	assert.Equal(t, SecondSide, b.At(pos(0, 3)).Color)
	assert.Equal(t, FirstSide, b.At(pos(7, 3)).Color)
}

func TestPositionRotate(t *testing.T) {
	p := pos(2, 5)
	assert.Equal(t, pos(5, 2), p.Rotate())
	assert.Equal(t, p, p.Rotate().Rotate())
	assert.Equal(t, pos(7, 7), pos(0, 0).Rotate())
}

func TestCanMoveOutOfBounds(t *testing.T) {
	b := NewBoard()
	outside := []Position{pos(-1, 0), pos(0, -1), pos(8, 0), pos(0, 8), pos(8, 8), pos(-3, 12)}

	for _, p := range outside {
		assert.False(t, b.CanMove(p, pos(5, 0)), "from %v", p)
		assert.False(t, b.CanMove(pos(7, 0), p), "rook to %v", p)
		assert.False(t, b.CanMove(pos(6, 0), p), "pawn to %v", p)
		assert.Nil(t, b.At(p))
	}
}

func TestCanMoveRejects(t *testing.T) {
	b := NewBoard()
	tests := []struct {
		name     string
		src, dst Position
	}{
		{"empty source", pos(4, 4), pos(3, 4)},
		{"opponent piece on first turn", pos(0, 1), pos(2, 2)},
		{"rook onto own pawn", pos(7, 0), pos(6, 0)},
		{"knight onto own pawn", pos(7, 1), pos(6, 3)},
		{"queen onto own king", pos(7, 4), pos(7, 3)},
		{"piece onto itself", pos(7, 4), pos(7, 4)},
		{"pawn backwards", pos(6, 2), pos(7, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, b.CanMove(tt.src, tt.dst))
			assert.False(t, b.Move(tt.src, tt.dst))
			assertLayout(t, b, startLayout)
			assert.Equal(t, 0, b.MoveCount())
		})
	}
}

func TestPawnDoubleStepFromStart(t *testing.T) {
	b := NewBoard()
	src, dst := pos(6, 4), pos(4, 4)
	pawn := b.At(src)

	require.True(t, b.Move(src, dst))

	assert.Equal(t, 1, b.MoveCount())
	assert.Equal(t, SecondSide, b.CurrentSide())
	assert.False(t, pawn.CanDoubleStep())
	assertLayout(t, b, []string{
		"RNBQKBNR",
		"PPP.PPPP",
		"........",
		"...P....",
		"........",
		"........",
		"pppppppp",
		"rnbqkbnr",
	})

	// The old destination now addresses another cell; the pawn sits at its
	// rotated coordinate.
	assert.Nil(t, b.At(dst))
	assert.Same(t, pawn, b.At(dst.Rotate()))
}

func TestSecondSidePawnsAdvanceAfterRotation(t *testing.T) {
	b := NewBoard()
	require.True(t, b.Move(pos(6, 4), pos(4, 4)))

	pawn := b.At(pos(6, 4))
	require.NotNil(t, pawn)
	assert.Equal(t, SecondSide, pawn.Color)

	require.True(t, b.Move(pos(6, 4), pos(4, 4)))
	assert.Equal(t, 2, b.MoveCount())
	assert.Equal(t, FirstSide, b.CurrentSide())
	assertLayout(t, b, []string{
		"rnbkqbnr",
		"ppp.pppp",
		"........",
		"...p....",
		"....P...",
		"........",
		"PPPP.PPP",
		"RNBKQBNR",
	})
}

func TestCanMoveHasNoSideEffects(t *testing.T) {
	b := NewBoard()
	pawn := b.At(pos(6, 4))

	assert.True(t, b.CanMove(pos(6, 4), pos(4, 4)))
	assert.True(t, b.CanMove(pos(6, 4), pos(4, 4)))
	assert.True(t, pawn.CanDoubleStep())
	assert.Equal(t, 0, b.MoveCount())
	assertLayout(t, b, startLayout)
}

func TestPawnLosesDoubleStepAfterSingleStep(t *testing.T) {
	b := NewBoard()
	require.True(t, b.Move(pos(6, 4), pos(5, 4)))
	require.True(t, b.Move(pos(6, 0), pos(5, 0)))

	require.Equal(t, FirstSide, b.At(pos(5, 4)).Color)
	assert.False(t, b.CanMove(pos(5, 4), pos(3, 4)))
	assert.True(t, b.CanMove(pos(5, 4), pos(4, 4)))
}

func TestPawnLosesDoubleStepAfterCapture(t *testing.T) {
	b := mustLayout(t, 0,
		"k.......",
		"........",
		"........",
		"........",
		"........",
		".....n..",
		"....P...",
		"........",
	)

	require.True(t, b.Move(pos(6, 4), pos(5, 5)))
	require.True(t, b.Move(pos(7, 7), pos(6, 7)))

	pawn := b.At(pos(5, 5))
	require.NotNil(t, pawn)
	assert.Equal(t, Pawn, pawn.Type)
	assert.False(t, b.CanMove(pos(5, 5), pos(3, 5)))
	assert.True(t, b.CanMove(pos(5, 5), pos(4, 5)))
}

func TestRookStepsOntoVacatedSquare(t *testing.T) {
	b := NewBoard()
	require.True(t, b.Move(pos(6, 0), pos(4, 0)))
	require.True(t, b.Move(pos(6, 0), pos(5, 0)))

	require.Nil(t, b.At(pos(6, 0)))
	assert.True(t, b.Move(pos(7, 0), pos(6, 0)))
	assert.Equal(t, 3, b.MoveCount())
}

func TestSlidingPiecesIgnoreBlockers(t *testing.T) {
	b := NewBoard()

	assert.True(t, b.CanMove(pos(7, 0), pos(5, 0)), "rook over its pawn")
	assert.True(t, b.CanMove(pos(7, 2), pos(4, 5)), "bishop over its pawn")
	assert.True(t, b.CanMove(pos(7, 4), pos(3, 4)), "queen over its pawn")
}

func TestKnightJumpsFromStart(t *testing.T) {
	b := NewBoard()
	knight := b.At(pos(7, 1))

	require.True(t, b.Move(pos(7, 1), pos(5, 2)))
	assert.Same(t, knight, b.At(pos(5, 2).Rotate()))
}

func TestCaptures(t *testing.T) {
	rows := []string{
		"....k...",
		"........",
		"q.......",
		"........",
		"....pb..",
		"....P...",
		"........",
		"R...K...",
	}

	t.Run("pawn takes diagonally", func(t *testing.T) {
		b := mustLayout(t, 0, rows...)
		assert.True(t, b.CanMove(pos(5, 4), pos(4, 5)))
		assert.False(t, b.CanMove(pos(5, 4), pos(4, 4)), "pawn cannot take straight ahead")
	})

	t.Run("rook takes queen", func(t *testing.T) {
		b := mustLayout(t, 0, rows...)
		rook := b.At(pos(7, 0))

		require.True(t, b.Move(pos(7, 0), pos(2, 0)))
		assert.Same(t, rook, b.At(pos(2, 0).Rotate()))
		assertLayout(t, b, []string{
			"...K....",
			"........",
			"...P....",
			"..bp....",
			"........",
			".......R",
			"........",
			"...k....",
		})
	})

	t.Run("own piece blocks capture", func(t *testing.T) {
		b := mustLayout(t, 0, rows...)
		assert.False(t, b.CanMove(pos(7, 4), pos(7, 0)))
	})
}

func TestMoveCounterAndSide(t *testing.T) {
	b := NewBoard()
	moves := []SimpleMove{
		{From: pos(6, 3), To: pos(4, 3)},
		{From: pos(6, 3), To: pos(4, 3)},
		{From: pos(7, 1), To: pos(5, 2)},
		{From: pos(7, 6), To: pos(5, 5)},
	}

	for i, m := range moves {
		before := b.CurrentSide()
		require.True(t, b.Move(m.From, m.To), "move %d", i)
		assert.Equal(t, i+1, b.MoveCount())
		assert.Equal(t, before.Opposite(), b.CurrentSide())

		assert.False(t, b.Move(pos(3, 3), pos(2, 3)), "empty cell")
		assert.Equal(t, i+1, b.MoveCount())
	}
}

func TestParseLayout(t *testing.T) {
	b := mustLayout(t, 3, startLayout...)
	assert.Equal(t, SecondSide, b.CurrentSide())
	assertLayout(t, b, startLayout)

	tests := []struct {
		name      string
		rows      []string
		moveCount int
	}{
		{"too few rows", startLayout[:7], 0},
		{"short row", append(append([]string{}, startLayout[:7]...), "RNBKQBN"), 0},
		{"unknown piece", append(append([]string{}, startLayout[:7]...), "RNBKQBNX"), 0},
		{"negative move count", startLayout, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLayout(tt.rows, tt.moveCount)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidLayout), "got %v", err)
		})
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	b := NewBoard()
	s := b.Snapshot()

	require.NotNil(t, s[7][0])
	assert.Equal(t, Rook, s[7][0].Type)
	assert.Nil(t, s[4][4])

	s[7][0].Icon = "changed"
	assert.Equal(t, "images/rook_white.png", b.At(pos(7, 0)).Icon)
}
