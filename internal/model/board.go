package model

import (
	"fmt"
	"strings"
)

// Size is the number of rows and columns on the board.
const Size = 8

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// Rotate returns the cell that p addresses after the board is turned
// around by an accepted move.
func (p Position) Rotate() Position {
	return Position{Row: Size - 1 - p.Row, Col: Size - 1 - p.Col}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

func (p Position) index() int {
	return p.Row*Size + p.Col
}

var backRank = [Size]PieceType{Rook, Knight, Bishop, King, Queen, Bishop, Knight, Rook}

// Board is the grid plus the move counter. Every accepted move turns the
// whole grid around, so coordinates are always read from the point of view
// of the side about to move.
type Board struct {
	cells     [Size * Size]*Piece
	moveCount int
}

// NewBoard returns the standard starting position with the first side on
// rows 6 and 7.
func NewBoard() *Board {
	b := &Board{}
	for col := 0; col < Size; col++ {
		b.put(Position{Row: 0, Col: col}, NewPiece(backRank[col], SecondSide))
		b.put(Position{Row: 1, Col: col}, NewPiece(Pawn, SecondSide))
		b.put(Position{Row: Size - 2, Col: col}, NewPiece(Pawn, FirstSide))
		b.put(Position{Row: Size - 1, Col: col}, NewPiece(backRank[col], FirstSide))
	}
	return b
}

// ParseLayout builds a board from eight rows of eight characters. Upper
// case letters (KQRBNP) belong to the first side, lower case to the second,
// and '.' is an empty cell. moveCount fixes whose turn it is.
func ParseLayout(rows []string, moveCount int) (*Board, error) {
	if len(rows) != Size {
		return nil, fmt.Errorf("%w: want %d rows, got %d", ErrInvalidLayout, Size, len(rows))
	}
	if moveCount < 0 {
		return nil, fmt.Errorf("%w: negative move count %d", ErrInvalidLayout, moveCount)
	}
	b := &Board{moveCount: moveCount}
	for row, line := range rows {
		if len(line) != Size {
			return nil, fmt.Errorf("%w: row %d has %d cells", ErrInvalidLayout, row, len(line))
		}
		for col := 0; col < Size; col++ {
			c := line[col]
			if c == '.' {
				continue
			}
			t, ok := pieceTypeFromLetter(c)
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece %q at %v", ErrInvalidLayout, c, Position{Row: row, Col: col})
			}
			color := FirstSide
			if c >= 'a' && c <= 'z' {
				color = SecondSide
			}
			b.put(Position{Row: row, Col: col}, NewPiece(t, color))
		}
	}
	return b, nil
}

// Layout is the inverse of ParseLayout.
func (b *Board) Layout() []string {
	rows := make([]string, Size)
	for row := 0; row < Size; row++ {
		var sb strings.Builder
		for col := 0; col < Size; col++ {
			piece := b.At(Position{Row: row, Col: col})
			switch {
			case piece == nil:
				sb.WriteByte('.')
			case piece.Color == FirstSide:
				sb.WriteByte(piece.Type.Letter())
			default:
				sb.WriteByte(piece.Type.Letter() + ('a' - 'A'))
			}
		}
		rows[row] = sb.String()
	}
	return rows
}

func (b *Board) put(pos Position, piece *Piece) {
	b.cells[pos.index()] = piece
}

// At returns the occupant of pos, or nil for an empty or off-board cell.
func (b *Board) At(pos Position) *Piece {
	if !pos.InBounds() {
		return nil
	}
	return b.cells[pos.index()]
}

func (b *Board) MoveCount() int {
	return b.moveCount
}

// CurrentSide is the first side on even move counts, the second otherwise.
func (b *Board) CurrentSide() PlayerColor {
	if b.moveCount%2 == 0 {
		return FirstSide
	}
	return SecondSide
}

// CanMove reports whether moving the piece on src to dst is legal for the
// side to move. It never changes the board.
func (b *Board) CanMove(src, dst Position) bool {
	if !src.InBounds() || !dst.InBounds() {
		return false
	}
	piece := b.At(src)
	if piece == nil || piece.Color != b.CurrentSide() {
		return false
	}
	target := b.At(dst)
	if target == nil {
		return piece.CanMove(src, dst)
	}
	return target.Color != piece.Color && src != dst && piece.CanKill(src, dst)
}

// Move applies src->dst when it is legal and reports whether it did.
// Illegal requests leave the board untouched. After an accepted move the
// grid is rotated 180 degrees. A pawn loses its double step on any accepted
// move, captures included.
func (b *Board) Move(src, dst Position) bool {
	if !b.CanMove(src, dst) {
		return false
	}
	piece := b.cells[src.index()]
	piece.clearDoubleStep()
	b.cells[dst.index()] = piece
	b.cells[src.index()] = nil
	b.moveCount++
	b.rotate()
	return true
}

// rotate reverses the flat cell order, which reverses every row and the
// order of the rows at once.
func (b *Board) rotate() {
	for i, j := 0, len(b.cells)-1; i < j; i, j = i+1, j-1 {
		b.cells[i], b.cells[j] = b.cells[j], b.cells[i]
	}
}

// BoardSnapshot is a detached copy of the grid for renderers.
type BoardSnapshot [Size][Size]*Piece

func (b *Board) Snapshot() BoardSnapshot {
	var s BoardSnapshot
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if piece := b.At(Position{Row: row, Col: col}); piece != nil {
				cp := *piece
				s[row][col] = &cp
			}
		}
	}
	return s
}
