package model

import "fmt"

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// PieceTypes lists every kind in a fixed order.
var PieceTypes = []PieceType{Queen, King, Bishop, Knight, Rook, Pawn}

func (p PieceType) Valid() bool {
	switch p {
	case King, Queen, Rook, Bishop, Knight, Pawn:
		return true
	}
	return false
}

// Letter is the single-letter layout code for the kind.
func (p PieceType) Letter() byte {
	switch p {
	case King:
		return 'K'
	case Queen:
		return 'Q'
	case Rook:
		return 'R'
	case Bishop:
		return 'B'
	case Knight:
		return 'N'
	case Pawn:
		return 'P'
	}
	return '?'
}

func pieceTypeFromLetter(b byte) (PieceType, bool) {
	switch b {
	case 'K', 'k':
		return King, true
	case 'Q', 'q':
		return Queen, true
	case 'R', 'r':
		return Rook, true
	case 'B', 'b':
		return Bishop, true
	case 'N', 'n':
		return Knight, true
	case 'P', 'p':
		return Pawn, true
	}
	return "", false
}

// Piece is a single occupant of a board cell. Type and Color never change
// once the piece is built; Icon is an opaque display handle owned by
// whoever renders the board.
type Piece struct {
	Type  PieceType   `json:"type"`
	Color PlayerColor `json:"color"`
	Icon  string      `json:"icon"`

	// only meaningful for pawns
	canDoubleStep bool
}

func NewPiece(t PieceType, color PlayerColor) *Piece {
	return &Piece{
		Type:          t,
		Color:         color,
		Icon:          defaultIcon(t, color),
		canDoubleStep: t == Pawn,
	}
}

func defaultIcon(t PieceType, color PlayerColor) string {
	return fmt.Sprintf("images/%s_%s.png", t, color)
}

// CanDoubleStep reports whether a pawn may still advance two rows.
func (p *Piece) CanDoubleStep() bool {
	return p.Type == Pawn && p.canDoubleStep
}

// clearDoubleStep is one-way: nothing sets the flag again.
func (p *Piece) clearDoubleStep() {
	p.canDoubleStep = false
}

// CanMove reports whether travelling from src to an empty dst matches the
// piece's pattern. Paths are not checked for blockers.
func (p *Piece) CanMove(src, dst Position) bool {
	if p.Type == Pawn {
		return p.pawnCanMove(src, dst)
	}
	return p.matchesPattern(src, dst)
}

// CanKill reports whether capturing on dst from src matches the piece's
// capture pattern.
func (p *Piece) CanKill(src, dst Position) bool {
	if p.Type == Pawn {
		return p.pawnCanKill(src, dst)
	}
	return p.matchesPattern(src, dst)
}

func (p *Piece) matchesPattern(src, dst Position) bool {
	dRow, dCol := abs(dst.Row-src.Row), abs(dst.Col-src.Col)
	switch p.Type {
	case Queen:
		return isDiagonal(dRow, dCol) || isStraight(dRow, dCol)
	case King:
		// Only one axis is bounded, as in the original rules.
		return dRow == 1 || dCol == 1
	case Bishop:
		return isDiagonal(dRow, dCol)
	case Knight:
		return (dRow == 2 && dCol == 1) || (dRow == 1 && dCol == 2)
	case Rook:
		return isStraight(dRow, dCol)
	}
	return false
}

func isDiagonal(dRow, dCol int) bool {
	return dRow == dCol
}

func isStraight(dRow, dCol int) bool {
	return (dRow == 0) != (dCol == 0)
}

// pawnForward holds for every pawn regardless of color: the board is turned
// around after each move, so the side to move always advances toward row 0.
func pawnForward(src, dst Position) bool {
	return src.Row > dst.Row
}

func (p *Piece) pawnCanMove(src, dst Position) bool {
	if !pawnForward(src, dst) || dst.Col != src.Col {
		return false
	}
	dRow := abs(dst.Row - src.Row)
	return dRow == 1 || (p.canDoubleStep && dRow >= 1 && dRow <= 2)
}

func (p *Piece) pawnCanKill(src, dst Position) bool {
	if !pawnForward(src, dst) {
		return false
	}
	return abs(dst.Row-src.Row) == 1 && abs(dst.Col-src.Col) == 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
