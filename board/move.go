package board

import "github.com/daystram/pgneval/position"

type MoveKind uint8

const (
	MoveNormal MoveKind = iota
	MoveKingsideCastle
	MoveQueensideCastle
)

// Move describes a move as written in notation. FromRank and FromFile are
// position.NoPos unless the notation disambiguated the origin; the acting
// piece is only known once the Move is resolved against a Board.
type Move struct {
	Kind     MoveKind
	Piece    Piece
	FromRank position.Pos
	FromFile position.Pos
	To       position.Pos

	IsCapture bool
}

// NewMove returns a normal, undisambiguated move of p to to.
func NewMove(p Piece, to position.Pos) Move {
	return Move{
		Kind:     MoveNormal,
		Piece:    p,
		FromRank: position.NoPos,
		FromFile: position.NoPos,
		To:       to,
	}
}

func NewCastleMove(kingside bool) Move {
	mv := Move{Piece: PieceKing, FromRank: position.NoPos, FromFile: position.NoPos, To: position.NoPos}
	if kingside {
		mv.Kind = MoveKingsideCastle
	} else {
		mv.Kind = MoveQueensideCastle
	}
	return mv
}

func (m Move) IsCastle() bool {
	return m.Kind == MoveKingsideCastle || m.Kind == MoveQueensideCastle
}

// matchesOrigin reports whether pos satisfies the move's disambiguators.
func (m Move) matchesOrigin(pos position.Pos) bool {
	if m.FromFile != position.NoPos && pos.File() != m.FromFile {
		return false
	}
	if m.FromRank != position.NoPos && pos.Rank() != m.FromRank {
		return false
	}
	return true
}

func (m Move) String() string {
	switch m.Kind {
	case MoveKingsideCastle:
		return "O-O"
	case MoveQueensideCastle:
		return "O-O-O"
	}
	nt := m.Piece.SymbolAlgebra()
	if m.FromFile != position.NoPos {
		nt += m.FromFile.NotationComponentFile()
	}
	if m.FromRank != position.NoPos {
		nt += m.FromRank.NotationComponentRank()
	}
	if m.IsCapture {
		nt += "x"
	}
	return nt + m.To.Notation()
}
