package board

type Piece uint8

const (
	PieceUnknown Piece = iota
	PiecePawn
	PieceBishop
	PieceKnight
	PieceRook
	PieceQueen
	PieceKing
)

// Pieces lists every piece kind in a fixed order.
var Pieces = []Piece{PiecePawn, PieceBishop, PieceKnight, PieceRook, PieceQueen, PieceKing}

// NewPieceFromSymbol maps an algebraic piece letter (uppercase) to a Piece.
// Anything else yields PieceUnknown.
func NewPieceFromSymbol(r rune) Piece {
	switch r {
	case 'P':
		return PiecePawn
	case 'B':
		return PieceBishop
	case 'N':
		return PieceKnight
	case 'R':
		return PieceRook
	case 'Q':
		return PieceQueen
	case 'K':
		return PieceKing
	default:
		return PieceUnknown
	}
}

func (p Piece) String() string {
	switch p {
	case PiecePawn:
		return "Pawn"
	case PieceBishop:
		return "Bishop"
	case PieceKnight:
		return "Knight"
	case PieceRook:
		return "Rook"
	case PieceQueen:
		return "Queen"
	case PieceKing:
		return "King"
	default:
		return ""
	}
}

// SymbolAlgebra returns the piece letter used in move notation. Pawns have none.
func (p Piece) SymbolAlgebra() string {
	if p == PiecePawn {
		return ""
	}
	return p.SymbolFEN(SideWhite)
}

func (p Piece) SymbolFEN(s Side) string {
	var sym rune
	switch p {
	case PiecePawn:
		sym = 'P'
	case PieceBishop:
		sym = 'B'
	case PieceKnight:
		sym = 'N'
	case PieceRook:
		sym = 'R'
	case PieceQueen:
		sym = 'Q'
	case PieceKing:
		sym = 'K'
	default:
		return ""
	}
	if s == SideBlack {
		sym |= 0x20 // lowercase is +32 uppercase
	}
	return string(sym)
}

func (p Piece) SymbolUnicode(s Side) string {
	glyphs, ok := unicodeGlyphs[s]
	if !ok || p == PieceUnknown || int(p) >= len(glyphs) {
		return ""
	}
	return glyphs[p]
}

var unicodeGlyphs = map[Side][7]string{
	SideWhite: {"", "♙", "♗", "♘", "♖", "♕", "♔"},
	SideBlack: {"", "♟", "♝", "♞", "♜", "♛", "♚"},
}
