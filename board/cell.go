package board

type Side uint8

const (
	SideUnknown Side = iota
	SideWhite
	SideBlack
)

func (s Side) String() string {
	switch s {
	case SideWhite:
		return "White"
	case SideBlack:
		return "Black"
	default:
		return ""
	}
}

func (s Side) Opposite() Side {
	switch s {
	case SideWhite:
		return SideBlack
	case SideBlack:
		return SideWhite
	default:
		return SideUnknown
	}
}

// SideFromPly returns the side to move at the given zero-based ply index.
func SideFromPly(ply int) Side {
	if ply&1 == 0 {
		return SideWhite
	}
	return SideBlack
}

// Cell is the content of one square: empty, or a Piece owned by a Side.
// The side is kept in the high nibble, the piece in the low one.
type Cell uint8

// CellEmpty is the zero Cell.
const CellEmpty Cell = 0

func NewCell(s Side, p Piece) Cell {
	if s == SideUnknown || p == PieceUnknown {
		return CellEmpty
	}
	return Cell(uint8(s)<<4 | uint8(p))
}

func (c Cell) Piece() Piece {
	return Piece(c & 0x0F)
}

func (c Cell) Side() Side {
	return Side(c >> 4)
}

func (c Cell) IsEmpty() bool {
	return c == CellEmpty
}

func (c Cell) String() string {
	if c.IsEmpty() {
		return "."
	}
	return c.Piece().SymbolFEN(c.Side())
}
