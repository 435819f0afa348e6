package board

import "github.com/daystram/pgneval/position"

type CastleDirection uint8

const (
	CastleDirectionUnknown CastleDirection = iota
	CastleDirectionWhiteRight
	CastleDirectionWhiteLeft
	CastleDirectionBlackRight
	CastleDirectionBlackLeft
)

// NewCastleDirection returns the direction for side s castling on the king's (right) or queen's wing.
func NewCastleDirection(s Side, kingside bool) CastleDirection {
	switch {
	case s == SideWhite && kingside:
		return CastleDirectionWhiteRight
	case s == SideWhite:
		return CastleDirectionWhiteLeft
	case s == SideBlack && kingside:
		return CastleDirectionBlackRight
	case s == SideBlack:
		return CastleDirectionBlackLeft
	default:
		return CastleDirectionUnknown
	}
}

func (d CastleDirection) String() string {
	switch d {
	case CastleDirectionWhiteRight:
		return "White O-O"
	case CastleDirectionWhiteLeft:
		return "White O-O-O"
	case CastleDirectionBlackRight:
		return "Black O-O"
	case CastleDirectionBlackLeft:
		return "Black O-O-O"
	default:
		return ""
	}
}

func (d CastleDirection) Side() Side {
	switch d {
	case CastleDirectionWhiteRight, CastleDirectionWhiteLeft:
		return SideWhite
	case CastleDirectionBlackRight, CastleDirectionBlackLeft:
		return SideBlack
	default:
		return SideUnknown
	}
}

func (d CastleDirection) IsRight() bool {
	return d == CastleDirectionWhiteRight || d == CastleDirectionBlackRight
}

// Symbol is the FEN letter of the right.
func (d CastleDirection) Symbol() string {
	switch d {
	case CastleDirectionWhiteRight:
		return "K"
	case CastleDirectionWhiteLeft:
		return "Q"
	case CastleDirectionBlackRight:
		return "k"
	case CastleDirectionBlackLeft:
		return "q"
	default:
		return ""
	}
}

// CastleRights holds the four castling flags. On a live board flags are only
// ever cleared, never set.
type CastleRights uint8

const (
	CastleRightsNone CastleRights = 0
	CastleRightsAll  CastleRights = 0b1111
)

// NewCastleRights returns a mask holding exactly the given directions.
func NewCastleRights(ds ...CastleDirection) CastleRights {
	var c CastleRights
	for _, d := range ds {
		c |= maskCastleRights[d]
	}
	return c
}

// SideCastleRights is the mask of both rights of side s.
func SideCastleRights(s Side) CastleRights {
	return NewCastleRights(NewCastleDirection(s, true), NewCastleDirection(s, false))
}

func (c *CastleRights) Clear(mask CastleRights) {
	*c &^= mask
}

func (c CastleRights) IsAllowed(d CastleDirection) bool {
	return c&maskCastleRights[d] != 0
}

func (c CastleRights) String() string {
	if c == CastleRightsNone {
		return "-"
	}
	var s string
	for _, d := range castleDirectionsFEN {
		if c.IsAllowed(d) {
			s += d.Symbol()
		}
	}
	return s
}

// rookHome returns the castling direction whose rook starts on pos for side s.
func rookHome(s Side, pos position.Pos) CastleDirection {
	for _, d := range castleDirectionsFEN {
		if d.Side() == s && posCastling[d][PieceRook][0] == pos {
			return d
		}
	}
	return CastleDirectionUnknown
}
