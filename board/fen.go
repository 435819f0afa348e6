package board

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/daystram/pgneval/position"
)

// UnmarshalFEN loads fen into b and returns the zero-based ply index the
// position belongs to, derived from the side to move and the full move number.
func UnmarshalFEN(fen string, b *Board) (int, error) {
	if b == nil {
		return 0, fmt.Errorf("invalid board")
	}
	segments := strings.Split(fen, " ")
	if len(segments) != 6 {
		return 0, fmt.Errorf("%w: incorrect number of segments", ErrInvalidFEN)
	}

	var bb Board
	rows := strings.Split(segments[0], "/")
	if len(rows) != int(Height) {
		return 0, fmt.Errorf("%w: invalid board configuration", ErrInvalidFEN)
	}
	for y := position.Pos(0); y < Height; y++ {
		row := rows[Height-y-1]
		x := position.Pos(0)
		for _, cell := range row {
			if x >= Width {
				return 0, fmt.Errorf("%w: too many cells in rank %d", ErrInvalidFEN, y+1)
			}
			if unicode.IsDigit(cell) {
				skip := position.Pos(cell - '0')
				if skip == 0 || x+skip > Width {
					return 0, fmt.Errorf("%w: skip out of bounds", ErrInvalidFEN)
				}
				x += skip
				continue
			}
			s := SideWhite
			if unicode.IsLower(cell) {
				s = SideBlack
			}
			p := NewPieceFromSymbol(unicode.ToUpper(cell))
			if p == PieceUnknown {
				return 0, fmt.Errorf("%w: unknown symbol '%s'", ErrInvalidFEN, string(cell))
			}
			bb.cells[position.NewPos(y, x)] = NewCell(s, p)
			x++
		}
		if x != Width {
			return 0, fmt.Errorf("%w: missing cells in rank %d", ErrInvalidFEN, y+1)
		}
	}

	var blackToMove bool
	switch segments[1] {
	case "w":
	case "b":
		blackToMove = true
	default:
		return 0, fmt.Errorf("%w: invalid turn", ErrInvalidFEN)
	}

	if len(segments[2]) > 4 || segments[2] == "" {
		return 0, fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
	}
	if segments[2] != "-" {
		for _, e := range segments[2] {
			var d CastleDirection
			for _, candidate := range castleDirectionsFEN {
				if candidate.Symbol() == string(e) {
					d = candidate
				}
			}
			if d == CastleDirectionUnknown {
				return 0, fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
			}
			bb.castleRights |= maskCastleRights[d]
		}
	}

	bb.enPassant = position.NoPos
	if segments[3] != "-" {
		pos, err := position.NewPosFromNotation(segments[3])
		if err != nil {
			return 0, fmt.Errorf("%w: invalid enpassant position: %v", ErrInvalidFEN, err)
		}
		if pos.Rank() != 2 && pos.Rank() != 5 {
			return 0, fmt.Errorf("%w: invalid enpassant position", ErrInvalidFEN)
		}
		bb.enPassant = pos
	}

	halfMoveClock, err := strconv.ParseUint(segments[4], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid half move clock", ErrInvalidFEN)
	}
	bb.halfMoveClock = halfMoveClock

	fullMoveClock, err := strconv.ParseUint(segments[5], 10, 32)
	if err != nil || fullMoveClock == 0 {
		return 0, fmt.Errorf("%w: invalid full move clock", ErrInvalidFEN)
	}

	*b = bb
	ply := int(fullMoveClock-1) * 2
	if blackToMove {
		ply++
	}
	return ply, nil
}

// MarshalFEN serializes b as the position reached after ply half moves.
// The side to move and the full move number are derived from ply.
func MarshalFEN(b *Board, ply int) string {
	builder := strings.Builder{}
	for y := position.Pos(Height) - 1; y >= 0; y-- {
		var skip uint8
		for x := position.Pos(0); x < Width; x++ {
			c := b.cells[position.NewPos(y, x)]
			if c.IsEmpty() {
				skip++
				continue
			}
			if skip != 0 {
				_, _ = builder.WriteRune(rune(skip + '0'))
				skip = 0
			}
			_, _ = builder.WriteString(c.String())
		}
		if skip != 0 {
			_, _ = builder.WriteRune(rune(skip + '0'))
		}
		if y > 0 {
			_, _ = builder.WriteRune('/')
		}
	}

	if SideFromPly(ply) == SideWhite {
		_, _ = builder.WriteString(" w ")
	} else {
		_, _ = builder.WriteString(" b ")
	}

	_, _ = builder.WriteString(b.castleRights.String())
	_, _ = builder.WriteRune(' ')
	_, _ = builder.WriteString(b.enPassant.String())

	_, _ = builder.WriteString(fmt.Sprintf(" %d %d", b.halfMoveClock, ply/2+1))
	return builder.String()
}

// FEN is the method form of MarshalFEN.
func (b *Board) FEN(ply int) string {
	return MarshalFEN(b, ply)
}
