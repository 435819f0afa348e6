package notation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/daystram/pgneval/board"
	"github.com/daystram/pgneval/position"
)

var (
	ErrInvalidNotation = errors.New("invalid move notation")
)

// ParseError reports a token that does not have the shape of a supported
// algebraic move.
type ParseError struct {
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrInvalidNotation, e.Token, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrInvalidNotation
}

// Parse turns a single algebraic move token into a move descriptor. Check,
// mate and annotation suffixes are ignored. Promotion is not supported.
func Parse(token string) (board.Move, error) {
	fail := func(reason string) (board.Move, error) {
		return board.Move{}, &ParseError{Token: token, Reason: reason}
	}

	nt := strings.TrimRight(token, "+#!?")
	switch nt {
	case "O-O", "0-0":
		return board.NewCastleMove(true), nil
	case "O-O-O", "0-0-0":
		return board.NewCastleMove(false), nil
	case "":
		return fail("empty")
	}

	p := board.PiecePawn
	if c := nt[0]; c >= 'A' && c <= 'Z' {
		p = board.NewPieceFromSymbol(rune(c))
		if p == board.PieceUnknown || p == board.PiecePawn {
			return fail("unknown piece")
		}
		nt = nt[1:]
	}

	var isCapture bool
	if i := strings.IndexByte(nt, 'x'); i != -1 {
		nt = nt[:i] + nt[i+1:]
		// the marker sits right before the destination
		if i != len(nt)-2 {
			return fail("misplaced capture marker")
		}
		isCapture = true
	}
	if len(nt) < 2 {
		return fail("missing destination")
	}

	to, err := position.NewPosFromNotation(nt[len(nt)-2:])
	if err != nil {
		return fail("bad destination")
	}
	mv := board.NewMove(p, to)
	mv.IsCapture = isCapture

	origin := nt[:len(nt)-2]
	if p == board.PiecePawn {
		switch {
		case origin == "" && !isCapture:
		case len(origin) == 1 && isCapture:
			if mv.FromFile, err = position.NotationToFile(origin[0]); err != nil {
				return fail("bad origin file")
			}
		default:
			return fail("unsupported pawn move")
		}
		return mv, nil
	}

	switch len(origin) {
	case 0:
	case 1:
		if file, err := position.NotationToFile(origin[0]); err == nil {
			mv.FromFile = file
		} else if rank, err := position.NotationToRank(origin[0]); err == nil {
			mv.FromRank = rank
		} else {
			return fail("bad disambiguator")
		}
	case 2:
		from, err := position.NewPosFromNotation(origin)
		if err != nil {
			return fail("bad origin square")
		}
		mv.FromFile, mv.FromRank = from.File(), from.Rank()
	default:
		return fail("unsupported move")
	}
	return mv, nil
}

// Resolve parses token and applies it to b for side s. b is left unchanged
// when either step fails.
func Resolve(b *board.Board, token string, s board.Side) (board.Move, error) {
	mv, err := Parse(token)
	if err != nil {
		return board.Move{}, err
	}
	if err := b.MakeMove(mv, s); err != nil {
		return mv, fmt.Errorf("%s: %w", token, err)
	}
	return mv, nil
}
