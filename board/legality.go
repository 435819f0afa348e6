package board

import "github.com/daystram/pgneval/position"

// Effect holds the side effects a move has on the board's auxiliary state.
// They are applied by the caller only once the move is committed, so probing
// a rejected candidate never touches the board.
type Effect struct {
	ClearRights CastleRights
	EnPassant   position.Pos
}

var noEffect = Effect{EnPassant: position.NoPos}

// CanMove reports whether the piece in cell c standing on from may move to to
// on b, together with the effects of doing so. Check safety is not verified,
// and a pawn stepping diagonally is accepted without looking at what stands
// on the destination. A pawn may not double step over an occupied square.
func CanMove(b *Board, c Cell, from, to position.Pos) (Effect, bool) {
	if c.IsEmpty() || !from.Valid() || !to.Valid() || from == to {
		return noEffect, false
	}
	if dst := b.Get(to); !dst.IsEmpty() && dst.Side() == c.Side() {
		return noEffect, false
	}

	dr, df := to.Rank()-from.Rank(), to.File()-from.File()
	switch c.Piece() {
	case PieceKing:
		if abs(dr) > 1 || abs(df) > 1 {
			return noEffect, false
		}
		return Effect{ClearRights: SideCastleRights(c.Side()), EnPassant: position.NoPos}, true
	case PieceKnight:
		if abs(dr)*abs(df) != 2 {
			return noEffect, false
		}
		return noEffect, true
	case PieceRook:
		if !isLateral(dr, df) || !b.isPathClear(from, to) {
			return noEffect, false
		}
		e := noEffect
		if d := rookHome(c.Side(), from); d != CastleDirectionUnknown {
			e.ClearRights = maskCastleRights[d]
		}
		return e, true
	case PieceBishop:
		if !isDiagonal(dr, df) || !b.isPathClear(from, to) {
			return noEffect, false
		}
		return noEffect, true
	case PieceQueen:
		if !(isLateral(dr, df) || isDiagonal(dr, df)) || !b.isPathClear(from, to) {
			return noEffect, false
		}
		return noEffect, true
	case PiecePawn:
		return b.canMovePawn(c.Side(), from, dr, df)
	default:
		return noEffect, false
	}
}

func (b *Board) canMovePawn(s Side, from, dr, df position.Pos) (Effect, bool) {
	fwd := pawnForward[s]
	if fwd == 0 {
		return noEffect, false
	}
	switch {
	case df == 0 && dr == fwd:
		return noEffect, true
	case df == 0 && dr == 2*fwd && from.Rank() == pawnStartRank[s]:
		passed := position.NewPos(from.Rank()+fwd, from.File())
		if !b.cells[passed].IsEmpty() {
			return noEffect, false
		}
		return Effect{EnPassant: passed}, true
	case abs(df) == 1 && dr == fwd:
		return noEffect, true
	default:
		return noEffect, false
	}
}

// isPathClear reports whether every square strictly between from and to is
// empty. from and to must share a rank, a file or a diagonal.
func (b *Board) isPathClear(from, to position.Pos) bool {
	stepR, stepF := sign(to.Rank()-from.Rank()), sign(to.File()-from.File())
	r, f := from.Rank()+stepR, from.File()+stepF
	for position.NewPos(r, f) != to {
		if !b.cells[position.NewPos(r, f)].IsEmpty() {
			return false
		}
		r, f = r+stepR, f+stepF
	}
	return true
}

func isLateral(dr, df position.Pos) bool {
	return (dr == 0) != (df == 0)
}

func isDiagonal(dr, df position.Pos) bool {
	return dr != 0 && abs(dr) == abs(df)
}

func abs(x position.Pos) position.Pos {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x position.Pos) position.Pos {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
