package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/daystram/pgneval/position"
)

var (
	ErrInvalidFEN       = errors.New("invalid fen")
	ErrNoLegalCandidate = errors.New("no legal candidate")
)

// Board is an 8x8 grid of cells plus the auxiliary state needed to describe a
// position. It does not know whose turn it is: the caller passes the side on
// every move. Board holds no references, so copying the value snapshots it.
type Board struct {
	// grid data, a1 first
	cells [TotalCells]Cell

	// meta
	enPassant     position.Pos
	castleRights  CastleRights
	halfMoveClock uint64
}

type boardConfig struct {
	fen string
}

type BoardOption func(*boardConfig)

func WithFEN(fen string) BoardOption {
	return func(cfg *boardConfig) {
		cfg.fen = fen
	}
}

// NewBoard returns a board in the standard starting arrangement, or in the
// position given by WithFEN. The returned ply is the zero-based ply index the
// position belongs to (0 for the starting position).
func NewBoard(opts ...BoardOption) (*Board, int, error) {
	cfg := &boardConfig{}
	for _, f := range opts {
		f(cfg)
	}

	b := &Board{enPassant: position.NoPos}
	if cfg.fen == "" {
		b.reset()
		return b, 0, nil
	}
	ply, err := UnmarshalFEN(cfg.fen, b)
	if err != nil {
		return nil, 0, err
	}
	return b, ply, nil
}

func (b *Board) reset() {
	*b = Board{
		enPassant:    position.NoPos,
		castleRights: CastleRightsAll,
	}
	for file := position.Pos(0); file < Width; file++ {
		b.cells[position.NewPos(0, file)] = NewCell(SideWhite, backRank[file])
		b.cells[position.NewPos(1, file)] = NewCell(SideWhite, PiecePawn)
		b.cells[position.NewPos(6, file)] = NewCell(SideBlack, PiecePawn)
		b.cells[position.NewPos(7, file)] = NewCell(SideBlack, backRank[file])
	}
}

// Get returns the content of pos. pos must be within the board.
func (b *Board) Get(pos position.Pos) Cell {
	return b.cells[pos]
}

// Set overwrites the content of pos. pos must be within the board.
func (b *Board) Set(pos position.Pos, c Cell) {
	b.cells[pos] = c
}

// Apply moves whatever stands on from to to, clobbering to and leaving from empty.
func (b *Board) Apply(from, to position.Pos) {
	b.cells[to] = b.cells[from]
	b.cells[from] = CellEmpty
}

// MakeMove resolves mv for side s against the board and applies it. Moves are
// not commutative: each call depends on every move applied before it. On
// failure the board is left untouched and the error wraps ErrNoLegalCandidate.
func (b *Board) MakeMove(mv Move, s Side) error {
	prevEnPassant := b.enPassant
	b.enPassant = position.NoPos

	var err error
	if mv.IsCastle() {
		err = b.castle(NewCastleDirection(s, mv.Kind == MoveKingsideCastle))
	} else {
		err = b.makeNormalMove(mv, s, prevEnPassant)
	}
	if err != nil {
		b.enPassant = prevEnPassant
		return err
	}
	return nil
}

func (b *Board) makeNormalMove(mv Move, s Side, prevEnPassant position.Pos) error {
	if !mv.To.Valid() {
		return fmt.Errorf("%w: %s %s: destination off board", ErrNoLegalCandidate, s, mv)
	}
	for from := position.Pos(0); from < TotalCells; from++ {
		c := b.cells[from]
		if c.IsEmpty() || c.Piece() != mv.Piece || c.Side() != s || !mv.matchesOrigin(from) {
			continue
		}
		// pawns only leave their file when capturing
		if c.Piece() == PiecePawn && mv.IsCapture == (from.File() == mv.To.File()) {
			continue
		}
		effect, ok := CanMove(b, c, from, mv.To)
		if !ok {
			continue
		}
		b.commit(c, from, mv.To, effect, prevEnPassant)
		return nil
	}
	return fmt.Errorf("%w: %s %s", ErrNoLegalCandidate, s, mv)
}

func (b *Board) commit(c Cell, from, to position.Pos, effect Effect, prevEnPassant position.Pos) {
	captured := b.cells[to]

	// update half move clock
	if !captured.IsEmpty() || c.Piece() == PiecePawn {
		b.halfMoveClock = 0
	} else {
		b.halfMoveClock++
	}

	// remove the pawn taken en passant
	if c.Piece() == PiecePawn && to == prevEnPassant && captured.IsEmpty() && from.File() != to.File() {
		b.cells[position.NewPos(from.Rank(), to.File())] = CellEmpty
	}

	// a rook taken on its home square takes its castling right with it
	if captured.Piece() == PieceRook {
		if d := rookHome(captured.Side(), to); d != CastleDirectionUnknown {
			b.castleRights.Clear(maskCastleRights[d])
		}
	}

	b.castleRights.Clear(effect.ClearRights)
	b.enPassant = effect.EnPassant
	b.Apply(from, to)
}

func (b *Board) castle(d CastleDirection) error {
	if d == CastleDirectionUnknown {
		return fmt.Errorf("%w: castling without a side", ErrNoLegalCandidate)
	}
	if !b.castleRights.IsAllowed(d) {
		return fmt.Errorf("%w: %s: right already lost", ErrNoLegalCandidate, d)
	}
	s := d.Side()
	hopsKing := posCastling[d][PieceKing]
	hopsRook := posCastling[d][PieceRook]
	if b.cells[hopsKing[0]] != NewCell(s, PieceKing) || b.cells[hopsRook[0]] != NewCell(s, PieceRook) {
		return fmt.Errorf("%w: %s: king or rook not on its home square", ErrNoLegalCandidate, d)
	}
	if !b.isPathClear(hopsKing[0], hopsRook[0]) {
		return fmt.Errorf("%w: %s: path blocked", ErrNoLegalCandidate, d)
	}

	b.Apply(hopsKing[0], hopsKing[1])
	b.Apply(hopsRook[0], hopsRook[1])
	b.castleRights.Clear(SideCastleRights(s))
	b.halfMoveClock++
	return nil
}

func (b *Board) HalfMoveClock() uint64 {
	return b.halfMoveClock
}

// EnPassant returns the en passant target square, or position.NoPos.
func (b *Board) EnPassant() position.Pos {
	return b.enPassant
}

func (b *Board) CastleRights() CastleRights {
	return b.castleRights
}

// Clone returns a copy of the board sharing no state with b.
func (b *Board) Clone() Board {
	return *b
}

func (b *Board) Dump() string {
	builder := strings.Builder{}
	for y := position.Pos(Height) - 1; y >= 0; y-- {
		_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n")
		_, _ = builder.WriteString(fmt.Sprintf(" %d |", y+1))
		for x := position.Pos(0); x < Width; x++ {
			sym := " "
			if c := b.cells[position.NewPos(y, x)]; !c.IsEmpty() {
				sym = c.String()
			}
			_, _ = builder.WriteString(fmt.Sprintf(" %s |", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n   ")
	for x := position.Pos(0); x < Width; x++ {
		_, _ = builder.WriteString(fmt.Sprintf("  %s ", x.NotationComponentFile()))
	}
	return builder.String()
}

func (b *Board) DebugString() string {
	return fmt.Sprintf("cast: %04b\nhalf: %4d\nenp:  %4s", b.castleRights, b.halfMoveClock, b.enPassant)
}
