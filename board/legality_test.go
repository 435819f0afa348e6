package board

import (
	"testing"

	"github.com/daystram/pgneval/position"
)

func emptyBoard() *Board {
	return &Board{enPassant: position.NoPos}
}

func TestCanMove(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		cell     Cell
		from, to position.Pos
		want     bool
	}{
		{name: "king step", cell: NewCell(SideWhite, PieceKing), from: position.E4, to: position.F5, want: true},
		{name: "king two squares", cell: NewCell(SideWhite, PieceKing), from: position.E4, to: position.E6, want: false},
		{name: "knight jump", cell: NewCell(SideBlack, PieceKnight), from: position.G6, to: position.F4, want: true},
		{name: "knight straight", cell: NewCell(SideBlack, PieceKnight), from: position.G6, to: position.G4, want: false},
		{name: "rook file", cell: NewCell(SideWhite, PieceRook), from: position.A1, to: position.A8, want: true},
		{name: "rook diagonal", cell: NewCell(SideWhite, PieceRook), from: position.A1, to: position.B2, want: false},
		{name: "bishop diagonal", cell: NewCell(SideWhite, PieceBishop), from: position.C1, to: position.H6, want: true},
		{name: "bishop lateral", cell: NewCell(SideWhite, PieceBishop), from: position.C1, to: position.C4, want: false},
		{name: "queen lateral", cell: NewCell(SideBlack, PieceQueen), from: position.D8, to: position.D1, want: true},
		{name: "queen diagonal", cell: NewCell(SideBlack, PieceQueen), from: position.D8, to: position.H4, want: true},
		{name: "queen knight shape", cell: NewCell(SideBlack, PieceQueen), from: position.D8, to: position.E6, want: false},
		{name: "white pawn single", cell: NewCell(SideWhite, PiecePawn), from: position.E2, to: position.E3, want: true},
		{name: "white pawn double", cell: NewCell(SideWhite, PiecePawn), from: position.E2, to: position.E4, want: true},
		{name: "white pawn double off start", cell: NewCell(SideWhite, PiecePawn), from: position.E3, to: position.E5, want: false},
		{name: "white pawn backward", cell: NewCell(SideWhite, PiecePawn), from: position.E3, to: position.E2, want: false},
		{name: "white pawn diagonal", cell: NewCell(SideWhite, PiecePawn), from: position.E4, to: position.D5, want: true},
		{name: "black pawn single", cell: NewCell(SideBlack, PiecePawn), from: position.C7, to: position.C6, want: true},
		{name: "black pawn double", cell: NewCell(SideBlack, PiecePawn), from: position.C7, to: position.C5, want: true},
		{name: "black pawn wrong direction", cell: NewCell(SideBlack, PiecePawn), from: position.C6, to: position.C7, want: false},
		{name: "same square", cell: NewCell(SideWhite, PieceQueen), from: position.D4, to: position.D4, want: false},
		{name: "empty cell", cell: CellEmpty, from: position.D4, to: position.D5, want: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := emptyBoard()
			b.Set(tt.from, tt.cell)
			if _, got := CanMove(b, tt.cell, tt.from, tt.to); got != tt.want {
				t.Errorf("unexpected result: got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestCanMoveOwnPieceDestination(t *testing.T) {
	t.Parallel()
	b := emptyBoard()
	for _, p := range Pieces {
		c := NewCell(SideWhite, p)
		b.Set(position.D4, c)
		b.Set(position.D5, NewCell(SideWhite, PieceKnight))
		if _, ok := CanMove(b, c, position.D4, position.D5); ok {
			t.Errorf("%s captured its own piece", p)
		}
	}
}

func TestCanMoveRookPathBlocking(t *testing.T) {
	t.Parallel()
	routes := []struct {
		from, to position.Pos
		between  []position.Pos
	}{
		{from: position.A1, to: position.A8, between: []position.Pos{position.A2, position.A3, position.A4, position.A5, position.A6, position.A7}},
		{from: position.H8, to: position.A8, between: []position.Pos{position.G8, position.F8, position.E8, position.D8, position.C8, position.B8}},
	}
	rook := NewCell(SideWhite, PieceRook)
	for _, r := range routes {
		// every occupancy configuration of the squares in between
		for mask := 0; mask < 1<<len(r.between); mask++ {
			b := emptyBoard()
			b.Set(r.from, rook)
			for i, pos := range r.between {
				if mask&(1<<i) != 0 {
					b.Set(pos, NewCell(SideBlack, PiecePawn))
				}
			}
			want := mask == 0
			if _, got := CanMove(b, rook, r.from, r.to); got != want {
				t.Errorf("unexpected result %s->%s with blockers %06b: got=%v want=%v", r.from, r.to, mask, got, want)
			}
		}
	}
}

func TestCanMoveEffects(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name          string
		cell          Cell
		from, to      position.Pos
		wantRights    CastleRights
		wantEnPassant position.Pos
	}{
		{
			name: "king clears both rights", cell: NewCell(SideBlack, PieceKing), from: position.E8, to: position.E7,
			wantRights: NewCastleRights(CastleDirectionBlackRight, CastleDirectionBlackLeft), wantEnPassant: position.NoPos,
		},
		{
			name: "rook from a1", cell: NewCell(SideWhite, PieceRook), from: position.A1, to: position.A4,
			wantRights: NewCastleRights(CastleDirectionWhiteLeft), wantEnPassant: position.NoPos,
		},
		{
			name: "rook from h8", cell: NewCell(SideBlack, PieceRook), from: position.H8, to: position.H5,
			wantRights: NewCastleRights(CastleDirectionBlackRight), wantEnPassant: position.NoPos,
		},
		{
			name: "rook off home square", cell: NewCell(SideWhite, PieceRook), from: position.D1, to: position.D4,
			wantRights: CastleRightsNone, wantEnPassant: position.NoPos,
		},
		{
			name: "queen from rook home square", cell: NewCell(SideWhite, PieceQueen), from: position.A1, to: position.A4,
			wantRights: CastleRightsNone, wantEnPassant: position.NoPos,
		},
		{
			name: "pawn double step", cell: NewCell(SideBlack, PiecePawn), from: position.F7, to: position.F5,
			wantRights: CastleRightsNone, wantEnPassant: position.F6,
		},
		{
			name: "pawn single step", cell: NewCell(SideWhite, PiecePawn), from: position.F2, to: position.F3,
			wantRights: CastleRightsNone, wantEnPassant: position.NoPos,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := emptyBoard()
			b.Set(tt.from, tt.cell)
			before := b.Clone()
			effect, ok := CanMove(b, tt.cell, tt.from, tt.to)
			if !ok {
				t.Fatal("move rejected")
			}
			if effect.ClearRights != tt.wantRights {
				t.Errorf("unexpected rights: got=%s want=%s", effect.ClearRights, tt.wantRights)
			}
			if effect.EnPassant != tt.wantEnPassant {
				t.Errorf("unexpected en passant: got=%s want=%s", effect.EnPassant, tt.wantEnPassant)
			}
			if *b != before {
				t.Error("board changed by CanMove")
			}
		})
	}
}

func TestCanMovePawnDoubleStepBlocked(t *testing.T) {
	t.Parallel()
	for _, blocker := range []Cell{NewCell(SideWhite, PieceKnight), NewCell(SideBlack, PieceBishop)} {
		b := emptyBoard()
		pawn := NewCell(SideWhite, PiecePawn)
		b.Set(position.E2, pawn)
		b.Set(position.E3, blocker)
		if effect, ok := CanMove(b, pawn, position.E2, position.E4); ok {
			t.Errorf("unexpected double step over %s: got=%+v", blocker, effect)
		}
	}
}
