package notation

import (
	"errors"
	"testing"

	"github.com/daystram/pgneval/board"
	"github.com/daystram/pgneval/position"
)

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		token string
		want  board.Move
	}{
		{token: "e4", want: board.Move{Piece: board.PiecePawn, FromRank: position.NoPos, FromFile: position.NoPos, To: position.E4}},
		{token: "exf4", want: board.Move{Piece: board.PiecePawn, FromRank: position.NoPos, FromFile: 4, To: position.F4, IsCapture: true}},
		{token: "Nf3", want: board.Move{Piece: board.PieceKnight, FromRank: position.NoPos, FromFile: position.NoPos, To: position.F3}},
		{token: "Nxf3", want: board.Move{Piece: board.PieceKnight, FromRank: position.NoPos, FromFile: position.NoPos, To: position.F3, IsCapture: true}},
		{token: "Nbd7", want: board.Move{Piece: board.PieceKnight, FromRank: position.NoPos, FromFile: 1, To: position.D7}},
		{token: "N2f4", want: board.Move{Piece: board.PieceKnight, FromRank: 1, FromFile: position.NoPos, To: position.F4}},
		{token: "Ng6f4", want: board.Move{Piece: board.PieceKnight, FromRank: 5, FromFile: 6, To: position.F4}},
		{token: "Ng6xf4", want: board.Move{Piece: board.PieceKnight, FromRank: 5, FromFile: 6, To: position.F4, IsCapture: true}},
		{token: "Nbxd7", want: board.Move{Piece: board.PieceKnight, FromRank: position.NoPos, FromFile: 1, To: position.D7, IsCapture: true}},
		{token: "R1xa3", want: board.Move{Piece: board.PieceRook, FromRank: 0, FromFile: position.NoPos, To: position.A3, IsCapture: true}},
		{token: "Qh4+", want: board.Move{Piece: board.PieceQueen, FromRank: position.NoPos, FromFile: position.NoPos, To: position.H4}},
		{token: "Bb5#", want: board.Move{Piece: board.PieceBishop, FromRank: position.NoPos, FromFile: position.NoPos, To: position.B5}},
		{token: "Kxe2!?", want: board.Move{Piece: board.PieceKing, FromRank: position.NoPos, FromFile: position.NoPos, To: position.E2, IsCapture: true}},
		{token: "O-O", want: board.NewCastleMove(true)},
		{token: "0-0+", want: board.NewCastleMove(true)},
		{token: "O-O-O", want: board.NewCastleMove(false)},
		{token: "0-0-0", want: board.NewCastleMove(false)},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.token, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.token)
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			if got != tt.want {
				t.Errorf("unexpected move: got=%+v want=%+v", got, tt.want)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()
	tokens := []string{
		"",
		"+",
		"e9",
		"i4",
		"e8=Q",
		"e8Q",
		"Pe4",
		"Xe4",
		"ef4",
		"xe4",
		"Nf",
		"Ng6f4f5",
		"Nxg6f4",
		"O-O-O-O",
		"12.",
	}
	for _, token := range tokens {
		token := token
		t.Run(token, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(token)
			if !errors.Is(err, ErrInvalidNotation) {
				t.Fatalf("unexpected error: got=%v want=%v", err, ErrInvalidNotation)
			}
			var perr *ParseError
			if !errors.As(err, &perr) || perr.Token != token {
				t.Errorf("unexpected parse error: got=%v", err)
			}
		})
	}
}

func TestParseStringRoundtrip(t *testing.T) {
	t.Parallel()
	for _, token := range []string{"e4", "exf4", "Nf3", "Nbd7", "N2f4", "Ng6f4", "Ng6xf4", "R1xa3", "O-O", "O-O-O"} {
		mv, err := Parse(token)
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		if got := mv.String(); got != token {
			t.Errorf("unexpected notation: got=%s want=%s", got, token)
		}
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()
	b, _, err := board.NewBoard()
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	steps := []struct {
		token string
		want  string
	}{
		{token: "e4", want: "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"},
		{token: "c5", want: "rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2"},
		{token: "Nf3", want: "rnbqkbnr/pp1ppppp/8/2p5/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2"},
	}
	for ply, step := range steps {
		if _, err := Resolve(b, step.token, board.SideFromPly(ply)); err != nil {
			t.Fatalf("unexpected error for %s: %v", step.token, err)
		}
		if got := b.FEN(ply + 1); got != step.want {
			t.Errorf("unexpected FEN after %s: got=%s want=%s", step.token, got, step.want)
		}
	}
}

func TestResolveDisambiguation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		token string
		want  string
	}{
		{token: "Ng6f4", want: "4k3/8/8/8/5N2/8/6N1/4K3 b - - 1 1"},
		{token: "N6f4", want: "4k3/8/8/8/5N2/8/6N1/4K3 b - - 1 1"},
		{token: "N2f4", want: "4k3/8/6N1/8/5N2/8/8/4K3 b - - 1 1"},
		{token: "Nf4", want: "4k3/8/6N1/8/5N2/8/8/4K3 b - - 1 1"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.token, func(t *testing.T) {
			t.Parallel()
			b, ply, err := board.NewBoard(board.WithFEN("4k3/8/6N1/8/8/8/6N1/4K3 w - - 0 1"))
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			if _, err := Resolve(b, tt.token, board.SideFromPly(ply)); err != nil {
				t.Fatal("unexpected error:", err)
			}
			if got := b.FEN(ply + 1); got != tt.want {
				t.Errorf("unexpected FEN: got=%s want=%s", got, tt.want)
			}
		})
	}
}

func TestResolveErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		token   string
		wantErr error
	}{
		{token: "e5", wantErr: board.ErrNoLegalCandidate},
		{token: "Nf6", wantErr: board.ErrNoLegalCandidate},
		{token: "O-O", wantErr: board.ErrNoLegalCandidate},
		{token: "e8=Q", wantErr: ErrInvalidNotation},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.token, func(t *testing.T) {
			t.Parallel()
			b, _, err := board.NewBoard()
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			before := b.Clone()
			if _, err := Resolve(b, tt.token, board.SideWhite); !errors.Is(err, tt.wantErr) {
				t.Fatalf("unexpected error: got=%v want=%v", err, tt.wantErr)
			}
			if *b != before {
				t.Error("board changed by a failed resolve")
			}
		})
	}
}
