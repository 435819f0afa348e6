package board

import "testing"

func TestFEN(t *testing.T) {
	t.Parallel()
	tests := []struct {
		fen     string
		wantPly int
		wantErr bool
	}{
		{fen: DefaultStartingPositionFEN, wantPly: 0, wantErr: false},
		{fen: "r3k2r/1bppqppp/p1n2n2/2b1p3/B3P3/2NP1N2/1PP2PPP/R1BQ1RK1 b kq - 2 10", wantPly: 19, wantErr: false},
		{fen: "r4rk1/1bpp1ppp/p2q4/2bPp3/8/1BPP1Q2/1P3PPP/R1B2RK1 b - - 2 15", wantPly: 29, wantErr: false},
		{fen: "8/5kBp/3p3P/5pb1/8/5P2/4R2K/3r4 b - - 8 52", wantPly: 103, wantErr: false},
		{fen: "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2", wantPly: 2, wantErr: false},
		{fen: "r4rk1/5ppp/p2p4/1bb1p3/BP6/2PP4/5PPP/R1B1R1K1 b - b3 0 20", wantPly: 39, wantErr: false},
		{fen: "8/7R/5B2/5P1k/p6p/P6P/6P1/7K b - - 2 58", wantPly: 115, wantErr: false},
		{fen: "r7/p4k2/4p2p/2B4N/4Pn2/2P2P2/PP2r1qP/R5K1 w - - 6 39", wantPly: 76, wantErr: false},
		{fen: "R4k1r/1pNQ3p/4ppp1/8/3Pb1q1/5N2/5PPP/4KB1R b K - 5 22", wantPly: 43, wantErr: false},
		{fen: "1n2k2r/4pp1p/6p1/8/3b3P/8/5q2/r1K5 w k - 2 31", wantPly: 60, wantErr: false},
		{fen: "1rb1B2Q/pp3k2/3Q4/3p3p/1P6/8/P1P2PPP/R1B1K2R b KQ - 1 22", wantPly: 43, wantErr: false},
		{fen: "3k2Q1/7R/6K1/5P2/1pP5/1P6/8/8 b - - 36 77", wantPly: 153, wantErr: false},
		{fen: "", wantErr: true},
		{fen: "invalid fen", wantErr: true},
		{fen: "8/3Rn3/5Q2/p5kp/2B1P3/2P3bP/PP3R2/7K badside - - 1 38", wantErr: true},
		{fen: "8/3Rn3/5Q2/p5kp/2B1P3/2P3bP/PP3R2/7K b badcastlingrights - 1 38", wantErr: true},
		{fen: "8/3Rn3/5Q2/p5kp/2B1P3/2P3bP/PP3R2/7K b - - -100 -100", wantErr: true},
		{fen: "8/3Rn3/badboard/p5kp/2B1P3/2P3bP/PP3R2/7K b - - 1 38", wantErr: true},
		{fen: "8/3Rn3/5Q2/p5kp/2B1P3/2P3bP/PP3R2/7K b - e4 1 38", wantErr: true},
		{fen: "7k/8/8/8/8/8/8/7K w - - 1 0", wantErr: true},
		{fen: "7k/8/8/8/8/1/8/7K w - - 1 1", wantErr: true},
		{fen: "7k/8/8/8/8//8/7K w - - 1 1", wantErr: true},
		{fen: "7k/8/8/8/8/8/7K w - - 1 1", wantErr: true},
		{fen: "7k/8/8/8/8/8/8/7K9 w - - 1 1", wantErr: true},
		{fen: "7k/8/8/8/8/8/8/7K w - - 1 1 extrasegment", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.fen, func(t *testing.T) {
			t.Parallel()

			b, ply, err := NewBoard(WithFEN(tt.fen))
			if tt.wantErr {
				if err == nil {
					t.Error("error expected: got=nil")
				}
				return
			}
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			if ply != tt.wantPly {
				t.Errorf("unexpected ply: got=%d want=%d", ply, tt.wantPly)
			}
			if gotFEN := b.FEN(ply); gotFEN != tt.fen {
				t.Errorf("unexpected FEN: got=%s want=%s", gotFEN, tt.fen)
			}
		})
	}
}

func TestFENStartingPosition(t *testing.T) {
	t.Parallel()
	b, ply, err := NewBoard()
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	want := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	if got := MarshalFEN(b, ply); got != want {
		t.Errorf("unexpected FEN: got=%s want=%s", got, want)
	}
}

func TestFENNoCastlingRights(t *testing.T) {
	t.Parallel()
	b, _, err := NewBoard()
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	b.castleRights.Clear(CastleRightsAll)
	want := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b - - 0 4"
	if got := b.FEN(7); got != want {
		t.Errorf("unexpected FEN: got=%s want=%s", got, want)
	}
}
