package position

import (
	"errors"
	"testing"
)

func TestNewPosFromNotation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		notation string
		want     Pos
		wantErr  error
	}{
		{notation: "e4", want: E4},
		{notation: "h8", want: Pos(63)},
		{notation: "a1", want: Pos(0)},
		{notation: "c6", want: NewPos(5, 2)},
		{notation: "", wantErr: ErrInvalidNotation},
		{notation: "a", wantErr: ErrInvalidNotation},
		{notation: "4", wantErr: ErrInvalidNotation},
		{notation: "m4", wantErr: ErrInvalidNotation},
		{notation: "e9", wantErr: ErrInvalidNotation},
		{notation: "e0", wantErr: ErrInvalidNotation},
		{notation: "E4", wantErr: ErrInvalidNotation},
		{notation: "e44", wantErr: ErrInvalidNotation},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.notation, func(t *testing.T) {
			t.Parallel()
			got, err := NewPosFromNotation(tt.notation)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("unexpected error: got=%v want=%v", err, tt.wantErr)
			}
			if tt.wantErr == nil && got != tt.want {
				t.Errorf("unexpected result: got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestNotationComponents(t *testing.T) {
	t.Parallel()
	for i, c := range "abcdefgh" {
		file, err := NotationToFile(byte(c))
		if err != nil || file != Pos(i) {
			t.Errorf("unexpected file for %c: got=%v,%v want=%d", c, file, err, i)
		}
		if got := file.NotationComponentFile(); got != string(c) {
			t.Errorf("unexpected file notation: got=%s want=%c", got, c)
		}
	}
	for i, c := range "12345678" {
		rank, err := NotationToRank(byte(c))
		if err != nil || rank != Pos(i) {
			t.Errorf("unexpected rank for %c: got=%v,%v want=%d", c, rank, err, i)
		}
		if got := rank.NotationComponentRank(); got != string(c) {
			t.Errorf("unexpected rank notation: got=%s want=%c", got, c)
		}
	}
	if _, err := NotationToFile('i'); !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrInvalidNotation)
	}
	if _, err := NotationToRank('9'); !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrInvalidNotation)
	}
}

func TestPosRankFileRoundtrip(t *testing.T) {
	t.Parallel()
	for rank := Pos(0); rank < MaxComponentScalar; rank++ {
		for file := Pos(0); file < MaxComponentScalar; file++ {
			p := NewPos(rank, file)
			if p.Rank() != rank || p.File() != file {
				t.Errorf("unexpected components for %s: got=(%d,%d) want=(%d,%d)", p, p.Rank(), p.File(), rank, file)
			}
			back, err := NewPosFromNotation(p.Notation())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if back != p {
				t.Errorf("unexpected roundtrip: got=%v want=%v", back, p)
			}
		}
	}
}

func TestNoPos(t *testing.T) {
	t.Parallel()
	if NoPos.Valid() {
		t.Error("NoPos must not be valid")
	}
	if got := NoPos.String(); got != "-" {
		t.Errorf("unexpected string: got=%s want=-", got)
	}
}
