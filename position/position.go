package position

import (
	"errors"
)

const (
	// MaxComponentScalar is the maximum component scalar the position system supports.
	MaxComponentScalar Pos = 8

	// NoPos marks the absence of a square, e.g. no en passant target.
	NoPos Pos = -1
)

var (
	// ErrInvalidNotation represents an invalid notation error.
	ErrInvalidNotation = errors.New("invalid notation")
)

// Pos is a square index in little-endian rank-file order: a1=0, h1=7, a8=56.
type Pos int8

const (
	A1 Pos = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// NewPos builds a Pos from its zero-based rank and file.
func NewPos(rank, file Pos) Pos {
	return MaxComponentScalar*rank + file
}

func NewPosFromNotation(n string) (Pos, error) {
	if len(n) != 2 {
		return NoPos, ErrInvalidNotation
	}
	file, err := NotationToFile(n[0])
	if err != nil {
		return NoPos, err
	}
	rank, err := NotationToRank(n[1])
	if err != nil {
		return NoPos, err
	}
	return NewPos(rank, file), nil
}

func (p Pos) String() string {
	if !p.Valid() {
		return "-"
	}
	return p.Notation()
}

func (p Pos) Notation() string {
	if !p.Valid() {
		return ""
	}
	return p.File().NotationComponentFile() + p.Rank().NotationComponentRank()
}

func (p Pos) Valid() bool {
	return p >= 0 && p < MaxComponentScalar*MaxComponentScalar
}

// File returns the zero-based file (column) of p.
func (p Pos) File() Pos {
	return p % MaxComponentScalar
}

// Rank returns the zero-based rank (row) of p.
func (p Pos) Rank() Pos {
	return p / MaxComponentScalar
}

// NotationToFile maps 'a'..'h' to 0..7.
func NotationToFile(x byte) (Pos, error) {
	if x < 'a' || x > 'h' {
		return 0, ErrInvalidNotation
	}
	return Pos(x - 'a'), nil
}

// NotationToRank maps '1'..'8' to 0..7.
func NotationToRank(y byte) (Pos, error) {
	if y < '1' || y > '8' {
		return 0, ErrInvalidNotation
	}
	return Pos(y - '1'), nil
}

func (p Pos) NotationComponentFile() string {
	if p < 0 || MaxComponentScalar <= p {
		return ""
	}
	return string(rune('a' + p))
}

func (p Pos) NotationComponentRank() string {
	if p < 0 || MaxComponentScalar <= p {
		return ""
	}
	return string(rune('1' + p))
}
