package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/daystram/pgneval/analysis"
	"github.com/daystram/pgneval/pgn"
)

// step walks through a game one ply at a time. Commands read from r: empty
// line or "n" for the next ply, "p" for the previous one, a number to jump to
// that ply and "q" to quit.
func step(pg *pgn.Game, r io.Reader, w io.Writer) error {
	g, err := analysis.ReplayGame(pg)
	if g == nil {
		return err
	}
	if err != nil {
		fmt.Fprintf(w, "replay stopped early: %v\n", err)
	}

	reader := bufio.NewReader(r)
	cur := 0
	for {
		snap, _ := g.At(cur)
		header := "start"
		if cur > 0 {
			header = fmt.Sprintf("%d. %s", (snap.Ply+1)/2, snap.Token)
		}
		fmt.Fprintf(w, "\n===== [%d/%d] %s\n", cur, g.Len(), header)
		fmt.Fprintln(w, render(&snap.Board))
		fmt.Fprintln(w, snap.FEN)
		fmt.Fprintln(w, snap.Board.DebugString())

		cmd, err := reader.ReadString('\n')
		if err != nil && cmd == "" {
			if err == io.EOF {
				return nil
			}
			return err
		}
		switch cmd = strings.TrimSpace(cmd); cmd {
		case "", "n":
			if cur < g.Len() {
				cur++
			}
		case "p":
			if cur > 0 {
				cur--
			}
		case "q":
			return nil
		default:
			n, err := strconv.Atoi(cmd)
			if err != nil || n < 0 || n > g.Len() {
				fmt.Fprintf(w, "unknown command %q\n", cmd)
				continue
			}
			cur = n
		}
	}
}
