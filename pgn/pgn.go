package pgn

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	ErrEmptyMovetext = errors.New("empty movetext")
	ErrInvalidTag    = errors.New("invalid tag pair")
)

const (
	ResultWhiteWins = "1-0"
	ResultBlackWins = "0-1"
	ResultDraw      = "1/2-1/2"
	ResultUnknown   = "*"

	unknownPlayer = "NN"
)

// Game is one game of an archive: its tag pairs, its mainline move tokens in
// order and its result.
type Game struct {
	Tags   map[string]string `json:"tags"`
	Moves  []string          `json:"moves"`
	Result string            `json:"result"`
}

// Players returns the White and Black tags, "NN" when absent.
func (g *Game) Players() (white, black string) {
	white, black = unknownPlayer, unknownPlayer
	if v, ok := g.Tags["White"]; ok && v != "" {
		white = v
	}
	if v, ok := g.Tags["Black"]; ok && v != "" {
		black = v
	}
	return white, black
}

func (g *Game) String() string {
	white, black := g.Players()
	return fmt.Sprintf("%s - %s %s (%d plies)", white, black, g.Result, len(g.Moves))
}

// Parse splits an archive into games. Tag sections and movetext are separated
// by blank lines; a tag line following movetext also starts a new game.
func Parse(r io.Reader) ([]Game, error) {
	var (
		games    []Game
		tags     = make(map[string]string)
		movetext strings.Builder
		inMoves  bool
	)
	flush := func() error {
		if len(tags) == 0 && movetext.Len() == 0 {
			return nil
		}
		moves, result, err := ParseMovetext(movetext.String())
		if err != nil {
			return fmt.Errorf("game %d: %w", len(games)+1, err)
		}
		if result == "" {
			result = tags["Result"]
		}
		if result == "" {
			result = ResultUnknown
		}
		games = append(games, Game{Tags: tags, Moves: moves, Result: result})
		tags = make(map[string]string)
		movetext.Reset()
		inMoves = false
		return nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "%"):
			// escaped line
		case strings.HasPrefix(line, "["):
			if inMoves {
				if err := flush(); err != nil {
					return nil, err
				}
			}
			key, value, err := parseTag(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			tags[key] = value
		case line == "":
			if inMoves {
				if err := flush(); err != nil {
					return nil, err
				}
			}
		default:
			inMoves = true
			if i := strings.IndexByte(line, ';'); i != -1 {
				line = line[:i]
			}
			_, _ = movetext.WriteString(line)
			_, _ = movetext.WriteRune(' ')
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	// a trailing tag section without movetext is a truncated game, dropped
	if inMoves {
		if err := flush(); err != nil {
			return nil, err
		}
	}
	if len(games) == 0 {
		return nil, ErrEmptyMovetext
	}
	return games, nil
}

func parseTag(line string) (string, string, error) {
	inner := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(line, "["), "]"))
	key, raw, ok := strings.Cut(inner, " ")
	if !ok || key == "" {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidTag, line)
	}
	raw = strings.TrimSpace(raw)
	value, err := strconv.Unquote(raw)
	if err != nil {
		value = strings.Trim(raw, `"`)
	}
	return key, value, nil
}

// ParseMovetext extracts the mainline move tokens and the trailing result from
// movetext. Comments, variations, NAGs and move numbers are dropped.
func ParseMovetext(text string) ([]string, string, error) {
	builder := strings.Builder{}
	var inComment bool
	var depth int
	for _, c := range text {
		switch {
		case inComment:
			if c == '}' {
				inComment = false
				_, _ = builder.WriteRune(' ')
			}
		case c == '{':
			inComment = true
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
			_, _ = builder.WriteRune(' ')
		case depth > 0:
		default:
			_, _ = builder.WriteRune(c)
		}
	}

	var moves []string
	var result string
	for _, tok := range strings.Fields(builder.String()) {
		switch {
		case isResult(tok):
			result = tok
			continue
		case strings.HasPrefix(tok, "$"):
			continue
		case strings.HasPrefix(tok, "0-0"):
		case tok[0] >= '0' && tok[0] <= '9':
			// move number, possibly glued to the move
			tok = strings.TrimLeft(strings.TrimLeft(tok, "0123456789"), ".")
			if tok == "" {
				continue
			}
		}
		moves = append(moves, tok)
	}
	if len(moves) == 0 && result == "" {
		return nil, "", ErrEmptyMovetext
	}
	return moves, result, nil
}

func isResult(tok string) bool {
	switch tok {
	case ResultWhiteWins, ResultBlackWins, ResultDraw, ResultUnknown:
		return true
	default:
		return false
	}
}
