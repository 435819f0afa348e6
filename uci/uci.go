package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/daystram/pgneval/board"
)

var (
	ErrEngineExited = errors.New("engine exited")
	ErrNoScore      = errors.New("engine reported no score")
	ErrOutOfSync    = errors.New("engine out of sync")
)

// MateScore is the evaluation, in pawns, reported for a forced mate.
const MateScore = 1000.0

var defaultOptions = options{
	logger:      zerolog.Nop(),
	stopTimeout: 2 * time.Second,
}

type options struct {
	logger      zerolog.Logger
	args        []string
	setoptions  [][2]string
	stopTimeout time.Duration
}

type ClientOption func(*options)

func WithLogger(logger zerolog.Logger) ClientOption {
	return func(o *options) {
		o.logger = logger
	}
}

// WithArgs sets the command line arguments passed to the engine by Start.
func WithArgs(args ...string) ClientOption {
	return func(o *options) {
		o.args = args
	}
}

// WithStopTimeout bounds how long an interrupted search may take to report
// its bestmove.
func WithStopTimeout(d time.Duration) ClientOption {
	return func(o *options) {
		o.stopTimeout = d
	}
}

// WithSetOption queues a "setoption" command sent during Handshake.
func WithSetOption(name, value string) ClientOption {
	return func(o *options) {
		o.setoptions = append(o.setoptions, [2]string{name, value})
	}
}

// Client talks to a UCI engine. Calls are serialized, so a Client may be
// shared between goroutines.
type Client struct {
	mu sync.Mutex

	in    io.Writer
	lines chan string
	done  chan struct{}
	once  sync.Once
	cmd   *exec.Cmd

	// set once the engine output can no longer be matched to commands
	broken error

	options options
}

// NewClient returns a client writing commands to w and reading engine output
// from r. If w is also an io.Closer it is closed by Close.
func NewClient(w io.Writer, r io.Reader, opts ...ClientOption) *Client {
	c := &Client{
		in:      w,
		lines:   make(chan string, 64),
		done:    make(chan struct{}),
		options: defaultOptions,
	}
	for _, f := range opts {
		f(&c.options)
	}
	go c.readLoop(r)
	return c
}

// Start spawns the engine binary at path and connects a client to it.
func Start(ctx context.Context, path string, opts ...ClientOption) (*Client, error) {
	o := defaultOptions
	for _, f := range opts {
		f(&o)
	}

	cmd := exec.CommandContext(ctx, path, o.args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", path, err)
	}
	o.logger.Info().Str("path", path).Int("pid", cmd.Process.Pid).Msg("engine started")

	c := NewClient(stdin, stdout, opts...)
	c.cmd = cmd
	return c, nil
}

func (c *Client) readLoop(r io.Reader) {
	defer close(c.lines)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		c.options.logger.Trace().Str("line", line).Msg("recv")
		select {
		case c.lines <- line:
		case <-c.done:
			return
		}
	}
}

func (c *Client) send(cmd string) error {
	c.options.logger.Debug().Str("cmd", cmd).Msg("send")
	if _, err := fmt.Fprintln(c.in, cmd); err != nil {
		return fmt.Errorf("%w: %v", ErrEngineExited, err)
	}
	return nil
}

// receive calls fn on every line until fn returns true.
func (c *Client) receive(ctx context.Context, fn func(line string) bool) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-c.lines:
			if !ok {
				return ErrEngineExited
			}
			if fn(line) {
				return nil
			}
		}
	}
}

func (c *Client) receiveUntil(ctx context.Context, prefix string) error {
	return c.receive(ctx, func(line string) bool {
		return strings.HasPrefix(line, prefix)
	})
}

// Handshake switches the engine to UCI mode, applies the queued options and
// waits until it is ready.
func (c *Client) Handshake(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.broken != nil {
		return c.broken
	}
	if err := c.send("uci"); err != nil {
		return err
	}
	var name string
	if err := c.receive(ctx, func(line string) bool {
		if n, ok := strings.CutPrefix(line, "id name "); ok {
			name = n
		}
		return line == "uciok"
	}); err != nil {
		return fmt.Errorf("uci: %w", err)
	}
	for _, opt := range c.options.setoptions {
		if err := c.send(fmt.Sprintf("setoption name %s value %s", opt[0], opt[1])); err != nil {
			return err
		}
	}
	if err := c.ready(ctx); err != nil {
		return err
	}
	c.options.logger.Info().Str("engine", name).Msg("engine ready")
	return nil
}

func (c *Client) ready(ctx context.Context) error {
	if err := c.send("isready"); err != nil {
		return err
	}
	if err := c.receiveUntil(ctx, "readyok"); err != nil {
		return fmt.Errorf("isready: %w", err)
	}
	return nil
}

// NewGame tells the engine the following positions belong to a new game.
func (c *Client) NewGame(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.broken != nil {
		return c.broken
	}
	if err := c.send("ucinewgame"); err != nil {
		return err
	}
	return c.ready(ctx)
}

// Evaluate searches fen to depth and returns the score in pawns from White's
// point of view. s is the side to move in fen.
func (c *Client) Evaluate(ctx context.Context, fen string, s board.Side, depth int) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.broken != nil {
		return 0, c.broken
	}
	if err := c.send("position fen " + fen); err != nil {
		return 0, err
	}
	if err := c.send(fmt.Sprintf("go depth %d", depth)); err != nil {
		return 0, err
	}

	var score float64
	var found bool
	if err := c.receive(ctx, func(line string) bool {
		if strings.HasPrefix(line, "bestmove") {
			return true
		}
		if v, ok := parseScore(line); ok {
			score, found = v, true
		}
		return false
	}); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			c.stopSearch()
		}
		return 0, fmt.Errorf("go depth %d: %w", depth, err)
	}
	if !found {
		return 0, fmt.Errorf("%w: %s", ErrNoScore, fen)
	}

	// engines score from the side to move
	if s == board.SideBlack {
		score = -score
	}
	c.options.logger.Debug().Str("fen", fen).Float64("score", score).Msg("evaluated")
	return score, nil
}

// stopSearch interrupts the running search and discards its output up to the
// bestmove line. A client whose engine does not answer in time is unusable
// afterwards.
func (c *Client) stopSearch() {
	if err := c.send("stop"); err != nil {
		c.broken = err
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.options.stopTimeout)
	defer cancel()
	if err := c.receiveUntil(ctx, "bestmove"); err != nil {
		c.broken = fmt.Errorf("%w: no bestmove after stop: %v", ErrOutOfSync, err)
		c.options.logger.Error().Err(err).Msg("engine did not stop")
	}
}

// parseScore reads the "score cp <n>" or "score mate <n>" part of an info line.
func parseScore(line string) (float64, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] != "info" {
		return 0, false
	}
	for i := 1; i+2 < len(fields); i++ {
		if fields[i] != "score" {
			continue
		}
		n, err := strconv.Atoi(fields[i+2])
		if err != nil {
			return 0, false
		}
		switch fields[i+1] {
		case "cp":
			return float64(n) / 100, true
		case "mate":
			if n > 0 {
				return MateScore, true
			}
			return -MateScore, true
		}
		return 0, false
	}
	return 0, false
}

// Close asks the engine to quit and releases the client. For engines spawned
// by Start it waits for the process to exit.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.send("quit")
	c.once.Do(func() { close(c.done) })
	if closer, ok := c.in.(io.Closer); ok {
		_ = closer.Close()
	}
	if c.cmd == nil {
		return nil
	}
	if err := c.cmd.Wait(); err != nil {
		return fmt.Errorf("wait engine: %w", err)
	}
	c.options.logger.Info().Msg("engine stopped")
	return nil
}
