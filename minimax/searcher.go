package minimax

import (
	"io"
	"log"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// Config configures the search.
type Config struct {
	Depth   int    `json:"depth"`   // plies searched from the root, at least 1
	Workers int    `json:"workers"` // root branches searched concurrently, 0 means one per CPU
	Eval    string `json:"eval"`    // "material" or "positional"
}

func DefaultConfig() Config {
	return Config{
		Depth: 3,
		Eval:  "positional",
	}
}

func (c Config) IsValid() bool {
	if c.Depth < 1 || c.Workers < 0 {
		return false
	}
	_, ok := evaluators[strings.ToLower(c.Eval)]
	return ok || c.Eval == ""
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// Searcher picks moves by depth-limited minimax. It holds no per-game state:
// every call works on the position it is given, so one Searcher can serve
// any number of games.
type Searcher struct {
	conf   Config
	eval   Evaluator
	logger *log.Logger
}

// New creates a Searcher. A nil eval selects the evaluator named by
// conf.Eval (positional when empty).
func New(conf Config, eval Evaluator) (*Searcher, error) {
	if !conf.IsValid() {
		return nil, errors.Errorf("invalid search config %+v", conf)
	}
	if eval == nil {
		eval = EvaluatorByName(conf.Eval)
	}
	return &Searcher{
		conf:   conf,
		eval:   eval,
		logger: log.New(io.Discard, "", 0),
	}, nil
}

// Depth returns the number of plies searched from the root. It is fixed
// when the Searcher is created.
func (s *Searcher) Depth() int { return s.conf.Depth }

// Config returns a copy of the configuration the Searcher was created with.
func (s *Searcher) Config() Config { return s.conf }

// SetLogger attaches a logger that receives one line per search.
func (s *Searcher) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	s.logger = l
}

func (s *Searcher) log(format string, args ...interface{}) {
	s.logger.Printf(format, args...)
}
