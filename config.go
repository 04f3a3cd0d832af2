package gymchess

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/gymchess/game"
	"github.com/gymchess/minimax"
)

// ErrInvalidConfig is returned by Validate and New for unusable configurations.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds everything needed to build an Env: who the player is, who it
// plays against, and how steps are rewarded.
type Config struct {
	Name     string         `json:"name"`
	Player   game.Color     `json:"player"`   // colour of the agent calling Step
	Opponent string         `json:"opponent"` // "minimax" or "random" when no Policy is passed to New
	Search   minimax.Config `json:"search"`
	Rewards  Rewards        `json:"rewards"`
	Seed     uint64         `json:"seed"`      // seeds the random opponent
	StartFEN string         `json:"start_fen"` // empty means the standard initial position

	// extensions
	Logger *log.Logger `json:"-"`
}

// Rewards is the reward scheme of the environment. Capture scales the
// material difference captured during a step; zero disables shaping.
type Rewards struct {
	Win     float32 `json:"win"`
	Loss    float32 `json:"loss"`
	Draw    float32 `json:"draw"`
	Capture float32 `json:"capture"`
}

func DefaultRewards() Rewards {
	return Rewards{Win: 1, Loss: -1, Draw: 0}
}

func DefaultConfig() Config {
	return Config{
		Name:     "chess",
		Player:   game.White,
		Opponent: "minimax",
		Search:   minimax.DefaultConfig(),
		Rewards:  DefaultRewards(),
	}
}

// Validate reports every problem with the config at once.
func (c Config) Validate() error {
	var errs error
	if c.Player != game.White && c.Player != game.Black {
		errs = multierror.Append(errs, errors.Errorf("player must be white or black, got %v", c.Player))
	}
	switch strings.ToLower(c.Opponent) {
	case "", "minimax", "random":
	default:
		errs = multierror.Append(errs, errors.Errorf("unknown opponent %q", c.Opponent))
	}
	if !c.Search.IsValid() {
		errs = multierror.Append(errs, errors.Errorf("invalid search config %+v", c.Search))
	}
	if c.StartFEN != "" {
		if _, err := game.ParseFEN(c.StartFEN); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	if errs != nil {
		return errors.Wrap(ErrInvalidConfig, errs.Error())
	}
	return nil
}

// LoadConfig reads a JSON config from path. Fields missing from the file
// keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "open config %s", path)
	}
	defer f.Close()
	return ReadConfig(f)
}

// ReadConfig decodes a JSON config from r on top of DefaultConfig.
func ReadConfig(r io.Reader) (Config, error) {
	conf := DefaultConfig()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&conf); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := conf.Validate(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

func (c Config) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.New(io.Discard, "", 0)
}

func (c Config) startPosition() (*game.Position, error) {
	if c.StartFEN == "" {
		return game.NewPosition(), nil
	}
	return game.ParseFEN(c.StartFEN)
}
