package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
)

const EnvPrefix = "MINES"

type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type Game struct {
	Size      int    `mapstructure:"size"`
	MineCount int    `mapstructure:"mine_count"`
	CellSize  int    `mapstructure:"cell_size"`
	Gap       int    `mapstructure:"gap"`
	Seed      uint64 `mapstructure:"seed"`
	// MaxSize caps the grid side a client may ask for.
	MaxSize int `mapstructure:"max_size"`
}

type Config struct {
	Mode string `mapstructure:"mode"`
	Addr string `mapstructure:"addr"`
	// SessionTTL is how long an untouched game session is kept in memory.
	SessionTTL time.Duration `mapstructure:"session_ttl"`
	Log        Log           `mapstructure:"log"`
	Game       Game          `mapstructure:"game"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "production")
	v.SetDefault("addr", ":8080")
	v.SetDefault("session_ttl", time.Hour)
	v.SetDefault("log.level", "")
	v.SetDefault("log.file", "")
	v.SetDefault("game.size", 30)
	v.SetDefault("game.mine_count", 50)
	v.SetDefault("game.cell_size", mines.DefaultCellSize)
	v.SetDefault("game.gap", mines.DefaultGap)
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.max_size", 64)
}

func flagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP("config", "c", "", "config file path")
	fs.String("mode", "production", `"production" or "development"`)
	fs.String("addr", ":8080", "listen address")
	fs.Int("size", 30, "grid side in cells")
	fs.Int("mines", 50, "number of mines")
	fs.Uint64("seed", 0, "mine layout seed, 0 for random")
	fs.String("log-file", "", "rotated log file")
	return fs
}

// Load reads configuration from defaults, an optional config file,
// MINES_* environment variables and command line flags, later sources
// overriding earlier ones.
func Load(name string, args []string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	fs := flagSet(name)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	binds := map[string]string{
		"mode":            "mode",
		"addr":            "addr",
		"game.size":       "size",
		"game.mine_count": "mines",
		"game.seed":       "seed",
		"log.file":        "log-file",
	}
	for key, flag := range binds {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("unable to bind flag %s: %w", flag, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", c.SessionTTL)
	}
	if c.Game.MaxSize <= 0 || c.Game.MaxSize > mines.MaxSize {
		return fmt.Errorf(
			"%w: max size must be in [1, %d], got %d",
			mines.ErrInvalidConfig, mines.MaxSize, c.Game.MaxSize,
		)
	}
	if err := c.Game.CheckParams(c.Game.Params()); err != nil {
		return err
	}
	_, err := mines.NewLayout(c.Game.CellSize, c.Game.Gap)
	return err
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

func (c Config) Fields() logrus.Fields {
	return logrus.Fields{
		"mode":            c.Mode,
		"addr":            c.Addr,
		"log_level":       c.Log.Level,
		"log_file":        c.Log.File,
		"game_size":       c.Game.Size,
		"game_mine_count": c.Game.MineCount,
		"game_cell_size":  c.Game.CellSize,
		"game_gap":        c.Game.Gap,
		"game_seed":       c.Game.Seed,
		"game_max_size":   c.Game.MaxSize,
		"session_ttl":     c.SessionTTL.String(),
	}
}

func (g Game) Params() mines.Params {
	return mines.Params{Size: g.Size, MineCount: g.MineCount}
}

// CheckParams validates p and holds it to the configured MaxSize.
func (g Game) CheckParams(p mines.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Size > g.MaxSize {
		return fmt.Errorf("%w: grid size %d exceeds limit %d", mines.ErrInvalidConfig, p.Size, g.MaxSize)
	}
	return nil
}

func (g Game) Layout() mines.Layout {
	return mines.Layout{CellSize: g.CellSize, Gap: g.Gap}
}

func (g Game) Session() session.Config {
	return session.Config{Params: g.Params(), Layout: g.Layout()}
}
