package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/minaorangina/dreidel/engine"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownLogFormat = errors.New("unknown log format")
	ErrNegativeDelay    = errors.New("delays cannot be negative")
)

// Config is read from the environment, after any .env file
type Config struct {
	Port           int    `env:"PORT,default=8000"`
	LogLevel       string `env:"LOG_LEVEL,default=info"`
	LogFormat      string `env:"LOG_FORMAT,default=text"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS,default=*"`

	SpinDuration       time.Duration `env:"SPIN_DURATION,default=2s"`
	SettleDuration     time.Duration `env:"SETTLE_DURATION,default=1.8s"`
	NoMoveDelayDigital time.Duration `env:"NO_MOVE_DELAY_DIGITAL,default=3s"`
	NoMoveDelayManual  time.Duration `env:"NO_MOVE_DELAY_MANUAL,default=2.5s"`
}

func Default() Config {
	t := engine.DefaultTimings()
	return Config{
		Port:               8000,
		LogLevel:           "info",
		LogFormat:          "text",
		AllowedOrigins:     "*",
		SpinDuration:       t.Spin,
		SettleDuration:     t.Settle,
		NoMoveDelayDigital: t.NoMoveDigital,
		NoMoveDelayManual:  t.NoMoveManual,
	}
}

// Load reads envFiles (.env when none are given) into the environment and
// decodes the result. Missing env files are not an error.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading env file: %w", err)
	}

	cfg := Default()
	if err := envdecode.StrictDecode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decoding environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLogFormat, c.LogFormat)
	}
	for _, d := range []time.Duration{c.SpinDuration, c.SettleDuration, c.NoMoveDelayDigital, c.NoMoveDelayManual} {
		if d < 0 {
			return ErrNegativeDelay
		}
	}
	return nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Origins splits ALLOWED_ORIGINS on commas
func (c Config) Origins() []string {
	origins := []string{}
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c Config) Timings() engine.Timings {
	return engine.Timings{
		Spin:          c.SpinDuration,
		Settle:        c.SettleDuration,
		NoMoveDigital: c.NoMoveDelayDigital,
		NoMoveManual:  c.NoMoveDelayManual,
	}
}

// NewLogger builds a logger writing to out at the configured level and
// format.
func (c Config) NewLogger(out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)

	switch strings.ToLower(c.LogFormat) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLogFormat, c.LogFormat)
	}

	return logger, nil
}
