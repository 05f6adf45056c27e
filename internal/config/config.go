package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the environment-backed configuration. Values come from the
// environment, optionally seeded from a .env file in the working directory.
type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Verbose   bool   `env:"APP_VERBOSE" env-default:"false"`
		SentryDSN string `env:"SENTRY_DSN"`
		Locale    string `env:"APP_LOCALE" env-default:"en"`
	}
	HTTP struct {
		Timeout    time.Duration `env:"HTTP_TIMEOUT" env-default:"30s"`
		MaxRetries uint64        `env:"HTTP_MAX_RETRIES" env-default:"4"`
		UserAgent  string        `env:"HTTP_USER_AGENT" env-default:"post2embed/1.0"`
	}
	Image struct {
		Quality  int `env:"IMAGE_QUALITY" env-default:"60"`
		MaxWidth int `env:"IMAGE_MAX_WIDTH" env-default:"550"`
	}
	Screenshot struct {
		ChromePath string        `env:"CHROME_PATH"`
		Wait       time.Duration `env:"SCREENSHOT_WAIT" env-default:"3s"`
	}
}

func New() (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(".env"); err == nil {
		if err := cleanenv.ReadConfig(".env", cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Options are the per-invocation switches parsed from the command line.
// They ride through fx alongside Config so any component can see them.
type Options struct {
	References []string // post IDs or URLs, in argument order
	Outputs    []string // any of "html", "img", "json"
	ShowThread bool
	ShowCSS    bool
	Pretty     bool
	SchemaOrg  bool
	SaveDir    string
	Clipboard  bool
	Archive    bool
}

// WantsOutput reports whether the given output format was requested.
func (o Options) WantsOutput(format string) bool {
	for _, f := range o.Outputs {
		if f == format {
			return true
		}
	}
	return false
}
