package core

import (
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host               string
		Port               int
		JWTExpirationDelta time.Duration
	}

	Config struct {
		Env      string // DEV (local; default), TEST, QA, PROD
		Debug    bool
		TestMode bool
		AppName  string

		SecretKey []byte

		// SessionStorageKey is the single durable-storage key holding the
		// persisted session user.
		SessionStorageKey string
		// DatabasePath is the sqlite file backing the durable key-value store.
		DatabasePath string

		DefaultFromEmail mail.Address
		SendgridApiKey   string
		RollbarToken     string

		Server ServerConfig
	}
)

// NewConfig loads the Config from defaults, an optional `config/.env.<env>`
// file and environment variables prefixed with the current ENV.
func NewConfig() (*Config, error) {
	conf := viper.New()
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("testMode", false)
	conf.SetDefault("appName", "MusicaAulas")
	conf.SetDefault("secretKey", "x0q5-wer)enb$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
	conf.SetDefault("sessionStorageKey", "musicaAulasUser")
	conf.SetDefault("databasePath", "musicaulas.db")
	conf.SetDefault("defaultFromEmail", "noreply@localhost")
	conf.SetDefault("serverHost", "localhost")
	conf.SetDefault("serverPort", 8000)
	conf.SetDefault("jwtExpirationDelta", 7*24*time.Hour)

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}
	conf.AutomaticEnv()

	return &Config{
		Env:               env,
		Debug:             conf.GetBool("debug"),
		TestMode:          conf.GetBool("testMode"),
		AppName:           conf.GetString("appName"),
		SecretKey:         []byte(conf.GetString("secretKey")),
		SessionStorageKey: conf.GetString("sessionStorageKey"),
		DatabasePath:      conf.GetString("databasePath"),
		DefaultFromEmail:  mail.Address{Name: conf.GetString("appName"), Address: conf.GetString("defaultFromEmail")},
		SendgridApiKey:    conf.GetString("sendgridApiKey"),
		RollbarToken:      conf.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:               conf.GetString("serverHost"),
			Port:               conf.GetInt("serverPort"),
			JWTExpirationDelta: conf.GetDuration("jwtExpirationDelta"),
		},
	}, nil
}
