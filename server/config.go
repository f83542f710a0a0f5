package server

import (
	"crypto/rand"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/chomsky/server/dao"
	"github.com/dekarrin/chomsky/server/dao/inmem"
	"github.com/dekarrin/chomsky/server/dao/sqlite"
)

const (
	DefaultListen      = "localhost:8080"
	DefaultUnauthDelay = time.Second
	DefaultMaxTokens   = 64
	DefaultTableWidth  = 120

	MinSecretSize = 32
	MaxSecretSize = 64
)

// Config configures a ParseServer. Every field has a default, so the zero
// value is a development server on DefaultListen with an in-memory store.
//
// A Config can be read from a TOML file with LoadConfig:
//
//	listen = ":8080"
//	database = "sqlite:/var/lib/chomskyd"
//	token_secret = "..."
//
//	[parse]
//	parallel = true
//	max_tokens = 40
type Config struct {
	// Listen is the address to listen on, as "HOST:PORT" or ":PORT".
	Listen string `toml:"listen"`

	// Database is "inmem" or "sqlite:DIR". Empty means "inmem".
	Database string `toml:"database"`

	// TokenSecret signs bearer tokens. A secret shorter than MinSecretSize
	// bytes is repeated until it is long enough; one longer than
	// MaxSecretSize is refused. Empty means a random secret, and every token
	// then becomes invalid when the server stops.
	TokenSecret string `toml:"token_secret"`

	// UnauthDelayMillis is how long to wait before sending an HTTP-401,
	// HTTP-403, or HTTP-500. Zero means DefaultUnauthDelay and a negative
	// value turns the delay off.
	UnauthDelayMillis int `toml:"unauth_delay_ms"`

	Parse ParseConfig `toml:"parse"`
}

// ParseConfig holds the settings for running the CYK parser.
type ParseConfig struct {
	// Parallel fills each span length of the CYK table concurrently.
	Parallel bool `toml:"parallel"`

	// MaxTokens is the most words a sentence may have. Zero means
	// DefaultMaxTokens and a negative value removes the limit.
	MaxTokens int `toml:"max_tokens"`

	// TableWidth is the width CYK tables are rendered at. Zero means
	// DefaultTableWidth.
	TableWidth int `toml:"table_width"`
}

// LoadConfig reads a Config from the TOML file at path. A key that Config
// does not have is an error.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i := range undecoded {
			keys[i] = undecoded[i].String()
		}
		return Config{}, fmt.Errorf("%s: unknown key(s): %s", path, strings.Join(keys, ", "))
	}

	return cfg, nil
}

// settings is a Config with its defaults applied and its values checked.
type settings struct {
	listen      string
	db          database
	secret      []byte
	unauthDelay time.Duration
	parse       ParseConfig
}

func (cfg Config) resolve() (settings, error) {
	s := settings{
		listen: cfg.Listen,
		parse:  cfg.Parse,
	}

	if s.listen == "" {
		s.listen = DefaultListen
	}
	if err := checkListen(s.listen); err != nil {
		return settings{}, fmt.Errorf("listen: %w", err)
	}

	var err error
	if s.db, err = parseDatabase(cfg.Database); err != nil {
		return settings{}, fmt.Errorf("database: %w", err)
	}
	if s.secret, err = stretchSecret([]byte(cfg.TokenSecret)); err != nil {
		return settings{}, fmt.Errorf("token_secret: %w", err)
	}

	switch {
	case cfg.UnauthDelayMillis < 0:
		s.unauthDelay = 0
	case cfg.UnauthDelayMillis == 0:
		s.unauthDelay = DefaultUnauthDelay
	default:
		s.unauthDelay = time.Duration(cfg.UnauthDelayMillis) * time.Millisecond
	}

	if s.parse.MaxTokens == 0 {
		s.parse.MaxTokens = DefaultMaxTokens
	}
	switch {
	case s.parse.TableWidth == 0:
		s.parse.TableWidth = DefaultTableWidth
	case s.parse.TableWidth < 0:
		return settings{}, fmt.Errorf("parse.table_width: must be positive, got %d", s.parse.TableWidth)
	}

	return s, nil
}

func checkListen(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("%q is not in HOST:PORT or :PORT format", addr)
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("%q is not a valid port number", port)
	}
	return nil
}

// stretchSecret repeats secret until it has at least MinSecretSize bytes. An
// empty secret is replaced with MaxSecretSize random bytes.
func stretchSecret(secret []byte) ([]byte, error) {
	if len(secret) == 0 {
		gen := make([]byte, MaxSecretSize)
		if _, err := rand.Read(gen); err != nil {
			return nil, fmt.Errorf("generate: %w", err)
		}
		log.Printf("WARN  Using generated token secret; all tokens issued will become invalid at shutdown")
		return gen, nil
	}

	if len(secret) > MaxSecretSize {
		return nil, fmt.Errorf("secret is %d bytes but must be at most %d", len(secret), MaxSecretSize)
	}

	out := append([]byte(nil), secret...)
	for len(out) < MinSecretSize {
		out = append(out, secret...)
	}
	if len(out) > MaxSecretSize {
		out = out[:MaxSecretSize]
	}
	return out, nil
}

// database is a parsed connection string.
type database struct {
	engine string
	dir    string
}

// parseDatabase parses "inmem" or "sqlite:DIR". The empty string is "inmem".
func parseDatabase(conn string) (database, error) {
	engine, param, _ := strings.Cut(conn, ":")
	engine = strings.ToLower(strings.TrimSpace(engine))
	param = strings.TrimSpace(param)

	switch engine {
	case "", "inmem":
		if param != "" {
			return database{}, fmt.Errorf("inmem takes no parameters, got %q", param)
		}
		return database{engine: "inmem"}, nil
	case "sqlite":
		if param == "" {
			return database{}, fmt.Errorf("sqlite needs a data directory, as in sqlite:DIR")
		}
		return database{engine: "sqlite", dir: param}, nil
	default:
		return database{}, fmt.Errorf("engine must be inmem or sqlite, got %q", engine)
	}
}

func (db database) open() (dao.Store, error) {
	if db.engine == "inmem" {
		return inmem.NewDatastore(), nil
	}

	if err := os.MkdirAll(db.dir, 0770); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	st, err := sqlite.NewDatastore(db.dir)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return st, nil
}
