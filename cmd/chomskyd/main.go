/*
Chomskyd starts a chomsky parse server and begins listening for new
connections.

Usage:

	chomskyd [flags]

Settings are read from a TOML file given with --config, then from environment
variables, then from flags; each overrides the one before it. Unset values get
the defaults documented on server.Config.

On its first start against a store, the server creates the account "admin".
Its password is taken from the CHOMSKY_ADMIN_PASSWORD environment variable; if
that is not set, a random one is generated and written to the log.

The flags are:

	-v, --version
		Give the current version of the parse server and then exit.

	-c, --config FILE
		Read settings from the given TOML file.

	-l, --listen ADDRESS
		Listen on the given address, in HOST:PORT or :PORT format. Env var
		CHOMSKY_LISTEN_ADDRESS.

	-s, --secret TOKEN_SECRET
		Sign tokens with the given secret. It is repeated up to 32 bytes and
		may be at most 64. If none is given, a random secret is used and all
		tokens become invalid at shutdown. Env var CHOMSKY_TOKEN_SECRET.

	--db DRIVER[:PARAMS]
		Use the given store: "inmem", or "sqlite:DIR" to keep data in DIR.
		Env var CHOMSKY_DATABASE.

	-p, --parallel
		Fill each span length of the CYK table concurrently when parsing.

	--max-tokens N
		Refuse sentences of more than N words. Negative means no limit.
*/
package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dekarrin/chomsky/internal/version"
	"github.com/dekarrin/chomsky/server"
	"github.com/dekarrin/chomsky/server/dao"
	"github.com/dekarrin/chomsky/server/serr"
	"github.com/spf13/pflag"
)

const (
	EnvListen        = "CHOMSKY_LISTEN_ADDRESS"
	EnvSecret        = "CHOMSKY_TOKEN_SECRET"
	EnvDB            = "CHOMSKY_DATABASE"
	EnvAdminPassword = "CHOMSKY_ADMIN_PASSWORD"
)

const adminUsername = "admin"

var (
	flagVersion   = pflag.BoolP("version", "v", false, "Give the current version of the parse server and then exit.")
	flagConfig    = pflag.StringP("config", "c", "", "Read settings from the given TOML file.")
	flagListen    = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagSecret    = pflag.StringP("secret", "s", "", "Use the given secret for token generation.")
	flagDB        = pflag.String("db", "", "Use the given DB connection string.")
	flagParallel  = pflag.BoolP("parallel", "p", false, "Fill each span length of the CYK table concurrently.")
	flagMaxTokens = pflag.Int("max-tokens", 0, "Refuse sentences of more than this many words.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s (chomsky v%s)\n", version.ServerCurrent, version.Current)
		return
	}
	if pflag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\nDo -h for help.\n", err)
		os.Exit(1)
	}

	ps, err := server.New(cfg)
	if err != nil {
		log.Fatalf("FATAL could not start server: %v", err)
	}
	defer ps.Close()
	log.Printf("DEBUG Server initialized")

	if err := seedAdmin(ps); err != nil {
		log.Printf("ERROR could not create initial admin user: %v", err)
		os.Exit(2)
	}

	log.Printf("INFO  Starting chomsky parse server %s...", version.ServerCurrent)
	if err := ps.ListenAndServe(); err != nil {
		log.Printf("FATAL %v", err)
		os.Exit(3)
	}
}

// loadConfig layers the config file, the environment, and the flags.
func loadConfig() (server.Config, error) {
	var cfg server.Config
	if *flagConfig != "" {
		var err error
		if cfg, err = server.LoadConfig(*flagConfig); err != nil {
			return cfg, fmt.Errorf("config file: %w", err)
		}
	}

	overlay := func(target *string, env, flag string, flagVal string) {
		if v := os.Getenv(env); v != "" {
			*target = v
		}
		if pflag.Lookup(flag).Changed {
			*target = flagVal
		}
	}
	overlay(&cfg.Listen, EnvListen, "listen", *flagListen)
	overlay(&cfg.TokenSecret, EnvSecret, "secret", *flagSecret)
	overlay(&cfg.Database, EnvDB, "db", *flagDB)

	if pflag.Lookup("parallel").Changed {
		cfg.Parse.Parallel = *flagParallel
	}
	if pflag.Lookup("max-tokens").Changed {
		cfg.Parse.MaxTokens = *flagMaxTokens
	}

	return cfg, nil
}

func seedAdmin(ps *server.ParseServer) error {
	password := os.Getenv(EnvAdminPassword)
	generated := password == ""
	if generated {
		buf := make([]byte, 12)
		if _, err := rand.Read(buf); err != nil {
			return fmt.Errorf("generate password: %w", err)
		}
		password = base64.RawURLEncoding.EncodeToString(buf)
	}

	_, err := ps.Service().CreateUser(context.Background(), adminUsername, password, dao.RoleAdmin)
	if errors.Is(err, serr.ErrAlreadyExists) {
		return nil
	}
	if err != nil {
		return err
	}

	if generated {
		log.Printf("INFO  Added initial user %q with generated password %q", adminUsername, password)
	} else {
		log.Printf("INFO  Added initial user %q with the password in %s", adminUsername, EnvAdminPassword)
	}
	return nil
}
