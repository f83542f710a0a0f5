package server

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LoadConfig(t *testing.T) {
	testCases := []struct {
		name      string
		file      string
		expect    Config
		expectErr bool
	}{
		{
			name: "every key",
			file: `listen = ":9000"
database = "sqlite:data"
token_secret = "abc"
unauth_delay_ms = 250

[parse]
parallel = true
max_tokens = 40
table_width = 80
`,
			expect: Config{
				Listen:            ":9000",
				Database:          "sqlite:data",
				TokenSecret:       "abc",
				UnauthDelayMillis: 250,
				Parse:             ParseConfig{Parallel: true, MaxTokens: 40, TableWidth: 80},
			},
		},
		{
			name:   "empty file",
			file:   "",
			expect: Config{},
		},
		{
			name:      "unknown key",
			file:      "listen = \":9000\"\nport = 9000\n",
			expectErr: true,
		},
		{
			name:      "unknown parse key",
			file:      "[parse]\nworkers = 4\n",
			expectErr: true,
		},
		{
			name:      "not toml",
			file:      "listen = ",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			path := filepath.Join(t.TempDir(), "chomskyd.toml")
			require.NoError(t, os.WriteFile(path, []byte(tc.file), 0644))

			actual, err := LoadConfig(path)

			if tc.expectErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Config_resolve(t *testing.T) {
	testCases := []struct {
		name             string
		cfg              Config
		expectListen     string
		expectEngine     string
		expectDelay      time.Duration
		expectMaxTokens  int
		expectTableWidth int
	}{
		{
			name:             "defaults",
			cfg:              Config{},
			expectListen:     DefaultListen,
			expectEngine:     "inmem",
			expectDelay:      DefaultUnauthDelay,
			expectMaxTokens:  DefaultMaxTokens,
			expectTableWidth: DefaultTableWidth,
		},
		{
			name: "everything set",
			cfg: Config{
				Listen:            ":9000",
				Database:          "SQLite: /tmp/chomsky ",
				UnauthDelayMillis: 250,
				Parse:             ParseConfig{MaxTokens: 10, TableWidth: 60},
			},
			expectListen:     ":9000",
			expectEngine:     "sqlite",
			expectDelay:      250 * time.Millisecond,
			expectMaxTokens:  10,
			expectTableWidth: 60,
		},
		{
			name:             "delay and limit turned off",
			cfg:              Config{UnauthDelayMillis: -1, Parse: ParseConfig{MaxTokens: -1}},
			expectListen:     DefaultListen,
			expectEngine:     "inmem",
			expectDelay:      0,
			expectMaxTokens:  -1,
			expectTableWidth: DefaultTableWidth,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			s, err := tc.cfg.resolve()

			require.NoError(t, err)
			assert.Equal(tc.expectListen, s.listen)
			assert.Equal(tc.expectEngine, s.db.engine)
			assert.Equal(tc.expectDelay, s.unauthDelay)
			assert.Equal(tc.expectMaxTokens, s.parse.MaxTokens)
			assert.Equal(tc.expectTableWidth, s.parse.TableWidth)
		})
	}
}

func Test_stretchSecret(t *testing.T) {
	testCases := []struct {
		name      string
		secret    string
		expect    string
		expectErr bool
	}{
		{
			name:   "short secret is repeated",
			secret: "0123456789",
			expect: "0123456789012345678901234567890123456789",
		},
		{
			name:   "exact minimum is kept",
			secret: strings.Repeat("k", MinSecretSize),
			expect: strings.Repeat("k", MinSecretSize),
		},
		{
			name:      "too long",
			secret:    strings.Repeat("k", MaxSecretSize+1),
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := stretchSecret([]byte(tc.secret))

			if tc.expectErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.expect, string(actual))
		})
	}
}

func Test_stretchSecret_Generated(t *testing.T) {
	assert := assert.New(t)

	first, err := stretchSecret(nil)
	require.NoError(t, err)
	second, err := stretchSecret(nil)
	require.NoError(t, err)

	assert.Len(first, MaxSecretSize)
	assert.NotEqual(first, second)
}
