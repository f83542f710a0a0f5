package api

// note that these are *not* the DAO models; those are distinct and closer to
// the DB format they are in. Rather these are the models that are received from
// and sent to the client.

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenModel is a bearer token issued at login. Expires is in RFC 3339
// format.
type TokenModel struct {
	Token   string `json:"token"`
	UserID  string `json:"user_id"`
	Expires string `json:"expires"`
}

// UserCreateRequest adds an account. Role is "user" or "admin" and defaults
// to "user".
type UserCreateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type UserModel struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Created  string `json:"created"`
}

type InfoModel struct {
	Version struct {
		Server  string `json:"server"`
		Chomsky string `json:"chomsky"`
	} `json:"version"`
}

// GrammarCreateRequest is the body of a grammar upload. Source is the full
// text of a CHOMSKY grammar file.
type GrammarCreateRequest struct {
	Name   string `json:"name,omitempty"`
	Source string `json:"source"`
}

type GrammarModel struct {
	URI      string `json:"uri"`
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Start    string `json:"start"`
	Source   string `json:"source,omitempty"`
	Created  string `json:"created"`
	Modified string `json:"modified"`
}

type CNFModel struct {
	GrammarID string `json:"grammar_id"`
	Start     string `json:"start"`
	Origin    string `json:"origin"`

	// Rules holds one "A -> x | y" line per non-terminal.
	Rules    []string `json:"rules"`
	Nullable []string `json:"nullable,omitempty"`
}

type ParseRequest struct {
	Sentence string `json:"sentence"`

	// Table asks for the rendered CYK table to be included in the response.
	Table bool `json:"table,omitempty"`
}

type ParseModel struct {
	URI            string   `json:"uri"`
	ID             string   `json:"id"`
	GrammarID      string   `json:"grammar_id"`
	UserID         string   `json:"user_id"`
	Sentence       string   `json:"sentence"`
	Tokens         []string `json:"tokens,omitempty"`
	Accepted       bool     `json:"accepted"`
	ElapsedSeconds float64  `json:"elapsed_seconds"`
	Tree           string   `json:"tree,omitempty"`
	Table          string   `json:"table,omitempty"`
	Created        string   `json:"created"`
}
