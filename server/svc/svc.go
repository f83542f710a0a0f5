// Package svc has services for interacting with the parse server backend
// decoupled from the API that accesses it.
package svc

import (
	"github.com/dekarrin/chomsky/server/dao"
)

// Service runs the operations of the parse server against its persistence
// store. Errors it returns are classified with the kinds in package serr.
//
// The zero-value of Service is not ready to be used; assign a valid DAO store
// to DB before attempting to use it.
type Service struct {
	DB dao.Store

	// Parallel makes parses fill each span length of the CYK table
	// concurrently.
	Parallel bool

	// MaxTokens is the most words a parsed sentence may have. Zero or less
	// means no limit.
	MaxTokens int
}
