package server

import (
	"github.com/junealder/eventide/internal/keyspace"
	"github.com/junealder/eventide/internal/resp"
)

// Context carries one command's arguments and the shared keyspace into
// a handler. Arguments exclude the command name.
type Context struct {
	args []string
	ks   *keyspace.Keyspace
}

type Command interface {
	Execute(ctx *Context) resp.Value
}

type CommandFunc func(ctx *Context) resp.Value

func (c CommandFunc) Execute(ctx *Context) resp.Value {
	return c(ctx)
}
