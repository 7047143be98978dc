package server

import (
	"fmt"
	"strings"
	"sync"

	"github.com/junealder/eventide/internal/keyspace"
	"github.com/junealder/eventide/internal/resp"
	"go.uber.org/zap"
)

// Engine coordinates the execution of commands against the shared
// keyspace. One mutex is held for the full duration of a handler, so
// every command runs to completion before the next one touches the
// keyspace, regardless of how many connections are live.
type Engine struct {
	commands map[string]Command // registry of available commands (the key is the command name in uppercase)
	ks       *keyspace.Keyspace
	mu       sync.Mutex
	logger   *zap.Logger
}

// NewEngine initializes the engine over an explicitly provided keyspace
// and registers the basic commands.
func NewEngine(ks *keyspace.Keyspace, logger *zap.Logger) *Engine {
	engine := &Engine{
		commands: make(map[string]Command),
		ks:       ks,
		logger:   logger,
	}
	engine.registerBasicCommands()
	return engine
}

// Register adds a new command to the engine. The command name is uppercase
func (e *Engine) Register(name string, cmd Command) {
	e.commands[strings.ToUpper(name)] = cmd
}

// registerBasicCommands fills the registry with standard commands
func (e *Engine) registerBasicCommands() {
	e.Register("PING", CommandFunc(ping))
	e.Register("ECHO", CommandFunc(echo))
	e.Register("COMMAND", CommandFunc(command))

	e.Register("SET", CommandFunc(set))
	e.Register("SETEX", CommandFunc(setex))
	e.Register("GET", CommandFunc(get))

	e.Register("DEL", CommandFunc(del))
	e.Register("EXISTS", CommandFunc(exists))
	e.Register("KEYS", CommandFunc(keysCmd))
	e.Register("TYPE", CommandFunc(typeCmd))
	e.Register("EXPIRE", CommandFunc(expire))
	e.Register("PEXPIRE", CommandFunc(pexpire))
	e.Register("TTL", CommandFunc(ttl))
	e.Register("PTTL", CommandFunc(pttl))
	e.Register("PERSIST", CommandFunc(persist))
	e.Register("RENAME", CommandFunc(rename))
	e.Register("RENAMENX", CommandFunc(renamenx))
	e.Register("RANDOMKEY", CommandFunc(randomkey))

	e.Register("SADD", CommandFunc(sadd))
	e.Register("SREM", CommandFunc(srem))
	e.Register("SISMEMBER", CommandFunc(sismember))
	e.Register("SCARD", CommandFunc(scard))
	e.Register("SMEMBERS", CommandFunc(smembers))
	e.Register("SINTER", CommandFunc(sinter))
	e.Register("SUNION", CommandFunc(sunion))
	e.Register("SDIFF", CommandFunc(sdiff))

	e.Register("ZADD", CommandFunc(zadd))
	e.Register("ZREM", CommandFunc(zrem))
	e.Register("ZCARD", CommandFunc(zcard))
	e.Register("ZISMEMBER", CommandFunc(zismember))
	e.Register("ZMEMBERS", CommandFunc(zmembers))
	e.Register("ZRANGE", CommandFunc(zrange))
	e.Register("ZMIN", CommandFunc(zmin))
	e.Register("ZMAX", CommandFunc(zmax))
	e.Register("ZFLOOR", CommandFunc(zfloor))
	e.Register("ZCEILING", CommandFunc(zceiling))

	e.Register("LPUSH", CommandFunc(lpush))
	e.Register("RPUSH", CommandFunc(rpush))
	e.Register("LINDEX", CommandFunc(lindex))
	e.Register("LLEN", CommandFunc(llen))
	e.Register("LINSERTAT", CommandFunc(linsertat))
	e.Register("LREMAT", CommandFunc(lremat))
}

// Execute finds the command by name and executes it with the passed
// arguments. An unknown name fails the request, never the process; a
// panicking handler is converted into an error reply.
func (e *Engine) Execute(name string, args []string) (result resp.Value) {
	if e.logger.Core().Enabled(zap.DebugLevel) {
		e.logger.Debug("executing command",
			zap.String("cmd", name),
			zap.Int("args_count", len(args)),
		)
	}

	cmd, ok := e.commands[strings.ToUpper(name)]
	if !ok {
		return resp.MakeError(fmt.Sprintf("Unknown command: %s", name))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("handler panic",
				zap.String("cmd", name),
				zap.Any("panic", r),
			)
			result = resp.MakeError(fmt.Sprintf("internal error executing %s", name))
		}
	}()

	return cmd.Execute(&Context{args: args, ks: e.ks})
}
