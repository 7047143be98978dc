package server

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/junealder/eventide/internal/container"
	"github.com/junealder/eventide/internal/keyspace"
	"github.com/junealder/eventide/internal/resp"
)

const errNotInteger = "value is not an integer or out of range"

func ping(ctx *Context) resp.Value {
	switch len(ctx.args) {
	case 0:
		return resp.MakeSimpleString("PONG")
	case 1:
		return resp.MakeBulkString(ctx.args[0])
	}
	return resp.MakeErrorWrongNumberOfArguments("PING")
}

func echo(ctx *Context) resp.Value {
	if len(ctx.args) != 1 {
		return resp.MakeErrorWrongNumberOfArguments("ECHO")
	}
	return resp.MakeBulkString(ctx.args[0])
}

func set(ctx *Context) resp.Value {
	if len(ctx.args) < 2 {
		return resp.MakeErrorWrongNumberOfArguments("SET")
	}
	key, value := ctx.args[0], ctx.args[1]

	var ttl time.Duration
	var ttlSet, keepTTL, nx, xx bool

	for i := 2; i < len(ctx.args); i++ {
		switch strings.ToUpper(ctx.args[i]) {
		case "NX":
			if xx {
				return resp.MakeError("NX cannot use with XX")
			}
			nx = true
		case "XX":
			if nx {
				return resp.MakeError("XX cannot use with NX")
			}
			xx = true
		case "KEEPTTL":
			if ttlSet {
				return resp.MakeError("TTL already specified")
			}
			keepTTL = true
		case "EX", "PX":
			if ttlSet || keepTTL {
				return resp.MakeError("TTL already specified")
			}
			if i+1 >= len(ctx.args) {
				return resp.MakeError("syntax error")
			}
			n, err := strconv.ParseInt(ctx.args[i+1], 10, 64)
			if err != nil {
				return resp.MakeError("value TTL is not integer")
			}
			if strings.EqualFold(ctx.args[i], "EX") {
				ttl = time.Duration(n) * time.Second
			} else {
				ttl = time.Duration(n) * time.Millisecond
			}
			ttlSet = true
			i++
		default:
			return resp.MakeError("syntax error with command SET")
		}
	}

	exists := ctx.ks.Type(key) != "none"
	if nx && exists {
		return resp.MakeNull()
	}
	if xx && !exists {
		return resp.MakeNull()
	}

	switch {
	case keepTTL:
		if remaining, status := ctx.ks.TTL(key); status == container.StatusActive {
			ctx.ks.SetStringEx(key, value, remaining)
		} else {
			ctx.ks.SetString(key, value)
		}
	case ttlSet:
		ctx.ks.SetStringEx(key, value, ttl)
	default:
		ctx.ks.SetString(key, value)
	}

	return resp.MakeSimpleString("OK")
}

func setex(ctx *Context) resp.Value {
	if len(ctx.args) != 3 {
		return resp.MakeErrorWrongNumberOfArguments("SETEX")
	}
	seconds, err := strconv.ParseInt(ctx.args[1], 10, 64)
	if err != nil {
		return resp.MakeError(errNotInteger)
	}
	ctx.ks.SetStringEx(ctx.args[0], ctx.args[2], time.Duration(seconds)*time.Second)
	return resp.MakeSimpleString("OK")
}

func get(ctx *Context) resp.Value {
	if len(ctx.args) != 1 {
		return resp.MakeErrorWrongNumberOfArguments("GET")
	}
	v, ok, err := ctx.ks.GetString(ctx.args[0])
	if err != nil {
		return resp.MakeError(err.Error())
	}
	if !ok {
		return resp.MakeNull()
	}
	return resp.MakeBulkString(v)
}

func del(ctx *Context) resp.Value {
	if len(ctx.args) < 1 {
		return resp.MakeErrorWrongNumberOfArguments("DEL")
	}
	return resp.MakeInteger(int64(ctx.ks.Del(ctx.args...)))
}

func exists(ctx *Context) resp.Value {
	if len(ctx.args) < 1 {
		return resp.MakeErrorWrongNumberOfArguments("EXISTS")
	}
	return resp.MakeInteger(int64(ctx.ks.Exists(ctx.args...)))
}

func keysCmd(ctx *Context) resp.Value {
	if len(ctx.args) != 1 {
		return resp.MakeErrorWrongNumberOfArguments("KEYS")
	}
	matched, err := ctx.ks.Keys(ctx.args[0])
	if err != nil {
		return resp.MakeError("invalid pattern: " + err.Error())
	}
	return bulkArray(matched)
}

func typeCmd(ctx *Context) resp.Value {
	if len(ctx.args) != 1 {
		return resp.MakeErrorWrongNumberOfArguments("TYPE")
	}
	return resp.MakeSimpleString(ctx.ks.Type(ctx.args[0]))
}

func expire(ctx *Context) resp.Value {
	return expireIn(ctx, "EXPIRE", time.Second)
}

func pexpire(ctx *Context) resp.Value {
	return expireIn(ctx, "PEXPIRE", time.Millisecond)
}

func expireIn(ctx *Context, name string, unit time.Duration) resp.Value {
	if len(ctx.args) != 2 {
		return resp.MakeErrorWrongNumberOfArguments(name)
	}
	n, err := strconv.ParseInt(ctx.args[1], 10, 64)
	if err != nil {
		return resp.MakeError(errNotInteger)
	}
	if ctx.ks.Expire(ctx.args[0], time.Duration(n)*unit) {
		return resp.MakeInteger(1)
	}
	return resp.MakeInteger(0)
}

func ttl(ctx *Context) resp.Value {
	if len(ctx.args) != 1 {
		return resp.MakeErrorWrongNumberOfArguments("TTL")
	}
	remaining, status := ctx.ks.TTL(ctx.args[0])
	if status != container.StatusActive {
		return resp.MakeInteger(int64(status))
	}
	// round up so a freshly set 60s TTL reads back as 60
	seconds := (remaining + time.Second - 1) / time.Second
	return resp.MakeInteger(int64(seconds))
}

func pttl(ctx *Context) resp.Value {
	if len(ctx.args) != 1 {
		return resp.MakeErrorWrongNumberOfArguments("PTTL")
	}
	remaining, status := ctx.ks.TTL(ctx.args[0])
	if status != container.StatusActive {
		return resp.MakeInteger(int64(status))
	}
	return resp.MakeInteger(remaining.Milliseconds())
}

func persist(ctx *Context) resp.Value {
	if len(ctx.args) != 1 {
		return resp.MakeErrorWrongNumberOfArguments("PERSIST")
	}
	if ctx.ks.Persist(ctx.args[0]) {
		return resp.MakeInteger(1)
	}
	return resp.MakeInteger(0)
}

func rename(ctx *Context) resp.Value {
	if len(ctx.args) != 2 {
		return resp.MakeErrorWrongNumberOfArguments("RENAME")
	}
	if err := ctx.ks.Rename(ctx.args[0], ctx.args[1]); err != nil {
		if errors.Is(err, keyspace.ErrNoSuchKey) {
			return resp.MakeError("no such key")
		}
		return resp.MakeError(err.Error())
	}
	return resp.MakeSimpleString("OK")
}

func renamenx(ctx *Context) resp.Value {
	if len(ctx.args) != 2 {
		return resp.MakeErrorWrongNumberOfArguments("RENAMENX")
	}
	ok, err := ctx.ks.RenameNX(ctx.args[0], ctx.args[1])
	if err != nil {
		if errors.Is(err, keyspace.ErrNoSuchKey) {
			return resp.MakeError("no such key")
		}
		return resp.MakeError(err.Error())
	}
	if ok {
		return resp.MakeInteger(1)
	}
	return resp.MakeInteger(0)
}

func randomkey(ctx *Context) resp.Value {
	if len(ctx.args) != 0 {
		return resp.MakeErrorWrongNumberOfArguments("RANDOMKEY")
	}
	key, ok := ctx.ks.RandomKey()
	if !ok {
		return resp.MakeNull()
	}
	return resp.MakeBulkString(key)
}

// bulkArray builds an array of bulk strings, bypassing the simple-string
// heuristic: data (keys, members) always goes out length-prefixed.
func bulkArray(elems []string) resp.Value {
	values := make([]resp.Value, len(elems))
	for i, s := range elems {
		values[i] = resp.MakeBulkString(s)
	}
	return resp.MakeArray(values)
}
