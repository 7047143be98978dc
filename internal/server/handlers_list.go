package server

import (
	"errors"
	"strconv"

	"github.com/junealder/eventide/internal/container"
	"github.com/junealder/eventide/internal/resp"
)

func lpush(ctx *Context) resp.Value {
	return push(ctx, "LPUSH", true)
}

func rpush(ctx *Context) resp.Value {
	return push(ctx, "RPUSH", false)
}

func push(ctx *Context, name string, front bool) resp.Value {
	if len(ctx.args) < 2 {
		return resp.MakeErrorWrongNumberOfArguments(name)
	}
	l, err := ctx.ks.ListOf(ctx.args[0])
	if err != nil {
		return resp.MakeError(err.Error())
	}

	for _, v := range ctx.args[1:] {
		index := l.Len()
		if front {
			index = 0
		}
		if err := l.Set(index, v); err != nil {
			return resp.MakeError(err.Error())
		}
	}
	return resp.MakeInteger(int64(l.Len()))
}

func lindex(ctx *Context) resp.Value {
	if len(ctx.args) != 2 {
		return resp.MakeErrorWrongNumberOfArguments("LINDEX")
	}
	index, ok := parseIndex(ctx.args[1])
	if !ok {
		return resp.MakeError(errNotInteger)
	}
	l, err := ctx.ks.FindList(ctx.args[0])
	if err != nil {
		return resp.MakeError(err.Error())
	}
	if l == nil {
		return resp.MakeNull()
	}

	v, err := l.Get(index)
	if err != nil {
		if errors.Is(err, container.ErrIndexOutOfBounds) {
			return resp.MakeError("index out of bounds")
		}
		return resp.MakeError(err.Error())
	}
	return resp.MakeBulkString(v)
}

func llen(ctx *Context) resp.Value {
	if len(ctx.args) != 1 {
		return resp.MakeErrorWrongNumberOfArguments("LLEN")
	}
	l, err := ctx.ks.FindList(ctx.args[0])
	if err != nil {
		return resp.MakeError(err.Error())
	}
	if l == nil {
		return resp.MakeInteger(0)
	}
	return resp.MakeInteger(int64(l.Len()))
}

// linsertat inserts a value at an arbitrary index, shifting the rest
// toward the tail. Index length appends; negative indices count back
// from the end. Returns the new length.
func linsertat(ctx *Context) resp.Value {
	if len(ctx.args) != 3 {
		return resp.MakeErrorWrongNumberOfArguments("LINSERTAT")
	}
	index, ok := parseIndex(ctx.args[1])
	if !ok {
		return resp.MakeError(errNotInteger)
	}
	l, err := ctx.ks.ListOf(ctx.args[0])
	if err != nil {
		return resp.MakeError(err.Error())
	}

	if err := l.Set(index, ctx.args[2]); err != nil {
		if errors.Is(err, container.ErrIndexOutOfBounds) {
			return resp.MakeError("index out of bounds")
		}
		return resp.MakeError(err.Error())
	}
	return resp.MakeInteger(int64(l.Len()))
}

// lremat unlinks the node at an index. Removing past the end is a
// silent no-op. Returns the remaining length.
func lremat(ctx *Context) resp.Value {
	if len(ctx.args) != 2 {
		return resp.MakeErrorWrongNumberOfArguments("LREMAT")
	}
	index, ok := parseIndex(ctx.args[1])
	if !ok {
		return resp.MakeError(errNotInteger)
	}
	l, err := ctx.ks.FindList(ctx.args[0])
	if err != nil {
		return resp.MakeError(err.Error())
	}
	if l == nil {
		return resp.MakeInteger(0)
	}

	l.Remove(index)
	if l.Len() == 0 {
		ctx.ks.Del(ctx.args[0])
	}
	return resp.MakeInteger(int64(l.Len()))
}

func parseIndex(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil
}
