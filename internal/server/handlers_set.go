package server

import (
	"github.com/junealder/eventide/internal/container"
	"github.com/junealder/eventide/internal/resp"
)

func sadd(ctx *Context) resp.Value {
	if len(ctx.args) < 2 {
		return resp.MakeErrorWrongNumberOfArguments("SADD")
	}
	s, err := ctx.ks.SetOf(ctx.args[0])
	if err != nil {
		return resp.MakeError(err.Error())
	}

	added := 0
	for _, member := range ctx.args[1:] {
		if s.Add(member) {
			added++
		}
	}
	return resp.MakeInteger(int64(added))
}

func srem(ctx *Context) resp.Value {
	if len(ctx.args) < 2 {
		return resp.MakeErrorWrongNumberOfArguments("SREM")
	}
	s, err := ctx.ks.FindSet(ctx.args[0])
	if err != nil {
		return resp.MakeError(err.Error())
	}
	if s == nil {
		return resp.MakeInteger(0)
	}

	removed := 0
	for _, member := range ctx.args[1:] {
		if s.Delete(member) {
			removed++
		}
	}
	if s.Len() == 0 {
		ctx.ks.Del(ctx.args[0])
	}
	return resp.MakeInteger(int64(removed))
}

func sismember(ctx *Context) resp.Value {
	if len(ctx.args) != 2 {
		return resp.MakeErrorWrongNumberOfArguments("SISMEMBER")
	}
	s, err := ctx.ks.FindSet(ctx.args[0])
	if err != nil {
		return resp.MakeError(err.Error())
	}
	if s != nil && s.Has(ctx.args[1]) {
		return resp.MakeInteger(1)
	}
	return resp.MakeInteger(0)
}

func scard(ctx *Context) resp.Value {
	if len(ctx.args) != 1 {
		return resp.MakeErrorWrongNumberOfArguments("SCARD")
	}
	s, err := ctx.ks.FindSet(ctx.args[0])
	if err != nil {
		return resp.MakeError(err.Error())
	}
	if s == nil {
		return resp.MakeInteger(0)
	}
	return resp.MakeInteger(int64(s.Len()))
}

func smembers(ctx *Context) resp.Value {
	if len(ctx.args) != 1 {
		return resp.MakeErrorWrongNumberOfArguments("SMEMBERS")
	}
	s, err := ctx.ks.FindSet(ctx.args[0])
	if err != nil {
		return resp.MakeError(err.Error())
	}
	if s == nil {
		return resp.MakeArray([]resp.Value{})
	}
	return bulkArray(s.ToSlice())
}

func sinter(ctx *Context) resp.Value {
	return setFold(ctx, "SINTER", (*container.Set[string]).Intersection)
}

func sunion(ctx *Context) resp.Value {
	return setFold(ctx, "SUNION", (*container.Set[string]).Union)
}

func sdiff(ctx *Context) resp.Value {
	return setFold(ctx, "SDIFF", (*container.Set[string]).Difference)
}

// setFold combines the sets named by the arguments left to right with
// the given set-algebra operation. An absent key reads as an empty set.
func setFold(ctx *Context, name string, op func(a, b *container.Set[string]) *container.Set[string]) resp.Value {
	if len(ctx.args) < 1 {
		return resp.MakeErrorWrongNumberOfArguments(name)
	}

	acc, err := findSetOrEmpty(ctx, ctx.args[0])
	if err != nil {
		return resp.MakeError(err.Error())
	}
	for _, key := range ctx.args[1:] {
		next, err := findSetOrEmpty(ctx, key)
		if err != nil {
			return resp.MakeError(err.Error())
		}
		acc = op(acc, next)
	}
	return bulkArray(acc.ToSlice())
}

func findSetOrEmpty(ctx *Context, key string) (*container.Set[string], error) {
	s, err := ctx.ks.FindSet(key)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = container.NewSet[string]()
	}
	return s, nil
}
