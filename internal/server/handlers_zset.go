package server

import (
	"github.com/junealder/eventide/internal/container"
	"github.com/junealder/eventide/internal/resp"
)

func zadd(ctx *Context) resp.Value {
	if len(ctx.args) < 2 {
		return resp.MakeErrorWrongNumberOfArguments("ZADD")
	}
	z, err := ctx.ks.ZSetOf(ctx.args[0])
	if err != nil {
		return resp.MakeError(err.Error())
	}

	added := 0
	for _, member := range ctx.args[1:] {
		if z.Add(member) {
			added++
		}
	}
	return resp.MakeInteger(int64(added))
}

func zrem(ctx *Context) resp.Value {
	if len(ctx.args) < 2 {
		return resp.MakeErrorWrongNumberOfArguments("ZREM")
	}
	z, err := ctx.ks.FindZSet(ctx.args[0])
	if err != nil {
		return resp.MakeError(err.Error())
	}
	if z == nil {
		return resp.MakeInteger(0)
	}

	removed := 0
	for _, member := range ctx.args[1:] {
		if z.Delete(member) {
			removed++
		}
	}
	if z.Len() == 0 {
		ctx.ks.Del(ctx.args[0])
	}
	return resp.MakeInteger(int64(removed))
}

func zcard(ctx *Context) resp.Value {
	if len(ctx.args) != 1 {
		return resp.MakeErrorWrongNumberOfArguments("ZCARD")
	}
	z, err := ctx.ks.FindZSet(ctx.args[0])
	if err != nil {
		return resp.MakeError(err.Error())
	}
	if z == nil {
		return resp.MakeInteger(0)
	}
	return resp.MakeInteger(int64(z.Len()))
}

func zismember(ctx *Context) resp.Value {
	if len(ctx.args) != 2 {
		return resp.MakeErrorWrongNumberOfArguments("ZISMEMBER")
	}
	z, err := ctx.ks.FindZSet(ctx.args[0])
	if err != nil {
		return resp.MakeError(err.Error())
	}
	if z != nil && z.Has(ctx.args[1]) {
		return resp.MakeInteger(1)
	}
	return resp.MakeInteger(0)
}

func zmembers(ctx *Context) resp.Value {
	if len(ctx.args) != 1 {
		return resp.MakeErrorWrongNumberOfArguments("ZMEMBERS")
	}
	z, err := ctx.ks.FindZSet(ctx.args[0])
	if err != nil {
		return resp.MakeError(err.Error())
	}
	if z == nil {
		return resp.MakeArray([]resp.Value{})
	}
	return bulkArray(z.Values())
}

func zrange(ctx *Context) resp.Value {
	if len(ctx.args) != 3 {
		return resp.MakeErrorWrongNumberOfArguments("ZRANGE")
	}
	z, err := ctx.ks.FindZSet(ctx.args[0])
	if err != nil {
		return resp.MakeError(err.Error())
	}
	if z == nil {
		return resp.MakeArray([]resp.Value{})
	}
	return bulkArray(z.Range(ctx.args[1], ctx.args[2]))
}

func zmin(ctx *Context) resp.Value {
	return zEdge(ctx, "ZMIN", (*container.OrderedSet[string]).Min)
}

func zmax(ctx *Context) resp.Value {
	return zEdge(ctx, "ZMAX", (*container.OrderedSet[string]).Max)
}

func zEdge(ctx *Context, name string, pick func(z *container.OrderedSet[string]) (string, bool)) resp.Value {
	if len(ctx.args) != 1 {
		return resp.MakeErrorWrongNumberOfArguments(name)
	}
	z, err := ctx.ks.FindZSet(ctx.args[0])
	if err != nil {
		return resp.MakeError(err.Error())
	}
	if z == nil {
		return resp.MakeNil()
	}
	member, ok := pick(z)
	if !ok {
		return resp.MakeNil()
	}
	return resp.MakeBulkString(member)
}

func zfloor(ctx *Context) resp.Value {
	return zProbe(ctx, "ZFLOOR", (*container.OrderedSet[string]).Floor)
}

func zceiling(ctx *Context) resp.Value {
	return zProbe(ctx, "ZCEILING", (*container.OrderedSet[string]).Ceiling)
}

func zProbe(ctx *Context, name string, pick func(z *container.OrderedSet[string], key string) (string, bool)) resp.Value {
	if len(ctx.args) != 2 {
		return resp.MakeErrorWrongNumberOfArguments(name)
	}
	z, err := ctx.ks.FindZSet(ctx.args[0])
	if err != nil {
		return resp.MakeError(err.Error())
	}
	if z == nil {
		return resp.MakeNil()
	}
	member, ok := pick(z, ctx.args[1])
	if !ok {
		return resp.MakeNil()
	}
	return resp.MakeBulkString(member)
}
