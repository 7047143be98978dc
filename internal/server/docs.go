package server

import (
	"strings"

	"github.com/junealder/eventide/internal/resp"
)

type commandMetadata struct {
	arity    int      // Arity includes the command name itself
	flags    []string // read, write, fast, denyoom, etc
	firstKey int      // 1-based index of the first key
	lastKey  int      // 1-based index of the last key
	step     int      // Step count for finding keys
}

var commandRegistry = map[string]commandMetadata{
	"PING":      {-1, []string{"fast", "stale"}, 0, 0, 0},
	"ECHO":      {2, []string{"fast"}, 0, 0, 0},
	"COMMAND":   {-1, []string{"random", "loading", "stale"}, 0, 0, 0},
	"GET":       {2, []string{"readonly", "fast"}, 1, 1, 1},
	"SET":       {-3, []string{"write", "denyoom"}, 1, 1, 1},
	"SETEX":     {4, []string{"write", "denyoom"}, 1, 1, 1},
	"DEL":       {-2, []string{"write"}, 1, -1, 1},
	"EXISTS":    {-2, []string{"readonly", "fast"}, 1, -1, 1},
	"KEYS":      {2, []string{"readonly"}, 0, 0, 0},
	"TYPE":      {2, []string{"readonly", "fast"}, 1, 1, 1},
	"EXPIRE":    {3, []string{"write", "fast"}, 1, 1, 1},
	"PEXPIRE":   {3, []string{"write", "fast"}, 1, 1, 1},
	"TTL":       {2, []string{"readonly", "fast"}, 1, 1, 1},
	"PTTL":      {2, []string{"readonly", "fast"}, 1, 1, 1},
	"PERSIST":   {2, []string{"write", "fast"}, 1, 1, 1},
	"RENAME":    {3, []string{"write"}, 1, 2, 1},
	"RENAMENX":  {3, []string{"write", "fast"}, 1, 2, 1},
	"RANDOMKEY": {1, []string{"readonly", "random"}, 0, 0, 0},
	"SADD":      {-3, []string{"write", "denyoom", "fast"}, 1, 1, 1},
	"SREM":      {-3, []string{"write", "fast"}, 1, 1, 1},
	"SISMEMBER": {3, []string{"readonly", "fast"}, 1, 1, 1},
	"SCARD":     {2, []string{"readonly", "fast"}, 1, 1, 1},
	"SMEMBERS":  {2, []string{"readonly"}, 1, 1, 1},
	"SINTER":    {-2, []string{"readonly"}, 1, -1, 1},
	"SUNION":    {-2, []string{"readonly"}, 1, -1, 1},
	"SDIFF":     {-2, []string{"readonly"}, 1, -1, 1},
	"ZADD":      {-3, []string{"write", "denyoom", "fast"}, 1, 1, 1},
	"ZREM":      {-3, []string{"write", "fast"}, 1, 1, 1},
	"ZCARD":     {2, []string{"readonly", "fast"}, 1, 1, 1},
	"ZISMEMBER": {3, []string{"readonly", "fast"}, 1, 1, 1},
	"ZMEMBERS":  {2, []string{"readonly"}, 1, 1, 1},
	"ZRANGE":    {4, []string{"readonly"}, 1, 1, 1},
	"ZMIN":      {2, []string{"readonly", "fast"}, 1, 1, 1},
	"ZMAX":      {2, []string{"readonly", "fast"}, 1, 1, 1},
	"ZFLOOR":    {3, []string{"readonly", "fast"}, 1, 1, 1},
	"ZCEILING":  {3, []string{"readonly", "fast"}, 1, 1, 1},
	"LPUSH":     {-3, []string{"write", "denyoom", "fast"}, 1, 1, 1},
	"RPUSH":     {-3, []string{"write", "denyoom", "fast"}, 1, 1, 1},
	"LINDEX":    {3, []string{"readonly"}, 1, 1, 1},
	"LLEN":      {2, []string{"readonly", "fast"}, 1, 1, 1},
	"LINSERTAT": {4, []string{"write", "denyoom"}, 1, 1, 1},
	"LREMAT":    {3, []string{"write"}, 1, 1, 1},
}

// commandDoc stores a description for the command
type commandDoc struct {
	summary    string
	complexity string
	group      string
	since      string
}

// commandDocsRegistry documentation registry
var commandDocsRegistry = map[string]commandDoc{
	"PING":      {"Ping the server.", "O(1)", "connection", "1.0.0"},
	"ECHO":      {"Echo the given string.", "O(1)", "connection", "1.0.0"},
	"COMMAND":   {"Get array of command details.", "O(N) where N is the number of commands to look up.", "server", "1.0.0"},
	"GET":       {"Get the value of a key.", "O(1)", "string", "1.0.0"},
	"SET":       {"Set the string value of a key.", "O(1)", "string", "1.0.0"},
	"SETEX":     {"Set the value of a key with an expiry in seconds.", "O(1)", "string", "1.0.0"},
	"DEL":       {"Delete one or more keys.", "O(N) where N is the number of keys that will be removed.", "generic", "1.0.0"},
	"EXISTS":    {"Count how many of the given keys exist.", "O(N)", "generic", "1.0.0"},
	"KEYS":      {"Find all keys matching the given glob pattern.", "O(N)", "generic", "1.0.0"},
	"TYPE":      {"Determine the type stored at key.", "O(1)", "generic", "1.0.0"},
	"EXPIRE":    {"Set a key's time to live in seconds.", "O(1)", "generic", "1.0.0"},
	"PEXPIRE":   {"Set a key's time to live in milliseconds.", "O(1)", "generic", "1.0.0"},
	"TTL":       {"Get the time to live for a key in seconds.", "O(1)", "generic", "1.0.0"},
	"PTTL":      {"Get the time to live for a key in milliseconds.", "O(1)", "generic", "1.0.0"},
	"PERSIST":   {"Remove the expiration from a key.", "O(1)", "generic", "1.0.0"},
	"RENAME":    {"Rename a key, overwriting the destination.", "O(1)", "generic", "1.0.0"},
	"RENAMENX":  {"Rename a key only if the destination does not exist.", "O(1)", "generic", "1.0.0"},
	"RANDOMKEY": {"Return a random key from the keyspace.", "O(N)", "generic", "1.0.0"},
	"SADD":      {"Add one or more members to a set.", "O(N) where N is the number of members.", "set", "1.0.0"},
	"SREM":      {"Remove one or more members from a set.", "O(N) where N is the number of members.", "set", "1.0.0"},
	"SISMEMBER": {"Determine if a value is a member of a set.", "O(1)", "set", "1.0.0"},
	"SCARD":     {"Get the number of members in a set.", "O(1)", "set", "1.0.0"},
	"SMEMBERS":  {"Get all members of a set.", "O(N)", "set", "1.0.0"},
	"SINTER":    {"Intersect multiple sets.", "O(N*M) worst case.", "set", "1.0.0"},
	"SUNION":    {"Union multiple sets.", "O(N)", "set", "1.0.0"},
	"SDIFF":     {"Subtract multiple sets.", "O(N)", "set", "1.0.0"},
	"ZADD":      {"Add one or more members to an ordered set.", "O(M log N)", "zset", "1.0.0"},
	"ZREM":      {"Remove one or more members from an ordered set.", "O(M log N)", "zset", "1.0.0"},
	"ZCARD":     {"Get the number of members in an ordered set.", "O(1)", "zset", "1.0.0"},
	"ZISMEMBER": {"Determine if a value is a member of an ordered set.", "O(log N)", "zset", "1.0.0"},
	"ZMEMBERS":  {"Get all members of an ordered set in ascending order.", "O(N)", "zset", "1.0.0"},
	"ZRANGE":    {"Get the members in an inclusive range, in ascending order.", "O(log N + K)", "zset", "1.0.0"},
	"ZMIN":      {"Get the smallest member of an ordered set.", "O(log N)", "zset", "1.0.0"},
	"ZMAX":      {"Get the largest member of an ordered set.", "O(log N)", "zset", "1.0.0"},
	"ZFLOOR":    {"Get the largest member not greater than the argument.", "O(log N)", "zset", "1.0.0"},
	"ZCEILING":  {"Get the smallest member not less than the argument.", "O(log N)", "zset", "1.0.0"},
	"LPUSH":     {"Prepend one or more values to a list.", "O(N)", "list", "1.0.0"},
	"RPUSH":     {"Append one or more values to a list.", "O(N)", "list", "1.0.0"},
	"LINDEX":    {"Get an element from a list by its index.", "O(N)", "list", "1.0.0"},
	"LLEN":      {"Get the length of a list.", "O(1)", "list", "1.0.0"},
	"LINSERTAT": {"Insert a value at an index, shifting the rest.", "O(N)", "list", "1.0.0"},
	"LREMAT":    {"Remove the element at an index.", "O(N)", "list", "1.0.0"},
}

func makeFlagsArray(flags []string) resp.Value {
	vals := make([]resp.Value, len(flags))
	for i, f := range flags {
		vals[i] = resp.MakeSimpleString(f)
	}
	return resp.MakeArray(vals)
}

func makeInfoCmdArray(name string) []resp.Value {
	return []resp.Value{
		resp.MakeBulkString(name),
		resp.MakeInteger(int64(commandRegistry[name].arity)),
		makeFlagsArray(commandRegistry[name].flags),
		resp.MakeInteger(int64(commandRegistry[name].firstKey)),
		resp.MakeInteger(int64(commandRegistry[name].lastKey)),
		resp.MakeInteger(int64(commandRegistry[name].step)),
	}
}

func getAllCommands() resp.Value {
	cmdArray := make([]resp.Value, 0, len(commandRegistry))
	for name := range commandRegistry {
		details := makeInfoCmdArray(name)
		cmdArray = append(cmdArray, resp.MakeArray(details))
	}
	return resp.MakeArray(cmdArray)
}

// getCommandsDocs returns documentation for specified commands or all
// commands as a map of name to properties.
func getCommandsDocs(args []string) resp.Value {
	var targets []string

	if len(args) == 0 {
		targets = make([]string, 0, len(commandDocsRegistry))
		for name := range commandDocsRegistry {
			targets = append(targets, name)
		}
	} else {
		targets = make([]string, 0, len(args))
		for _, arg := range args {
			targets = append(targets, strings.ToUpper(arg))
		}
	}

	pairs := make([]resp.Pair, 0, len(targets))

	for _, name := range targets {
		doc, ok := commandDocsRegistry[name]
		if !ok {
			continue
		}

		props := []resp.Value{
			resp.MakeBulkString("summary"),
			resp.MakeBulkString(doc.summary),
			resp.MakeBulkString("since"),
			resp.MakeBulkString(doc.since),
			resp.MakeBulkString("group"),
			resp.MakeBulkString(doc.group),
			resp.MakeBulkString("complexity"),
			resp.MakeBulkString(doc.complexity),
		}

		pairs = append(pairs, resp.Pair{
			Key:   resp.MakeBulkString(name),
			Value: resp.MakeArray(props),
		})
	}

	return resp.MakeMap(pairs)
}

// command implements COMMAND with the DOCS and COUNT subcommands.
func command(ctx *Context) resp.Value {
	if len(ctx.args) == 0 {
		return getAllCommands()
	}

	switch strings.ToUpper(ctx.args[0]) {
	case "DOCS":
		return getCommandsDocs(ctx.args[1:])
	case "COUNT":
		return resp.MakeInteger(int64(len(commandRegistry)))
	}
	return resp.MakeError("unknown COMMAND subcommand: " + ctx.args[0])
}
