package globals

import (
	"context"

	"threadcache-backend/internal/parser"
	"threadcache-backend/internal/telemetry"
	libtelemetry "threadcache-backend/lib/telemetry"
)

type ctxKey struct{}

// Config is read from threadcache.json5 (and threadcache.local.json5).
type Config struct {
	Site parser.Site `json:"site"`
	// Workers bounds the number of pages parsed at once.
	Workers int `json:"workers"`
	// DumpDir receives a copy of every page that failed to parse, empty
	// disables dumps.
	DumpDir   string              `json:"dump_dir"`
	Telemetry libtelemetry.Config `json:"telemetry"`
}

var DefaultConfig = Config{
	Site:    parser.DefaultSite,
	Workers: 4,
}

type Value struct {
	Config    Config
	Parser    parser.Parser
	Telemetry telemetry.API
}

func Set(ctx context.Context, value *Value) context.Context {
	return context.WithValue(ctx, ctxKey{}, value)
}

func Get(ctx context.Context) *Value {
	return ctx.Value(ctxKey{}).(*Value)
}
