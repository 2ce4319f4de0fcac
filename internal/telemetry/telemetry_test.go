package telemetry

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	recorder := &Recorder{}
	scoped := NewScopedAPI("batch", recorder)

	scoped.ReportBroken("parse", "thread.html")
	scoped.ReportWarning("parse", "reviews.html")
	scoped.ReportCount("parsed", 3)

	broken := recorder.Reports(LEVEL_BROKEN)
	require.Len(t, broken, 1)
	require.Equal(t, "batch: parse", broken[0].Id)
	require.Equal(t, []any{"thread.html"}, broken[0].Params)

	warnings := recorder.Reports(LEVEL_WARNING)
	require.Len(t, warnings, 1)
	require.Equal(t, "batch: parse", warnings[0].Id)

	counts := recorder.Reports(LEVEL_COUNT)
	require.Len(t, counts, 1)
	require.Equal(t, int64(3), counts[0].Count)
}

func TestSlogAPI(t *testing.T) {
	buf := &bytes.Buffer{}
	api := SlogAPI{Logger: slog.New(slog.NewTextHandler(buf, nil))}

	api.ReportBroken("batch.parse", "thread.html")
	require.Contains(t, buf.String(), "broken component")
	require.Contains(t, buf.String(), "id=batch.parse")
	require.Contains(t, buf.String(), "params.0=thread.html")
}
