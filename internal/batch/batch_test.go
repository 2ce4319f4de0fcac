package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"threadcache-backend/internal/parser"
	"threadcache-backend/internal/telemetry"
	libtelemetry "threadcache-backend/lib/telemetry"

	"github.com/stretchr/testify/require"
)

const threadMarkup = `<html><head><meta property="og:site_name" content="F95zone"></head><body>
<div class="p-body-header"><h1 class="p-title-value"><span class="label">Unity</span>Game %d [v0.%d] [Studio]</h1></div>
<article class="message message-threadStarterPost"><div class="bbWrapper">
<b>Version</b>: 0.%d<br>
</div></article>
</body></html>`

const captchaMarkup = `<html><head><title>Just a moment...</title></head><body>checking</body></html>`

func TestMain(m *testing.M) {
	err := libtelemetry.SetupFromEnv(context.Background(), "test:batch")
	if err != nil {
		panic(err)
	}
	code := m.Run()
	libtelemetry.Shutdown(context.Background())
	os.Exit(code)
}

func newTestPool(workers int) (Pool, *telemetry.Recorder) {
	recorder := &telemetry.Recorder{}
	pool := NewPool(Options{
		Workers:   workers,
		Parser:    parser.NewParser(parser.DefaultSite),
		Telemetry: recorder,
	})
	return pool, recorder
}

func TestParseThreads(t *testing.T) {
	pool, recorder := newTestPool(3)

	inputs := []Input{}
	for i := 0; i < 10; i++ {
		inputs = append(inputs, Input{
			Name: fmt.Sprintf("thread-%d.html", i),
			Data: []byte(fmt.Sprintf(threadMarkup, i, i, i)),
		})
	}
	inputs = append(inputs, Input{Name: "captcha.html", Data: []byte(captchaMarkup)})

	outcomes, err := pool.ParseThreads(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, outcomes, len(inputs))

	for i := 0; i < 10; i++ {
		require.NoError(t, outcomes[i].Err)
		require.Equal(t, inputs[i].Name, outcomes[i].Name)
		require.Equal(t, fmt.Sprintf("Game %d", i), outcomes[i].Value.Name)
		require.Equal(t, fmt.Sprintf("0.%d", i), outcomes[i].Value.Version)
		require.Equal(t, parser.TYPE_UNITY, outcomes[i].Value.Type)
		require.Equal(t, ACTION_NONE, outcomes[i].Action)
	}

	captcha := outcomes[10]
	require.ErrorIs(t, captcha.Err, parser.ErrWrongSite)
	require.Equal(t, ACTION_SKIP_BACKOFF, captcha.Action)

	warnings := recorder.Reports(telemetry.LEVEL_WARNING)
	require.Len(t, warnings, 1)
	require.Equal(t, report_parse, warnings[0].Id)
	require.Empty(t, recorder.Reports(telemetry.LEVEL_BROKEN))

	counts := recorder.Reports(telemetry.LEVEL_COUNT)
	require.Len(t, counts, 2)
	require.Equal(t, int64(10), counts[0].Count)
	require.Equal(t, int64(1), counts[1].Count)

	require.ErrorIs(t, Failed(outcomes), parser.ErrWrongSite)
}

func TestParseThreadsCancelled(t *testing.T) {
	pool, _ := newTestPool(2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pool.ParseThreads(ctx, []Input{{Name: "a.html", Data: []byte(captchaMarkup)}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestActionFor(t *testing.T) {
	_, wrongSite := parser.ParseThread([]byte(captchaMarkup))
	cases := []struct {
		err    error
		expect Action
	}{
		{err: nil, expect: ACTION_NONE},
		{err: wrongSite, expect: ACTION_SKIP_BACKOFF},
		{err: fmt.Errorf("wrapped: %w", wrongSite), expect: ACTION_SKIP_BACKOFF},
		{err: &parser.ParserError{Kind: parser.ERROR_STRUCTURE_MISSING}, expect: ACTION_SKIP_BACKOFF},
		{err: &parser.ParserError{Kind: parser.ERROR_UNHANDLED}, expect: ACTION_ALERT},
		{err: errors.New("not a parser error"), expect: ACTION_ALERT},
	}
	for _, test := range cases {
		require.Equal(t, test.expect, ActionFor(test.err), test.err)
	}
}
