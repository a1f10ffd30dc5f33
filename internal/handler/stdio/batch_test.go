package stdio

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elysenoe925-creator/NTS-PROJECT/internal/services/forecast"
	"github.com/elysenoe925-creator/NTS-PROJECT/internal/usecase"
	"github.com/elysenoe925-creator/NTS-PROJECT/pkg/metrics"
)

func newRunner() *Runner {
	b := usecase.NewBatchForecaster(forecast.NewTrendForecaster(), forecast.NewVolatilityScorer(), metrics.Nop{})
	return NewRunner(b, nil)
}

func run(t *testing.T, input string) (string, int) {
	t.Helper()
	var out bytes.Buffer
	code := newRunner().Run(context.Background(), strings.NewReader(input), &out)
	return out.String(), code
}

func TestRunBatch(t *testing.T) {
	out, code := run(t, `{"horizon":2,"details":[{"sku":"A","history":[1,2,3,4,5,6,7,8]},{"sku":"A","history":[0,0,0,0,0,0]}]}`)
	assert.Equal(t, 0, code)
	assert.JSONEq(t, `{"A":{"prediction":0,"confidence":0.95}}`, out)
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestRunDefaults(t *testing.T) {
	out, code := run(t, `{"details":[{"history":[2,2]}]}`)
	assert.Equal(t, 0, code)
	assert.JSONEq(t, `{"null":{"prediction":60,"confidence":0.95}}`, out)

	out, code = run(t, `{"horizon":5}`)
	assert.Equal(t, 0, code)
	assert.JSONEq(t, `{}`, out)
}

func TestRunSilentInputs(t *testing.T) {
	for _, in := range []string{"", "{}", "[]", "null", "0", `""`, "false"} {
		out, code := run(t, in)
		assert.Equal(t, 0, code, in)
		assert.Empty(t, out, in)
	}
}

func TestRunErrors(t *testing.T) {
	for _, in := range []string{"{not json", " ", "[1,2]", `{"details":[{"sku":"a","history":["x"]}]}`} {
		out, code := run(t, in)
		assert.Equal(t, 1, code, in)
		var msg map[string]string
		require.NoError(t, json.Unmarshal([]byte(out), &msg), in)
		assert.NotEmpty(t, msg["error"], in)
	}
}
