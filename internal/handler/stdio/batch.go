// Package stdio runs one forecast batch read from a stream, for callers that
// spawn the binary per request.
package stdio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/models"
	"github.com/elysenoe925-creator/NTS-PROJECT/internal/usecase"
	"github.com/elysenoe925-creator/NTS-PROJECT/pkg/logger"
)

// Runner reads a RawForecastRequest and writes the result mapping.
type Runner struct {
	batch *usecase.BatchForecaster
	l     *logger.Logger
}

func NewRunner(batch *usecase.BatchForecaster, l *logger.Logger) *Runner {
	if l == nil {
		l = logger.NewNop()
	}
	return &Runner{batch: batch, l: l}
}

// Run returns the process exit code. Empty or falsy input writes nothing;
// unreadable input writes {"error": "..."} and returns 1.
func (r *Runner) Run(ctx context.Context, in io.Reader, out io.Writer) int {
	data, err := io.ReadAll(in)
	if err != nil {
		return r.fail(out, fmt.Errorf("read input: %w", err))
	}
	if len(data) == 0 {
		return 0
	}

	var probe interface{}
	if err := json.Unmarshal(data, &probe); err != nil {
		return r.fail(out, err)
	}
	if isFalsy(probe) {
		return 0
	}
	if _, ok := probe.(map[string]interface{}); !ok {
		return r.fail(out, fmt.Errorf("request must be a JSON object, got %T", probe))
	}

	var req models.RawForecastRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return r.fail(out, err)
	}

	res, err := r.batch.RunRaw(ctx, "stdin", &req)
	if err != nil {
		return r.fail(out, err)
	}
	if err := json.NewEncoder(out).Encode(res); err != nil {
		r.l.Error("write result", logger.Error(err))
		return 1
	}
	r.l.Debug("stdin batch done", logger.Int("items", len(res)))
	return 0
}

func (r *Runner) fail(out io.Writer, err error) int {
	r.l.Error("stdin batch failed", logger.Error(err))
	_ = json.NewEncoder(out).Encode(map[string]string{"error": err.Error()})
	return 1
}

// isFalsy matches the JSON values a caller treats as "no request".
func isFalsy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case float64:
		return t == 0
	case string:
		return t == ""
	case []interface{}:
		return len(t) == 0
	case map[string]interface{}:
		return len(t) == 0
	}
	return false
}
