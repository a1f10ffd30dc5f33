package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/models"
	icache "github.com/elysenoe925-creator/NTS-PROJECT/internal/service/cache"
)

func TestBatchForecaster_EndToEnd(t *testing.T) {
	b := newTestBatch()

	tests := []struct {
		name       string
		history    models.SalesHistory
		horizon    int
		prediction float64
		confidence float64
	}{
		{"alternating series", models.SalesHistory{1, 2, 1, 2, 1, 2, 1, 2}, 7, 13, 0.92},
		{"empty history", models.SalesHistory{}, 30, 0, 0.95},
		{"all zero", models.SalesHistory{0, 0, 0, 0, 0, 0}, 10, 0, 0.95},
		{"linear trend", models.SalesHistory{1, 2, 3, 4, 5, 6, 7, 8}, 2, 19, 0.42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := b.Run(context.Background(), models.ForecastRequest{
				Horizon: tt.horizon,
				Items:   []models.Item{{SKU: "A", History: tt.history}},
			})
			require.NoError(t, err)
			require.Len(t, res, 1)
			assert.Equal(t, tt.prediction, res["A"].Prediction)
			assert.Equal(t, tt.confidence, res["A"].Confidence)
		})
	}
}

func TestBatchForecaster_RoundsTiesToEven(t *testing.T) {
	b := newTestBatch()
	res, err := b.Run(context.Background(), models.ForecastRequest{
		Horizon: 1,
		Items:   []models.Item{{SKU: "a", History: models.SalesHistory{1, 1, 4, 2}}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2.0, res["a"].Prediction)
	assert.Equal(t, 0.62, res["a"].Confidence)
}

func TestBatchForecaster_HugePredictionStaysFinite(t *testing.T) {
	b := newTestBatch()
	res, err := b.Run(context.Background(), models.ForecastRequest{
		Horizon: 30,
		Items:   []models.Item{{SKU: "big", History: models.SalesHistory{1e306, 1e306}}},
	})
	require.NoError(t, err)
	pred := res["big"].Prediction
	assert.False(t, math.IsInf(pred, 0))
	assert.InDelta(t, 3e307, pred, 1e293)

	_, err = json.Marshal(res)
	require.NoError(t, err)
}

func TestBatchForecaster_RunIsIdempotent(t *testing.T) {
	b := newTestBatch(WithWorkers(8))
	items := make([]models.Item, 0, 200)
	for i := 0; i < 200; i++ {
		h := make(models.SalesHistory, i%12)
		for j := range h {
			h[j] = float64((i*7 + j*3) % 11)
		}
		items = append(items, models.Item{SKU: fmt.Sprintf("sku-%d", i%150), History: h})
	}
	req := models.ForecastRequest{Horizon: 14, Items: items}

	first, err := b.Run(context.Background(), req)
	require.NoError(t, err)
	second, err := b.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, first, 150)
	assert.Equal(t, first, second)
}

func TestBatchForecaster_DuplicateSKULastWins(t *testing.T) {
	b := newTestBatch(WithWorkers(8))
	items := make([]models.Item, 0, 50)
	for i := 0; i < 49; i++ {
		items = append(items, models.Item{SKU: "dup", History: models.SalesHistory{1}})
	}
	items = append(items, models.Item{SKU: "dup", History: models.SalesHistory{5}})

	res, err := b.Run(context.Background(), models.ForecastRequest{Horizon: 2, Items: items})
	require.NoError(t, err)
	assert.Len(t, res, 1)
	assert.Equal(t, 10.0, res["dup"].Prediction)
}

func TestBatchForecaster_Cancelled(t *testing.T) {
	b := newTestBatch()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := b.Run(ctx, models.ForecastRequest{Horizon: 1, Items: []models.Item{{SKU: "a"}}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBatchForecaster_RunRaw(t *testing.T) {
	b := newTestBatch(WithDefaultHorizon(30))

	var raw models.RawForecastRequest
	require.NoError(t, json.Unmarshal([]byte(`{"details":[{"sku":"A","history":[2,null,"2"]},{"history":[1]}]}`), &raw))

	res, err := b.RunRaw(context.Background(), "http", &raw)
	require.NoError(t, err)
	assert.Equal(t, 40.0, res["A"].Prediction)
	assert.Equal(t, 30.0, res[models.NullSKU].Prediction)
}

func TestBatchForecaster_RunRawUsesCache(t *testing.T) {
	c := icache.NewTTLCache(10)
	b := newTestBatch(WithResultCache(c, time.Minute))
	h := 3
	raw := &models.RawForecastRequest{
		Horizon: &h,
		Details: []models.RawItem{{SKU: "A", History: []models.SaleValue{{Value: 1}}}},
	}

	first, err := b.RunRaw(context.Background(), "http", raw)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	second, err := b.RunRaw(context.Background(), "http", raw)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, c.Len())
}

func TestSanitize(t *testing.T) {
	zero := 0
	req := Sanitize(&models.RawForecastRequest{
		Horizon: &zero,
		Details: []models.RawItem{{SKU: "x", History: []models.SaleValue{{Null: true}, {Value: 4}}}},
	}, 30)
	assert.Equal(t, 0, req.Horizon)
	assert.Equal(t, models.SalesHistory{0, 4}, req.Items[0].History)

	req = Sanitize(nil, 30)
	assert.Equal(t, 30, req.Horizon)
	assert.Empty(t, req.Items)
}
