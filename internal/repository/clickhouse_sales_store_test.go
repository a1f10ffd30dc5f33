package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/models"
)

func TestDailySalesQuery(t *testing.T) {
	loc := time.FixedZone("EAT", 3*3600)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 0, 30)

	q, args := dailySalesQuery("nts.sales", "A1", "", from, to)
	assert.Equal(t, "SELECT toDate(ts) AS day, sum(qty) AS qty FROM nts.sales WHERE sku = ? AND ts >= ? AND ts < ? GROUP BY day ORDER BY day ASC", q)
	require.Len(t, args, 3)
	assert.Equal(t, time.UTC, args[1].(time.Time).Location())

	q, args = dailySalesQuery("nts.sales", "A1", "majunga", from, to)
	assert.Contains(t, q, "AND store = ?")
	assert.Equal(t, "majunga", args[3])
}

func TestInsertSalesQuerySkipsInvalidRows(t *testing.T) {
	ts := time.Unix(1709294400, 0)
	q, args := insertSalesQuery("nts.sales", []models.Sale{
		{SKU: "A1", Store: "s1", Qty: 2, TS: ts},
		{SKU: "", Store: "s1", Qty: 1, TS: ts},
		{SKU: "B2", Store: "s2", Qty: 1},
		{SKU: "C3", Store: "s1", Qty: 4, TS: ts},
	})
	assert.Equal(t, "INSERT INTO nts.sales (ts, sku, store, qty) VALUES (?, ?, ?, ?),(?, ?, ?, ?)", q)
	assert.Len(t, args, 8)
	assert.Equal(t, "C3", args[5])
}

func TestInsertSalesQueryEmpty(t *testing.T) {
	q, args := insertSalesQuery("nts.sales", []models.Sale{{SKU: ""}})
	assert.Empty(t, q)
	assert.Nil(t, args)
}

func TestSalesSchema(t *testing.T) {
	stmts := SalesSchema("nts", "sales")
	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE DATABASE IF NOT EXISTS nts", stmts[0])
	assert.True(t, strings.HasPrefix(stmts[1], fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s", "nts.sales")))
}
