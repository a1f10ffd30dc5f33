package features

import (
	"time"

	"github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/models"
)

// Day is the bucket width of a sales history.
const Day = 24 * time.Hour

// WindowEndingAt returns the [from, to) range of `days` whole days ending at
// the day containing `at`, in at's location.
func WindowEndingAt(at time.Time, days int) (time.Time, time.Time) {
	end := TruncateDay(at).AddDate(0, 0, 1)
	return end.AddDate(0, 0, -days), end
}

// TruncateDay drops the time of day, keeping the location.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// BuildDailyHistory lays aggregated rows onto one slot per day in [from, from+days).
// Days without a row are zero; rows outside the window are ignored and rows
// landing on the same day are summed.
func BuildDailyHistory(rows []models.DailySales, from time.Time, days int) models.SalesHistory {
	if days <= 0 {
		return models.SalesHistory{}
	}
	from = TruncateDay(from)
	out := make(models.SalesHistory, days)
	for _, r := range rows {
		day := TruncateDay(r.Day.In(from.Location()))
		idx := daysBetween(from, day)
		if idx < 0 || idx >= days {
			continue
		}
		out[idx] += r.Qty
	}
	return out
}

// daysBetween counts calendar days so DST shifts do not skew the index.
func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / Day)
}
