package http

import (
	"time"

	xutil "github.com/elysenoe925-creator/NTS-PROJECT/pkg/util"
)

// ParseTime tries RFC3339, RFC3339Nano, a plain date and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) { return xutil.ParseTime(s) }
