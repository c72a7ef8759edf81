package render

import (
	"fmt"
	"time"

	"github.com/hako/durafmt"
)

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

// FormatDuration renders d with its two largest units, e.g. "1 s 200 ms"
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0 ms"
	}
	return durafmt.Parse(d).LimitFirstN(2).Format(shortUnits)
}

// TempoLabel describes a beat length and its rate
func TempoLabel(beat time.Duration) string {
	if beat <= 0 {
		return "no tempo"
	}
	return fmt.Sprintf("%s/beat · %d BPM", FormatDuration(beat), int(time.Minute/beat))
}
