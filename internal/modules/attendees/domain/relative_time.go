package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	day   = 24 * time.Hour
	year  = time.Duration(365.25 * float64(day))
	month = year / 12
)

// NotCheckedInLabel is shown in place of a check-in time that is absent.
const NotCheckedInLabel = "Não fez check-in"

// ptBRMagnitudes reproduces the dayjs pt-br relative time: a unit switches at
// 45s, 90s, 45min, 90min, 22h, 36h, 26d, 46d, 11 months and 18 months, and
// counts are rounded half up. Each rounded count gets its own entry because
// humanize truncates.
var ptBRMagnitudes = buildPTBRMagnitudes()

func buildPTBRMagnitudes() []humanize.RelTimeMagnitude {
	mags := []humanize.RelTimeMagnitude{
		{D: 44*time.Second + time.Second/2, Format: "%s poucos segundos", DivBy: time.Second},
		{D: 89*time.Second + time.Second/2, Format: "%s um minuto", DivBy: time.Second},
	}
	mags = appendCounts(mags, time.Minute, 2, 44, "minutos")
	mags = append(mags, humanize.RelTimeMagnitude{D: 89*time.Minute + time.Minute/2, Format: "%s uma hora", DivBy: time.Minute})
	mags = appendCounts(mags, time.Hour, 2, 21, "horas")
	mags = append(mags, humanize.RelTimeMagnitude{D: 35*time.Hour + time.Hour/2, Format: "%s um dia", DivBy: time.Hour})
	mags = appendCounts(mags, day, 2, 25, "dias")
	mags = append(mags, humanize.RelTimeMagnitude{D: 45*day + day/2, Format: "%s um mês", DivBy: day})
	mags = appendCounts(mags, month, 2, 10, "meses")
	mags = append(mags, humanize.RelTimeMagnitude{D: 17*month + month/2, Format: "%s um ano", DivBy: month})
	mags = appendCounts(mags, year, 2, 200, "anos")
	return append(mags, humanize.RelTimeMagnitude{D: math.MaxInt64, Format: "%s %d anos", DivBy: year})
}

// appendCounts adds one entry per count in [from, to]; count n covers
// [n-0.5, n+0.5) units.
func appendCounts(mags []humanize.RelTimeMagnitude, unit time.Duration, from, to int, noun string) []humanize.RelTimeMagnitude {
	for n := from; n <= to; n++ {
		mags = append(mags, humanize.RelTimeMagnitude{
			D:      time.Duration(n)*unit + unit/2,
			Format: fmt.Sprintf("%%s %d %s", n, noun),
			DivBy:  unit,
		})
	}
	return mags
}

// RelativeTime renders then relative to now, e.g. "há 3 dias" or "em 2 horas".
func RelativeTime(then, now time.Time) string {
	return humanize.CustomRelTime(then, now, "há", "em", ptBRMagnitudes)
}

// CheckInLabel renders the check-in column for attendee.
func CheckInLabel(attendee Attendee, now time.Time) string {
	if attendee.CheckedInAt == nil {
		return NotCheckedInLabel
	}
	return RelativeTime(*attendee.CheckedInAt, now)
}
