package jyotish

import (
	"math"
	"time"

	"github.com/Dan9191/kundli-service/internal/models"
)

// DashaYear is the Julian year used to turn dasha years into instants
const DashaYear = time.Duration(365.25 * 24 * float64(time.Hour))

var dashaLevels = [3]models.DashaLevel{models.Mahadasha, models.Antardasha, models.Pratyantar}

// Vimshottari builds the dasha timeline from the birth Moon. The first
// Mahadasha's cycle began before birth; its elapsed part and any sub-periods
// that ended before birth are clipped, so every parent still has nine children
// whose durations add up to its own.
func Vimshottari(birth time.Time, moonLon float64, asOf time.Time) models.Dasha {
	nk := NakshatraOf(moonLon)
	f := ElapsedFraction(moonLon)
	first := fullDuration(nk.Lord)
	elapsed := time.Duration(math.Round(f * float64(first)))
	cycleStart := birth.Add(-elapsed)

	seq := DashaSequence(nk.Lord)
	mahadashas := make([]models.DashaPeriod, 0, len(seq))
	cursor := cycleStart
	for _, lord := range seq {
		full := fullDuration(lord)
		mahadashas = append(mahadashas, period(lord, 0, cursor, full, birth))
		cursor = cursor.Add(full)
	}

	return models.Dasha{
		System:          "Vimshottari",
		StartLord:       nk.Lord,
		ElapsedFraction: f,
		CycleStart:      cycleStart,
		Balance:         mahadashas[0].Duration,
		Current:         CurrentDasha(mahadashas, asOf),
		Mahadashas:      mahadashas,
	}
}

func fullDuration(lord models.Body) time.Duration {
	return time.Duration(DashaYears(lord)) * DashaYear
}

// period lays out [start, start+full) for lord, clipped to begin no earlier
// than from, and recursively partitions it down to the pratyantar level.
func period(lord models.Body, depth int, start time.Time, full time.Duration, from time.Time) models.DashaPeriod {
	end := start.Add(full)
	clipped := start
	if from.After(clipped) {
		clipped = from
	}
	if clipped.After(end) {
		clipped = end
	}
	p := models.DashaPeriod{
		Lord:         lord,
		Level:        dashaLevels[depth],
		Start:        clipped,
		End:          end,
		Duration:     end.Sub(clipped),
		FullDuration: full,
		Elapsed:      !end.After(from),
	}
	if depth+1 >= len(dashaLevels) {
		return p
	}

	p.Children = make([]models.DashaPeriod, 0, 9)
	cumulative := 0
	prev := start
	for i, sub := range DashaSequence(lord) {
		cumulative += DashaYears(sub)
		next := end
		if i < 8 {
			next = start.Add(scale(full, cumulative, DashaCycleYears))
		}
		p.Children = append(p.Children, period(sub, depth+1, prev, next.Sub(prev), from))
		prev = next
	}
	return p
}

// scale returns d·num/den rounded to the nanosecond without overflowing
func scale(d time.Duration, num, den int) time.Duration {
	return time.Duration(math.Round(float64(d) * float64(num) / float64(den)))
}

// CurrentDasha walks the timeline to the periods running at t
func CurrentDasha(mahadashas []models.DashaPeriod, t time.Time) models.CurrentDasha {
	cur := models.CurrentDasha{AsOf: t}
	md := locate(mahadashas, t)
	if md == nil {
		return cur
	}
	cur.Mahadasha = summary(md)
	ad := locate(md.Children, t)
	if ad == nil {
		return cur
	}
	cur.Antardasha = summary(ad)
	cur.Pratyantar = summary(locate(ad.Children, t))
	return cur
}

func locate(periods []models.DashaPeriod, t time.Time) *models.DashaPeriod {
	for i := range periods {
		if periods[i].Contains(t) {
			return &periods[i]
		}
	}
	return nil
}

func summary(p *models.DashaPeriod) *models.DashaPeriod {
	if p == nil {
		return nil
	}
	s := *p
	s.Children = nil
	return &s
}
