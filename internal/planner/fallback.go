package planner

import (
	"time"
)

// FallbackCalendar places posts with pure date arithmetic: the first post
// lands two days after the grid's Sunday and the rest follow every
// floor(35/total) days. The same input always yields the same plan.
func FallbackCalendar(in CalendarInput) *CalendarPlan {
	slots := collectSlots(in.Weeks, in.Strategy)
	gridStart := GridStart(in.Start)
	clock := in.Prefs.clock()
	channels := in.Prefs.channels()

	interval := 1
	if len(slots) > 0 && gridDays/len(slots) > 1 {
		interval = gridDays / len(slots)
	}

	grid := newGrid(gridStart)
	for k := range slots {
		offset := 2 + k*interval
		day := gridStart.AddDate(0, 0, offset)
		slots[k].Date = day.Add(clock)
		slots[k].Channel = channels[k%len(channels)]

		// posts past the fifth week keep their date but are not drawn
		if offset < gridDays {
			cell := &grid.Rows[offset/7][offset%7]
			cell.Posts = append(cell.Posts, slots[k])
		}
	}

	return &CalendarPlan{
		Source: SourceFallback,
		HTML:   renderGrid(grid),
		Grid:   grid,
		Slots:  slots,
	}
}

func newGrid(start time.Time) *Grid {
	g := &Grid{
		Start:   start,
		Headers: append([]string(nil), Weekdays...),
		Rows:    make([][]Cell, gridWeeks),
	}
	for r := range g.Rows {
		g.Rows[r] = make([]Cell, 7)
		for c := range g.Rows[r] {
			g.Rows[r][c] = Cell{Date: start.AddDate(0, 0, r*7+c)}
		}
	}
	return g
}
