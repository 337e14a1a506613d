package downloader

// milestones converts raw byte progress into coarse percentage milestones
// (0, 25, 50, 75, 100). Emitted values never move backward, even across
// retries of the same item, and 100 is only emitted by finish.
type milestones struct {
	emit func(pct int)
	last int
}

func newMilestones(emit func(int)) *milestones {
	return &milestones{emit: emit, last: -1}
}

// start signals the beginning of a transfer.
func (m *milestones) start() {
	m.emitAt(0)
}

// update maps byte counts onto the highest reached milestone below 100.
// With an unknown total no intermediate milestones are emitted.
func (m *milestones) update(written, total int64) {
	if total <= 0 {
		return
	}
	pct := int(written * 100 / total)
	reached := 0
	for _, th := range []int{25, 50, 75} {
		if pct >= th {
			reached = th
		}
	}
	if reached > 0 {
		m.emitAt(reached)
	}
}

// finish signals a completed transfer.
func (m *milestones) finish() {
	m.emitAt(100)
}

func (m *milestones) emitAt(pct int) {
	if m.emit == nil || pct <= m.last {
		return
	}
	m.last = pct
	m.emit(pct)
}
