package pins

// Row is the persisted state of one host channel: Pins[p] tells whether
// plugin channel p is connected. Rows and cells missing from storage are
// absent, not disconnected.
type Row struct {
	Host int    `json:"host"`
	Pins []bool `json:"pins"`
}

// Settings is the persisted form of a connector. Channel counts are not
// stored; they come from the plugin.
type Settings struct {
	In  []Row `json:"in"`
	Out []Row `json:"out"`
}

func (s Settings) rows(dir Direction) []Row {
	if dir == Out {
		return s.Out
	}
	return s.In
}

type pendingRows struct {
	rows  []Row
	reset bool
}

// Settings returns the current pins of both directions.
func (c *Connector) Settings() Settings {
	s := c.cur.Load()
	return Settings{In: rowsOf(s.in), Out: rowsOf(s.out)}
}

func rowsOf(m *Matrix) []Row {
	pins := m.Pins()
	rows := make([]Row, len(pins))
	for h := range pins {
		rows[h] = Row{Host: h, Pins: pins[h]}
	}
	return rows
}

// LoadSettings applies persisted pins. The first load onto a fresh
// connector keeps the default connections for absent cells; later loads
// disconnect them. Cells outside the current dimensions are ignored, and a
// direction whose plugin channel count is still unknown keeps its rows
// until the count is set.
func (c *Connector) LoadSettings(settings Settings) {
	c.mu.Lock()
	reset := c.loaded
	c.loaded = true

	old := c.cur.Load()
	next := newState(old.in.Clone(), old.out.Clone())
	for _, dir := range []Direction{In, Out} {
		m := next.matrix(dir)
		rows := settings.rows(dir)
		if !m.Known() {
			c.pending[dir] = &pendingRows{rows: rows, reset: reset}
			continue
		}
		c.pending[dir] = nil
		applyRows(m, rows, reset)
	}
	next.refresh()
	c.cur.Store(next)
	ev := c.countsEvent(next)
	ev.Kind = EventLoaded
	c.mu.Unlock()

	c.logger.Info("pin settings loaded", "in", ev.In, "out", ev.Out, "reset", reset)
	c.notify(ev)
}

// applyPending applies rows held back by LoadSettings to directions whose
// count became known. Called with c.mu held.
func (c *Connector) applyPending(s *state) {
	for _, dir := range []Direction{In, Out} {
		p := c.pending[dir]
		if p == nil || !s.matrix(dir).Known() {
			continue
		}
		applyRows(s.matrix(dir), p.rows, p.reset)
		c.pending[dir] = nil
	}
}

func applyRows(m *Matrix, rows []Row, reset bool) {
	if reset {
		for i := range m.cells {
			m.cells[i].Store(false)
		}
	}
	for _, row := range rows {
		if row.Host < 0 || row.Host >= m.HostChannelCount() {
			continue
		}
		for p, v := range row.Pins {
			if p >= m.ChannelCount() {
				break
			}
			m.cells[row.Host*m.ChannelCount()+p].Store(v)
		}
	}
}
