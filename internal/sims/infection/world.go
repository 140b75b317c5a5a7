package infection

import (
	"fmt"

	"goi/internal/core"
)

// World is the single-threaded reference implementation of the Game of
// Infection, exposed as a core.Sim for the interactive viewer. It advances
// through exactly the same rule evaluator, buffers, schedule, and toll types
// the parallel engine uses, which is what the engine's determinism is tested
// against.
type World struct {
	cfg Config

	bufs       *buffers
	sched      *Schedule
	pending    *Schedule
	toll       deathToll
	generation int

	display []uint8
	rng     *core.RNG
}

// New returns an infection world with the provided dimensions using defaults.
func New(rows, cols int) *World {
	cfg := DefaultConfig()
	cfg.Rows = rows
	cfg.Cols = cols
	return NewWithConfig(cfg)
}

// NewWithConfig returns an infection world configured from the provided options.
func NewWithConfig(cfg Config) *World {
	if cfg.Factions < 2 {
		cfg.Factions = 2
	}
	if cfg.Factions > MaxFactions {
		cfg.Factions = MaxFactions
	}
	start := core.NewFactionGrid(cfg.Rows, cfg.Cols)
	w := &World{
		cfg:     cfg,
		bufs:    newBuffers(start),
		display: make([]uint8, start.Rows*start.Cols),
		rng:     core.NewRNG(cfg.Seed),
	}
	return w
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "infection" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.bufs.Current().Cols, H: w.bufs.Current().Rows} }

// Cells exposes the current display buffer.
func (w *World) Cells() []uint8 { return w.display }

// Grid exposes the current generation's faction grid.
func (w *World) Grid() *core.FactionGrid { return w.bufs.Current() }

// DeathToll reports combat deaths accumulated since the last Reset.
func (w *World) DeathToll() int { return w.toll.Value() }

// Generation reports how many generations have elapsed since the last Reset.
func (w *World) Generation() int { return w.generation }

// SetSchedule attaches scripted invasions. The schedule is consumed from the
// next Reset onward; the caller keeps ownership of its copy.
func (w *World) SetSchedule(s *Schedule) {
	w.sched = s.clone()
	w.pending = s.clone()
}

// SetStart overwrites the world with the given grid and re-arms the schedule.
// The grid is copied.
func (w *World) SetStart(start *core.FactionGrid) {
	w.bufs = newBuffers(start)
	w.display = make([]uint8, start.Rows*start.Cols)
	w.generation = 0
	w.toll.Reset()
	w.pending = w.sched.clone()
	w.refreshDisplay()
}

// Reset seeds a deterministic random multi-faction world.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng = core.NewRNG(effective)
	core.FillFactions(w.rng, w.bufs.Current(), w.cfg.Factions, w.cfg.Density)
	w.bufs.Next().Clear()
	w.generation = 0
	w.toll.Reset()
	w.pending = w.sched.clone()
	w.refreshDisplay()
}

// Step advances the simulation by one generation.
func (w *World) Step() {
	w.generation++
	overlay := w.pending.overlayFor(w.generation)
	cur, next := w.bufs.Current(), w.bufs.Next()
	for i := 0; i < cur.Rows*cur.Cols; i++ {
		row, col := cur.RowCol(i)
		state, fought := nextState(cur, overlay, row, col)
		next.Set(row, col, state)
		if fought {
			w.toll.Add(1)
		}
	}
	w.bufs.Swap()
	w.refreshDisplay()
}

func (w *World) refreshDisplay() {
	for i, f := range w.bufs.Current().Cells() {
		w.display[i] = uint8(f)
	}
}

// Parameters exposes live run values for the HUD panel.
func (w *World) Parameters() core.ParameterSnapshot {
	populations := make([]int, MaxFactions)
	for _, f := range w.bufs.Current().Cells() {
		if f > core.Dead {
			populations[f]++
		}
	}
	run := core.ParameterGroup{
		Name: "Run",
		Params: []core.Parameter{
			{Key: "generation", Label: "Generation", Type: core.ParamTypeInt, Value: fmt.Sprintf("%d", w.generation)},
			{Key: "death_toll", Label: "Death toll", Type: core.ParamTypeInt, Value: fmt.Sprintf("%d", w.toll.Value())},
			{Key: "invasions_left", Label: "Invasions left", Type: core.ParamTypeInt, Value: fmt.Sprintf("%d", w.pending.remaining())},
		},
	}
	factions := core.ParameterGroup{Name: "Factions"}
	for f := 1; f < MaxFactions; f++ {
		if populations[f] == 0 {
			continue
		}
		factions.Params = append(factions.Params, core.Parameter{
			Key:   fmt.Sprintf("faction_%d", f),
			Label: fmt.Sprintf("Faction %d", f),
			Type:  core.ParamTypeInt,
			Value: fmt.Sprintf("%d", populations[f]),
		})
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{run, factions}}
}

func init() {
	core.Register("infection", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
