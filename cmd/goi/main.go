// Command goi runs the Game of Infection headlessly: it builds a world from a
// scenario file or from a random seed, simulates the requested number of
// generations on a fixed worker pool, and prints the combat death toll.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"goi/internal/core"
	"goi/internal/sims/infection"
)

func main() {
	rows := flag.Int("rows", 64, "world height in cells")
	cols := flag.Int("cols", 64, "world width in cells")
	threads := flag.Int("threads", 4, "fixed worker count")
	generations := flag.Int("generations", 100, "generations to simulate")
	factions := flag.Int("factions", 4, "faction id space for random worlds, including dead")
	density := flag.Float64("density", 0.25, "occupancy probability for random worlds")
	seed := flag.Int64("seed", 1337, "seed for random worlds")
	scenario := flag.String("scenario", "", "scenario file with world and invasion grids")
	watch := flag.Bool("watch", false, "print the world after every generation")
	tps := flag.Int("tps", 10, "watch mode output rate in generations per second")
	flag.Parse()

	var start *core.FactionGrid
	var sched *infection.Schedule
	if *scenario != "" {
		f, err := os.Open(*scenario)
		if err != nil {
			log.Fatalf("open scenario: %v", err)
		}
		world, times, plans, err := parseScenario(f)
		f.Close()
		if err != nil {
			log.Fatalf("parse scenario %s: %v", *scenario, err)
		}
		start = world
		sched, err = infection.NewSchedule(times, plans, world.Rows, world.Cols)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		start = core.NewFactionGrid(*rows, *cols)
		core.FillFactions(core.NewRNG(*seed), start, *factions, *density)
	}

	var opts []infection.Option
	if *watch {
		pacer := core.NewFixedStep(*tps)
		fmt.Println("=== WORLD 0 ===")
		if err := infection.WriteWorld(os.Stdout, start); err != nil {
			log.Fatalf("write world: %v", err)
		}
		opts = append(opts, infection.WithObserver(func(s infection.Snapshot) {
			pacer.Block()
			fmt.Printf("=== WORLD %d (toll %d) ===\n", s.Generation, s.DeathToll)
			if err := infection.WriteWorld(os.Stdout, s.Grid); err != nil {
				log.Fatalf("write world: %v", err)
			}
		}))
	}

	toll, err := infection.Run(*threads, *generations, start, sched, opts...)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("death toll: %d\n", toll)
}
