// Command toll-sweep runs the same worlds through the parallel engine at
// several worker counts, checks that the final grid and death toll never
// depend on the worker count, and charts the death toll over generations.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"goi/internal/core"
	"goi/internal/sims/infection"

	"github.com/wcharczuk/go-chart/v2"
	"golang.org/x/sync/semaphore"
)

type scenarioResult struct {
	seed     int64
	toll     int
	series   []float64 // death toll after each generation
	mismatch string    // non-empty when worker counts disagreed
}

func main() {
	rows := flag.Int("rows", 64, "world height in cells")
	cols := flag.Int("cols", 64, "world width in cells")
	generations := flag.Int("generations", 120, "generations per scenario")
	factions := flag.Int("factions", 4, "faction id space for random worlds, including dead")
	density := flag.Float64("density", 0.25, "occupancy probability for random worlds")
	baseSeed := flag.Int64("seed", 1, "first seed of the sweep")
	seeds := flag.Int("seeds", 32, "number of consecutive seeds to sweep")
	threadList := flag.String("threads", "1,2,3,4,8", "comma-separated worker counts to compare")
	workers := flag.Int("workers", runtime.NumCPU(), "concurrent scenario evaluations")
	chartPath := flag.String("chart", "tolls.png", "output PNG for the toll chart, empty to skip")
	flag.Parse()

	threadCounts, err := parseThreadList(*threadList)
	if err != nil {
		log.Fatal(err)
	}
	if *generations < 1 {
		log.Fatal("generations must be at least 1")
	}

	fmt.Printf("Sweeping %d seeds at worker counts %v (%d concurrent evaluations)\n", *seeds, threadCounts, *workers)

	ctx := context.Background()
	sem := semaphore.NewWeighted(int64(*workers))
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	start := time.Now()
	go func() {
		for i := 0; i < *seeds; i++ {
			seed := *baseSeed + int64(i)
			if err := sem.Acquire(ctx, 1); err != nil {
				log.Fatal(err)
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer sem.Release(1)
				results <- runScenario(*rows, *cols, *generations, *factions, *density, seed, threadCounts)
			}()
		}
		wg.Wait()
		close(results)
	}()

	var all []scenarioResult
	mismatches := 0
	for res := range results {
		all = append(all, res)
		if res.mismatch != "" {
			mismatches++
			fmt.Printf("seed %d: MISMATCH %s\n", res.seed, res.mismatch)
		}
	}
	elapsed := time.Since(start)

	sort.Slice(all, func(i, j int) bool { return all[i].toll > all[j].toll })
	fmt.Printf("\nTop 5 tolls (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < 5; i++ {
		fmt.Printf("%2d) seed=%d toll=%d\n", i+1, all[i].seed, all[i].toll)
	}

	if *chartPath != "" {
		if err := renderChart(*chartPath, all); err != nil {
			log.Fatalf("render chart: %v", err)
		}
		fmt.Printf("wrote %s\n", *chartPath)
	}

	if mismatches != 0 {
		fmt.Printf("\n%d of %d seeds varied with the worker count\n", mismatches, len(all))
		os.Exit(1)
	}
	fmt.Printf("all %d seeds identical across worker counts\n", len(all))
}

// runScenario runs one seeded world at every worker count and compares the
// outcomes. The toll series is recorded from the first worker count.
func runScenario(rows, cols, generations, factions int, density float64, seed int64, threadCounts []int) scenarioResult {
	world := core.NewFactionGrid(rows, cols)
	core.FillFactions(core.NewRNG(seed), world, factions, density)

	res := scenarioResult{seed: seed}
	var refGrid *core.FactionGrid
	for i, threads := range threadCounts {
		var final *core.FactionGrid
		series := make([]float64, 0, generations)
		toll, err := infection.Run(threads, generations, world, nil,
			infection.WithObserver(func(s infection.Snapshot) {
				series = append(series, float64(s.DeathToll))
				if s.Generation == generations {
					final = s.Grid.Clone()
				}
			}))
		if err != nil {
			res.mismatch = err.Error()
			return res
		}
		if i == 0 {
			res.toll = toll
			res.series = series
			refGrid = final
			continue
		}
		if toll != res.toll {
			res.mismatch = fmt.Sprintf("toll %d at %d workers vs %d at %d", toll, threads, res.toll, threadCounts[0])
			return res
		}
		if !refGrid.Equal(final) {
			res.mismatch = fmt.Sprintf("final grid at %d workers differs from %d workers", threads, threadCounts[0])
			return res
		}
	}
	return res
}

// renderChart plots the death toll over generations for the highest-toll
// seeds.
func renderChart(path string, all []scenarioResult) error {
	var series []chart.Series
	for i, res := range all {
		if i == 5 {
			break
		}
		xs := make([]float64, len(res.series))
		for g := range xs {
			xs[g] = float64(g + 1)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("seed %d", res.seed),
			XValues: xs,
			YValues: res.series,
			Style:   chart.Style{StrokeColor: chart.GetDefaultColor(i), StrokeWidth: 2.0},
		})
	}
	graph := chart.Chart{
		Title:  "Combat death toll by generation",
		XAxis:  chart.XAxis{Name: "generation"},
		YAxis:  chart.YAxis{Name: "death toll"},
		Series: series,
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return graph.Render(chart.PNG, f)
}

func parseThreadList(list string) ([]int, error) {
	var counts []int
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid worker count %q", part)
		}
		counts = append(counts, n)
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("no worker counts given")
	}
	return counts, nil
}
