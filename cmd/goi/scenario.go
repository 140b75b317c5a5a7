package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"goi/internal/core"
)

// parseScenario reads the driver's scenario format:
//
//	world
//	..1..
//	.222.
//
//	invasion 5
//	33...
//	.....
//
// Blank lines and '#' comment lines are ignored; a grid runs until the next
// block header. Grid rows use '.' for dead cells and the digits 1-9 for
// factions. Every grid must have the same dimensions as the world block, and
// invasion generations must be strictly ascending.
func parseScenario(r io.Reader) (*core.FactionGrid, []int, []*core.FactionGrid, error) {
	scanner := bufio.NewScanner(r)
	var (
		world *core.FactionGrid
		times []int
		plans []*core.FactionGrid
	)

	line, ok := nextLine(scanner)
	for ok {
		switch {
		case line == "world":
			if world != nil {
				return nil, nil, nil, fmt.Errorf("duplicate world block")
			}
			grid, next, stillOpen, err := parseGrid(scanner, 0, 0)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("world block: %w", err)
			}
			world = grid
			line, ok = next, stillOpen
		case strings.HasPrefix(line, "invasion "):
			if world == nil {
				return nil, nil, nil, fmt.Errorf("invasion block before world block")
			}
			gen, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "invasion ")))
			if err != nil || gen < 1 {
				return nil, nil, nil, fmt.Errorf("invalid invasion generation in %q", line)
			}
			grid, next, stillOpen, err := parseGrid(scanner, world.Rows, world.Cols)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("invasion %d block: %w", gen, err)
			}
			times = append(times, gen)
			plans = append(plans, grid)
			line, ok = next, stillOpen
		default:
			return nil, nil, nil, fmt.Errorf("unexpected line %q", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, nil, err
	}
	if world == nil {
		return nil, nil, nil, fmt.Errorf("scenario has no world block")
	}
	return world, times, plans, nil
}

// parseGrid consumes grid rows until the next block header or EOF and returns
// the grid plus the first line of the next block, if any. When rows and cols
// are zero the dimensions are taken from the rows read.
func parseGrid(scanner *bufio.Scanner, rows, cols int) (*core.FactionGrid, string, bool, error) {
	var lines []string
	line, ok := nextLine(scanner)
	for ok && !isHeader(line) {
		lines = append(lines, line)
		line, ok = nextLine(scanner)
	}
	if len(lines) == 0 {
		return nil, "", false, fmt.Errorf("empty grid")
	}
	if rows == 0 {
		rows, cols = len(lines), len(lines[0])
	}
	if len(lines) != rows {
		return nil, "", false, fmt.Errorf("expected %d rows, got %d", rows, len(lines))
	}
	grid := core.NewFactionGrid(rows, cols)
	for y, row := range lines {
		if len(row) != cols {
			return nil, "", false, fmt.Errorf("row %d has %d cells, expected %d", y, len(row), cols)
		}
		for x := 0; x < cols; x++ {
			switch c := row[x]; {
			case c == '.':
				grid.Set(y, x, core.Dead)
			case c >= '1' && c <= '9':
				grid.Set(y, x, core.Faction(c-'0'))
			default:
				return nil, "", false, fmt.Errorf("row %d: invalid cell %q", y, c)
			}
		}
	}
	return grid, line, ok, nil
}

func isHeader(line string) bool {
	return line == "world" || strings.HasPrefix(line, "invasion ")
}

// nextLine returns the next non-blank, non-comment line.
func nextLine(scanner *bufio.Scanner) (string, bool) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, true
	}
	return "", false
}
