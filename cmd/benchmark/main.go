package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/limaJavier/minesweep/internal/game"
	"github.com/limaJavier/minesweep/internal/model"
	"github.com/limaJavier/minesweep/internal/sat"
	"github.com/samber/lo"
)

const seedsPerDifficulty = 25

type DifficultyType int

const (
	easy DifficultyType = iota
	medium
	hard
)

type ResultType int

const (
	won ResultType = iota
	stalled
	lost
)

var (
	difficultyTypes = map[DifficultyType]string{
		easy:   "easy",
		medium: "medium",
		hard:   "hard",
	}
	difficulties = map[DifficultyType]game.Difficulty{
		easy:   game.Easy,
		medium: game.Medium,
		hard:   game.Hard,
	}
	resultTypes = map[ResultType]string{
		won:     "won",
		stalled: "stalled",
		lost:    "lost",
	}
)

type BenchmarkResult struct {
	Difficulty DifficultyType
	Seed       uint64
	Steps      int
	Flags      int
	Opened     int
	Duration   int64
	Result     ResultType
}

func main() {
	difficultyOrder := []DifficultyType{easy, medium, hard}
	results := make([]BenchmarkResult, 0, len(difficultyOrder)*seedsPerDifficulty)

	for _, difficulty := range difficultyOrder {
		for seed := range uint64(seedsPerDifficulty) {
			fmt.Printf("Benchmarking difficulty \"%v\" with seed \"%v\"\n", difficultyTypes[difficulty], seed)
			results = append(results, measure(difficulty, seed))
		}
	}

	for _, difficulty := range difficultyOrder {
		outcomes := lo.Filter(results, func(result BenchmarkResult, _ int) bool { return result.Difficulty == difficulty })
		fmt.Printf("%v: won %v out of %v\n", difficultyTypes[difficulty], wins(outcomes), len(outcomes))
	}

	toCsv(results)
}

// measure plays one seeded board to the end and records how far pure
// deduction got and how long it took.
func measure(difficulty DifficultyType, seed uint64) BenchmarkResult {
	parameters := difficulties[difficulty]
	safeCell := game.Position{X: parameters.Width / 2, Y: parameters.Height / 2}
	board, err := game.NewBoard(game.Options{
		Difficulty: parameters,
		SafeCell:   &safeCell,
		Seed:       lo.ToPtr(seed),
	})
	if err != nil {
		log.Fatalf("cannot generate board: %v", err)
	}
	board.Open(safeCell.X, safeCell.Y)

	player := model.NewPlayer(board, model.NewClassifier(sat.NewDPLLSolver(nil)))
	start := time.Now()
	result, steps, err := player.Play()
	if err != nil {
		log.Fatalf("an error occurred during play at difficulty \"%v\" with seed \"%v\": %v", difficultyTypes[difficulty], seed, err)
	}
	duration := time.Since(start).Milliseconds()

	return BenchmarkResult{
		Difficulty: difficulty,
		Seed:       seed,
		Steps:      steps,
		Flags:      board.FlagCount(),
		Opened:     openedCells(board),
		Duration:   duration,
		Result:     outcome(result),
	}
}

func outcome(result game.Result) ResultType {
	switch result {
	case game.Win:
		return won
	case game.Lose:
		return lost
	default:
		return stalled
	}
}

func openedCells(board *game.Board) int {
	opened := 0
	for y := range board.Height() {
		for x := range board.Width() {
			if board.Cell(x, y) == game.CellOpened {
				opened++
			}
		}
	}
	return opened
}

func wins(results []BenchmarkResult) int {
	return lo.CountBy(results, func(result BenchmarkResult) bool { return result.Result == won })
}

func toCsv(results []BenchmarkResult) {
	file, err := os.Create("benchmark_results.csv")
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Difficulty", "Seed", "Width", "Height", "Mines", "Steps", "Flags", "Opened", "Duration(ms)", "Result"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		parameters := difficulties[result.Difficulty]
		record := []string{
			difficultyTypes[result.Difficulty],
			fmt.Sprintf("%d", result.Seed),
			fmt.Sprintf("%d", parameters.Width),
			fmt.Sprintf("%d", parameters.Height),
			fmt.Sprintf("%d", parameters.Mines),
			fmt.Sprintf("%d", result.Steps),
			fmt.Sprintf("%d", result.Flags),
			fmt.Sprintf("%d", result.Opened),
			fmt.Sprintf("%d", result.Duration),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}
