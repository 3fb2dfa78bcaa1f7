package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/limaJavier/minesweep/internal/game"
	"github.com/limaJavier/minesweep/internal/model"
	"github.com/limaJavier/minesweep/internal/sat"
	"github.com/samber/lo"
)

var (
	validDifficulties = []string{"easy", "medium", "hard"}
	difficulties      = map[string]game.Difficulty{
		"easy":   game.Easy,
		"medium": game.Medium,
		"hard":   game.Hard,
	}
)

func main() {
	// Define arguments
	filePtr := flag.String("file", "", "Path to a snapshot file to classify")
	cnfPtr := flag.String("cnf", "", "Path to a DIMACS CNF instance to solve")
	autoPtr := flag.Bool("auto", false, "Generate a board and let the deduction player drive it")
	difficultyPtr := flag.String("difficulty", "easy", "Board difficulty used by -auto. Allowed values are: \"easy\", \"medium\" and \"hard\", where \"easy\" is the default")
	seedPtr := flag.Int64("seed", -1, "Board generation seed used by -auto; a negative value picks a random seed")
	probabilitiesPtr := flag.Bool("probabilities", false, "Estimate mine likelihoods of the undecided cells when classifying")
	samplesPtr := flag.Int("samples", 1000, "Sample count used by -probabilities, where 1000 is the default")
	outFilePtr := flag.String("out", "", "Path to the file where the classification will be written as json; if empty, only the rendered grid is printed")
	flag.Parse()
	file := *filePtr
	cnf := *cnfPtr
	auto := *autoPtr
	difficulty := strings.ToLower(*difficultyPtr)
	samples := *samplesPtr

	// Validate arguments
	modes := lo.CountBy([]bool{file != "", cnf != "", auto}, func(active bool) bool { return active })
	if modes != 1 {
		log.Fatal("exactly one of -file, -cnf or -auto must be specified")
	} else if !slices.Contains(validDifficulties, difficulty) {
		log.Fatalf("%v is not a valid difficulty", difficulty)
	} else if samples < 1 {
		log.Fatalf("samples must be positive: %v", samples)
	}

	// Initialize engine
	solver := sat.NewDPLLSolver(nil)

	switch {
	case cnf != "":
		solveInstance(solver, cnf)
	case file != "":
		classifySnapshot(solver, file, *outFilePtr, *probabilitiesPtr, samples)
	default:
		autoplay(solver, difficulties[difficulty], *seedPtr)
	}
}

// solveInstance reports the verdict on a DIMACS instance with the
// conventional solver exit codes: 10 satisfiable, 20 unsatisfiable.
func solveInstance(solver sat.SATSolver, file string) {
	instance, err := sat.ParseDIMACSFile(file)
	if err != nil {
		log.Fatalf("cannot parse instance file: %v", err)
	}

	solution, err := solver.Solve(instance)
	if err != nil {
		log.Fatalf("an error occurred while solving: %v", err)
	} else if solution == nil {
		fmt.Println("s UNSATISFIABLE")
		os.Exit(20)
	}

	literals := lo.Map(solution, func(literal sat.Lit, _ int) string { return fmt.Sprint(literal) })
	fmt.Println("s SATISFIABLE")
	fmt.Printf("v %v 0\n", strings.Join(literals, " "))
	os.Exit(10)
}

type cellVerdict struct {
	X           int      `json:"x"`
	Y           int      `json:"y"`
	Verdict     string   `json:"verdict"`
	Probability *float64 `json:"probability,omitempty"`
}

func classifySnapshot(solver sat.SATSolver, file, outFile string, withProbabilities bool, samples int) {
	// Extract input
	snapshot, err := game.SnapshotFromJson(file)
	if err != nil {
		log.Fatalf("cannot parse snapshot file: %v", err)
	}

	// Classify
	classifier := model.NewClassifier(solver)
	classification, err := classifier.Classify(snapshot)
	if err != nil {
		log.Fatalf("an error occurred during classification: %v", err)
	}

	var estimates map[game.Position]float64
	if withProbabilities {
		estimates, err = classifier.Probabilities(snapshot, samples)
		if err != nil {
			log.Fatalf("an error occurred during probability estimation: %v", err)
		}
	}

	// Render the verdicts over the snapshot
	fmt.Print(renderClassification(snapshot, classification))
	counts := lo.CountValues(lo.Values(classification))
	fmt.Printf("Safe: %v, Mines: %v, Unknown: %v\n", counts[model.Safe], counts[model.Mine], counts[model.Unknown])

	verdicts := make([]cellVerdict, 0, len(classification))
	for y := range snapshot.Height {
		for x := range snapshot.Width {
			position := game.Position{X: x, Y: y}
			verdict, classified := classification[position]
			if !classified {
				continue
			}
			cell := cellVerdict{X: x, Y: y, Verdict: verdict.String()}
			if estimate, estimated := estimates[position]; estimated {
				cell.Probability = lo.ToPtr(estimate)
				if verdict == model.Unknown {
					fmt.Printf("(%v, %v): %.3f\n", x, y, estimate)
				}
			}
			verdicts = append(verdicts, cell)
		}
	}

	// Marshal output into json
	if outFile == "" {
		return
	}
	verdictsJson, err := json.Marshal(verdicts)
	if err != nil {
		log.Fatalf("an error occurred while building output json: %v", err)
	}
	if err := os.WriteFile(outFile, verdictsJson, 0666); err != nil {
		log.Fatalf("an error occurred while writing to the output file: %v", err)
	}
}

// renderClassification draws the snapshot with verdicts overlaid on the
// hidden cells: 'S' proven safe, 'M' proven mined, '.' undecided.
func renderClassification(snapshot game.Snapshot, classification model.Classification) string {
	var builder strings.Builder
	for y := range snapshot.Height {
		for x := range snapshot.Width {
			switch cell := snapshot.Cell(x, y); cell.Kind {
			case game.Revealed:
				fmt.Fprintf(&builder, "%d", cell.Count)
			case game.Flagged:
				builder.WriteByte('F')
			default:
				switch classification[game.Position{X: x, Y: y}] {
				case model.Safe:
					builder.WriteByte('S')
				case model.Mine:
					builder.WriteByte('M')
				default:
					builder.WriteByte('.')
				}
			}
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}

func autoplay(solver sat.SATSolver, difficulty game.Difficulty, seed int64) {
	// Generate the board, keeping the first click safe
	safeCell := game.Position{X: difficulty.Width / 2, Y: difficulty.Height / 2}
	options := game.Options{
		Difficulty: difficulty,
		SafeCell:   &safeCell,
	}
	if seed >= 0 {
		options.Seed = lo.ToPtr(uint64(seed))
	}
	board, err := game.NewBoard(options)
	if err != nil {
		log.Fatalf("cannot generate board: %v", err)
	}
	fmt.Printf("Playing %vx%v with %v mines (seed %v)\n", board.Width(), board.Height(), board.MineCount(), board.Seed())

	board.Open(safeCell.X, safeCell.Y)
	fmt.Println(board)

	// Let the player deduce until the board is cleared or ambiguous
	player := model.NewPlayer(board, model.NewClassifier(solver))
	steps := 0
	for {
		progress, err := player.Step()
		if err != nil {
			log.Fatalf("an error occurred during play: %v", err)
		}
		if !progress {
			break
		}
		steps++
		fmt.Printf("Step %v:\n%v\n", steps, board)
		if board.Result() != game.Playing {
			break
		}
	}

	switch board.Result() {
	case game.Win:
		fmt.Printf("Cleared %v cells in %v steps\n", board.Width()*board.Height()-board.MineCount(), steps)
	case game.Lose:
		fmt.Printf("Hit a mine after %v steps\n", steps)
	default:
		fmt.Printf("Stuck after %v steps: the remaining cells cannot be decided\n", steps)
	}
}
