package game

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/samber/lo"
)

// Position addresses a board cell. X grows rightwards, Y downwards.
type Position struct {
	X int
	Y int
}

// NearbyPositions lists the up-to-eight neighbors of (x, y) on a
// width-by-height grid, in row-major order.
func NearbyPositions(width, height, x, y int) []Position {
	positions := make([]Position, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			neighborX, neighborY := x+dx, y+dy
			if neighborX < 0 || neighborX >= width || neighborY < 0 || neighborY >= height {
				continue
			}
			positions = append(positions, Position{X: neighborX, Y: neighborY})
		}
	}
	return positions
}

type CellState uint8

const (
	CellUnopened CellState = iota
	CellFlagged
	CellQuestioned
	CellOpened
)

type Result uint8

const (
	Playing Result = iota
	Win
	Lose
)

// Options configures a generated board. SafeCell, when set, is guaranteed
// not to hold a mine. Seed, when set, makes generation reproducible; the
// effective seed can be read back from the board either way.
type Options struct {
	Difficulty Difficulty
	SafeCell   *Position
	Seed       *uint64
}

// Board is the full game state, mine layout included. The solver side never
// sees a Board directly; it works on the player-visible Snapshot.
type Board struct {
	difficulty Difficulty
	seed       uint64
	mines      [][]bool
	cells      [][]CellState
}

// NewBoard generates a board by scattering mines uniformly over the grid,
// sparing the safe cell when one is requested.
func NewBoard(options Options) (*Board, error) {
	width := options.Difficulty.Width
	height := options.Difficulty.Height
	mineCount := options.Difficulty.Mines
	if width < 1 || height < 1 || mineCount < 1 {
		return nil, fmt.Errorf("width, height and mines must be positive: %vx%v with %v mines", width, height, mineCount)
	} else if width*height <= mineCount {
		return nil, fmt.Errorf("at least one cell must stay clear: %vx%v with %v mines", width, height, mineCount)
	}
	if options.SafeCell != nil {
		safe := *options.SafeCell
		if safe.X < 0 || safe.X >= width || safe.Y < 0 || safe.Y >= height {
			return nil, fmt.Errorf("safe cell (%v, %v) is outside the %vx%v board", safe.X, safe.Y, width, height)
		}
	}

	seed := rand.Uint64()
	if options.Seed != nil {
		seed = *options.Seed
	}
	var chachaSeed [32]byte
	binary.LittleEndian.PutUint64(chachaSeed[:8], seed)
	rng := rand.New(rand.NewChaCha8(chachaSeed))

	candidates := make([]Position, 0, width*height)
	for y := range height {
		for x := range width {
			position := Position{X: x, Y: y}
			if options.SafeCell != nil && position == *options.SafeCell {
				continue
			}
			candidates = append(candidates, position)
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	board := emptyBoard(options.Difficulty, seed)
	for _, position := range candidates[:mineCount] {
		board.mines[position.Y][position.X] = true
	}
	return board, nil
}

// NewBoardFromMines builds a board with an explicit mine layout, which keeps
// tests and replays independent of the generator.
func NewBoardFromMines(width, height int, mines []Position) (*Board, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("width and height must be positive: %vx%v", width, height)
	}
	board := emptyBoard(Difficulty{Width: width, Height: height, Mines: len(mines)}, 0)
	for _, position := range mines {
		if position.X < 0 || position.X >= width || position.Y < 0 || position.Y >= height {
			return nil, fmt.Errorf("mine (%v, %v) is outside the %vx%v board", position.X, position.Y, width, height)
		}
		board.mines[position.Y][position.X] = true
	}
	return board, nil
}

func emptyBoard(difficulty Difficulty, seed uint64) *Board {
	board := &Board{
		difficulty: difficulty,
		seed:       seed,
		mines:      make([][]bool, difficulty.Height),
		cells:      make([][]CellState, difficulty.Height),
	}
	for y := range difficulty.Height {
		board.mines[y] = make([]bool, difficulty.Width)
		board.cells[y] = make([]CellState, difficulty.Width)
	}
	return board
}

func (b *Board) Width() int {
	return b.difficulty.Width
}

func (b *Board) Height() int {
	return b.difficulty.Height
}

func (b *Board) Seed() uint64 {
	return b.seed
}

func (b *Board) Cell(x, y int) CellState {
	return b.cells[y][x]
}

func (b *Board) IsMine(x, y int) bool {
	return b.mines[y][x]
}

func (b *Board) MineCount() int {
	count := 0
	for y := range b.Height() {
		for x := range b.Width() {
			if b.mines[y][x] {
				count++
			}
		}
	}
	return count
}

func (b *Board) FlagCount() int {
	count := 0
	for y := range b.Height() {
		for x := range b.Width() {
			if b.cells[y][x] == CellFlagged {
				count++
			}
		}
	}
	return count
}

func (b *Board) NearbyCells(x, y int) []Position {
	return NearbyPositions(b.Width(), b.Height(), x, y)
}

func (b *Board) NearbyMines(x, y int) int {
	return lo.CountBy(b.NearbyCells(x, y), func(position Position) bool {
		return b.mines[position.Y][position.X]
	})
}

func (b *Board) NearbyFlags(x, y int) int {
	return lo.CountBy(b.NearbyCells(x, y), func(position Position) bool {
		return b.cells[position.Y][position.X] == CellFlagged
	})
}

// Result scans the board: any opened mine loses the game, and the game is
// won once every non-mine cell is opened. Flags never decide the outcome.
func (b *Board) Result() Result {
	playing := false
	for y := range b.Height() {
		for x := range b.Width() {
			opened := b.cells[y][x] == CellOpened
			if opened && b.mines[y][x] {
				return Lose
			}
			if !opened && !b.mines[y][x] {
				playing = true
			}
		}
	}
	if playing {
		return Playing
	}
	return Win
}

// Open opens an unopened cell. Opening a mine ends the game; opening a cell
// without nearby mines flood-fills the surrounding zero-count region.
// Flagged and questioned cells cannot be opened.
func (b *Board) Open(x, y int) {
	if b.Result() != Playing || b.cells[y][x] != CellUnopened {
		return
	}
	if b.mines[y][x] {
		b.cells[y][x] = CellOpened
		return
	}

	worklist := []Position{{X: x, Y: y}}
	for len(worklist) > 0 {
		position := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if b.cells[position.Y][position.X] != CellUnopened {
			continue
		}
		b.cells[position.Y][position.X] = CellOpened
		if b.NearbyMines(position.X, position.Y) == 0 {
			worklist = append(worklist, b.NearbyCells(position.X, position.Y)...)
		}
	}
}

// ToggleFlag cycles an unopened cell through flagged, questioned and back
// to unopened. Opened cells are left alone.
func (b *Board) ToggleFlag(x, y int) {
	if b.Result() != Playing {
		return
	}
	switch b.cells[y][x] {
	case CellUnopened:
		b.cells[y][x] = CellFlagged
	case CellFlagged:
		b.cells[y][x] = CellQuestioned
	case CellQuestioned:
		b.cells[y][x] = CellUnopened
	}
}

// Chord opens every unopened neighbor of an opened cell whose flag count
// matches its mine count. A misplaced flag makes it open a mine.
func (b *Board) Chord(x, y int) {
	if b.Result() != Playing {
		return
	}
	if b.cells[y][x] != CellOpened || b.NearbyMines(x, y) != b.NearbyFlags(x, y) {
		return
	}
	for _, position := range b.NearbyCells(x, y) {
		if b.cells[position.Y][position.X] != CellUnopened {
			continue
		}
		if !b.mines[position.Y][position.X] && b.NearbyMines(position.X, position.Y) == 0 {
			b.Open(position.X, position.Y)
		} else {
			b.cells[position.Y][position.X] = CellOpened
		}
	}
}

// String renders the player-visible board: '.' unopened, 'F' flagged,
// '?' questioned and the nearby-mine count for opened cells.
func (b *Board) String() string {
	var builder strings.Builder
	for y := range b.Height() {
		for x := range b.Width() {
			switch b.cells[y][x] {
			case CellFlagged:
				builder.WriteByte('F')
			case CellQuestioned:
				builder.WriteByte('?')
			case CellOpened:
				fmt.Fprintf(&builder, "%d", b.NearbyMines(x, y))
			default:
				builder.WriteByte('.')
			}
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}
