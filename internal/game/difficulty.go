package game

// Difficulty fixes the board dimensions and the number of mines scattered
// over it. The three classic presets are provided; any other combination
// acts as a custom difficulty.
type Difficulty struct {
	Width  int
	Height int
	Mines  int
}

var (
	Easy   = Difficulty{Width: 9, Height: 9, Mines: 10}
	Medium = Difficulty{Width: 16, Height: 16, Mines: 40}
	Hard   = Difficulty{Width: 30, Height: 16, Mines: 99}
)
