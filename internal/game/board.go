package game

import "gobang-server/internal/protocol"

const (
	BoardSize  = 15
	WinLength  = 5
	TotalCells = BoardSize * BoardSize
)

type Stone uint8

const (
	Empty Stone = iota
	Black
	White
)

func (s Stone) String() string {
	switch s {
	case Black:
		return protocol.ColorBlack
	case White:
		return protocol.ColorWhite
	default:
		return "EMPTY"
	}
}

// Opponent returns the other playing color. Empty has no opponent.
func (s Stone) Opponent() Stone {
	switch s {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

type Placement struct {
	X     int
	Y     int
	Stone Stone
}

// Board holds the grid and the number of stones placed since the last reset.
// It has no locking of its own; the owning room serialises access.
type Board struct {
	cells     [BoardSize][BoardSize]Stone
	moveCount int
}

func NewBoard() *Board {
	return &Board{}
}

func (b *Board) IsValidPosition(x, y int) bool {
	return x >= 0 && x < BoardSize && y >= 0 && y < BoardSize
}

func (b *Board) IsEmpty(x, y int) bool {
	if !b.IsValidPosition(x, y) {
		return false
	}
	return b.cells[x][y] == Empty
}

// PlaceStone marks (x, y) with stone if the cell is on the board and empty.
func (b *Board) PlaceStone(x, y int, stone Stone) bool {
	if stone != Black && stone != White {
		return false
	}
	if !b.IsEmpty(x, y) {
		return false
	}
	b.cells[x][y] = stone
	b.moveCount++
	return true
}

// CheckWin reports whether the stone at (x, y) sits on a line of exactly
// WinLength same-colored stones. Lines of six or more do not count.
func (b *Board) CheckWin(x, y int) bool {
	if !b.IsValidPosition(x, y) {
		return false
	}
	stone := b.cells[x][y]
	if stone == Empty {
		return false
	}
	return b.runLength(x, y, stone, 1, 0) == WinLength ||
		b.runLength(x, y, stone, 0, 1) == WinLength ||
		b.runLength(x, y, stone, 1, 1) == WinLength ||
		b.runLength(x, y, stone, 1, -1) == WinLength
}

func (b *Board) runLength(x, y int, stone Stone, dx, dy int) int {
	count := 1
	for nx, ny := x+dx, y+dy; b.IsValidPosition(nx, ny) && b.cells[nx][ny] == stone; nx, ny = nx+dx, ny+dy {
		count++
	}
	for nx, ny := x-dx, y-dy; b.IsValidPosition(nx, ny) && b.cells[nx][ny] == stone; nx, ny = nx-dx, ny-dy {
		count++
	}
	return count
}

// CheckDraw reports a full board. Callers check for a win first.
func (b *Board) CheckDraw() bool {
	return b.moveCount >= TotalCells
}

func (b *Board) Reset() {
	b.cells = [BoardSize][BoardSize]Stone{}
	b.moveCount = 0
}

func (b *Board) Stone(x, y int) Stone {
	if !b.IsValidPosition(x, y) {
		return Empty
	}
	return b.cells[x][y]
}

func (b *Board) MoveCount() int {
	return b.moveCount
}

// Stones lists occupied cells in row-major order.
func (b *Board) Stones() []Placement {
	out := make([]Placement, 0, b.moveCount)
	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			if s := b.cells[x][y]; s != Empty {
				out = append(out, Placement{X: x, Y: y, Stone: s})
			}
		}
	}
	return out
}
