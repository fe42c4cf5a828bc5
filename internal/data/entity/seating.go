package entity

const (
	SeatFree     = 0
	SeatOccupied = 1
)

// SeatingGrid is a rows x cols occupancy view, SeatOccupied or SeatFree per cell.
type SeatingGrid [][]int

func (g SeatingGrid) OccupiedCount() int {
	n := 0
	for _, row := range g {
		for _, cell := range row {
			if cell == SeatOccupied {
				n++
			}
		}
	}
	return n
}
