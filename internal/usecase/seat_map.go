package usecase

import (
	"fmt"
	"sync/atomic"

	"ticket-booking/internal/data/entity"
)

// SeatMap owns seat occupancy for one theatre. Every cell is an atomic flag,
// so claims on different cells never contend and Snapshot never takes a lock.
type SeatMap struct {
	rows  int
	cols  int
	cells []atomic.Bool
}

func NewSeatMap(rows, cols int) (*SeatMap, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid theatre size %dx%d", rows, cols)
	}

	return &SeatMap{
		rows:  rows,
		cols:  cols,
		cells: make([]atomic.Bool, rows*cols),
	}, nil
}

func (m *SeatMap) Rows() int { return m.rows }
func (m *SeatMap) Cols() int { return m.cols }

func (m *SeatMap) index(row, col int) (int, error) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return 0, fmt.Errorf("%w: row %d col %d (theatre is %dx%d)", ErrSeatOutOfBounds, row, col, m.rows, m.cols)
	}
	return row*m.cols + col, nil
}

// Claim moves a seat from free to occupied. It reports false, without
// mutating anything, when the seat is already occupied.
func (m *SeatMap) Claim(row, col int) (bool, error) {
	i, err := m.index(row, col)
	if err != nil {
		return false, err
	}
	return m.cells[i].CompareAndSwap(false, true), nil
}

// Release moves a seat from occupied back to free.
func (m *SeatMap) Release(row, col int) (bool, error) {
	i, err := m.index(row, col)
	if err != nil {
		return false, err
	}
	return m.cells[i].CompareAndSwap(true, false), nil
}

func (m *SeatMap) Snapshot() entity.SeatingGrid {
	grid := make(entity.SeatingGrid, m.rows)
	for r := 0; r < m.rows; r++ {
		grid[r] = make([]int, m.cols)
		for c := 0; c < m.cols; c++ {
			if m.cells[r*m.cols+c].Load() {
				grid[r][c] = entity.SeatOccupied
			}
		}
	}
	return grid
}

// Restore marks every occupied cell of grid as claimed. The grid must match
// the theatre dimensions.
func (m *SeatMap) Restore(grid entity.SeatingGrid) error {
	if len(grid) != m.rows {
		return fmt.Errorf("restore seating: grid has %d rows, theatre has %d", len(grid), m.rows)
	}
	for r, row := range grid {
		if len(row) != m.cols {
			return fmt.Errorf("restore seating: row %d has %d cols, theatre has %d", r, len(row), m.cols)
		}
		for c, cell := range row {
			if cell == entity.SeatOccupied {
				m.cells[r*m.cols+c].Store(true)
			}
		}
	}
	return nil
}

func (m *SeatMap) Occupied() int {
	n := 0
	for i := range m.cells {
		if m.cells[i].Load() {
			n++
		}
	}
	return n
}
