package game

// Run is an ordered line of cells: a row, a column or a diagonal.
type Run []Player

// Runs returns every row, then every column, then the diagonals grouped by x+y,
// then the diagonals of the vertically mirrored board (grouped by x-y).
// Each diagonal family holds width+height-1 runs.
func (b Board) Runs() []Run {
	runs := make([]Run, 0, b.width+b.height+2*(b.width+b.height-1))
	runs = append(runs, b.rowRuns()...)
	runs = append(runs, b.columnRuns()...)
	runs = append(runs, b.diagonalRuns(false)...)
	runs = append(runs, b.diagonalRuns(true)...)
	return runs
}

func (b Board) rowRuns() []Run {
	rows := make([]Run, b.height)
	for y := 0; y < b.height; y++ {
		row := make(Run, b.width)
		for x := 0; x < b.width; x++ {
			row[x] = b.PieceAt(x, y)
		}
		rows[y] = row
	}
	return rows
}

func (b Board) columnRuns() []Run {
	cols := make([]Run, b.width)
	for x := 0; x < b.width; x++ {
		col := make(Run, b.height)
		copy(col, b.cells[x*b.height:(x+1)*b.height])
		cols[x] = col
	}
	return cols
}

func (b Board) diagonalRuns(mirrored bool) []Run {
	diagonals := make([]Run, b.width+b.height-1)
	for x := 0; x < b.width; x++ {
		for y := 0; y < b.height; y++ {
			py := y
			if mirrored {
				py = b.height - y - 1
			}
			diagonals[x+y] = append(diagonals[x+y], b.PieceAt(x, py))
		}
	}
	return diagonals
}

// Winner scans the run for n consecutive stones of one player.
func (r Run) Winner(n int) Player {
	last, length := None, 0
	for _, p := range r {
		switch {
		case p == None:
			length = 0
		case p == last:
			length++
		default:
			length = 1
		}
		last = p
		if length >= n {
			return last
		}
	}
	return None
}

// LineWinner returns the owner of the first run of n stones in Runs order, or None.
func (b Board) LineWinner(n int) Player {
	if n <= 0 {
		return None
	}
	for _, run := range b.Runs() {
		if w := run.Winner(n); w != None {
			return w
		}
	}
	return None
}

// lineThrough reports whether the stone at move belongs to a line of at least n.
func (b Board) lineThrough(move Move, n int) bool {
	p := b.PieceAt(move.X, move.Y)
	if p == None {
		return false
	}
	directions := [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}
	for _, d := range directions {
		count := 1
		count += b.countDirection(move, d[0], d[1], p)
		count += b.countDirection(move, -d[0], -d[1], p)
		if count >= n {
			return true
		}
	}
	return false
}

func (b Board) countDirection(move Move, dx, dy int, p Player) int {
	count := 0
	x, y := move.X+dx, move.Y+dy
	for b.PieceAt(x, y) == p {
		count++
		x += dx
		y += dy
	}
	return count
}
