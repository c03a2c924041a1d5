package game

import (
	"math"
	"strings"
)

type pattern struct {
	cells  string
	weight float64
}

// Patterns are read from one player's point of view: 'O' is an own stone,
// 'X' an opponent stone and '_' an empty cell.
var scoringPatterns = []pattern{
	// five in a row
	{"OOOOO", 1000000000},
	// opponent completes five next move
	{"XXXX_", -100000000}, {"XXX_X", -100000000}, {"XX_XX", -100000000}, {"X_XXX", -100000000}, {"_XXXX", -100000000},
	// open four
	{"_OOOO_", 20000000},
	// closed or split four
	{"OOOO_", 10000000}, {"OOO_O", 10000000}, {"OO_OO", 10000000}, {"O_OOO", 10000000}, {"_OOOO", 10000000},
	// opponent threes
	{"_XXX__", -1000000}, {"__XXX_", -1000000}, {"_XX_X_", -1000000}, {"_X_XX_", -1000000}, {"_XXX_", -500000},
	// own threes
	{"_OOO__", 100000}, {"__OOO_", 100000}, {"_OO_O_", 100000}, {"_O_OO_", 100000}, {"_OOO_", 50000},
	// twos and capture threats
	{"__OO__", 1200}, {"_OO__", 1000}, {"__OO_", 1000}, {"XXO_", 500}, {"_OXX", 500},
	{"__XX_", -1100}, {"_XX__", -1100}, {"OXO", -100},
	// contact
	{"OX", 1}, {"XO", 1},
}

// PatternHeuristic scores a position by counting known partial lines in every
// run for each player, then compresses the sum with sign(v)*ln(|v|+1)/Scale.
type PatternHeuristic struct {
	// Scale divides the compressed score; zero means 21.
	Scale float64
}

func (h PatternHeuristic) Evaluate(s *GridState) map[Player]float64 {
	scale := h.Scale
	if scale == 0 {
		scale = 21
	}
	runs := s.board.Runs()
	values := make(map[Player]float64, 2)
	for _, p := range []Player{Black, White} {
		total := 0.0
		for _, run := range runs {
			total += scoreLine(renderRun(run, p))
		}
		values[p] = compress(total) / scale
	}
	return values
}

func renderRun(run Run, p Player) string {
	var sb strings.Builder
	sb.Grow(len(run))
	for _, c := range run {
		switch c {
		case None:
			sb.WriteByte('_')
		case p:
			sb.WriteByte('O')
		default:
			sb.WriteByte('X')
		}
	}
	return sb.String()
}

// scoreLine sums the weight of every pattern occurrence, overlapping ones included.
func scoreLine(line string) float64 {
	total := 0.0
	for _, pat := range scoringPatterns {
		if len(pat.cells) > len(line) {
			continue
		}
		for i := 0; i+len(pat.cells) <= len(line); i++ {
			if strings.HasPrefix(line[i:], pat.cells) {
				total += pat.weight
			}
		}
	}
	return total
}

func compress(v float64) float64 {
	if v == 0 {
		return 0
	}
	sign := 1.0
	if v < 0 {
		sign = -1
	}
	return sign * math.Log(math.Abs(v)+1)
}
