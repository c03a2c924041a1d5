package game

// ProximityPolicy weights an empty cell by the number of stones around it, so
// that expansion on large boards prefers moves near the action. On an empty
// board every cell gets the same weight.
type ProximityPolicy struct {
	Radius int     // neighbourhood radius, zero means 1
	Boost  float64 // weight added per neighbouring stone, zero means 4
}

func (pp ProximityPolicy) Weights(s *GridState, player Player) func(Move) float64 {
	radius := pp.Radius
	if radius <= 0 {
		radius = 1
	}
	boost := pp.Boost
	if boost <= 0 {
		boost = 4
	}
	board := s.board
	return func(m Move) float64 {
		if !board.IsMoveValid(m) {
			return 0
		}
		neighbours := 0
		for dx := -radius; dx <= radius; dx++ {
			for dy := -radius; dy <= radius; dy++ {
				if (dx != 0 || dy != 0) && board.HasPieceAt(m.X+dx, m.Y+dy) {
					neighbours++
				}
			}
		}
		return 1 + boost*float64(neighbours)
	}
}
