// meta/meta.go
package meta

import "time"

// GO_ROUTINES defines the number of games an experiment plays concurrently.
const GO_ROUTINES = 8

// ROUNDS defines the default number of MCTS rounds per search.
const ROUNDS = 1000

// EXPLORATION defines the UCB exploration constant.
const EXPLORATION = 0.414

// ROLLOUTS defines the number of random playouts averaged by the rollout heuristic.
const ROLLOUTS = 20

// MAX_TURNS caps the length of a game played by the engine.
const MAX_TURNS = 400

// ANALYSIS_TICK defines the interval between steps of a live analysis session.
const ANALYSIS_TICK = 20 * time.Millisecond

// ANALYSIS_ROUNDS_PER_TICK defines how many rounds a live analysis runs per tick.
const ANALYSIS_ROUNDS_PER_TICK = 25

// ANALYSIS_MAX_ROUNDS stops a live analysis once its root has this many playouts.
const ANALYSIS_MAX_ROUNDS = 200000

// MAX_BOARD_SIZE caps the width and height of boards accepted from clients.
const MAX_BOARD_SIZE = 25
