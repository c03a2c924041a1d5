package metrics

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gridmcts/game"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	t.Run("creating the experiment directory", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "strength")
		require.NoError(t, err)

		info, err := os.Stat(w.Dir())
		require.NoError(t, err)
		require.True(t, info.IsDir())
		require.Equal(t, "strength", filepath.Base(filepath.Dir(w.Dir())))
	})

	t.Run("writing setup and agent configs", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "setup")
		require.NoError(t, err)
		configs := []AgentConfig{
			{ID: 1, Kind: "mcts", Rounds: 500, Exploration: Float(0.414), Heuristic: "rollout", Expansion: "uniform"},
			{ID: 2, Kind: "random"},
		}

		require.NoError(t, w.WriteSetup(map[string]any{"game": "tictactoe", "agents": configs}))
		require.NoError(t, w.WriteAgentConfigs(configs))

		raw, err := os.ReadFile(filepath.Join(w.Dir(), "setup.json"))
		require.NoError(t, err)
		var setup map[string]any
		require.NoError(t, json.Unmarshal(raw, &setup))
		require.Equal(t, "tictactoe", setup["game"])

		rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"), false)
		require.Len(t, rows, 3, "Should write a header and one row per config")
		require.Equal(t, []string{"1", "mcts", "500", "0s", "0.414", "rollout", "uniform", "0"}, rows[1])
		require.Equal(t, "", rows[2][4], "Unset exploration should be left empty")
	})

	t.Run("writing compressed move records", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "moves")
		require.NoError(t, err)
		records := []MoveRecord{
			{Game: 1, MoveMetric: MoveMetric{Step: 1, Player: game.Black, Move: game.Move{X: 1, Y: 2},
				SearchMetric: SearchMetric{Duration: time.Millisecond, Rounds: 100, Expansions: 90, TerminalVisits: 10, RootPlayouts: 100}}},
			{Game: 1, MoveMetric: MoveMetric{Step: 2, Player: game.White, Move: game.Move{X: 0, Y: 0}}},
		}

		require.NoError(t, w.WriteMoveRecords(records))

		rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv.zst"), true)
		require.Len(t, rows, 3)
		require.Equal(t, "game", rows[0][0])
		require.Equal(t, []string{"1", "1", "black", "1", "2", "1ms", "100", "90", "10", "100"}, rows[1])
		require.Equal(t, "white", rows[2][2])
	})

	t.Run("writing game records", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "games")
		require.NoError(t, err)
		start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

		require.NoError(t, w.WriteGameRecords([]GameRecord{{
			ID: 7, Agent1: 1, Agent2: 2,
			GameMetric: GameMetric{StartingPlayer: game.Black, Winner: game.None, StartTime: start,
				EndTime: start.Add(time.Second), Duration: time.Second, TotalMoves: 9},
		}}))

		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"), false)
		require.Equal(t, []string{"7", "1", "2", "black", "none", "2024-05-01T12:00:00Z", "2024-05-01T12:00:01Z", "1s", "9"}, rows[1])
	})
}

func readCSV(t *testing.T, path string, compressed bool) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	reader := csv.NewReader(f)
	if compressed {
		decoder, err := zstd.NewReader(f)
		require.NoError(t, err)
		defer decoder.Close()
		reader = csv.NewReader(decoder)
	}
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	return rows
}
