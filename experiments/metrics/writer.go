package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/klauspost/compress/zstd"
)

type AgentConfig struct {
	ID          int           `json:"id"`
	Kind        string        `json:"kind"` // "mcts" or "random"
	Rounds      int           `json:"rounds,omitempty"`
	Duration    time.Duration `json:"duration,omitempty"`
	Exploration *float64      `json:"exploration,omitempty"` // nil keeps the default
	Heuristic   string        `json:"heuristic,omitempty"`
	Expansion   string        `json:"expansion,omitempty"`
	Temperature float64       `json:"temperature,omitempty"` // samples by visits when > 0
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID playing Black
	Agent2 int // AgentConfig.ID playing White
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> to hold the output of one experiment.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteSetup(setup any) error {
	path := filepath.Join(w.baseDir, "setup.json")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create setup file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(setup); err != nil {
		return fmt.Errorf("failed to write setup: %w", err)
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "kind", "rounds", "duration", "exploration", "heuristic", "expansion", "temperature"}
	return w.writeCSV("agent_configs.csv", header, len(configs), func(i int) []string {
		config := configs[i]
		return []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.Itoa(config.Rounds),
			config.Duration.String(),
			formatOptional(config.Exploration),
			config.Heuristic,
			config.Expansion,
			strconv.FormatFloat(config.Temperature, 'f', -1, 64),
		}
	})
}

// Float returns a pointer to v, for optional config fields.
func Float(v float64) *float64 {
	return &v
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "starting_player", "winner", "start_time", "end_time", "duration", "total_moves"}
	return w.writeCSV("game_records.csv", header, len(records), func(i int) []string {
		record := records[i]
		return []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			record.StartingPlayer.String(),
			record.Winner.String(),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		}
	})
}

// WriteMoveRecords writes one row per move, zstd compressed.
func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "x", "y", "duration", "rounds", "expansions", "terminal_visits", "root_playouts"}
	return w.writeCSV("move_records.csv.zst", header, len(records), func(i int) []string {
		record := records[i]
		return []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player.String(),
			strconv.Itoa(record.Move.X),
			strconv.Itoa(record.Move.Y),
			record.Duration.String(),
			strconv.Itoa(record.Rounds),
			strconv.Itoa(record.Expansions),
			strconv.Itoa(record.TerminalVisits),
			strconv.Itoa(record.RootPlayouts),
		}
	})
}

func (w *Writer) writeCSV(name string, header []string, rows int, row func(i int) []string) (err error) {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close %s: %w", name, cerr)
		}
	}()

	var out io.Writer = f
	if filepath.Ext(name) == ".zst" {
		encoder, zerr := zstd.NewWriter(f)
		if zerr != nil {
			return fmt.Errorf("failed to create zstd encoder: %w", zerr)
		}
		defer func() {
			if cerr := encoder.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("failed to flush %s: %w", name, cerr)
			}
		}()
		out = encoder
	}

	writer := csv.NewWriter(out)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for i := 0; i < rows; i++ {
		if err := writer.Write(row(i)); err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}
	return nil
}
