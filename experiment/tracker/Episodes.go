package tracker

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
	ts "github.com/samuelfneumann/badicecream/timestep"
)

// EpisodeRow is a single finished episode as stored by the Episodes
// Tracker
type EpisodeRow struct {
	Episode     int64   `parquet:"episode"`
	Steps       int32   `parquet:"steps"`
	Return      float64 `parquet:"return"`
	FinalReward float64 `parquet:"final_reward"`
	End         string  `parquet:"end,dict"`
}

// Episodes tracks one row per finished episode and saves the rows as a
// zstd-compressed parquet file. Unfinished episodes are not saved.
type Episodes struct {
	filename string
	rows     []EpisodeRow
	current  EpisodeRow
}

// NewEpisodes returns a new Episodes tracker which will save its data
// at the specified location filename
func NewEpisodes(filename string) *Episodes {
	return &Episodes{filename: filename}
}

// Track implements the Tracker interface
func (e *Episodes) Track(step ts.TimeStep) {
	if step.First() {
		e.current = EpisodeRow{Episode: int64(len(e.rows))}
		return
	}

	e.current.Return += step.Reward
	e.current.Steps = int32(step.Number)

	if step.Last() {
		e.current.FinalReward = step.Reward
		e.current.End = step.EndType().String()
		e.rows = append(e.rows, e.current)
	}
}

// Rows returns the rows of all finished episodes
func (e *Episodes) Rows() []EpisodeRow {
	rows := make([]EpisodeRow, len(e.rows))
	copy(rows, e.rows)
	return rows
}

// Save writes all finished episodes to disk. The file is written
// under a temporary name and renamed into place.
func (e *Episodes) Save() error {
	tmpPath := e.filename + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, e.rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "episode_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("save: write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, e.filename); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("save: rename parquet: %w", err)
	}
	return nil
}
