package seeder

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"go.uber.org/zap"
)

const DefaultCommitEvery = 10

// BatchWriter is the persistence side of the loader.
type BatchWriter interface {
	InsertBatch(ctx context.Context, table string, columns []string, rows [][]interface{}) error
	Commit(ctx context.Context) error
}

type BatchSpec struct {
	Table         string
	Columns       []string
	Total         int
	BatchSize     int
	CommitEvery   int
	ProgressEvery int
	Label         string // plural noun used in progress lines
	// Row returns the values for row i of the current batch.
	Row func(i int) []interface{}
}

type LoadResult struct {
	Batches  int
	Commits  int
	Inserted int
}

// Loader inserts Total/BatchSize full batches. Rows that do not fill a
// whole batch are not generated.
type Loader struct {
	writer BatchWriter
	out    io.Writer
	logger *zap.Logger
}

func NewLoader(writer BatchWriter, out io.Writer, logger *zap.Logger) *Loader {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{writer: writer, out: out, logger: logger.Named("loader")}
}

func (l *Loader) Load(ctx context.Context, spec BatchSpec) (LoadResult, error) {
	var res LoadResult
	if spec.BatchSize <= 0 {
		return res, fmt.Errorf("batch size must be positive, got %d", spec.BatchSize)
	}
	commitEvery := spec.CommitEvery
	if commitEvery <= 0 {
		commitEvery = DefaultCommitEvery
	}

	batches := spec.Total / spec.BatchSize
	for batch := 0; batch < batches; batch++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		rows := make([][]interface{}, spec.BatchSize)
		for i := range rows {
			rows[i] = spec.Row(i)
		}
		if err := l.writer.InsertBatch(ctx, spec.Table, spec.Columns, rows); err != nil {
			return res, fmt.Errorf("failed to insert batch %d into %s: %w", batch+1, spec.Table, err)
		}
		res.Batches++
		res.Inserted += len(rows)

		if (batch+1)%commitEvery == 0 {
			if err := l.commit(ctx, spec.Table, &res); err != nil {
				return res, err
			}
			color.New(color.FgGreen).Fprintf(l.out, "  ✓ Committed %s %s...\n", humanize.Comma(int64(res.Inserted)), spec.Label)
		}

		if spec.ProgressEvery > 0 && (batch+1)%spec.ProgressEvery == 0 {
			fmt.Fprintf(l.out, "  Inserted %s %s...\n", humanize.Comma(int64(res.Inserted)), spec.Label)
		}
	}

	// The last period may be partial.
	if err := l.commit(ctx, spec.Table, &res); err != nil {
		return res, err
	}

	l.logger.Debug("table loaded",
		zap.String("table", spec.Table),
		zap.Int("batches", res.Batches),
		zap.Int("commits", res.Commits),
		zap.Int("rows", res.Inserted),
		zap.Int("dropped", spec.Total-res.Inserted))
	return res, nil
}

func (l *Loader) commit(ctx context.Context, table string, res *LoadResult) error {
	if err := l.writer.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit %s: %w", table, err)
	}
	res.Commits++
	return nil
}
