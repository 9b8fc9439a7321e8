package core

import (
	"context"
	"io"
	"time"

	"github.com/JonMunkholm/csvplot/internal/config"
	"github.com/JonMunkholm/csvplot/internal/logging"
)

// Service provides the core business logic for CSV analysis and charting.
type Service struct {
	store       *Store
	limiter     *UploadLimiter
	maxFileSize int64
	timeout     time.Duration
}

// NewService creates a new Service instance.
func NewService(cfg *config.Config) *Service {
	return &Service{
		store:       NewStore(),
		limiter:     NewUploadLimiter(cfg.Upload.MaxConcurrent, cfg.Upload.MaxWaitTime),
		maxFileSize: cfg.Upload.MaxFileSize,
		timeout:     cfg.Upload.Timeout,
	}
}

// Ingest parses an uploaded file and, on success, replaces the stored table.
// A failure at any step leaves the previously stored table in place.
func (s *Service) Ingest(ctx context.Context, fileName string, r io.Reader) (*IngestResult, error) {
	logger := logging.WithFields(ctx, "file", fileName)

	if err := s.limiter.Acquire(ctx); err != nil {
		logger.Warn("upload rejected", "error", err)
		return nil, err
	}
	defer s.limiter.Release()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	table, res, st, err := BuildTable(ctx, fileName, r, s.maxFileSize)
	if err != nil {
		logger.Warn("upload failed", "error", err, "kind", KindOf(err).String())
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		logger.Warn("upload abandoned", "error", err)
		return nil, err
	}

	prev := s.store.Replace(table)

	attrs := []any{
		"upload_id", res.UploadID,
		"parsed_rows", st.ParsedRows,
		"parsed_columns", st.ParsedColumns,
		"rows", res.Rows,
		"columns", res.Columns,
		"dropped_columns", st.DroppedColumns,
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if prev != nil {
		attrs = append(attrs, "replaced", prev.ID.String())
	}
	logger.Info("upload stored", attrs...)

	return res, nil
}

// Current describes the stored table.
func (s *Service) Current() (*TableInfo, error) {
	t, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}
	info := t.Info()
	return &info, nil
}

// Scatter builds a scatter chart from the stored table.
func (s *Service) Scatter(xCol, yCol string) (*Chart, error) {
	t, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}
	return Scatter(t, xCol, yCol)
}

// Bar builds a bar chart from the stored table.
func (s *Service) Bar(xCol, yCol string) (*Chart, error) {
	t, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}
	return Bar(t, xCol, yCol)
}

// Histogram builds a histogram from the stored table.
func (s *Service) Histogram(col string) (*Chart, error) {
	t, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}
	return Histogram(t, col)
}

// Heatmap builds a heatmap from the stored table.
func (s *Service) Heatmap(xCol, yCol string) (*Chart, error) {
	t, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}
	return Heatmap(t, xCol, yCol)
}

// Export writes the stored table to w.
func (s *Service) Export(w io.Writer, format ExportFormat) error {
	t, err := s.store.Snapshot()
	if err != nil {
		return err
	}
	return Export(t, w, format)
}

// UploadLimiterStatus returns the current upload limiter state.
func (s *Service) UploadLimiterStatus() UploadLimiterStatus {
	return s.limiter.Status()
}

// WaitForUploads blocks until in-flight uploads finish or ctx ends.
func (s *Service) WaitForUploads(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
