package core

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/JonMunkholm/csvplot/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(config.Default())
}

func ingest(t *testing.T, s *Service, name, data string) *IngestResult {
	t.Helper()
	res, err := s.Ingest(context.Background(), name, strings.NewReader(data))
	require.NoError(t, err)
	return res
}

func TestService_NoDataBeforeUpload(t *testing.T) {
	s := newTestService(t)

	_, err := s.Current()
	assert.True(t, errors.Is(err, ErrNoData))

	_, err = s.Scatter("A", "B")
	assert.True(t, errors.Is(err, ErrNoData))
	_, err = s.Bar("A", "B")
	assert.True(t, errors.Is(err, ErrNoData))
	_, err = s.Histogram("A")
	assert.True(t, errors.Is(err, ErrNoData))
	_, err = s.Heatmap("A", "B")
	assert.True(t, errors.Is(err, ErrNoData))
	assert.True(t, errors.Is(s.Export(&bytes.Buffer{}, ExportCSV), ErrNoData))
}

func TestService_FailedUploadKeepsPreviousTable(t *testing.T) {
	s := newTestService(t)
	first := ingest(t, s, "first.csv", "A,B\n1,2\n")

	_, err := s.Ingest(context.Background(), "bad.txt", strings.NewReader("A\n1\n"))
	require.Error(t, err)
	_, err = s.Ingest(context.Background(), "bad.csv", strings.NewReader("A\n1,2\n"))
	require.Error(t, err)

	info, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, first.UploadID, info.ID)
	assert.Equal(t, "first.csv", info.FileName)
}

func TestService_ReuploadReplacesTable(t *testing.T) {
	s := newTestService(t)
	ingest(t, s, "first.csv", "A,B\n1,2\n")
	second := ingest(t, s, "second.csv", "C,D\n3,4\n5,6\n")

	info, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, second.UploadID, info.ID)
	assert.Equal(t, []string{"C", "D"}, info.Columns)
	assert.Equal(t, 2, info.Rows)

	_, err = s.Scatter("A", "B")
	assert.True(t, errors.Is(err, ErrUnknownColumn))

	chart, err := s.Scatter("C", "D")
	require.NoError(t, err)
	assert.Len(t, chart.Points, 2)
}

func TestService_CanceledContext(t *testing.T) {
	s := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Ingest(ctx, "data.csv", strings.NewReader("A\n1\n"))
	assert.True(t, errors.Is(err, context.Canceled))

	_, err = s.Current()
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestService_ConcurrentReadersSeeWholeTables(t *testing.T) {
	s := newTestService(t)
	ingest(t, s, "a.csv", "A,B\n1,2\n")

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.Ingest(context.Background(), "a.csv", strings.NewReader("A,B\n1,2\n3,4\n"))
		}()
		go func() {
			defer wg.Done()
			chart, err := s.Scatter("A", "B")
			if assert.NoError(t, err) {
				assert.Contains(t, []int{1, 2}, len(chart.Points))
			}
		}()
	}
	wg.Wait()
}

func TestStore_Replace(t *testing.T) {
	store := NewStore()
	_, err := store.Snapshot()
	require.True(t, errors.Is(err, ErrNoData))

	a, _ := buildTable(t, "x\n1\n")
	b, _ := buildTable(t, "y\n2\n")

	assert.Nil(t, store.Replace(a))
	assert.Same(t, a, store.Replace(b))

	got, err := store.Snapshot()
	require.NoError(t, err)
	assert.Same(t, b, got)
}
