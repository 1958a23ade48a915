package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/require"

	"linkshield/internal/scanner"
	"linkshield/internal/worker"
	"linkshield/pkg/domain"
	"linkshield/pkg/logger"
	"linkshield/pkg/storage"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

// historyStorage records StoreScans calls and optionally fails them.
type historyStorage struct {
	stored []domain.Scan
	err    error
}

func (h *historyStorage) StoreScans(_ context.Context, scans ...domain.Scan) ([]domain.Scan, error) {
	if h.err != nil {
		return nil, h.err
	}
	h.stored = append(h.stored, scans...)

	return scans, nil
}

func (h *historyStorage) UserScans(context.Context, domain.UserID, time.Time, uint) (storage.UserScans, error) {
	return storage.UserScans{}, nil
}

func (h *historyStorage) ScanByID(context.Context, domain.UserID, domain.ScanID) (*domain.Scan, error) {
	return nil, nil
}

func (h *historyStorage) DeleteScan(context.Context, domain.UserID, domain.ScanID) (*domain.Scan, error) {
	return nil, nil
}

func (h *historyStorage) AddJob(context.Context, river.JobArgs, *river.InsertOpts) (bool, error) {
	return false, nil
}

func (h *historyStorage) Close() error { return nil }

func (h *historyStorage) Begin(context.Context) (storage.TxStorage, error) {
	return nil, errors.New("transactions not supported")
}

func (h *historyStorage) WithTx(_ context.Context, cb func(storage.AllStorage) error) error {
	return cb(h)
}

func makeJob(id int64, scan domain.Scan) *river.Job[scanner.HistoryJobArgs] {
	return &river.Job[scanner.HistoryJobArgs]{
		JobRow: &rivertype.JobRow{ID: id},
		Args:   scanner.HistoryJobArgs{Scan: scan},
	}
}

func TestHistoryWriterWorker_Work(t *testing.T) {
	strg := &historyStorage{}
	w := worker.NewHistoryWriterWorker(strg)

	scan := domain.Scan{
		ID:      "scn_0123456789ab",
		URL:     "https://example.com",
		Verdict: domain.VerdictBenign,
	}
	require.NoError(t, w.Work(context.Background(), makeJob(1, scan)))
	require.Len(t, strg.stored, 1)
	require.Equal(t, scan, strg.stored[0])
}

func TestHistoryWriterWorker_Work_StorageError(t *testing.T) {
	strg := &historyStorage{err: errors.New("connection reset")}
	w := worker.NewHistoryWriterWorker(strg)

	err := w.Work(context.Background(), makeJob(2, domain.Scan{ID: "scn_0123456789ab"}))
	require.Error(t, err)
	require.ErrorContains(t, err, "could not store scan history")
}
