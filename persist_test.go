package companygraph

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/siherrmann/companygraph/helper"
	"github.com/siherrmann/companygraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGraphs struct {
	inserted []uuid.UUID
	deleted  []uuid.UUID
	onInsert func()
}

func (f *fakeGraphs) InsertGraph(companyName string, payload *model.GraphPayload) (*model.StoredGraph, error) {
	id := uuid.New()
	f.inserted = append(f.inserted, id)
	if f.onInsert != nil {
		f.onInsert()
	}
	return &model.StoredGraph{ID: id, CompanyName: companyName, Payload: *payload}, nil
}

func (f *fakeGraphs) SelectGraph(id uuid.UUID) (*model.StoredGraph, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeGraphs) SelectLatestGraph(companyName string) (*model.StoredGraph, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeGraphs) SelectGraphsByCompany(companyName string, limit int) ([]*model.StoredGraph, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeGraphs) DeleteGraph(id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeReports struct {
	err   error
	calls int
}

func (f *fakeReports) InsertReport(companyName string, report *model.CreditReport) (*model.StoredReport, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &model.StoredReport{ID: uuid.New(), CompanyName: companyName, Report: *report}, nil
}

func (f *fakeReports) SelectReport(id uuid.UUID) (*model.StoredReport, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeReports) SelectReportsByCompany(companyName string, limit int) ([]*model.StoredReport, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeReports) DeleteReport(id uuid.UUID) error {
	return nil
}

func analysisForPersist(t *testing.T) *model.Analysis {
	cg := initCompanyGraph(t)
	result, err := cg.Analyze(context.Background(), huawei)
	require.NoError(t, err)
	return result
}

func TestPersistAnalysis(t *testing.T) {
	logger := helper.NewLogger(io.Discard, slog.LevelError)

	t.Run("Graph and report ids are set", func(t *testing.T) {
		graphs := &fakeGraphs{}
		reports := &fakeReports{}
		result := analysisForPersist(t)

		err := persistAnalysis(context.Background(), graphs, reports, result, logger)
		require.NoError(t, err)
		require.NotNil(t, result.GraphID, "Expected graph id to be set")
		require.NotNil(t, result.ReportID, "Expected report id to be set")
		assert.Equal(t, graphs.inserted[0], *result.GraphID)
		assert.Empty(t, graphs.deleted, "Expected no graph to be deleted")
	})

	t.Run("Failed report insert deletes the graph", func(t *testing.T) {
		graphs := &fakeGraphs{}
		reports := &fakeReports{err: errors.New("connection reset")}
		result := analysisForPersist(t)

		err := persistAnalysis(context.Background(), graphs, reports, result, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
		require.Len(t, graphs.inserted, 1)
		assert.Equal(t, graphs.inserted, graphs.deleted, "Expected inserted graph to be deleted again")
		assert.Nil(t, result.GraphID, "Expected no graph id on failure")
		assert.Nil(t, result.ReportID, "Expected no report id on failure")
	})

	t.Run("Cancellation after graph insert deletes the graph", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		graphs := &fakeGraphs{onInsert: cancel}
		reports := &fakeReports{}
		result := analysisForPersist(t)

		err := persistAnalysis(ctx, graphs, reports, result, logger)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, reports.calls, "Expected no report insert after cancellation")
		assert.Equal(t, graphs.inserted, graphs.deleted, "Expected inserted graph to be deleted again")
		assert.Nil(t, result.GraphID)
	})

	t.Run("Cancelled context stores nothing", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		graphs := &fakeGraphs{}
		reports := &fakeReports{}

		err := persistAnalysis(ctx, graphs, reports, analysisForPersist(t), logger)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, graphs.inserted)
		assert.Equal(t, 0, reports.calls)
	})
}

func TestAnalyzeCancelled(t *testing.T) {
	cg := initCompanyGraph(t)

	t.Run("Cancelled context aborts in-memory analysis", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := cg.Analyze(ctx, huawei)
		assert.ErrorIs(t, err, context.Canceled, "Expected context error from Analyze")
		assert.Nil(t, result, "Expected no result for cancelled context")
	})

	t.Run("Expired deadline aborts in-memory analysis", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 0)
		defer cancel()

		_, err := cg.Analyze(ctx, huawei)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
