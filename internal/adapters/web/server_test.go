package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"AppEvents/internal/core/domain"
	"AppEvents/internal/core/ports"
)

// MockEventJournal
type MockEventJournal struct {
	mock.Mock
}

var _ ports.EventJournal = (*MockEventJournal)(nil)

func (m *MockEventJournal) Record(ctx context.Context, rec *domain.EventRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockEventJournal) Recent(ctx context.Context, limit int) ([]domain.EventRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EventRecord), args.Error(1)
}

func TestHealthz(t *testing.T) {
	router := newRouter(nil, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRecentEventsWithoutJournal(t *testing.T) {
	router := newRouter(nil, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/events/recent", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRecentEventsUsesDefaultLimit(t *testing.T) {
	journal := new(MockEventJournal)
	journal.On("Recent", mock.Anything, defaultRecentLimit).
		Return([]domain.EventRecord{*domain.NewEventRecord("application.started", "web-test", "")}, nil).
		Once()

	router := newRouter(journal, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/events/recent", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var records []domain.EventRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "application.started", records[0].Event)

	journal.AssertExpectations(t)
}

func TestRecentEventsRejectsBadLimit(t *testing.T) {
	journal := new(MockEventJournal)
	router := newRouter(journal, zerolog.Nop())

	for _, raw := range []string{"0", "-5", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/events/recent?limit="+raw, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equalf(t, http.StatusBadRequest, rec.Code, "limit=%q", raw)
	}
	journal.AssertNotCalled(t, "Recent", mock.Anything, mock.Anything)
}

func TestRecentEventsJournalFailure(t *testing.T) {
	journal := new(MockEventJournal)
	journal.On("Recent", mock.Anything, 5).Return(nil, errors.New("connection reset"))

	router := newRouter(journal, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/events/recent?limit=5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
