package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipdeck/clip"
	"clipdeck/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.DB) {
	t.Helper()
	db, err := storage.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewServer(db, 0), db
}

func TestHandleSlots(t *testing.T) {
	s, _ := newTestServer(t)

	// Empty snapshot before any command ran.
	rec := httptest.NewRecorder()
	s.handleSlots(rec, httptest.NewRequest(http.MethodGet, "/api/slots", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Slots []clip.Slot `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Slots)

	s.UpdateSlots([]clip.Slot{{Index: 1, Text: "a"}, {Index: 3, Text: "c"}})

	rec = httptest.NewRecorder()
	s.handleSlots(rec, httptest.NewRequest(http.MethodGet, "/api/slots", nil))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []clip.Slot{{Index: 1, Text: "a"}, {Index: 3, Text: "c"}}, resp.Slots)
}

func TestHandleSlotsMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handleSlots(rec, httptest.NewRequest(http.MethodPost, "/api/slots", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleStatus(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handleStatus(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "idle", resp["state"])

	s.UpdateStatus("paste")

	rec = httptest.NewRecorder()
	s.handleStatus(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "paste", resp["state"])
}

func TestHandleHistory(t *testing.T) {
	s, db := newTestServer(t)
	require.NoError(t, db.SaveRun(&storage.CommandRun{Command: "copy", Slot: 1, CharCount: 5, Success: true}))

	rec := httptest.NewRecorder()
	s.handleHistory(rec, httptest.NewRequest(http.MethodGet, "/api/history?limit=10", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Runs  []storage.CommandRun `json:"runs"`
		Total int                  `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Runs, 1)
	assert.Equal(t, "copy", resp.Runs[0].Command)
	assert.Equal(t, 1, resp.Total)
}

func TestHandleHistoryDelete(t *testing.T) {
	s, db := newTestServer(t)
	run := &storage.CommandRun{Command: "copy", Success: true}
	require.NoError(t, db.SaveRun(run))

	rec := httptest.NewRecorder()
	url := fmt.Sprintf("/api/history/%d", run.ID)
	s.handleHistory(rec, httptest.NewRequest(http.MethodDelete, url, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	count, err := db.GetRunCount()
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	rec = httptest.NewRecorder()
	s.handleHistory(rec, httptest.NewRequest(http.MethodDelete, "/api/history/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleStats(t *testing.T) {
	s, db := newTestServer(t)
	require.NoError(t, db.SaveRun(&storage.CommandRun{Command: "copy", CharCount: 4, Success: true}))
	require.NoError(t, db.SaveRun(&storage.CommandRun{Command: "paste", Detail: "empty slot"}))

	rec := httptest.NewRecorder()
	s.handleStats(rec, httptest.NewRequest(http.MethodGet, "/api/stats?days=7", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Overall   storage.OverallStats   `json:"overall"`
		ByCommand []storage.CommandStats `json:"byCommand"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Overall.TotalRuns)
	assert.Equal(t, 1, resp.Overall.SuccessCount)
	assert.Len(t, resp.ByCommand, 2)
}

func TestHandlersWithoutJournal(t *testing.T) {
	s := NewServer(nil, 0)

	rec := httptest.NewRecorder()
	s.handleStats(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	s.handleHistory(rec, httptest.NewRequest(http.MethodGet, "/api/history", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
