package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophdiary/internal/common"
	"github.com/dmitrijs2005/gophdiary/internal/diary"
	"github.com/dmitrijs2005/gophdiary/internal/kv"
	"github.com/dmitrijs2005/gophdiary/internal/logging"
	"github.com/dmitrijs2005/gophdiary/internal/models"
	"github.com/dmitrijs2005/gophdiary/internal/store"
	"github.com/dmitrijs2005/gophdiary/internal/store/local"
	"github.com/dmitrijs2005/gophdiary/internal/transfer"
)

func newTestServer(t *testing.T, st store.Store) *Server {
	t.Helper()
	if st == nil {
		st = local.New(kv.NewMemoryStore())
	}
	s := New("127.0.0.1:0", diary.NewService(st, logging.Nop{}), transfer.New(st, logging.Nop{}), logging.Nop{})
	s.now = func() time.Time { return time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC) }
	return s
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestCRUD(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodPost, "/api/diaries", `{"date":"2025-01-01","title":"First","content":"hello","tags":["a"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[models.Entry](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	rec = do(t, s, http.MethodPost, "/api/diaries", `{"date":"2025-01-05","title":"Second"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/diaries", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[[]models.Entry](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, "Second", list[0].Title)
	assert.Equal(t, []string{}, list[0].Tags)

	rec = do(t, s, http.MethodGet, "/api/diaries?q=HELLO", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list = decodeBody[[]models.Entry](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	rec = do(t, s, http.MethodPut, "/api/diaries/"+created.ID, `{"date":"2025-01-02","title":"Edited"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	edited := decodeBody[models.Entry](t, rec)
	assert.Equal(t, created.ID, edited.ID)
	assert.Equal(t, "Edited", edited.Title)
	assert.Equal(t, created.CreatedAt, edited.CreatedAt)

	rec = do(t, s, http.MethodGet, "/api/diaries/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Edited", decodeBody[models.Entry](t, rec).Title)

	rec = do(t, s, http.MethodDelete, "/api/diaries/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/diaries/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decodeBody[errorResponse](t, rec).Error, "not found")
}

func TestCreate_WithExistingIDUpdates(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodPost, "/api/diaries", `{"date":"2025-01-01","title":"First"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[models.Entry](t, rec)

	rec = do(t, s, http.MethodPost, "/api/diaries", fmt.Sprintf(`{"id":%q,"date":"2025-01-01","title":"Again"}`, created.ID))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeBody[models.Entry](t, rec)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Again", updated.Title)

	rec = do(t, s, http.MethodPost, "/api/diaries", `{"id":"unknown","date":"2025-01-02","title":"Fresh"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotEqual(t, "unknown", decodeBody[models.Entry](t, rec).ID)

	rec = do(t, s, http.MethodGet, "/api/diaries", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]models.Entry](t, rec), 2)
}

func TestBadRequests(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodPost, "/api/diaries", `{"date":"2025-01-01","title":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody[errorResponse](t, rec).Error, "title is required")

	rec = do(t, s, http.MethodPost, "/api/diaries", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPut, "/api/diaries/missing", `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportImport(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/api/export", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, common.ErrNothingToExport.Error(), decodeBody[errorResponse](t, rec).Error)

	do(t, s, http.MethodPost, "/api/diaries", `{"date":"2025-01-01","title":"A"}`)
	do(t, s, http.MethodPost, "/api/diaries", `{"date":"2025-01-02","title":"B"}`)

	rec = do(t, s, http.MethodGet, "/api/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="diary-backup-2025-02-03.json"`, rec.Header().Get(echo.HeaderContentDisposition))
	exported := rec.Body.String()

	other := newTestServer(t, nil)
	rec = do(t, other, http.MethodPost, "/api/import", exported)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, transfer.Result{Total: 2, Imported: 2, Replaced: true}, decodeBody[transfer.Result](t, rec))

	rec = do(t, other, http.MethodGet, "/api/diaries", "")
	assert.Len(t, decodeBody[[]models.Entry](t, rec), 2)

	rec = do(t, other, http.MethodPost, "/api/import", `{"diaries":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportMultipart(t *testing.T) {
	s := newTestServer(t, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "backup.json")
	require.NoError(t, err)
	_, err = fw.Write([]byte(`{"version":"1.0","diaries":[{"title":"from file","date":"2024-12-31"}]}`))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/import", &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, decodeBody[transfer.Result](t, rec).Imported)

	req = httptest.NewRequest(http.MethodPost, "/api/import", strings.NewReader("--x--\r\n"))
	req.Header.Set(echo.HeaderContentType, "multipart/form-data; boundary=x")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type downStore struct{}

func (downStore) List(context.Context) ([]models.Entry, error) {
	return nil, fmt.Errorf("%w: %w", common.ErrRetrieval, errors.New("bucket unreachable"))
}
func (downStore) Save(context.Context, models.Entry) (models.Entry, error) {
	return models.Entry{}, fmt.Errorf("%w: timeout", common.ErrSave)
}
func (downStore) Delete(context.Context, string) error {
	return fmt.Errorf("%w: connection refused", common.ErrDelete)
}

func TestBackendErrors(t *testing.T) {
	s := newTestServer(t, downStore{})

	assert.Equal(t, http.StatusBadGateway, do(t, s, http.MethodGet, "/api/diaries", "").Code)
	assert.Equal(t, http.StatusBadGateway, do(t, s, http.MethodPost, "/api/diaries", `{"title":"T"}`).Code)
	assert.Equal(t, http.StatusBadGateway, do(t, s, http.MethodDelete, "/api/diaries/x", "").Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: bad", common.ErrFormat), http.StatusBadRequest},
		{common.ErrValidation, http.StatusBadRequest},
		{common.ErrNotFound, http.StatusNotFound},
		{common.ErrNothingToExport, http.StatusNotFound},
		{common.ErrRetrieval, http.StatusBadGateway},
		{fmt.Errorf("%w: %w", common.ErrDelete, common.ErrNotFound), http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	s := newTestServer(t, nil)
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + lis.Addr().String() + "/api/diaries")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop after context cancel")
	}
}
