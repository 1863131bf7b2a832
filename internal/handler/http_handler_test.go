package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/wes-io-live/idgen/internal/domain"
	"github.com/weiawesome/wes-io-live/idgen/internal/generator"
	"github.com/weiawesome/wes-io-live/idgen/internal/handler"
	"github.com/weiawesome/wes-io-live/idgen/internal/inspector"
	"github.com/weiawesome/wes-io-live/idgen/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()

	e, err := generator.New()
	require.NoError(t, err)
	svc := service.NewIDService(e, inspector.New(), 20)
	return handler.NewRouter(handler.NewHandler(svc), zerolog.Nop())
}

func do(t *testing.T, r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestHealth(t *testing.T) {
	t.Parallel()

	w := do(t, newRouter(t), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestGenerateIDHandler(t *testing.T) {
	t.Parallel()

	r := newRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/ids", `{"type":"uuid","version":3,"namespace":"dns","name":"python.org"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	env := decode[domain.GenerateResponse](t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "6fa459ea-ee8a-3ca4-894e-db77e160355e", env.Data.ID)
	assert.Equal(t, 3, env.Data.Version)

	w = do(t, r, http.MethodPost, "/api/v1/ids", `{"type":"nanoid","length":300}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	bad := decode[domain.GenerateResponse](t, w)
	assert.False(t, bad.Success)
	require.NotNil(t, bad.Error)
	assert.Equal(t, "BAD_REQUEST", bad.Error.Code)
	assert.Contains(t, bad.Error.Message, generator.ErrInvalidLength.Error())

	w = do(t, r, http.MethodPost, "/api/v1/ids", `{"type":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateBatchHandler(t *testing.T) {
	t.Parallel()

	r := newRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/ids/batch", `{"type":"cuid","version":1,"count":20}`)
	require.Equal(t, http.StatusCreated, w.Code)
	env := decode[domain.GenerateBatchResponse](t, w)
	require.Len(t, env.Data.IDs, 20)
	for _, id := range env.Data.IDs {
		assert.Regexp(t, `^c[0-9a-z]{24}$`, id)
	}

	w = do(t, r, http.MethodPost, "/api/v1/ids/batch", `{"type":"cuid","count":21}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInspectHandler(t *testing.T) {
	t.Parallel()

	r := newRouter(t)

	target := "/api/v1/ids/inspect?id=" + url.QueryEscape("urn:uuid:cfbff0d1-9375-5685-968c-48ce8b15ae17")
	w := do(t, r, http.MethodGet, target, "")
	require.Equal(t, http.StatusOK, w.Code)
	env := decode[domain.InspectResponse](t, w)
	require.NotEmpty(t, env.Data.Candidates)
	c := env.Data.Candidates[0]
	assert.Equal(t, "uuid", c.Type)
	assert.Equal(t, 5, c.Version)
	assert.Equal(t, "high", c.Confidence)
	assert.Equal(t, "sha1", c.Decoded["hash"])

	w = do(t, r, http.MethodGet, "/api/v1/ids/inspect", "")
	require.Equal(t, http.StatusOK, w.Code)
	env = decode[domain.InspectResponse](t, w)
	assert.Empty(t, env.Data.Candidates)
}

func TestNoRoute(t *testing.T) {
	t.Parallel()

	w := do(t, newRouter(t), http.MethodGet, "/api/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestValidateHandler(t *testing.T) {
	t.Parallel()

	r := newRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/ids/validate?type=ulid&id=01ARZ3NDEKTSV4RRFFQ69G5FAV", "")
	require.Equal(t, http.StatusOK, w.Code)
	env := decode[domain.ValidateResponse](t, w)
	assert.True(t, env.Data.Valid)

	w = do(t, r, http.MethodGet, "/api/v1/ids/validate?type=guid&id=x", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/ids/validate?id=01ARZ3NDEKTSV4RRFFQ69G5FAV", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/ids/validate?type=nanoid&length=6&alphabet=abcdef&id=fadebc", "")
	require.Equal(t, http.StatusOK, w.Code)
	env = decode[domain.ValidateResponse](t, w)
	assert.True(t, env.Data.Valid, env.Data.Reason)
}
