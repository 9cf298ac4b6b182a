package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zentharo/request-service/internal/api/dto"
	httptransport "github.com/zentharo/request-service/internal/api/http"
	"github.com/zentharo/request-service/internal/api/http/handlers"
	"github.com/zentharo/request-service/internal/auth"
	"github.com/zentharo/request-service/internal/config"
	"github.com/zentharo/request-service/internal/domain"
	"github.com/zentharo/request-service/internal/events"
	"github.com/zentharo/request-service/internal/observability"
	"github.com/zentharo/request-service/internal/service"
)

type testEnv struct {
	app      *fiber.App
	requests *memRequestRepo
	users    *memUserRepo
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	requestRepo := newMemRequestRepo()
	userRepo := newMemUserRepo()
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()
	logger := zap.NewNop()

	authCfg := config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            4,
	}
	authService := service.NewAuthService(authCfg, userRepo)
	requestService := service.NewRequestService(service.RequestDependencies{
		RequestRepo: requestRepo,
		Dispatcher:  dispatcher,
	})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("test", "test", nil),
		Requests:       handlers.NewRequestsHandler(requestService),
		Users:          handlers.NewUsersHandler(authService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), userRepo),
	})

	return &testEnv{app: app, requests: requestRepo, users: userRepo}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, headers ...http.Header) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, values := range h {
			for _, value := range values {
				req.Header.Add(key, value)
			}
		}
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createRequestBody() dto.CreateRequestRequest {
	return dto.CreateRequestRequest{
		CustomerDetails: dto.CustomerDetails{
			Name:  "A",
			Email: "a@x.com",
			Phone: "555",
		},
		SelectedServices: []string{"Web Design"},
	}
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/requests", createRequestBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeJSON[dto.RequestResponse](t, resp)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Pending", created.Status)
	assert.Equal(t, 25, created.ProgressPercent)
	assert.Positive(t, created.SubmittedTimestamp)
	assert.Equal(t, "A", created.CustomerDetails.Name)
	assert.Equal(t, "a@x.com", created.CustomerDetails.Email)
	assert.Equal(t, "555", created.CustomerDetails.Phone)
	assert.Equal(t, []string{"Web Design"}, created.SelectedServices)

	resp = env.do(t, http.MethodGet, "/api/requests/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fetched := decodeJSON[dto.RequestResponse](t, resp)
	assert.Equal(t, created, fetched)
}

func TestCreateRequestValidation(t *testing.T) {
	env := newTestEnv(t)

	body := createRequestBody()
	body.CustomerDetails.Name = ""
	resp := env.do(t, http.MethodPost, "/api/requests", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body = createRequestBody()
	body.CustomerDetails.Email = "   "
	resp = env.do(t, http.MethodPost, "/api/requests", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body = createRequestBody()
	body.SelectedServices = nil
	resp = env.do(t, http.MethodPost, "/api/requests", body)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	envelope := decodeJSON[errorEnvelope](t, resp)
	assert.Equal(t, "VALIDATION_FAILED", envelope.Error.Code)
}

func TestListRequestsNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	for i, ts := range []int64{500, 100, 900, 300} {
		env.requests.seed(domain.Request{
			ID:                 fmt.Sprintf("seed-%d", i),
			CustomerDetails:    domain.CustomerDetails{Name: "C", Email: "c@x.com"},
			SelectedServices:   []string{"SEO"},
			Status:             domain.RequestStatusPending,
			SubmittedTimestamp: ts,
		})
	}

	resp := env.do(t, http.MethodGet, "/api/requests", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := decodeJSON[[]dto.RequestResponse](t, resp)
	require.Len(t, items, 4)
	for i := 1; i < len(items); i++ {
		assert.Greater(t, items[i-1].SubmittedTimestamp, items[i].SubmittedTimestamp,
			"list must be strictly descending by submitted timestamp")
	}
}

func TestListRequestsEmpty(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/requests", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := decodeJSON[[]dto.RequestResponse](t, resp)
	assert.Empty(t, items)
}

func TestGetRequestNotFound(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/requests/unknown", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	envelope := decodeJSON[errorEnvelope](t, resp)
	assert.Equal(t, "NOT_FOUND", envelope.Error.Code)
}

func TestStatusLifecycleEndToEnd(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/requests", createRequestBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeJSON[dto.RequestResponse](t, resp)
	assert.Equal(t, 25, created.ProgressPercent)

	resp = env.do(t, http.MethodPut, "/api/requests/"+created.ID, dto.UpdateRequestStatusRequest{Status: "Approved"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	approved := decodeJSON[dto.RequestResponse](t, resp)
	assert.Equal(t, "Approved", approved.Status)
	assert.Equal(t, 75, approved.ProgressPercent)

	resp = env.do(t, http.MethodPut, "/api/requests/"+created.ID, dto.UpdateRequestStatusRequest{Status: "Completed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	completed := decodeJSON[dto.RequestResponse](t, resp)
	assert.Equal(t, "Completed", completed.Status)
	assert.Equal(t, 100, completed.ProgressPercent)

	resp = env.do(t, http.MethodPut, "/api/requests/"+created.ID, dto.UpdateRequestStatusRequest{Status: "Pending"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	envelope := decodeJSON[errorEnvelope](t, resp)
	assert.Equal(t, "INVALID_TRANSITION", envelope.Error.Code)
}

func TestUpdateStatusSameStatusIsNoop(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/requests", createRequestBody())
	created := decodeJSON[dto.RequestResponse](t, resp)

	resp = env.do(t, http.MethodPut, "/api/requests/"+created.ID, dto.UpdateRequestStatusRequest{Status: "Pending"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	unchanged := decodeJSON[dto.RequestResponse](t, resp)
	assert.Equal(t, "Pending", unchanged.Status)
}

func TestUpdateStatusSkippingStageRejected(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/requests", createRequestBody())
	created := decodeJSON[dto.RequestResponse](t, resp)

	resp = env.do(t, http.MethodPut, "/api/requests/"+created.ID, dto.UpdateRequestStatusRequest{Status: "Completed"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	envelope := decodeJSON[errorEnvelope](t, resp)
	assert.Equal(t, "INVALID_TRANSITION", envelope.Error.Code)
}

func TestUpdateStatusUnknownValue(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/requests", createRequestBody())
	created := decodeJSON[dto.RequestResponse](t, resp)

	resp = env.do(t, http.MethodPut, "/api/requests/"+created.ID, dto.UpdateRequestStatusRequest{Status: "Archived"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	envelope := decodeJSON[errorEnvelope](t, resp)
	assert.Equal(t, "VALIDATION_FAILED", envelope.Error.Code)
}

func TestUpdateStatusNotFound(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPut, "/api/requests/unknown", dto.UpdateRequestStatusRequest{Status: "Approved"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteRequest(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/requests", createRequestBody())
	created := decodeJSON[dto.RequestResponse](t, resp)

	resp = env.do(t, http.MethodDelete, "/api/requests/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	message := decodeJSON[map[string]string](t, resp)
	assert.Equal(t, "Request deleted successfully", message["message"])

	resp = env.do(t, http.MethodGet, "/api/requests/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, "/api/requests/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
