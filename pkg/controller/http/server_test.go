package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/mailcrest/mailcrest/pkg/catalog"
	httpctrl "github.com/mailcrest/mailcrest/pkg/controller/http"
	"github.com/mailcrest/mailcrest/pkg/repository/memory"
	"github.com/mailcrest/mailcrest/pkg/usecase"
)

func newTestServer(t *testing.T) *httpctrl.Server {
	t.Helper()

	actions, compounds, err := catalog.LoadDefault()
	gt.NoError(t, err).Required()

	uc := usecase.New(memory.New(), actions, compounds)
	t.Cleanup(uc.Close)
	return httpctrl.New(uc)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	gt.Value(t, rec.Code).Equal(http.StatusOK)
}

func TestResolveEndpoint(t *testing.T) {
	srv := newTestServer(t)

	t.Run("valid request", func(t *testing.T) {
		body := map[string]any{
			"userId":  "user-1",
			"emailId": "email-1",
			"classification": map[string]any{
				"intent":     "e-commerce.shipping.notification",
				"confidence": 0.93,
				"entities": map[string]any{
					"trackingNumber": "1Z999",
					"trackingUrl":    "https://ups.com/track/1Z999",
					"deliveryDate":   "2026-09-03",
				},
			},
		}
		data, err := json.Marshal(body)
		gt.NoError(t, err).Required()

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/resolve", bytes.NewReader(data)))
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var result struct {
			Resolved struct {
				ActionID string `json:"actionId"`
				Source   string `json:"source"`
			} `json:"resolved"`
			Dispatch *struct {
				Kind string `json:"kind"`
				URL  string `json:"url"`
			} `json:"dispatch"`
			Compound *struct {
				ActionID string `json:"actionId"`
			} `json:"compound"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result)).Required()
		gt.Value(t, result.Resolved.ActionID).Equal("track_package")
		gt.Value(t, result.Resolved.Source).Equal("CATALOG_FALLBACK")
		gt.Value(t, result.Dispatch).NotNil()
		gt.Value(t, result.Dispatch.URL).Equal("https://ups.com/track/1Z999")
		gt.Value(t, result.Compound).NotNil()
		gt.Value(t, result.Compound.ActionID).Equal("track_with_calendar")
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/resolve", bytes.NewReader([]byte("{"))))
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("invalid classification", func(t *testing.T) {
		body := map[string]any{
			"userId":  "user-1",
			"emailId": "email-1",
			"classification": map[string]any{
				"intent":     "billing.invoice.due",
				"confidence": 2.0,
			},
		}
		data, err := json.Marshal(body)
		gt.NoError(t, err).Required()

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/resolve", bytes.NewReader(data)))
		gt.Value(t, rec.Code).Equal(http.StatusInternalServerError)
	})
}

func TestActionEndpoints(t *testing.T) {
	srv := newTestServer(t)

	t.Run("list actions", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/actions", nil))
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var body struct {
			Actions []json.RawMessage `json:"actions"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body)).Required()
		gt.Number(t, len(body.Actions)).Greater(0)
	})

	t.Run("get known action", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/actions/track_package", nil))
		gt.Value(t, rec.Code).Equal(http.StatusOK)
	})

	t.Run("get unknown action", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/actions/no_such_action", nil))
		gt.Value(t, rec.Code).Equal(http.StatusNotFound)
	})

	t.Run("list compound actions", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/compound-actions", nil))
		gt.Value(t, rec.Code).Equal(http.StatusOK)
	})
}

func TestOverrideEndpoints(t *testing.T) {
	srv := newTestServer(t)

	putOverride := func(t *testing.T, actionID string) *httptest.ResponseRecorder {
		t.Helper()
		data, err := json.Marshal(map[string]any{
			"userId":   "user-1",
			"emailId":  "email-1",
			"actionId": actionID,
		})
		gt.NoError(t, err).Required()
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/override", bytes.NewReader(data)))
		return rec
	}

	t.Run("record override", func(t *testing.T) {
		rec := putOverride(t, "view_details")
		gt.Value(t, rec.Code).Equal(http.StatusNoContent)
	})

	t.Run("unknown action is rejected", func(t *testing.T) {
		rec := putOverride(t, "no_such_action")
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("delete override", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/override?userId=user-1&emailId=email-1", nil))
		gt.Value(t, rec.Code).Equal(http.StatusNoContent)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/override?userId=user-1&emailId=email-1", nil))
		gt.Value(t, rec.Code).Equal(http.StatusNoContent)
	})

	t.Run("delete without params", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/override", nil))
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestSelectionEndpoint(t *testing.T) {
	srv := newTestServer(t)

	data, err := json.Marshal(map[string]any{
		"userId":   "user-1",
		"emailId":  "email-1",
		"actionId": "view_details",
	})
	gt.NoError(t, err).Required()

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/selection", bytes.NewReader(data)))
	gt.Value(t, rec.Code).Equal(http.StatusNoContent)
}

func TestRegistryEndpoints(t *testing.T) {
	srv := newTestServer(t)

	t.Run("get registry", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/registry?userId=user-1", nil))
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var registry struct {
			UserID     string            `json:"userId"`
			Mode       string            `json:"mode"`
			WindowDays int               `json:"windowDays"`
			Entries    []json.RawMessage `json:"entries"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registry)).Required()
		gt.Value(t, registry.UserID).Equal("user-1")
		gt.Value(t, registry.Mode).Equal("inbox")
		gt.Value(t, registry.WindowDays).Equal(30)
		gt.Number(t, len(registry.Entries)).Greater(0)
	})

	t.Run("invalid windowDays", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/registry?userId=user-1&windowDays=abc", nil))
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("missing user", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/registry", nil))
		gt.Value(t, rec.Code).Equal(http.StatusInternalServerError)
	})

	t.Run("invalidate registry", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/registry/user-1", nil))
		gt.Value(t, rec.Code).Equal(http.StatusNoContent)
	})
}
