package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postOrder(t *testing.T, h http.Handler, payload map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func validOrderPayload() map[string]interface{} {
	return map[string]interface{}{
		"customerName":  "Ana",
		"customerEmail": "a@x.hr",
		"customerPhone": "091",
		"deliveryDate":  "2025-01-01",
		"deliveryTime":  "14:00",
		"items": []map[string]interface{}{
			{"name": "Torta", "price": 15, "quantity": 1},
		},
	}
}

func TestCreateOrderPublic(t *testing.T) {
	env := newTestEnv(t)
	h := env.orderHandler()

	w := postOrder(t, h, validOrderPayload())
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	order := body["order"].(map[string]interface{})
	assert.Regexp(t, `^LD\d{4}$`, order["orderNumber"])
	assert.Equal(t, 15.0, order["totalAmount"])
	assert.Equal(t, "naruceno", order["status"])
}

func TestCreateOrderMissingFieldMessages(t *testing.T) {
	env := newTestEnv(t)
	h := env.orderHandler()

	for _, field := range []string{"customerName", "customerEmail", "customerPhone", "deliveryDate", "deliveryTime", "items"} {
		t.Run(field, func(t *testing.T) {
			payload := validOrderPayload()
			delete(payload, field)

			w := postOrder(t, h, payload)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, field+" is required", decodeBody(t, w)["error"])
		})
	}
}

func TestCreateOrderIgnoresClientTotal(t *testing.T) {
	env := newTestEnv(t)
	h := env.orderHandler()

	payload := validOrderPayload()
	payload["totalAmount"] = 1.0
	payload["items"] = []map[string]interface{}{
		{"name": "Torta", "price": 10, "quantity": 2},
		{"name": "Kolač", "price": 5, "quantity": 1},
	}

	w := postOrder(t, h, payload)
	require.Equal(t, http.StatusCreated, w.Code)

	order := decodeBody(t, w)["order"].(map[string]interface{})
	assert.Equal(t, 25.0, order["totalAmount"])
}

func TestListOrdersRequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	h := env.orderHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not authenticated", decodeBody(t, w)["error"])
}

func TestListOrdersWithAuth(t *testing.T) {
	env := newTestEnv(t)
	h := env.orderHandler()

	postOrder(t, h, validOrderPayload())
	postOrder(t, h, validOrderPayload())

	req := httptest.NewRequest(http.MethodGet, "/api/orders?page=1&limit=10", nil)
	req.Header.Set("Authorization", "Bearer "+env.employeeToken)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["orders"], 2)

	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, 1.0, pagination["current"])
	assert.Equal(t, 1.0, pagination["total"])
	assert.Equal(t, 2.0, pagination["count"])
	assert.Equal(t, 2.0, pagination["totalOrders"])
}

func TestGetOrder(t *testing.T) {
	env := newTestEnv(t)
	h := env.orderHandler()

	w := postOrder(t, h, validOrderPayload())
	orderID := decodeBody(t, w)["order"].(map[string]interface{})["id"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+orderID, nil)
	req.Header.Set("Authorization", "Bearer "+env.employeeToken)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// Unknown ids are a 404.
	req = httptest.NewRequest(http.MethodGet, "/api/orders/00000000-0000-0000-0000-000000000001", nil)
	req.Header.Set("Authorization", "Bearer "+env.employeeToken)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Order not found", decodeBody(t, rec)["error"])
}

func TestUpdateOrderStatus(t *testing.T) {
	env := newTestEnv(t)
	h := env.orderHandler()

	w := postOrder(t, h, validOrderPayload())
	orderID := decodeBody(t, w)["order"].(map[string]interface{})["id"].(string)

	patch := bytes.NewReader([]byte(`{"status":"u_izradi"}`))
	req := httptest.NewRequest(http.MethodPatch, "/api/orders/"+orderID, patch)
	req.Header.Set("Authorization", "Bearer "+env.employeeToken)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	order := decodeBody(t, rec)["order"].(map[string]interface{})
	assert.Equal(t, "u_izradi", order["status"])

	// An unknown status value is a validation error.
	patch = bytes.NewReader([]byte(`{"status":"delivered"}`))
	req = httptest.NewRequest(http.MethodPatch, "/api/orders/"+orderID, patch)
	req.Header.Set("Authorization", "Bearer "+env.employeeToken)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOrderRequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	h := env.orderHandler()

	w := postOrder(t, h, validOrderPayload())
	orderID := decodeBody(t, w)["order"].(map[string]interface{})["id"].(string)

	req := httptest.NewRequest(http.MethodPatch, "/api/orders/"+orderID, bytes.NewReader([]byte(`{"status":"placeno"}`)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeleteOrderRoleGating(t *testing.T) {
	env := newTestEnv(t)
	h := env.orderHandler()

	w := postOrder(t, h, validOrderPayload())
	orderID := decodeBody(t, w)["order"].(map[string]interface{})["id"].(string)

	// A valid employee session is not enough.
	req := httptest.NewRequest(http.MethodDelete, "/api/orders/"+orderID, nil)
	req.Header.Set("Authorization", "Bearer "+env.employeeToken)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Not authorized", decodeBody(t, rec)["error"])

	// The order is still there.
	req = httptest.NewRequest(http.MethodGet, "/api/orders/"+orderID, nil)
	req.Header.Set("Authorization", "Bearer "+env.employeeToken)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// Admin delete succeeds and the order is gone.
	req = httptest.NewRequest(http.MethodDelete, "/api/orders/"+orderID, nil)
	req.Header.Set("Authorization", "Bearer "+env.adminToken)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/orders/"+orderID, nil)
	req.Header.Set("Authorization", "Bearer "+env.adminToken)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvalidOrderID(t *testing.T) {
	env := newTestEnv(t)
	h := env.orderHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/orders/not-a-uuid", nil)
	req.Header.Set("Authorization", "Bearer "+env.employeeToken)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
