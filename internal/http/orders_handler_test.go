package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/haysnairpa/urbanwear/internal/domain"
	"github.com/haysnairpa/urbanwear/internal/identity"
)

func TestListOrders_LoggedOutRedirectsToLogin(t *testing.T) {
	handler := NewOrdersHandler(&SessionViewMock{user: nil})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/orders", nil)

	handler.List(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("Expected status code %d, got %d", http.StatusUnauthorized, recorder.Code)
	}

	var response ErrorResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Code != "login_required" {
		t.Errorf("Expected error code 'login_required', got '%s'", response.Code)
	}
	if response.Details != "/login?from=/orders" {
		t.Errorf("Expected redirect back to orders, got '%s'", response.Details)
	}
}

func TestListOrders_Success(t *testing.T) {
	sessionMock := &SessionViewMock{
		user: &identity.User{UID: "uid-ada"},
		orders: []domain.Order{
			{
				ID:        "507f1f77bcf86cd799439011",
				UserID:    "uid-ada",
				Total:     120,
				Status:    domain.OrderStatusCompleted,
				CreatedAt: time.Now().UTC(),
			},
		},
	}

	handler := NewOrdersHandler(sessionMock)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/orders", nil)

	handler.List(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response OrdersResponseDTO
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Orders) != 1 {
		t.Fatalf("Expected 1 order, got %d", len(response.Orders))
	}
	if response.Orders[0].ID != "507f1f77bcf86cd799439011" {
		t.Errorf("Expected order ID '507f1f77bcf86cd799439011', got '%s'", response.Orders[0].ID)
	}
	if response.Loading {
		t.Error("Expected loading false")
	}
}

func TestListOrders_EmptyHistoryStillLoading(t *testing.T) {
	sessionMock := &SessionViewMock{
		user:    &identity.User{UID: "uid-ada"},
		loading: true,
	}

	handler := NewOrdersHandler(sessionMock)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/orders", nil)

	handler.List(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response OrdersResponseDTO
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Orders == nil {
		t.Error("Expected an empty array, got null")
	}
	if len(response.Orders) != 0 {
		t.Errorf("Expected 0 orders, got %d", len(response.Orders))
	}
	if !response.Loading {
		t.Error("Expected loading true")
	}
}
