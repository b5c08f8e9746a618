package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Format", func(t *testing.T) {
		id := GenerateID("prd", now)
		parts := strings.Split(id, "-")
		if assert.Len(t, parts, 3) {
			assert.Equal(t, "prd", parts[0])
			assert.NotEmpty(t, parts[1])
			assert.Len(t, parts[2], 8, "random part should be 8 hex chars")
		}
	})

	t.Run("No prefix", func(t *testing.T) {
		id := GenerateID("", now)
		assert.Len(t, strings.Split(id, "-"), 2)
	})

	t.Run("Uniqueness", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 500; i++ {
			id := GenerateID("x", now)
			assert.False(t, seen[id], "duplicate id %s", id)
			seen[id] = true
		}
	})
}

func TestUserContext(t *testing.T) {
	t.Run("Set and get", func(t *testing.T) {
		ctx := SetUserContext(context.Background(), "user-1")
		id, ok := GetUserIDFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, "user-1", id)
	})

	t.Run("Empty context", func(t *testing.T) {
		_, ok := GetUserIDFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("Empty id", func(t *testing.T) {
		_, ok := GetUserIDFromContext(SetUserContext(context.Background(), ""))
		assert.False(t, ok)
	})
}

func TestPointerHelpers(t *testing.T) {
	assert.Equal(t, "", PtrString(nil))
	assert.Equal(t, "a", PtrString(Ptr("a")))
	assert.Equal(t, 0.0, PtrFloat64(nil))
	assert.Equal(t, 2.5, PtrFloat64(Ptr(2.5)))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("", "anything"))
	assert.True(t, ContainsFold("rice", "Basmati RICE 5kg"))
	assert.True(t, ContainsFold("  oil ", "sugar", "olive oil"))
	assert.False(t, ContainsFold("tea", "coffee", "milk"))
}

func TestEqualFold(t *testing.T) {
	assert.True(t, EqualFold("A@acme.com", " a@ACME.com "))
	assert.False(t, EqualFold("", ""))
	assert.False(t, EqualFold("a", "b"))
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusCreated, map[string]string{"id": "prd-1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "prd-1", body["id"])
}
