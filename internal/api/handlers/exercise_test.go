package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etude-app/etude-api/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testUserID = uint(42)

// setupExerciseTestRouter builds a minimal router with a stubbed auth
// middleware. Requests carry a fixed user unless withAuth is false.
func setupExerciseTestRouter(db *gorm.DB, withAuth bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Environment: "test"}

	router := gin.New()
	router.Use(gin.Recovery())

	if withAuth {
		router.Use(func(c *gin.Context) {
			c.Set("user_id", testUserID)
			c.Next()
		})
	}

	handler := NewExerciseHandler(db, cfg, nil)
	router.POST("/api/v1/exercises/generate", handler.Generate)
	router.POST("/api/v1/exercises", handler.Save)

	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	jsonBody, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest("POST", path, bytes.NewBuffer(jsonBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGenerateRequiresAuth(t *testing.T) {
	router := setupExerciseTestRouter(nil, false)

	w := postJSON(t, router, "/api/v1/exercises/generate", GenerateRequest{
		Key:           "C",
		TimeSignature: "4/4",
		MeasureCount:  4,
		Intervals:     []int{1, 2},
		Durations:     []string{"1/8"},
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGenerateRejectsIntervalOutOfRange(t *testing.T) {
	router := setupExerciseTestRouter(nil, true)

	w := postJSON(t, router, "/api/v1/exercises/generate", GenerateRequest{
		Key:           "C",
		TimeSignature: "4/4",
		MeasureCount:  4,
		Intervals:     []int{1, 9},
		Durations:     []string{"1/8"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "intervals", resp["field"])
}

func TestGenerateRejectsUnknownDuration(t *testing.T) {
	router := setupExerciseTestRouter(nil, true)

	w := postJSON(t, router, "/api/v1/exercises/generate", GenerateRequest{
		Key:           "C",
		TimeSignature: "4/4",
		MeasureCount:  4,
		Intervals:     []int{1, 2},
		Durations:     []string{"1/3"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "durations", resp["field"])
}

func TestGenerateRejectsUnknownKey(t *testing.T) {
	router := setupExerciseTestRouter(nil, true)

	w := postJSON(t, router, "/api/v1/exercises/generate", GenerateRequest{
		Key:           "H",
		TimeSignature: "4/4",
		MeasureCount:  4,
		Intervals:     []int{1, 2},
		Durations:     []string{"1/8"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "key", resp["field"])
}

func TestSaveRejectsMissingABC(t *testing.T) {
	router := setupExerciseTestRouter(nil, true)

	w := postJSON(t, router, "/api/v1/exercises", SaveExerciseRequest{
		Key:           "C",
		TimeSignature: "4/4",
		MeasureCount:  4,
		Intervals:     []int{1, 2},
		Durations:     []string{"1/8"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveRejectsInvalidConfig(t *testing.T) {
	router := setupExerciseTestRouter(nil, true)

	w := postJSON(t, router, "/api/v1/exercises", SaveExerciseRequest{
		ABC:           "X:1\n",
		Key:           "C",
		TimeSignature: "5/3",
		MeasureCount:  4,
		Intervals:     []int{1, 2},
		Durations:     []string{"1/8"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "time_signature", resp["field"])
}

func TestPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
	}{
		{"defaults", "", 1, 20},
		{"explicit", "page=3&page_size=50", 3, 50},
		{"zero page", "page=0", 1, 20},
		{"oversized page size", "page_size=500", 1, 20},
		{"garbage", "page=abc&page_size=xyz", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/?"+tt.query, nil)

			page, pageSize := paginationParams(c)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPageSize, pageSize)
		})
	}
}
