package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turfbook/ground-booking-backend/internal/pkg/apperror"
)

func serve(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) { Error(c, err) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))
	return w
}

func TestErrorMapsAppError(t *testing.T) {
	w := serve(apperror.New(http.StatusConflict, "email already used"))

	require.Equal(t, http.StatusConflict, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "email already used", resp.Error)
}

func TestErrorMapsWrappedAppError(t *testing.T) {
	inner := apperror.New(http.StatusNotFound, "booking not found")
	w := serve(apperror.Wrap(errors.New("no rows"), inner.Code, inner.Message))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestErrorHidesInternalDetails(t *testing.T) {
	w := serve(errors.New("pq: connection refused"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestNewPageResponse(t *testing.T) {
	t.Run("nil items become empty array", func(t *testing.T) {
		p := NewPageResponse[string](nil, 1, 20, 0)
		raw, err := json.Marshal(p)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"items":[]`)
	})

	t.Run("carries paging fields", func(t *testing.T) {
		p := NewPageResponse([]int{1, 2, 3}, 2, 3, 9)
		assert.Equal(t, 2, p.Page)
		assert.Equal(t, 3, p.PageSize)
		assert.Equal(t, 9, p.Total)
	})
}
