package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perform(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler(c)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestSuccessEnvelope(t *testing.T) {
	w, body := perform(t, func(c *gin.Context) {
		Success(c, http.StatusCreated, "Category has been added successful", gin.H{"name": "Shoes"})
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "successful", body["status"])
	assert.Equal(t, "Category has been added successful", body["message"])
	assert.Equal(t, "Shoes", body["data"].(map[string]any)["name"])
}

func TestFailEnvelope(t *testing.T) {
	w, body := perform(t, func(c *gin.Context) {
		Fail(c, http.StatusNotFound, "Product not found")
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "fail", body["status"])
	assert.Equal(t, "Product not found", body["message"])
	assert.Nil(t, body["data"])
}

func TestFieldErrorsEnvelope(t *testing.T) {
	w, body := perform(t, func(c *gin.Context) {
		FieldErrors(c, http.StatusBadRequest, map[string]string{"email": "already taken"})
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	errs := body["data"].(map[string]any)["errors"].(map[string]any)
	assert.Equal(t, "already taken", errs["email"])
}
