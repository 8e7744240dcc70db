package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestProcessWithoutAuthContextReturnsUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/",
		strings.NewReader(`{"bank_reference":"UTR123456789"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}

	// No user_id in the context: the handler must refuse, not panic
	h := NewSettlementHandler(nil)
	h.Process(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProcessWithMalformedContextValueReturnsUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/",
		strings.NewReader(`{"bank_reference":"UTR123456789"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}
	c.Set("user_id", "not-a-uuid")

	h := NewSettlementHandler(nil)
	h.Process(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
