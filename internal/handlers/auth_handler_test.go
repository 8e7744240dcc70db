package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreateUserRejectsWeakPassword(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"email":"new@example.com","password":"short","first_name":"New","role":"Parent"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	// Password policy is enforced before any store access
	h := NewAuthHandler(nil)
	h.CreateUser(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "password")
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"email":"new@example.com","password":"abcdef12","first_name":"New","role":"Principal"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h := NewAuthHandler(nil)
	h.CreateUser(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
