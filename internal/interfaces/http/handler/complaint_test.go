package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shakwa/backend/internal/domain/identity"
	"github.com/shakwa/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
)

// asCitizen injects a resolved citizen caller the way the JWT middleware
// would, letting handler-level guards be tested without a token.
func asCitizen(id uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CallerKey, identity.CitizenCaller(id))
		c.Next()
	}
}

func TestComplaintHandler_RequiresAuthentication(t *testing.T) {
	h := NewComplaintHandler(nil)

	router := gin.New()
	router.GET("/complaints", h.List)
	router.GET("/complaints/:id", h.GetByID)
	router.POST("/complaints", h.Create)
	router.DELETE("/complaints/:id", h.Delete)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/complaints"},
		{http.MethodGet, "/complaints/" + uuid.NewString()},
		{http.MethodPost, "/complaints"},
		{http.MethodDelete, "/complaints/" + uuid.NewString()},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestComplaintHandler_GetByID_InvalidID(t *testing.T) {
	h := NewComplaintHandler(nil)

	router := gin.New()
	router.Use(asCitizen(uuid.New()))
	router.GET("/complaints/:id", h.GetByID)

	req := httptest.NewRequest(http.MethodGet, "/complaints/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestComplaintHandler_Respond_RequiresResponseParam(t *testing.T) {
	h := NewComplaintHandler(nil)

	router := gin.New()
	router.Use(asCitizen(uuid.New()))
	router.PUT("/complaints/:id/respond", h.Respond)

	req := httptest.NewRequest(http.MethodPut, "/complaints/"+uuid.NewString()+"/respond", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "response")
}

func TestComplaintHandler_ListByCitizen_InvalidID(t *testing.T) {
	h := NewComplaintHandler(nil)

	router := gin.New()
	router.Use(asCitizen(uuid.New()))
	router.GET("/complaints/citizen/:citizenId", h.ListByCitizen)

	req := httptest.NewRequest(http.MethodGet, "/complaints/citizen/12345", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
