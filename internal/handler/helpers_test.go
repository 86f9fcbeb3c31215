package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cuerpoPrueba struct {
	Nombre string          `json:"nombre" validate:"required"`
	Monto  decimal.Decimal `json:"monto" validate:"gt=0"`
}

func bindear(t *testing.T, body string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	var req cuerpoPrueba
	return w, bindAndValidate(c, &req)
}

func TestBindAndValidateJSONMalformado(t *testing.T) {
	w, ok := bindear(t, "{esto no es json")

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBindAndValidateTagsFallidosDevuelven400(t *testing.T) {
	w, ok := bindear(t, `{"monto": -5}`)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Detail string            `json:"detail"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "Nombre")
	assert.Contains(t, resp.Fields, "Monto")
}

func TestBindAndValidateCorrecto(t *testing.T) {
	w, ok := bindear(t, `{"nombre": "caja", "monto": 10}`)

	assert.True(t, ok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}
