package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vereteno/internal/convert"
	"vereteno/internal/names"
	"vereteno/internal/reference"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSchema = `
model Customer {
  id     Int     @id @default(autoincrement())
  name   String
  orders Order[]
}

model Order {
  id         Int      @id
  customerId Int
  customer   Customer @relation(fields: [customerId], references: [id])
}
`

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	words, err := reference.LoadReservedCatalog("")
	require.NoError(t, err)
	naming := names.New(words)
	return NewRouter(&Service{
		Conv:  convert.New(naming, nil),
		Names: naming,
	})
}

func post(t *testing.T, r *gin.Engine, path, schema string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(map[string]string{"schema": schema})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestConvertEndpoint(t *testing.T) {
	r := testRouter(t)
	w := post(t, r, "/api/convert", sampleSchema)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Entities []convert.EntityDescriptor `json:"entities"`
		Issues   []convert.SchemaIssue      `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Entities, 2)
	assert.Equal(t, "Customer", resp.Entities[0].Name)
	assert.Equal(t, "Order", resp.Entities[1].Name)
}

func TestConvertEndpointFatal(t *testing.T) {
	r := testRouter(t)
	// тип поля не разрешается ни в скаляр, ни в модель, ни в enum
	w := post(t, r, "/api/convert", "model A {\n  id Int @id\n  x Decimal\n}\n")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "unsupported data type")
}

func TestConvertEndpointBadJSON(t *testing.T) {
	r := testRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/convert", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateEndpoint(t *testing.T) {
	r := testRouter(t)
	w := post(t, r, "/api/validate", "enum Lonely {\n  A\n}\n")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Issues []convert.SchemaIssue `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Issues, 1)
	assert.Equal(t, convert.CodeNoModels, resp.Issues[0].Code)
}

func TestNormalizeEndpoint(t *testing.T) {
	r := testRouter(t)
	w := post(t, r, "/api/normalize", "model orders {\n  id Int @id\n}\n")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "model Order {")
}

func TestDDLEndpoint(t *testing.T) {
	r := testRouter(t)
	w := post(t, r, "/api/ddl", sampleSchema)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "create table if not exists")
}

func TestMetaEndpoint(t *testing.T) {
	r := testRouter(t)
	w := post(t, r, "/api/meta", sampleSchema)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Models, 2)
}

func TestHealthz(t *testing.T) {
	r := testRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}
