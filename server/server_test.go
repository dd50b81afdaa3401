package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jucanuro/grupovicaf/repository"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repo := repository.NewWithDB(db, logger)
	require.NoError(t, repo.Migrate())
	require.NoError(t, repo.Seed())

	ws, err := NewWebServer("0", logger, repo)
	require.NoError(t, err)

	ts := httptest.NewServer(ws.server.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, ts *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCreateClienteEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/clientes", map[string]any{
		"ruc":              "20123456789",
		"razon_social":     "Constructora del Sur S.A.C.",
		"persona_contacto": "Maria Torres",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["Codigo"])
	assert.Equal(t, "20123456789", body["RUC"])
}

func TestCreateClienteEndpointInvalidRUC(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/clientes", map[string]any{
		"ruc":              "99",
		"razon_social":     "RUC Corto S.A.",
		"persona_contacto": "Pedro",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, repository.ErrCodeValidation, body["code"])
}

func TestGetClienteEndpointNotFound(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/clientes/424242")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, repository.ErrCodeNotFound, body["code"])
}

func TestCotizacionApprovalFlow(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/clientes", map[string]any{
		"ruc":              "20555555555",
		"razon_social":     "Minera Quellaveco S.A.",
		"persona_contacto": "Juan Huaman",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cliente := decodeBody(t, resp)
	clienteID := uint(cliente["ID"].(float64))

	resp = postJSON(t, ts, "/cotizaciones", map[string]any{
		"cliente_id":      clienteID,
		"asunto_servicio": "Ensayos de compresion",
		"detalles": []map[string]any{
			{"servicio_id": 1, "descripcion": "Humedad", "cantidad": 2, "precio_unitario": "100.00"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cotizacion := decodeBody(t, resp)
	cotizacionID := int(cotizacion["ID"].(float64))

	resp = postJSON(t, ts, "/cotizaciones/"+itoa(cotizacionID)+"/aprobar", map[string]any{
		"voucher_codigo":  "OP-9001",
		"numero_muestras": 2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	proyecto := decodeBody(t, resp)
	assert.Equal(t, "PENDIENTE", proyecto["Estado"])

	// Approving twice conflicts.
	resp = postJSON(t, ts, "/cotizaciones/"+itoa(cotizacionID)+"/aprobar", map[string]any{
		"voucher_codigo": "OP-9002",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestValidarInformeEndpointUnknownToken(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/informes/validar/no-such-token")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/proyectos", "application/json", bytes.NewReader([]byte("{}")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	resp.Body.Close()
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
