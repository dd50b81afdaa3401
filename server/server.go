package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jucanuro/grupovicaf/repository"
)

// WebServer handles HTTP requests
type WebServer struct {
	httpAddr   string
	server     *http.Server
	logger     *logrus.Logger
	startTime  time.Time
	repository *repository.Repository
}

// NewWebServer creates a new web server
func NewWebServer(httpPort string, logger *logrus.Logger, repository *repository.Repository) (*WebServer, error) {
	mux := http.NewServeMux()

	server := &WebServer{
		httpAddr: ":" + httpPort,
		server: &http.Server{
			Addr:    ":" + httpPort,
			Handler: mux,
		},
		logger:     logger,
		startTime:  time.Now(),
		repository: repository,
	}

	// Register routes
	mux.HandleFunc("/", server.handleRoot)
	// Client endpoints
	mux.HandleFunc("/clientes", server.handleClientes)
	mux.HandleFunc("/clientes/", server.handleClienteByID)
	// Quotation endpoints
	mux.HandleFunc("/cotizaciones", server.handleCotizaciones)
	mux.HandleFunc("/cotizaciones/", server.handleCotizacionAPI)
	mux.HandleFunc("/detalles/", server.handleDetalleByID)
	// Project and sample endpoints
	mux.HandleFunc("/proyectos", server.handleProyectos)
	mux.HandleFunc("/proyectos/", server.handleProyectoAPI)
	mux.HandleFunc("/muestras/", server.handleMuestraByID)
	// Work order endpoints
	mux.HandleFunc("/solicitudes", server.handleSolicitudes)
	mux.HandleFunc("/solicitudes/", server.handleSolicitudAPI)
	// Public report validation
	mux.HandleFunc("/informes/", server.handleInformeAPI)

	return server, nil
}

// Start starts the web server
func (ws *WebServer) Start() error {
	ws.logger.WithField("addr", ws.httpAddr).Info("Starting web server")
	go func() {
		if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			ws.logger.WithError(err).Error("web server error")
		}
	}()
	return nil
}

// Shutdown gracefully shuts down the web server
func (ws *WebServer) Shutdown(ctx context.Context) error {
	ws.logger.Info("Shutting down web server")
	return ws.server.Shutdown(ctx)
}

// handleRoot shows service status
func (ws *WebServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		JSONError(w, "Not found", http.StatusNotFound)
		return
	}
	if r.Method != http.MethodGet {
		JSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "grupovicaf laboratory service",
		"uptime":  time.Since(ws.startTime).String(),
	})
}

// statusForCode maps repository error codes to HTTP status codes.
func statusForCode(code string) int {
	switch code {
	case repository.ErrCodeNotFound:
		return http.StatusNotFound
	case repository.ErrCodeDuplicate, repository.ErrCodeInvalidState, repository.ErrCodeLimitReached:
		return http.StatusConflict
	case repository.ErrCodeReference:
		return http.StatusUnprocessableEntity
	case repository.ErrCodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// repoError writes a repository error as a JSON response.
func (ws *WebServer) repoError(w http.ResponseWriter, repoErr *repository.RepositoryError) {
	writeJSON(w, statusForCode(repoErr.Code), map[string]any{
		"error":  repoErr.Message,
		"code":   repoErr.Code,
		"detail": repoErr.Detail,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.Encode(body)
}

// JSONError sends a JSON formatted error response with the given status code and message
func JSONError(w http.ResponseWriter, message string, statusCode int) {
	errorResponse := struct {
		Error string `json:"error"`
	}{
		Error: message,
	}
	jsonBytes, err := json.Marshal(errorResponse)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(jsonBytes)
}
