package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jucanuro/grupovicaf/repository"
	"github.com/jucanuro/grupovicaf/repository/models"
)

func parseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// handleClientes handles the client collection endpoint
func (ws *WebServer) handleClientes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		clientes, repoErr := ws.repository.ListClientes()
		if repoErr != nil {
			ws.repoError(w, repoErr)
			return
		}
		writeJSON(w, http.StatusOK, clientes)
	case http.MethodPost:
		var body struct {
			Codigo          string `json:"codigo"`
			RUC             string `json:"ruc"`
			RazonSocial     string `json:"razon_social"`
			Direccion       string `json:"direccion"`
			SitioWeb        string `json:"sitio_web"`
			PersonaContacto string `json:"persona_contacto"`
			CargoContacto   string `json:"cargo_contacto"`
			CelularContacto string `json:"celular_contacto"`
			CorreoContacto  string `json:"correo_contacto"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			JSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		cliente := models.Cliente{
			Codigo:          body.Codigo,
			RUC:             body.RUC,
			RazonSocial:     body.RazonSocial,
			Direccion:       body.Direccion,
			SitioWeb:        body.SitioWeb,
			PersonaContacto: body.PersonaContacto,
			CargoContacto:   body.CargoContacto,
			CelularContacto: body.CelularContacto,
			CorreoContacto:  body.CorreoContacto,
			Activo:          true,
		}
		created, repoErr := ws.repository.CreateCliente(&cliente)
		if repoErr != nil {
			ws.repoError(w, repoErr)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		JSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleClienteByID handles single-client endpoints
func (ws *WebServer) handleClienteByID(w http.ResponseWriter, r *http.Request) {
	pathParts := strings.Split(r.URL.Path, "/")
	if len(pathParts) != 3 || pathParts[1] != "clientes" {
		JSONError(w, "Invalid path", http.StatusBadRequest)
		return
	}
	id, ok := parseID(pathParts[2])
	if !ok {
		JSONError(w, "Invalid client ID", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		cliente, repoErr := ws.repository.GetCliente(id)
		if repoErr != nil {
			ws.repoError(w, repoErr)
			return
		}
		writeJSON(w, http.StatusOK, cliente)
	case http.MethodPut:
		var upd repository.ClienteUpdate
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			JSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		cliente, repoErr := ws.repository.UpdateCliente(id, upd)
		if repoErr != nil {
			ws.repoError(w, repoErr)
			return
		}
		writeJSON(w, http.StatusOK, cliente)
	case http.MethodDelete:
		if repoErr := ws.repository.DeleteCliente(id); repoErr != nil {
			ws.repoError(w, repoErr)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		JSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type detalleRequest struct {
	ServicioID     uint            `json:"servicio_id"`
	NormaID        *uint           `json:"norma_id"`
	MetodoID       *uint           `json:"metodo_id"`
	Descripcion    string          `json:"descripcion"`
	UnidadMedida   string          `json:"unidad_medida"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

func (d detalleRequest) toModel() models.CotizacionDetalle {
	return models.CotizacionDetalle{
		ServicioID:     d.ServicioID,
		NormaID:        d.NormaID,
		MetodoID:       d.MetodoID,
		Descripcion:    d.Descripcion,
		UnidadMedida:   d.UnidadMedida,
		Cantidad:       d.Cantidad,
		PrecioUnitario: d.PrecioUnitario,
	}
}

// handleCotizaciones handles quotation creation
func (ws *WebServer) handleCotizaciones(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		JSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		ClienteID        uint             `json:"cliente_id"`
		TrabajadorID     *uint            `json:"trabajador_id"`
		AsuntoServicio   string           `json:"asunto_servicio"`
		ProyectoAsociado string           `json:"proyecto_asociado"`
		PersonaContacto  string           `json:"persona_contacto"`
		CorreoContacto   string           `json:"correo_contacto"`
		TelefonoContacto string           `json:"telefono_contacto"`
		PlazoEntregaDias int              `json:"plazo_entrega_dias"`
		FormaPago        string           `json:"forma_pago"`
		TasaIGV          *decimal.Decimal `json:"tasa_igv"`
		Observaciones    string           `json:"observaciones"`
		Detalles         []detalleRequest `json:"detalles"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		JSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	cotizacion := models.Cotizacion{
		ClienteID:        body.ClienteID,
		TrabajadorID:     body.TrabajadorID,
		AsuntoServicio:   body.AsuntoServicio,
		ProyectoAsociado: body.ProyectoAsociado,
		PersonaContacto:  body.PersonaContacto,
		CorreoContacto:   body.CorreoContacto,
		TelefonoContacto: body.TelefonoContacto,
		PlazoEntregaDias: body.PlazoEntregaDias,
		FormaPago:        body.FormaPago,
		Observaciones:    body.Observaciones,
	}
	if body.TasaIGV != nil {
		cotizacion.TasaIGV = *body.TasaIGV
	}
	detalles := make([]models.CotizacionDetalle, 0, len(body.Detalles))
	for _, d := range body.Detalles {
		detalles = append(detalles, d.toModel())
	}

	created, repoErr := ws.repository.CreateCotizacion(&cotizacion, detalles)
	if repoErr != nil {
		ws.repoError(w, repoErr)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleCotizacionAPI handles single-quotation endpoints and their
// sub-resources (detail lines, approval).
func (ws *WebServer) handleCotizacionAPI(w http.ResponseWriter, r *http.Request) {
	pathParts := strings.Split(r.URL.Path, "/")
	if len(pathParts) < 3 || pathParts[1] != "cotizaciones" {
		JSONError(w, "Invalid path", http.StatusBadRequest)
		return
	}
	id, ok := parseID(pathParts[2])
	if !ok {
		JSONError(w, "Invalid quotation ID", http.StatusBadRequest)
		return
	}

	switch {
	case len(pathParts) == 3:
		if r.Method != http.MethodGet {
			JSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		cotizacion, repoErr := ws.repository.GetCotizacion(id)
		if repoErr != nil {
			ws.repoError(w, repoErr)
			return
		}
		writeJSON(w, http.StatusOK, cotizacion)

	case len(pathParts) == 4 && pathParts[3] == "detalles":
		if r.Method != http.MethodPost {
			JSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var body detalleRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			JSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		detalle := body.toModel()
		created, repoErr := ws.repository.AddDetalle(id, &detalle)
		if repoErr != nil {
			ws.repoError(w, repoErr)
			return
		}
		writeJSON(w, http.StatusCreated, created)

	case len(pathParts) == 4 && pathParts[3] == "aprobar":
		if r.Method != http.MethodPost {
			JSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var body struct {
			VoucherCodigo  string          `json:"voucher_codigo"`
			MontoPagado    decimal.Decimal `json:"monto_pagado"`
			ArchivoRuta    string          `json:"archivo_ruta"`
			NumeroMuestras uint            `json:"numero_muestras"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			JSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if body.VoucherCodigo == "" {
			JSONError(w, "voucher_codigo is required", http.StatusBadRequest)
			return
		}
		voucher := models.Voucher{
			Codigo:      body.VoucherCodigo,
			MontoPagado: body.MontoPagado,
			ArchivoRuta: body.ArchivoRuta,
		}
		proyecto, repoErr := ws.repository.AprobarCotizacion(id, &voucher, body.NumeroMuestras)
		if repoErr != nil {
			ws.repoError(w, repoErr)
			return
		}
		writeJSON(w, http.StatusCreated, proyecto)

	default:
		JSONError(w, "Invalid path", http.StatusBadRequest)
	}
}

// handleDetalleByID handles quotation line updates and removal
func (ws *WebServer) handleDetalleByID(w http.ResponseWriter, r *http.Request) {
	pathParts := strings.Split(r.URL.Path, "/")
	if len(pathParts) != 3 || pathParts[1] != "detalles" {
		JSONError(w, "Invalid path", http.StatusBadRequest)
		return
	}
	id, ok := parseID(pathParts[2])
	if !ok {
		JSONError(w, "Invalid detail ID", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodPut:
		var body struct {
			Cantidad       int             `json:"cantidad"`
			PrecioUnitario decimal.Decimal `json:"precio_unitario"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			JSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		detalle, repoErr := ws.repository.UpdateDetalle(id, body.Cantidad, body.PrecioUnitario)
		if repoErr != nil {
			ws.repoError(w, repoErr)
			return
		}
		writeJSON(w, http.StatusOK, detalle)
	case http.MethodDelete:
		if repoErr := ws.repository.DeleteDetalle(id); repoErr != nil {
			ws.repoError(w, repoErr)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		JSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleProyectos handles the project collection endpoint
func (ws *WebServer) handleProyectos(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		JSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	proyectos, repoErr := ws.repository.ListProyectos()
	if repoErr != nil {
		ws.repoError(w, repoErr)
		return
	}
	writeJSON(w, http.StatusOK, proyectos)
}

// handleProyectoAPI handles single-project endpoints and their
// sub-resources (samples, validation, cancellation, report).
func (ws *WebServer) handleProyectoAPI(w http.ResponseWriter, r *http.Request) {
	pathParts := strings.Split(r.URL.Path, "/")
	if len(pathParts) < 3 || pathParts[1] != "proyectos" {
		JSONError(w, "Invalid path", http.StatusBadRequest)
		return
	}
	id, ok := parseID(pathParts[2])
	if !ok {
		JSONError(w, "Invalid project ID", http.StatusBadRequest)
		return
	}

	switch {
	case len(pathParts) == 3:
		if r.Method != http.MethodGet {
			JSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		proyecto, repoErr := ws.repository.GetProyecto(id)
		if repoErr != nil {
			ws.repoError(w, repoErr)
			return
		}
		writeJSON(w, http.StatusOK, proyecto)

	case len(pathParts) == 4 && pathParts[3] == "muestras":
		ws.handleProyectoMuestras(w, r, id)

	case len(pathParts) == 4 && pathParts[3] == "validar-muestras":
		if r.Method != http.MethodPost {
			JSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		proyecto, repoErr := ws.repository.MarcarMuestrasValidadas(id)
		if repoErr != nil {
			ws.repoError(w, repoErr)
			return
		}
		writeJSON(w, http.StatusOK, proyecto)

	case len(pathParts) == 4 && pathParts[3] == "cancelar":
		if r.Method != http.MethodPost {
			JSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		proyecto, repoErr := ws.repository.CancelarProyecto(id)
		if repoErr != nil {
			ws.repoError(w, repoErr)
			return
		}
		writeJSON(w, http.StatusOK, proyecto)

	case len(pathParts) == 4 && pathParts[3] == "informe":
		if r.Method != http.MethodPost {
			JSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var body struct {
			EmitidoPorID *uint  `json:"emitido_por_id"`
			ArchivoRuta  string `json:"archivo_ruta"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			JSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		informe, repoErr := ws.repository.EmitirInforme(id, body.EmitidoPorID, body.ArchivoRuta)
		if repoErr != nil {
			ws.repoError(w, repoErr)
			return
		}
		writeJSON(w, http.StatusCreated, informe)

	default:
		JSONError(w, "Invalid path", http.StatusBadRequest)
	}
}

func (ws *WebServer) handleProyectoMuestras(w http.ResponseWriter, r *http.Request, proyectoID uint) {
	switch r.Method {
	case http.MethodGet:
		muestras, repoErr := ws.repository.ListMuestrasPorProyecto(proyectoID)
		if repoErr != nil {
			ws.repoError(w, repoErr)
			return
		}
		writeJSON(w, http.StatusOK, muestras)
	case http.MethodPost:
		var body struct {
			TipoMuestraID     uint                `json:"tipo_muestra_id"`
			LaboratorioID     *uint               `json:"laboratorio_id"`
			Descripcion       string              `json:"descripcion"`
			MasaAproxKg       decimal.NullDecimal `json:"masa_aprox_kg"`
			Cantidad          int                 `json:"cantidad"`
			Unidad            string              `json:"unidad"`
			EstadoFisico      string              `json:"estado_fisico"`
			Ubicacion         string              `json:"ubicacion"`
			FechaTomaMuestra  *time.Time          `json:"fecha_toma_muestra"`
			RecepcionadoPorID *uint               `json:"recepcionado_por_id"`
			Observaciones     string              `json:"observaciones"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			JSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		muestra := models.Muestra{
			ProyectoID:        proyectoID,
			TipoMuestraID:     body.TipoMuestraID,
			LaboratorioID:     body.LaboratorioID,
			Descripcion:       body.Descripcion,
			MasaAproxKg:       body.MasaAproxKg,
			Cantidad:          body.Cantidad,
			Unidad:            body.Unidad,
			EstadoFisico:      body.EstadoFisico,
			Ubicacion:         body.Ubicacion,
			FechaTomaMuestra:  body.FechaTomaMuestra,
			RecepcionadoPorID: body.RecepcionadoPorID,
			Observaciones:     body.Observaciones,
		}
		created, repoErr := ws.repository.RegistrarMuestra(&muestra)
		if repoErr != nil {
			ws.repoError(w, repoErr)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		JSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleMuestraByID handles single-sample endpoints
func (ws *WebServer) handleMuestraByID(w http.ResponseWriter, r *http.Request) {
	pathParts := strings.Split(r.URL.Path, "/")
	if len(pathParts) != 3 || pathParts[1] != "muestras" {
		JSONError(w, "Invalid path", http.StatusBadRequest)
		return
	}
	id, ok := parseID(pathParts[2])
	if !ok {
		JSONError(w, "Invalid sample ID", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		muestra, repoErr := ws.repository.GetMuestra(id)
		if repoErr != nil {
			ws.repoError(w, repoErr)
			return
		}
		writeJSON(w, http.StatusOK, muestra)
	case http.MethodDelete:
		if repoErr := ws.repository.EliminarMuestra(id); repoErr != nil {
			ws.repoError(w, repoErr)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		JSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleSolicitudes handles work order creation
func (ws *WebServer) handleSolicitudes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		JSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		CotizacionID           uint       `json:"cotizacion_id"`
		ProyectoID             *uint      `json:"proyecto_id"`
		FechaEntregaProgramada time.Time  `json:"fecha_entrega_programada"`
		ElaboradoPorID         uint       `json:"elaborado_por_id"`
		RevisadoPorID          *uint      `json:"revisado_por_id"`
		Detalles               []struct {
			MuestraID              uint       `json:"muestra_id"`
			DescripcionEnsayo      string     `json:"descripcion_ensayo"`
			Norma                  string     `json:"norma"`
			Metodo                 string     `json:"metodo"`
			TecnicoID              *uint      `json:"tecnico_id"`
			FechaEntregaProgramada *time.Time `json:"fecha_entrega_programada"`
		} `json:"detalles"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		JSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	solicitud := models.SolicitudEnsayo{
		CotizacionID:           body.CotizacionID,
		ProyectoID:             body.ProyectoID,
		FechaEntregaProgramada: body.FechaEntregaProgramada,
		ElaboradoPorID:         body.ElaboradoPorID,
		RevisadoPorID:          body.RevisadoPorID,
	}
	detalles := make([]models.DetalleSolicitud, 0, len(body.Detalles))
	for _, d := range body.Detalles {
		detalle := models.DetalleSolicitud{
			MuestraID:         d.MuestraID,
			DescripcionEnsayo: d.DescripcionEnsayo,
			Norma:             d.Norma,
			Metodo:            d.Metodo,
			TecnicoID:         d.TecnicoID,
		}
		if d.FechaEntregaProgramada != nil {
			detalle.FechaEntregaProgramada = *d.FechaEntregaProgramada
		}
		detalles = append(detalles, detalle)
	}

	created, repoErr := ws.repository.CrearSolicitud(&solicitud, detalles)
	if repoErr != nil {
		ws.repoError(w, repoErr)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleSolicitudAPI handles single work order endpoints
func (ws *WebServer) handleSolicitudAPI(w http.ResponseWriter, r *http.Request) {
	pathParts := strings.Split(r.URL.Path, "/")
	if len(pathParts) < 3 || pathParts[1] != "solicitudes" {
		JSONError(w, "Invalid path", http.StatusBadRequest)
		return
	}

	// /solicitudes/detalles/{id}/aceptar
	if pathParts[2] == "detalles" {
		if len(pathParts) != 5 || pathParts[4] != "aceptar" || r.Method != http.MethodPost {
			JSONError(w, "Invalid path", http.StatusBadRequest)
			return
		}
		detalleID, ok := parseID(pathParts[3])
		if !ok {
			JSONError(w, "Invalid detail ID", http.StatusBadRequest)
			return
		}
		var body struct {
			TecnicoID uint `json:"tecnico_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			JSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if repoErr := ws.repository.AceptarDetalleSolicitud(detalleID, body.TecnicoID); repoErr != nil {
			ws.repoError(w, repoErr)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if len(pathParts) != 3 || r.Method != http.MethodGet {
		JSONError(w, "Invalid path", http.StatusBadRequest)
		return
	}
	id, ok := parseID(pathParts[2])
	if !ok {
		JSONError(w, "Invalid work order ID", http.StatusBadRequest)
		return
	}
	solicitud, repoErr := ws.repository.GetSolicitud(id)
	if repoErr != nil {
		ws.repoError(w, repoErr)
		return
	}
	writeJSON(w, http.StatusOK, solicitud)
}

// handleInformeAPI handles report lookup and the public validation
// endpoint printed on issued documents.
func (ws *WebServer) handleInformeAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		JSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	pathParts := strings.Split(r.URL.Path, "/")
	if len(pathParts) < 3 || pathParts[1] != "informes" {
		JSONError(w, "Invalid path", http.StatusBadRequest)
		return
	}

	// /informes/validar/{token}
	if pathParts[2] == "validar" {
		if len(pathParts) != 4 || pathParts[3] == "" {
			JSONError(w, "Invalid validation token", http.StatusBadRequest)
			return
		}
		informe, repoErr := ws.repository.ValidarInformePorToken(pathParts[3])
		if repoErr != nil {
			ws.repoError(w, repoErr)
			return
		}
		resumen := map[string]any{
			"valido":         true,
			"codigo_informe": informe.CodigoInforme,
			"fecha_emision":  informe.FechaEmision,
		}
		if informe.Proyecto != nil {
			resumen["proyecto"] = informe.Proyecto.CodigoProyecto
			if informe.Proyecto.Cliente != nil {
				resumen["cliente"] = informe.Proyecto.Cliente.RazonSocial
			}
		}
		writeJSON(w, http.StatusOK, resumen)
		return
	}

	if len(pathParts) != 3 {
		JSONError(w, "Invalid path", http.StatusBadRequest)
		return
	}
	id, ok := parseID(pathParts[2])
	if !ok {
		JSONError(w, "Invalid report ID", http.StatusBadRequest)
		return
	}
	informe, repoErr := ws.repository.GetInforme(id)
	if repoErr != nil {
		ws.repoError(w, repoErr)
		return
	}
	writeJSON(w, http.StatusOK, informe)
}
