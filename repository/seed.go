package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jucanuro/grupovicaf/repository/models"
)

func uintPtr(v uint) *uint { return &v }

var seedCategorias = []models.CategoriaServicio{
	{ID: 1, Nombre: "ENSAYOS EN SUELOS", CodigoPrefijo: "ES"},
	{ID: 2, Nombre: "ENSAYOS EN CONCRETO", CodigoPrefijo: "EC"},
	{ID: 3, Nombre: "ENSAYOS EN AGREGADOS", CodigoPrefijo: "EA"},
	{ID: 4, Nombre: "ENSAYOS DE CAMPO", CodigoPrefijo: "TC"},
}

var seedNormas = []models.Norma{
	{Codigo: "ASTM D2216-19", Nombre: "Contenido de humedad de suelos y rocas"},
	{Codigo: "ASTM C39/C39M", Nombre: "Resistencia a la compresion de especimenes cilindricos de concreto"},
	{Codigo: "NTP 339.034", Nombre: "Ensayo de compresion de probetas de concreto"},
	{Codigo: "ASTM D1556", Nombre: "Densidad de suelo en el terreno por el metodo del cono de arena"},
}

var seedServicios = []models.Servicio{
	{
		CategoriaID:       uintPtr(1),
		CodigoFacturacion: "ES001",
		Nombre:            "Contenido de humedad",
		Descripcion:       "Determinacion del contenido de humedad de una muestra de suelo.",
		PrecioBase:        decimal.NewFromFloat(45.00),
		UnidadBase:        "Ensayo",
		EstaAcreditado:    true,
	},
	{
		CategoriaID:       uintPtr(2),
		CodigoFacturacion: "EC001",
		Nombre:            "Resistencia a la compresion de probetas",
		Descripcion:       "Rotura de probetas cilindricas de concreto.",
		PrecioBase:        decimal.NewFromFloat(30.00),
		UnidadBase:        "Und",
		EstaAcreditado:    true,
	},
	{
		CategoriaID:       uintPtr(3),
		CodigoFacturacion: "EA001",
		Nombre:            "Granulometria por tamizado",
		Descripcion:       "Analisis granulometrico de agregados finos y gruesos.",
		PrecioBase:        decimal.NewFromFloat(80.00),
		UnidadBase:        "Ensayo",
	},
	{
		CategoriaID:          uintPtr(4),
		CodigoFacturacion:    "TC001",
		Nombre:               "Densidad de campo (cono de arena)",
		Descripcion:          "Determinacion de la densidad del suelo en el terreno.",
		PrecioBase:           decimal.NewFromFloat(120.00),
		UnidadBase:           "DM",
		EsSujetoAPresupuesto: true,
	},
}

var seedLaboratorios = []models.Laboratorio{
	{Nombre: "Laboratorio Central", CodigoInterno: "LAB1"},
	{Nombre: "Laboratorio de Obra", CodigoInterno: "LAB2"},
}

var seedTiposMuestra = []models.TipoMuestra{
	{Nombre: "Suelo", Sigla: "S"},
	{Nombre: "Concreto", Sigla: "C"},
	{Nombre: "Agregado", Sigla: "A"},
	{Nombre: "Mortero", Sigla: "M"},
}

var seedTrabajadores = []models.Trabajador{
	{Nombres: "Carmen", Apellidos: "Rojas", Cargo: "Jefa de Laboratorio", Rol: "JEFE_LAB", CorreoCorporativo: "crojas@grupovicaf.com"},
	{Nombres: "Luis", Apellidos: "Mendoza", Cargo: "Tecnico de Ensayos", Rol: "TECNICO", CorreoCorporativo: "lmendoza@grupovicaf.com"},
	{Nombres: "Patricia", Apellidos: "Salas", Cargo: "Responsable Comercial", Rol: "COMERCIAL", CorreoCorporativo: "psalas@grupovicaf.com"},
}
