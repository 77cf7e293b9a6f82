// Package sunat contiene catálogos y validaciones de la facturación electrónica
// SUNAT (Perú), según los anexos de UBL 2.1.
package sunat

// =============================================================================
// Catálogo 01 - Tipos de documento
// =============================================================================

const (
	DocTypeFactura     = "01"
	DocTypeBoleta      = "03"
	DocTypeNotaCredito = "07"
	DocTypeNotaDebito  = "08"
)

// DocumentTypeNames descripción corta por código del catálogo 01.
var DocumentTypeNames = map[string]string{
	DocTypeFactura:     "Factura",
	DocTypeBoleta:      "Boleta de venta",
	DocTypeNotaCredito: "Nota de crédito",
	DocTypeNotaDebito:  "Nota de débito",
}

// IsKnownDocumentType informa si el código pertenece a los comprobantes soportados.
func IsKnownDocumentType(code string) bool {
	_, ok := DocumentTypeNames[code]
	return ok
}

// =============================================================================
// Catálogo 05 - Códigos de tributos
// =============================================================================

const (
	TaxIGV        = "1000" // IGV Impuesto General a las Ventas
	TaxIVAP       = "1016" // Impuesto a la Venta Arroz Pilado
	TaxISC        = "2000" // Impuesto Selectivo al Consumo
	TaxICBPER     = "7152" // Impuesto a las bolsas plásticas
	TaxExport     = "9995" // Exportación
	TaxFree       = "9996" // Gratuito
	TaxExonerated = "9997" // Exonerado
	TaxUnaffected = "9998" // Inafecto
	TaxOther      = "9999" // Otros tributos
)

// =============================================================================
// Catálogo 06 - Tipos de documento de identidad
// =============================================================================

const (
	IdentityNoDomiciliado = "0"
	IdentityDNI           = "1"
	IdentityCE            = "4" // Carné de extranjería
	IdentityRUC           = "6"
	IdentityPasaporte     = "7"
)

// =============================================================================
// Catálogo 52 - Leyendas
// =============================================================================

// LegendAmountInWords código de la leyenda "monto en letras".
const LegendAmountInWords = "1000"

// =============================================================================
// Tabla 5 (Anexo 2 del PLE) - Tipo de existencia
// =============================================================================

const (
	ExistenceMercaderias       = "01"
	ExistenceProductoTerminado = "02"
	ExistenceMateriasPrimas    = "03"
	ExistenceEnvases           = "04"
	ExistenceSuministros       = "05"
	ExistenceRepuestos         = "06"
	ExistenceEmbalajes         = "07"
	ExistenceOtros             = "99"
)

// ExistenceTypeNames descripción de la tabla 5.
var ExistenceTypeNames = map[string]string{
	ExistenceMercaderias:       "Mercaderías",
	ExistenceProductoTerminado: "Productos terminados",
	ExistenceMateriasPrimas:    "Materias primas",
	ExistenceEnvases:           "Envases",
	ExistenceSuministros:       "Suministros diversos",
	ExistenceRepuestos:         "Repuestos",
	ExistenceEmbalajes:         "Embalajes",
	ExistenceOtros:             "Otros",
}

// =============================================================================
// Tabla 6 - Unidades de medida (códigos UN/ECE rec 20 de uso frecuente)
// =============================================================================

const (
	UnitNIU = "NIU" // Unidad (bienes)
	UnitZZ  = "ZZ"  // Unidad (servicios)
	UnitKGM = "KGM" // Kilogramo
	UnitLTR = "LTR" // Litro
	UnitMTR = "MTR" // Metro
	UnitBX  = "BX"  // Caja
)

// UnitNames descripción de las unidades más usadas.
var UnitNames = map[string]string{
	UnitNIU: "Unidad",
	UnitZZ:  "Servicio",
	UnitKGM: "Kilogramo",
	UnitLTR: "Litro",
	UnitMTR: "Metro",
	UnitBX:  "Caja",
}
