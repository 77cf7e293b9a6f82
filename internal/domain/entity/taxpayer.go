package entity

// TaxpayerInfo datos públicos de un contribuyente consultados por RUC.
type TaxpayerInfo struct {
	RUC         string `json:"ruc"`
	RazonSocial string `json:"razon_social"`
	State       string `json:"estado"`    // ACTIVO, BAJA DE OFICIO, ...
	Condition   string `json:"condicion"` // HABIDO, NO HABIDO
	Address     string `json:"direccion"`
	Ubigeo      string `json:"ubigeo"`
}

// PersonInfo datos de una persona consultados por DNI.
type PersonInfo struct {
	DNI          string `json:"dni"`
	Names        string `json:"nombres"`
	PaternalName string `json:"apellido_paterno"`
	MaternalName string `json:"apellido_materno"`
	FullName     string `json:"nombre_completo"`
}
