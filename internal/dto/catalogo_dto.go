package dto

type ClienteRequest struct {
	Nombre    string `json:"nombre" binding:"required"`
	Cedula    string `json:"cedula" binding:"required"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
	Correo    string `json:"correo" binding:"omitempty,email"`
	Tipo      string `json:"tipo"`
}

type ClienteResponse struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	Cedula    string `json:"cedula"`
	Telefono  string `json:"telefono,omitempty"`
	Direccion string `json:"direccion,omitempty"`
	Correo    string `json:"correo,omitempty"`
	Tipo      string `json:"tipo"`
	Estado    string `json:"estado"`
}

type ProveedorRequest struct {
	Nombre    string `json:"nombre" binding:"required"`
	RNCCedula string `json:"rnc_cedula" binding:"required"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
	Email     string `json:"email" binding:"omitempty,email"`
}

type ProveedorResponse struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	RNCCedula string `json:"rnc_cedula"`
	Telefono  string `json:"telefono,omitempty"`
	Direccion string `json:"direccion,omitempty"`
	Email     string `json:"email,omitempty"`
	Estado    string `json:"estado"`
}

type ImpresoraRequest struct {
	Nombre    string `json:"nombre" binding:"required"`
	Tipo      string `json:"tipo"`
	Modelo    string `json:"modelo"`
	IP        string `json:"ip"`
	Ubicacion string `json:"ubicacion"`
}

type ImpresoraResponse struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	Tipo      string `json:"tipo,omitempty"`
	Modelo    string `json:"modelo,omitempty"`
	IP        string `json:"ip,omitempty"`
	Ubicacion string `json:"ubicacion,omitempty"`
	Activa    bool   `json:"activa"`
}

type EmpresaRequest struct {
	Nombre       string `json:"nombre" binding:"required"`
	RNC          string `json:"rnc"`
	Telefono     string `json:"telefono"`
	Direccion    string `json:"direccion"`
	MensajeLegal string `json:"mensaje_legal"`
}

type EmpresaResponse struct {
	Nombre       string `json:"nombre"`
	RNC          string `json:"rnc,omitempty"`
	Telefono     string `json:"telefono,omitempty"`
	Direccion    string `json:"direccion,omitempty"`
	MensajeLegal string `json:"mensaje_legal,omitempty"`
}
