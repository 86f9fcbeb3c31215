package dto

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	Username     string `json:"username"`
	Rol          string `json:"rol"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type CrearUsuarioRequest struct {
	Username       string `json:"username" binding:"required,min=3"`
	Password       string `json:"password" binding:"required,min=8"`
	NombreCompleto string `json:"nombre_completo" binding:"required"`
	Rol            string `json:"rol" binding:"required,oneof=admin cajero"`
}

type UsuarioResponse struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	NombreCompleto string `json:"nombre_completo"`
	Rol            string `json:"rol"`
	Activo         bool   `json:"activo"`
}
