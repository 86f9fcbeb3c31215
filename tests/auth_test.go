package tests

import (
	"context"
	"testing"

	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/apierror"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/config"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/dto"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/model"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (*fakeUsuarioRepo, service.AuthService) {
	repo := newFakeUsuarioRepo()
	cfg := &config.Config{
		JWTSecret:          "clave-de-prueba",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
	return repo, service.NewAuthService(repo, cfg)
}

func crearUsuarioDePrueba(t *testing.T, svc service.AuthService, username, password, rol string) *dto.UsuarioResponse {
	t.Helper()
	u, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username:       username,
		Password:       password,
		NombreCompleto: "Usuario " + username,
		Rol:            rol,
	})
	require.NoError(t, err)
	return u
}

func TestLoginCorrecto(t *testing.T) {
	_, svc := newAuthFixture()
	crearUsuarioDePrueba(t, svc, "maria", "secreto123", model.RolCajero)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "maria",
		Password: "secreto123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "maria", resp.Username)
	assert.Equal(t, model.RolCajero, resp.Rol)
}

func TestLoginPasswordIncorrecto(t *testing.T) {
	_, svc := newAuthFixture()
	crearUsuarioDePrueba(t, svc, "maria", "secreto123", model.RolCajero)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "maria",
		Password: "otra-cosa",
	})

	require.Error(t, err)
	assert.Equal(t, "credenciales inválidas", err.Error())
}

func TestLoginUsuarioInexistente(t *testing.T) {
	_, svc := newAuthFixture()

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "nadie",
		Password: "secreto123",
	})

	// La respuesta no distingue usuario inexistente de password incorrecto
	require.Error(t, err)
	assert.Equal(t, "credenciales inválidas", err.Error())
}

func TestLoginUsuarioInactivo(t *testing.T) {
	repo, svc := newAuthFixture()
	u := crearUsuarioDePrueba(t, svc, "maria", "secreto123", model.RolCajero)
	require.NoError(t, svc.DesactivarUsuario(context.Background(), uuid.MustParse(u.ID)))

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "maria",
		Password: "secreto123",
	})

	require.Error(t, err)
	assert.Equal(t, "credenciales inválidas", err.Error())
	assert.False(t, repo.usuarios[uuid.MustParse(u.ID)].Activo)
}

func TestRefreshToken(t *testing.T) {
	_, svc := newAuthFixture()
	crearUsuarioDePrueba(t, svc, "maria", "secreto123", model.RolAdmin)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "secreto123"})
	require.NoError(t, err)

	renovado, err := svc.Refresh(context.Background(), login.RefreshToken)

	require.NoError(t, err)
	assert.NotEmpty(t, renovado.Token)
	assert.Equal(t, "maria", renovado.Username)
	assert.Equal(t, model.RolAdmin, renovado.Rol)
}

func TestRefreshTokenInvalido(t *testing.T) {
	_, svc := newAuthFixture()

	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")

	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
}

func TestCrearUsuarioDuplicado(t *testing.T) {
	_, svc := newAuthFixture()
	crearUsuarioDePrueba(t, svc, "maria", "secreto123", model.RolCajero)

	_, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username:       "maria",
		Password:       "otrosecreto",
		NombreCompleto: "Otra Maria",
		Rol:            model.RolAdmin,
	})

	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
}

func TestDesactivarUsuarioInexistente(t *testing.T) {
	_, svc := newAuthFixture()

	err := svc.DesactivarUsuario(context.Background(), uuid.New())

	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}
