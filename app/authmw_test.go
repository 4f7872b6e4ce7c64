package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"sistema-bodega/auth"
	"sistema-bodega/db"
	"sistema-bodega/models"
)

var testSecret = []byte("secreto-middleware")

func init() { gin.SetMode(gin.TestMode) }

func newTestRouter(t *testing.T) (*gin.Engine, *db.Repo) {
	t.Helper()
	store, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("abrir base en memoria: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	repo := db.NewRepo(store)

	r := gin.New()
	authMW := Authenticate(repo, nil, testSecret)
	r.GET("/protegida", authMW, func(c *gin.Context) {
		u := CurrentUsuario(c)
		c.JSON(http.StatusOK, H{"usuario": u.NombreUsuario})
	})
	r.GET("/solo-admin", authMW, Authorize(models.RolAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, H{"ok": true})
	})
	return r, repo
}

// login crea usuario, token y fila de sesión, igual que el endpoint de login.
func login(t *testing.T, repo *db.Repo, nombre string, rol models.Rol) string {
	t.Helper()
	ctx := context.Background()
	u := &models.Usuario{
		NombreUsuario:  nombre,
		Email:          nombre + "@example.com",
		PasswordHash:   "x",
		NombreCompleto: nombre,
		Rol:            rol,
		Activo:         true,
	}
	if err := repo.CreateUsuario(ctx, u); err != nil {
		t.Fatalf("crear usuario: %v", err)
	}
	token, exp, err := auth.GenerateToken(testSecret, u)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := repo.CreateSesion(ctx, u.ID, token, "127.0.0.1", "tests", exp); err != nil {
		t.Fatalf("CreateSesion: %v", err)
	}
	return token
}

func do(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticateSinToken(t *testing.T) {
	r, _ := newTestRouter(t)
	if w := do(r, "/protegida", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, quiero 401", w.Code)
	}
}

func TestAuthenticateTokenInvalido(t *testing.T) {
	r, _ := newTestRouter(t)
	if w := do(r, "/protegida", "no-es-un-jwt"); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, quiero 401", w.Code)
	}
}

func TestAuthenticateTokenValido(t *testing.T) {
	r, repo := newTestRouter(t)
	token := login(t, repo, "gsoto", models.RolUsuario)

	w := do(r, "/protegida", token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, quiero 200 (body: %s)", w.Code, w.Body.String())
	}
}

// Un JWT bien firmado sin fila de sesión no entra: la revocación manda.
func TestAuthenticateSinSesion(t *testing.T) {
	r, repo := newTestRouter(t)
	ctx := context.Background()
	u := &models.Usuario{
		NombreUsuario:  "hmolina",
		Email:          "hmolina@example.com",
		PasswordHash:   "x",
		NombreCompleto: "hmolina",
		Rol:            models.RolUsuario,
		Activo:         true,
	}
	if err := repo.CreateUsuario(ctx, u); err != nil {
		t.Fatalf("crear usuario: %v", err)
	}
	token, _, err := auth.GenerateToken(testSecret, u)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if w := do(r, "/protegida", token); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, quiero 401", w.Code)
	}
}

func TestAuthenticateTrasLogout(t *testing.T) {
	r, repo := newTestRouter(t)
	token := login(t, repo, "ppaz", models.RolUsuario)

	if err := repo.InvalidateSesion(context.Background(), token); err != nil {
		t.Fatalf("InvalidateSesion: %v", err)
	}
	if w := do(r, "/protegida", token); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, quiero 401", w.Code)
	}
}

func TestAuthenticateSesionExpirada(t *testing.T) {
	r, repo := newTestRouter(t)
	ctx := context.Background()
	u := &models.Usuario{
		NombreUsuario:  "rtoro",
		Email:          "rtoro@example.com",
		PasswordHash:   "x",
		NombreCompleto: "rtoro",
		Rol:            models.RolUsuario,
		Activo:         true,
	}
	if err := repo.CreateUsuario(ctx, u); err != nil {
		t.Fatalf("crear usuario: %v", err)
	}
	token, _, err := auth.GenerateToken(testSecret, u)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	// Fila de sesión ya vencida aunque el JWT siga vigente.
	if _, err := repo.CreateSesion(ctx, u.ID, token, "127.0.0.1", "tests", time.Now().UTC().Add(-time.Minute)); err != nil {
		t.Fatalf("CreateSesion: %v", err)
	}

	if w := do(r, "/protegida", token); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, quiero 401", w.Code)
	}
}

func TestAuthorizeRolInsuficiente(t *testing.T) {
	r, repo := newTestRouter(t)
	token := login(t, repo, "usuario-raso", models.RolUsuario)

	if w := do(r, "/solo-admin", token); w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, quiero 403", w.Code)
	}
}

func TestAuthorizeAdmin(t *testing.T) {
	r, repo := newTestRouter(t)
	token := login(t, repo, "jefa", models.RolAdmin)

	if w := do(r, "/solo-admin", token); w.Code != http.StatusOK {
		t.Fatalf("status = %d, quiero 200 (body: %s)", w.Code, w.Body.String())
	}
}
