package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"sistema-bodega/app"
	"sistema-bodega/auth"
	"sistema-bodega/config"
	"sistema-bodega/db"
	"sistema-bodega/models"
)

func init() { gin.SetMode(gin.TestMode) }

func newAuthTestRouter(t *testing.T) (*gin.Engine, *db.Repo) {
	t.Helper()
	store, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("abrir base en memoria: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	repo := db.NewRepo(store)

	cfg := config.Config{JWTSecret: "secreto-controladores"}
	ac := NewAuthController(NewSrv(repo, nil, cfg))

	r := gin.New()
	authMW := app.Authenticate(repo, nil, []byte(cfg.JWTSecret))
	r.POST("/api/auth/login", ac.Login)
	r.POST("/api/auth/logout", authMW, ac.Logout)
	r.GET("/api/auth/me", authMW, ac.Me)
	r.POST("/api/auth/change-password", authMW, ac.ChangePassword)
	return r, repo
}

func seedLoginUsuario(t *testing.T, repo *db.Repo, nombre, password string) *models.Usuario {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	u := &models.Usuario{
		NombreUsuario:  nombre,
		Email:          nombre + "@example.com",
		PasswordHash:   hash,
		NombreCompleto: "Usuario " + nombre,
		Departamento:   "Bodega",
		Rol:            models.RolUsuario,
		Activo:         true,
	}
	if err := repo.CreateUsuario(context.Background(), u); err != nil {
		t.Fatalf("crear usuario: %v", err)
	}
	return u
}

func postJSON(r *gin.Engine, path, token string, body interface{}) *httptest.ResponseRecorder {
	buf, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decodificar respuesta %q: %v", w.Body.String(), err)
	}
	return out
}

func TestLoginExitoso(t *testing.T) {
	r, repo := newAuthTestRouter(t)
	seedLoginUsuario(t, repo, "mvaldes", "clave-segura")

	w := postJSON(r, "/api/auth/login", "", gin.H{"username": "mvaldes", "password": "clave-segura"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, quiero 200 (body: %s)", w.Code, w.Body.String())
	}
	out := decode(t, w)
	token, _ := out["token"].(string)
	if token == "" {
		t.Fatal("respuesta sin token")
	}
	usuario, _ := out["usuario"].(map[string]interface{})
	if usuario["nombre_usuario"] != "mvaldes" {
		t.Errorf("usuario en la respuesta: %+v", usuario)
	}

	// El token recién emitido debe abrir las rutas protegidas.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	me := httptest.NewRecorder()
	r.ServeHTTP(me, req)
	if me.Code != http.StatusOK {
		t.Fatalf("GET /me con token fresco: status = %d", me.Code)
	}

	// Y el último acceso queda registrado.
	u, err := repo.FindUsuarioByLogin(context.Background(), "mvaldes")
	if err != nil {
		t.Fatalf("releer usuario: %v", err)
	}
	if u.FechaUltimoAcceso == nil {
		t.Error("fecha_ultimo_acceso sin actualizar tras el login")
	}
}

func TestLoginCredencialesMalas(t *testing.T) {
	r, repo := newAuthTestRouter(t)
	seedLoginUsuario(t, repo, "tsilva", "clave-segura")

	casos := []gin.H{
		{"username": "tsilva", "password": "otra-clave"},
		{"username": "no-existe", "password": "clave-segura"},
	}
	for _, body := range casos {
		if w := postJSON(r, "/api/auth/login", "", body); w.Code != http.StatusUnauthorized {
			t.Errorf("login %v: status = %d, quiero 401", body, w.Code)
		}
	}

	if w := postJSON(r, "/api/auth/login", "", gin.H{"username": "tsilva"}); w.Code != http.StatusBadRequest {
		t.Errorf("login sin password: status = %d, quiero 400", w.Code)
	}
}

func TestLoginUsuarioInactivo(t *testing.T) {
	r, repo := newAuthTestRouter(t)
	u := seedLoginUsuario(t, repo, "bcampos", "clave-segura")
	if err := repo.UpdateUsuario(context.Background(), u.ID, db.UpdateUsuarioInput{
		NombreCompleto: u.NombreCompleto,
		Email:          u.Email,
		Departamento:   u.Departamento,
		Rol:            u.Rol,
		Activo:         false,
	}); err != nil {
		t.Fatalf("desactivar usuario: %v", err)
	}

	if w := postJSON(r, "/api/auth/login", "", gin.H{"username": "bcampos", "password": "clave-segura"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("login de cuenta inactiva: status = %d, quiero 401", w.Code)
	}
}

func TestLogoutRevocaToken(t *testing.T) {
	r, repo := newAuthTestRouter(t)
	seedLoginUsuario(t, repo, "ncerda", "clave-segura")

	out := decode(t, postJSON(r, "/api/auth/login", "", gin.H{"username": "ncerda", "password": "clave-segura"}))
	token := out["token"].(string)

	if w := postJSON(r, "/api/auth/logout", token, gin.H{}); w.Code != http.StatusOK {
		t.Fatalf("logout: status = %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("token tras logout: status = %d, quiero 401", w.Code)
	}
}

func TestChangePassword(t *testing.T) {
	r, repo := newAuthTestRouter(t)
	seedLoginUsuario(t, repo, "dfarias", "clave-vieja")

	out := decode(t, postJSON(r, "/api/auth/login", "", gin.H{"username": "dfarias", "password": "clave-vieja"}))
	token := out["token"].(string)

	if w := postJSON(r, "/api/auth/change-password", token, gin.H{
		"currentPassword": "incorrecta",
		"newPassword":     "clave-nueva",
	}); w.Code != http.StatusUnauthorized {
		t.Fatalf("contraseña actual mala: status = %d, quiero 401", w.Code)
	}

	if w := postJSON(r, "/api/auth/change-password", token, gin.H{
		"currentPassword": "clave-vieja",
		"newPassword":     "corta",
	}); w.Code != http.StatusBadRequest {
		t.Fatalf("contraseña nueva corta: status = %d, quiero 400", w.Code)
	}

	if w := postJSON(r, "/api/auth/change-password", token, gin.H{
		"currentPassword": "clave-vieja",
		"newPassword":     "clave-nueva",
	}); w.Code != http.StatusOK {
		t.Fatalf("cambio válido: status = %d (body: %s)", w.Code, w.Body.String())
	}

	// La contraseña vieja deja de servir y la nueva entra.
	if w := postJSON(r, "/api/auth/login", "", gin.H{"username": "dfarias", "password": "clave-vieja"}); w.Code != http.StatusUnauthorized {
		t.Errorf("login con clave vieja: status = %d, quiero 401", w.Code)
	}
	if w := postJSON(r, "/api/auth/login", "", gin.H{"username": "dfarias", "password": "clave-nueva"}); w.Code != http.StatusOK {
		t.Errorf("login con clave nueva: status = %d, quiero 200", w.Code)
	}
}
