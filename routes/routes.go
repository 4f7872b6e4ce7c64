package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"sistema-bodega/app"
	"sistema-bodega/controllers"
	"sistema-bodega/models"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)
	authCtl := controllers.NewAuthController(s)
	herrCtl := controllers.NewHerramientaController(s)
	catCtl := controllers.NewCategoriaController(s)
	solCtl := controllers.NewSolicitanteController(s)
	presCtl := controllers.NewPrestamoController(s)
	devCtl := controllers.NewDevolucionController(s)
	userCtl := controllers.NewUsuarioController(s)
	repCtl := controllers.NewReporteController(s)
	expCtl := controllers.NewExportController(s)
	bakCtl := controllers.NewBackupController(s)

	secret := []byte(a.Config.JWTSecret)
	authMW := app.Authenticate(a.Repo, a.RDB, secret)
	adminMW := app.Authorize(models.RolAdmin)
	staffMW := app.Authorize(models.RolAdmin, models.RolSupervisor)
	seenMW := app.TouchUltimoAcceso(a.Repo, a.RDB, 5*time.Minute)

	// Autenticación
	r.POST("/api/auth/login", app.LoginRateLimit(), authCtl.Login)
	authGrp := r.Group("/api/auth", authMW, seenMW)
	{
		authGrp.GET("/verify", authCtl.Verify)
		authGrp.POST("/logout", authCtl.Logout)
		authGrp.GET("/me", authCtl.Me)
		authGrp.POST("/change-password", authCtl.ChangePassword)
	}

	// Herramientas
	herr := r.Group("/api/herramientas", authMW, seenMW)
	{
		herr.GET("", herrCtl.List)
		herr.GET("/:id", herrCtl.Get)
		herr.POST("", staffMW, herrCtl.Create)
		herr.PUT("/:id", herrCtl.Update)
		herr.DELETE("/:id", staffMW, herrCtl.Delete)
	}

	// Categorías
	cats := r.Group("/api/categorias", authMW, seenMW)
	{
		cats.GET("", catCtl.List)
		cats.POST("", staffMW, catCtl.Create)
		cats.PUT("/:id", staffMW, catCtl.Update)
		cats.DELETE("/:id", staffMW, catCtl.Delete)
	}

	// Solicitantes
	sols := r.Group("/api/solicitantes", authMW, seenMW)
	{
		sols.GET("", solCtl.List)
		sols.POST("", solCtl.Create)
		sols.DELETE("/:id", staffMW, solCtl.Delete)
	}
	r.POST("/api/registro", authMW, solCtl.Register)

	// Préstamos y devoluciones
	pres := r.Group("/api/prestamos", authMW, seenMW)
	{
		pres.GET("", presCtl.List)
		pres.GET("/activos", presCtl.ListActivos)
		pres.POST("", presCtl.Create)
	}
	devs := r.Group("/api/devoluciones", authMW, seenMW)
	{
		devs.GET("", devCtl.List)
		devs.POST("", devCtl.Create)
	}

	// Usuarios (solo admin)
	users := r.Group("/api/usuarios", authMW, adminMW)
	{
		users.GET("", userCtl.List)
		users.GET("/:id", userCtl.Get)
		users.PUT("/:id", userCtl.Update)
		users.DELETE("/:id", userCtl.Delete)
	}

	// Reportes
	reps := r.Group("/api", authMW, seenMW)
	{
		reps.GET("/resumen", repCtl.Resumen)
		reps.GET("/estadisticas", repCtl.Estadisticas)
	}

	// Exports (admin|supervisor)
	exp := r.Group("/export", authMW, staffMW)
	{
		exp.GET("/inventario.csv", expCtl.InventarioCSV)
		exp.GET("/prestamos.csv", expCtl.PrestamosCSV)
		exp.GET("/report.xlsx", expCtl.ReportXLSX)
	}

	// Backups
	r.POST("/backup", authMW, staffMW, bakCtl.Create)
	r.GET("/backups", authMW, staffMW, bakCtl.List)
	r.POST("/restore", authMW, adminMW, bakCtl.Restore)

	// Páginas estáticas
	r.GET("/login", func(c *app.Ctx) { c.File("./public/login.html") })
	r.GET("/login.html", func(c *app.Ctx) { c.File("./public/login.html") })
	r.GET("/", func(c *app.Ctx) { c.File("./public/index.html") })
}
