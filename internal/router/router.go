package router

import (
	"log/slog"
	"net/http"

	"attendance-tracker/internal/directory"
	"attendance-tracker/internal/handlers"
	"attendance-tracker/internal/importer"
	"attendance-tracker/internal/ledger"
	"attendance-tracker/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Deps struct {
	Directory      *directory.Directory
	Ledger         *ledger.Ledger
	Importer       *importer.Importer
	Gate           *middleware.AdminGate
	Logger         *slog.Logger
	AllowedOrigins []string
	StaticDir      string
}

func Setup(r *gin.Engine, d Deps) {
	r.MaxMultipartMemory = 8 << 20
	r.Use(gin.Recovery(), middleware.RequestLogger(d.Logger))

	config := cors.DefaultConfig()
	if len(d.AllowedOrigins) > 0 {
		config.AllowOrigins = d.AllowedOrigins
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowMethods = []string{"GET", "POST"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Admin-Secret"}
	r.Use(cors.New(config))

	eh := handlers.NewEmployeeHandler(d.Directory, d.Logger)
	sh := handlers.NewSubmissionHandler(d.Ledger, d.Logger)
	ah := handlers.NewAdminHandler(d.Gate, d.Importer, d.Logger)

	// health (also verifies store connectivity)
	r.GET("/health", func(c *gin.Context) {
		if err := d.Directory.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db_error", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/employee/:id", eh.GetEmployee)
		api.POST("/employee", eh.CreateEmployee)
		api.POST("/submission", sh.RecordSubmission)
		api.GET("/submissions/:id", sh.GetSubmissions)
		api.POST("/admin-auth", ah.AdminAuth)
	}

	admin := api.Group("", d.Gate.RequireAdmin())
	{
		admin.GET("/employees", eh.ListEmployees)
		admin.POST("/upload-employees", ah.UploadEmployees)
	}

	if d.StaticDir != "" {
		r.NoRoute(gin.WrapH(http.FileServer(http.Dir(d.StaticDir))))
	}
}
