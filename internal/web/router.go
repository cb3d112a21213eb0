package web

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

// NewRouter builds the gin engine: embedded templates, session
// middleware, and the authentication routes.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	tmpl := template.Must(template.ParseFS(templatesFS, "templates/*.html"))
	router.SetHTMLTemplate(tmpl)

	router.Use(h.SessionMiddleware())

	router.GET("/login", h.ShowLogin)
	router.POST("/login", h.PostLogin)
	router.GET("/register", h.ShowRegister)
	router.POST("/register", h.PostRegister)
	router.POST("/logout", h.PostLogout)
	router.GET("/", h.RequireUser(), h.Home)

	return router
}
