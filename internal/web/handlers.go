// Package web wires the authentication flows to HTTP: gin routes, the
// session cookie middleware, and the server-rendered pages.
package web

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"authweb/internal/flash"
	"authweb/internal/flows"
	"authweb/internal/forms"
	"authweb/internal/session"
	"authweb/internal/users"
)

// Handler serves the authentication pages and form endpoints.
type Handler struct {
	sessions   *session.Store
	auth       *session.Auth
	messages   *flash.Messenger
	stash      *flash.FormStash
	creds      users.Store
	cookieName string
	logger     *log.Logger
}

// NewHandler creates the web handler over its collaborators.
func NewHandler(
	sessions *session.Store,
	creds users.Store,
	cookieName string,
	logger *log.Logger,
) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		sessions:   sessions,
		auth:       session.NewAuth(sessions),
		messages:   flash.NewMessenger(sessions),
		stash:      flash.NewFormStash(sessions),
		creds:      creds,
		cookieName: cookieName,
		logger:     logger,
	}
}

func (h *Handler) flowDeps() flows.Deps {
	return flows.Deps{
		Credentials: h.creds,
		Messages:    h.messages,
		Stash:       h.stash,
		Auth:        h.auth,
		Logger:      h.logger,
	}
}

// ShowLogin renders the login page, draining pending flash messages.
// An already-authenticated session is sent straight to the home page.
func (h *Handler) ShowLogin(c *gin.Context) {
	sid := sessionID(c)

	if _, ok, err := h.auth.User(c.Request.Context(), sid); err != nil {
		h.serverError(c, err)
		return
	} else if ok {
		c.Redirect(http.StatusSeeOther, flows.PathHome)
		return
	}

	messages, err := h.messages.Drain(c.Request.Context(), sid)
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.HTML(http.StatusOK, "login.html", gin.H{
		"Title":    "Login Page",
		"Messages": messages,
	})
}

// PostLogin runs the login flow and redirects to its terminal target.
func (h *Handler) PostLogin(c *gin.Context) {
	var data forms.LoginData
	if err := c.ShouldBind(&data); err != nil {
		c.String(http.StatusBadRequest, "Bad Request")
		return
	}

	target, err := flows.RunLogin(c.Request.Context(), sessionID(c), data, h.flowDeps())
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, target)
}

// ShowRegister renders the registration page: drains pending messages
// and pops any stashed form data to pre-fill the fields.
func (h *Handler) ShowRegister(c *gin.Context) {
	sid := sessionID(c)

	if _, ok, err := h.auth.User(c.Request.Context(), sid); err != nil {
		h.serverError(c, err)
		return
	} else if ok {
		c.Redirect(http.StatusSeeOther, flows.PathHome)
		return
	}

	messages, err := h.messages.Drain(c.Request.Context(), sid)
	if err != nil {
		h.serverError(c, err)
		return
	}

	formData, err := h.stash.Pop(c.Request.Context(), sid)
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.HTML(http.StatusOK, "register.html", gin.H{
		"Title":    "Register Page",
		"Messages": messages,
		"FormData": formData,
	})
}

// PostRegister runs the registration flow and redirects to its terminal
// target.
func (h *Handler) PostRegister(c *gin.Context) {
	var data forms.RegisterData
	if err := c.ShouldBind(&data); err != nil {
		c.String(http.StatusBadRequest, "Bad Request")
		return
	}

	target, err := flows.RunRegister(c.Request.Context(), sessionID(c), data, h.flowDeps())
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, target)
}

// PostLogout flushes the whole session and clears the cookie.
func (h *Handler) PostLogout(c *gin.Context) {
	target, err := flows.RunLogout(c.Request.Context(), sessionID(c), h.flowDeps())
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", c.Request.TLS != nil, true)
	c.Redirect(http.StatusSeeOther, target)
}

// Home renders the application home page for the authenticated user.
func (h *Handler) Home(c *gin.Context) {
	user := currentUser(c)
	c.HTML(http.StatusOK, "home.html", gin.H{
		"Title": "Home",
		"User":  user,
	})
}

func (h *Handler) serverError(c *gin.Context, err error) {
	h.logger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.String(http.StatusInternalServerError, "Internal Server Error")
	c.Abort()
}
