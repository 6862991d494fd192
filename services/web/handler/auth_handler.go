package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	model "auction-web/internal/models"
	"auction-web/services/web/helpers"
	"auction-web/utils"
)

// LoginPageHandler handles GET /login. Already-authenticated visitors are sent
// back home. ?mode=signup switches the page to the sign-up form.
func (h *PageHandler) LoginPageHandler(c *gin.Context) {
	if _, ok := h.sessions.Current(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	h.renderLogin(c, http.StatusOK, c.Query("mode") == "signup", "", "")
}

// LoginHandler handles POST /login. Login is a lookup, not an authentication
// handshake: the username must match an existing user exactly.
func (h *PageHandler) LoginHandler(c *gin.Context) {
	var form helpers.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		utils.Info("LoginHandler: failed to bind form", map[string]any{"error": err.Error()})
		h.renderLogin(c, http.StatusUnprocessableEntity, false, "", "Invalid form submission. Please try again.")
		return
	}

	username := strings.TrimSpace(form.Username)
	if username == "" {
		h.renderLogin(c, http.StatusUnprocessableEntity, false, "", "Username is required")
		return
	}

	users, err := h.api.ListUsers(c.Request.Context())
	if err != nil {
		utils.Error("LoginHandler: failed to load users", map[string]any{"error": err.Error()})
		h.renderLogin(c, http.StatusBadGateway, false, username,
			helpers.UpstreamOr(err, "Failed to authenticate. Please try again."))
		return
	}

	var match *model.User
	for i := range users {
		if users[i].Username == username {
			match = &users[i]
			break
		}
	}
	if match == nil {
		utils.Info("LoginHandler: unknown username", map[string]any{"username": username})
		h.renderLogin(c, http.StatusUnprocessableEntity, false, username, "User not found. Please sign up first.")
		return
	}

	if err := h.sessions.Set(c, *match); err != nil {
		utils.Error("LoginHandler: failed to store session", map[string]any{"user_id": match.ID, "error": err.Error()})
		h.renderLogin(c, http.StatusInternalServerError, false, username, "Failed to authenticate. Please try again.")
		return
	}

	helpers.LogSuccess("LoginHandler", "user logged in", map[string]any{
		"user_id":  match.ID,
		"username": match.Username,
	})
	c.Redirect(http.StatusSeeOther, "/")
}

// SignupHandler handles POST /signup
func (h *PageHandler) SignupHandler(c *gin.Context) {
	var form helpers.SignupForm
	if err := c.ShouldBind(&form); err != nil {
		utils.Info("SignupHandler: failed to bind form", map[string]any{"error": err.Error()})
		h.renderLogin(c, http.StatusUnprocessableEntity, true, "", "Invalid form submission. Please try again.")
		return
	}

	username := strings.TrimSpace(form.Username)
	if username == "" {
		h.renderLogin(c, http.StatusUnprocessableEntity, true, "", "Username is required")
		return
	}

	user, err := h.api.CreateUser(c.Request.Context(), model.CreateUser{
		Username:    username,
		DisplayName: strings.TrimSpace(form.DisplayName),
	})
	if err != nil {
		utils.Error("SignupHandler: failed to create user", map[string]any{"username": username, "error": err.Error()})
		h.renderLogin(c, http.StatusUnprocessableEntity, true, username,
			helpers.UpstreamOr(err, "Failed to authenticate. Please try again."))
		return
	}

	if err := h.sessions.Set(c, user); err != nil {
		utils.Error("SignupHandler: failed to store session", map[string]any{"user_id": user.ID, "error": err.Error()})
		h.renderLogin(c, http.StatusInternalServerError, true, username, "Failed to authenticate. Please try again.")
		return
	}

	helpers.LogSuccess("SignupHandler", "user signed up", map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
	})
	c.Redirect(http.StatusSeeOther, "/")
}

// LogoutHandler handles POST /logout
func (h *PageHandler) LogoutHandler(c *gin.Context) {
	h.sessions.Clear(c)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *PageHandler) renderLogin(c *gin.Context, status int, signup bool, username, errMessage string) {
	title := "Login"
	if signup {
		title = "Sign Up"
	}
	utils.RenderPage(c, status, "login.tmpl", title, h.pageData(c, gin.H{
		"Signup":   signup,
		"Username": username,
		"Error":    errMessage,
	}))
}
