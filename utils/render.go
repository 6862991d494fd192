package utils

import (
	"github.com/gin-gonic/gin"
)

// RenderPage renders an HTML template with the given page title merged into
// the template data.
func RenderPage(c *gin.Context, status int, tmpl, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	c.HTML(status, tmpl, data)
}

// RenderError renders the shared error page with a user-facing message
func RenderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.tmpl", gin.H{
		"Title":   "Error",
		"Status":  status,
		"Message": message,
	})
}
