// Package web embeds the single-page interface of the data room.
package web

import (
	"embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static
var staticFiles embed.FS

func Register(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		page, err := staticFiles.ReadFile("static/index.html")
		if err != nil {
			c.String(http.StatusInternalServerError, "interface not embedded")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	})
}
