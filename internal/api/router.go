// api/router.go
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func NewRouter(s *Service) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/convert", ConvertHandler(s))
		apiGroup.POST("/validate", ValidateHandler(s))
		apiGroup.POST("/normalize", NormalizeHandler(s))
		apiGroup.POST("/ddl", DDLHandler(s))
		apiGroup.POST("/meta", MetaHandler(s))
	}
	return r
}

func RunServer(addr string, s *Service) {
	_ = NewRouter(s).Run(addr)
}
