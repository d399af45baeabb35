package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func OptionsGet(c *gin.Context) {
	c.Header("allow", "OPTIONS, GET")
	c.Status(http.StatusNoContent)
}

func OptionsGetPost(c *gin.Context) {
	c.Header("allow", "OPTIONS, GET, POST")
	c.Status(http.StatusNoContent)
}

func OptionsGetPatchDelete(c *gin.Context) {
	c.Header("allow", "OPTIONS, GET, PATCH, DELETE")
	c.Status(http.StatusNoContent)
}

func OptionsDelete(c *gin.Context) {
	c.Header("allow", "OPTIONS, DELETE")
	c.Status(http.StatusNoContent)
}
