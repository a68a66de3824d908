package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	msgInternalError = "Internal server error"
	msgUnavailable   = "Service unavailable"
	msgBadRequest    = "Bad request"
)

// listEnvelope {"status":"ok","response":{"items":[...]}}
type listEnvelope struct {
	Status   string       `json:"status"`
	Response listResponse `json:"response"`
}

type listResponse struct {
	Items interface{} `json:"items"`
}

type errorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func respondItems(c *gin.Context, items interface{}) {
	c.JSON(http.StatusOK, listEnvelope{Status: "ok", Response: listResponse{Items: items}})
}

// respondError 只返回通用信息，具体原因由调用方写日志
func respondError(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, errorEnvelope{Status: "error", Message: msg})
}
