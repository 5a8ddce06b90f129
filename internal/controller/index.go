package controller

import (
	"github.com/SeakMengs/FacultyCert/internal/util"
	"github.com/gin-gonic/gin"
)

type IndexController struct {
	*baseController
}

func (ic IndexController) Index(ctx *gin.Context) {
	util.ResponseSuccess(ctx, gin.H{
		"message":      "Welcome to the " + util.GetAppName() + " api",
		"cacheEnabled": ic.app.Cache.Enabled(),
		"mailQueued":   ic.app.RabbitMQ != nil,
	})
}
