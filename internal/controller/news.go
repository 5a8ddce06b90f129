package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/SeakMengs/FacultyCert/internal/model"
	"github.com/SeakMengs/FacultyCert/internal/repository"
	"github.com/SeakMengs/FacultyCert/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NewsController struct {
	*baseController
}

type newsForm struct {
	Title     *string `json:"title" form:"title" binding:"omitempty,strNotEmpty,max=200"`
	Summary   *string `json:"summary" form:"summary" binding:"omitempty,max=500"`
	Content   *string `json:"content" form:"content" binding:"omitempty,strNotEmpty"`
	Category  *string `json:"category" form:"category" binding:"omitempty,oneof=general academic event announcement"`
	ImageURL  *string `json:"imageUrl" form:"imageUrl" binding:"omitempty,url"`
	Published *bool   `json:"published" form:"published"`
}

func (nc NewsController) GetNews(ctx *gin.Context) {
	type Request struct {
		pageQuery
		Category string `form:"category" binding:"omitempty,oneof=general academic event announcement"`
	}
	var query Request

	if err := ctx.ShouldBindQuery(&query); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	page, pageSize := query.normalized()
	news, total, err := nc.app.Repository.News.List(ctx, nil, repository.NewsFilter{
		Category:      query.Category,
		PublishedOnly: !nc.can(nc.getOptionalAuthUser(ctx), constant.NewsManage),
	}, page, pageSize)
	if err != nil {
		nc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get news", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponsePaginated(ctx, news, total, page, pageSize)
}

func (nc NewsController) GetNewsById(ctx *gin.Context) {
	news, err := nc.app.Repository.News.GetById(ctx, nil, ctx.Param("newsId"))
	if err == nil && !news.Published && !nc.can(nc.getOptionalAuthUser(ctx), constant.NewsManage) {
		// drafts are invisible to the public
		err = gorm.ErrRecordNotFound
	}
	if err != nil {
		nc.respondRepoError(ctx, err, "News not found", "Failed to get news")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"news": news,
	})
}

func (nc NewsController) CreateNews(ctx *gin.Context) {
	var body newsForm

	user, ok := nc.mustAuthUser(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}
	if body.Title == nil || body.Content == nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(errors.New("title and content are required"), "title"), nil)
		return
	}

	news := model.News{
		Title:     strings.TrimSpace(*body.Title),
		Summary:   strings.TrimSpace(deref(body.Summary, "")),
		Content:   *body.Content,
		Category:  deref(body.Category, constant.NewsCategoryGeneral),
		ImageURL:  deref(body.ImageURL, ""),
		Published: deref(body.Published, false),
		AuthorID:  user.ID,
	}
	if err := nc.app.Repository.News.Create(ctx, nil, &news); err != nil {
		nc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to create news", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseCreated(ctx, gin.H{
		"news": news,
	})
}

func (nc NewsController) UpdateNews(ctx *gin.Context) {
	var body newsForm
	newsId := ctx.Param("newsId")

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	updates := map[string]interface{}{}
	if body.Title != nil {
		updates["title"] = strings.TrimSpace(*body.Title)
	}
	if body.Summary != nil {
		updates["summary"] = strings.TrimSpace(*body.Summary)
	}
	if body.Content != nil {
		updates["content"] = *body.Content
	}
	if body.Category != nil {
		updates["category"] = *body.Category
	}
	if body.ImageURL != nil {
		updates["image_url"] = *body.ImageURL
	}

	if len(updates) > 0 {
		if err := nc.app.Repository.News.Update(ctx, nil, newsId, updates); err != nil {
			nc.respondRepoError(ctx, err, "News not found", "Failed to update news")
			return
		}
	}
	if body.Published != nil {
		if err := nc.app.Repository.News.SetPublished(ctx, nil, newsId, *body.Published); err != nil {
			nc.respondRepoError(ctx, err, "News not found", "Failed to update news")
			return
		}
	}

	news, err := nc.app.Repository.News.GetById(ctx, nil, newsId)
	if err != nil {
		nc.respondRepoError(ctx, err, "News not found", "Failed to get news")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"news": news,
	})
}

func (nc NewsController) PublishNews(ctx *gin.Context) {
	type Request struct {
		Published *bool `json:"published" form:"published"`
	}
	var body Request

	// an empty body publishes
	_ = ctx.ShouldBind(&body)
	published := deref(body.Published, true)

	newsId := ctx.Param("newsId")
	if err := nc.app.Repository.News.SetPublished(ctx, nil, newsId, published); err != nil {
		nc.respondRepoError(ctx, err, "News not found", "Failed to publish news")
		return
	}

	news, err := nc.app.Repository.News.GetById(ctx, nil, newsId)
	if err != nil {
		nc.respondRepoError(ctx, err, "News not found", "Failed to get news")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"news": news,
	})
}

func (nc NewsController) DeleteNews(ctx *gin.Context) {
	if err := nc.app.Repository.News.Delete(ctx, nil, ctx.Param("newsId")); err != nil {
		nc.respondRepoError(ctx, err, "News not found", "Failed to delete news")
		return
	}

	util.ResponseSuccess(ctx, nil)
}
