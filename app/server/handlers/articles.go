package handlers

import (
	"github.com/RahulIB5/zblog/app/server/actions"
	"github.com/RahulIB5/zblog/app/server/middlewares"
	"github.com/RahulIB5/zblog/app/server/types"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"strings"
)

type articleListParams struct {
	Search string `query:"search" validate:"max=200"`
	Page   string `query:"page"`
}

// ArticleList 文章列表：搜索 + 分页
func (a *App) ArticleList(c echo.Context) error {
	var params articleListParams
	if err := c.Bind(&params); err != nil {
		return a.er(c, http.StatusBadRequest)
	}
	params.Search = strings.TrimSpace(params.Search)
	if err := c.Validate(&params); err != nil {
		return a.fail(c, err)
	}

	page := a.parsePage(params.Page)
	limit := a.pageSize

	result, err := a.cache.FetchArticlesByQuery(c.Request().Context(), a.store, params.Search, (page-1)*limit, limit)
	if err != nil {
		a.l.Error("failed to fetch articles", zap.String("search", params.Search), zap.Int("page", page), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	pageMax := a.calcMaxPage(result.Total, limit)

	return c.JSON(http.StatusOK, &types.ArticleListResponse{
		Articles:  toArticleSummaries(result.Articles),
		Search:    params.Search,
		Total:     result.Total,
		Page:      int64(page),
		PageMax:   pageMax,
		Limit:     limit,
		HasPrev:   page > 1,
		HasNext:   int64(page) < pageMax,
		NoResults: len(result.Articles) == 0,
	})
}

func (a *App) parseID(c echo.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	return id, err == nil
}

// ArticleDetail 文章详情：作者、评论、点赞数以及当前用户是否已点赞
func (a *App) ArticleDetail(c echo.Context) error {
	id, ok := a.parseID(c)
	if !ok {
		return a.er(c, http.StatusNotFound)
	}

	rctx := c.Request().Context()

	article, err := a.store.FindArticle(rctx, id)
	if err != nil {
		return a.fail(c, notFound(err))
	}

	comments, err := a.store.ListComments(rctx, id)
	if err != nil {
		return a.fail(c, err)
	}

	likes, err := a.store.CountLikes(rctx, id)
	if err != nil {
		return a.fail(c, err)
	}

	isLiked := false
	if user := middlewares.CurrentUser(c); user != nil {
		if isLiked, err = a.store.HasLiked(rctx, user.ID, id); err != nil {
			return a.fail(c, err)
		}
	}

	resComments := make([]types.CommentInfo, 0, len(comments))
	for i := range comments {
		resComments = append(resComments, toCommentInfo(&comments[i]))
	}

	return c.JSON(http.StatusOK, &types.ArticleDetailResponse{
		Article:  toArticleDetail(article),
		Comments: resComments,
		Likes:    likes,
		IsLiked:  isLiked,
	})
}

func (a *App) ArticleCreate(c echo.Context) error {
	var req actions.ArticleInput
	if err := c.Bind(&req); err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	article, err := a.act.CreateArticle(c.Request().Context(), middlewares.CurrentUser(c), req)
	if err != nil {
		return a.fail(c, err)
	}

	return c.JSON(http.StatusCreated, toArticleDetail(article))
}

func (a *App) ArticleUpdate(c echo.Context) error {
	id, ok := a.parseID(c)
	if !ok {
		return a.er(c, http.StatusNotFound)
	}

	var req actions.ArticleInput
	if err := c.Bind(&req); err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	article, err := a.act.UpdateArticle(c.Request().Context(), middlewares.CurrentUser(c), id, req)
	if err != nil {
		return a.fail(c, err)
	}

	return c.JSON(http.StatusOK, toArticleDetail(article))
}

func (a *App) ArticleDelete(c echo.Context) error {
	id, ok := a.parseID(c)
	if !ok {
		return a.er(c, http.StatusNotFound)
	}

	if err := a.act.DeleteArticle(c.Request().Context(), middlewares.CurrentUser(c), id); err != nil {
		return a.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
