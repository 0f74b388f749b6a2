package handlers

import (
	"github.com/RahulIB5/zblog/app/server/actions"
	"github.com/RahulIB5/zblog/app/server/middlewares"
	"github.com/RahulIB5/zblog/app/server/types"
	"github.com/labstack/echo/v4"
	"net/http"
)

// Dashboard 当前用户的文章及评论统计
func (a *App) Dashboard(c echo.Context) error {
	user := middlewares.CurrentUser(c)
	if user == nil {
		return a.fail(c, actions.ErrUnauthenticated)
	}

	rctx := c.Request().Context()

	articles, err := a.store.ListArticlesByAuthor(rctx, user.ID)
	if err != nil {
		return a.fail(c, err)
	}

	totalComments, err := a.store.CountCommentsOnAuthorArticles(rctx, user.ID)
	if err != nil {
		return a.fail(c, err)
	}

	resArticles := make([]types.DashboardArticle, 0, len(articles))
	for _, article := range articles {
		resArticles = append(resArticles, types.DashboardArticle{
			ID:           article.ID,
			Title:        article.Title,
			Category:     article.Category,
			CreatedAt:    article.CreatedAt,
			CommentCount: article.CommentCount,
		})
	}

	return c.JSON(http.StatusOK, &types.DashboardResponse{
		Articles:      resArticles,
		TotalArticles: int64(len(articles)),
		TotalComments: totalComments,
	})
}

// DashboardArticle 编辑页数据，仅作者本人可见
func (a *App) DashboardArticle(c echo.Context) error {
	id, ok := a.parseID(c)
	if !ok {
		return a.er(c, http.StatusNotFound)
	}

	article, err := a.act.ArticleForEdit(c.Request().Context(), middlewares.CurrentUser(c), id)
	if err != nil {
		return a.fail(c, err)
	}

	return c.JSON(http.StatusOK, toArticleDetail(article))
}
