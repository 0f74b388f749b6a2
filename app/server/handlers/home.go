package handlers

import (
	"github.com/RahulIB5/zblog/app/server/types"
	"github.com/RahulIB5/zblog/app/server/utils"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
)

// Home 首页推荐：点赞最多的几篇文章
func (a *App) Home(c echo.Context) error {
	articles, err := a.store.TopArticles(c.Request().Context(), a.topArticles)
	if err != nil {
		a.l.Error("failed to get top articles", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	featured := toArticleSummaries(articles)
	for i := range featured {
		featured[i].Likes = utils.P(articles[i].LikeCount)
	}

	return c.JSON(http.StatusOK, &types.HomeResponse{
		Featured: featured,
	})
}
