package handlers

import (
	"github.com/RahulIB5/zblog/app/server/middlewares"
	"github.com/RahulIB5/zblog/app/server/types"
	"github.com/labstack/echo/v4"
	"net/http"
)

// LikeToggle 返回切换后的状态，前端据此确认或回滚乐观更新
func (a *App) LikeToggle(c echo.Context) error {
	id, ok := a.parseID(c)
	if !ok {
		return a.er(c, http.StatusNotFound)
	}

	state, err := a.act.ToggleLike(c.Request().Context(), middlewares.CurrentUser(c), id)
	if err != nil {
		return a.fail(c, err)
	}

	return c.JSON(http.StatusOK, &types.LikeResponse{
		Liked: state.Liked,
		Likes: state.Likes,
	})
}
