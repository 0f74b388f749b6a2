package handlers

import (
	"github.com/RahulIB5/zblog/app/server/actions"
	"github.com/RahulIB5/zblog/app/server/middlewares"
	"github.com/labstack/echo/v4"
	"net/http"
)

func (a *App) CommentCreate(c echo.Context) error {
	id, ok := a.parseID(c)
	if !ok {
		return a.er(c, http.StatusNotFound)
	}

	var req actions.CommentInput
	if err := c.Bind(&req); err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	comment, err := a.act.CreateComment(c.Request().Context(), middlewares.CurrentUser(c), id, req)
	if err != nil {
		return a.fail(c, err)
	}

	return c.JSON(http.StatusCreated, toCommentInfo(comment))
}
