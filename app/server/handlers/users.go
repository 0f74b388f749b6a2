package handlers

import (
	"github.com/RahulIB5/zblog/app/server/actions"
	"github.com/RahulIB5/zblog/app/server/middlewares"
	"github.com/labstack/echo/v4"
	"net/http"
)

func (a *App) UserMe(c echo.Context) error {
	user := middlewares.CurrentUser(c)
	if user == nil {
		return a.fail(c, actions.ErrUnauthenticated)
	}

	return c.JSON(http.StatusOK, user)
}
