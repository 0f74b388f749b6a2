package handlers

import (
	"errors"
	"github.com/RahulIB5/zblog/app/server/actions"
	"github.com/RahulIB5/zblog/app/server/types"
	"github.com/RahulIB5/zblog/app/server/utils"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"net/http"
)

func (a *App) er(c echo.Context, statusCode int) error {
	return c.JSON(statusCode, &types.ErrorMessage{
		Message: http.StatusText(statusCode),
	})
}

// fail 把 actions 的错误映射为响应，未分类的错误只记录日志
func (a *App) fail(c echo.Context, err error) error {
	var ve *actions.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusUnprocessableEntity, &types.ErrorMessage{
			Message: http.StatusText(http.StatusUnprocessableEntity),
			Fields:  ve.Fields,
		})
	case errors.Is(err, actions.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, &types.ErrorMessage{
			Message:   http.StatusText(http.StatusUnauthorized),
			SignInURL: utils.P(a.cfg.Security.SignInURL),
		})
	case errors.Is(err, actions.ErrUnauthorized):
		return a.er(c, http.StatusForbidden)
	case errors.Is(err, actions.ErrNotFound):
		return a.er(c, http.StatusNotFound)
	default:
		a.l.Error("unexpected error",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return a.er(c, http.StatusInternalServerError)
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return actions.ErrNotFound
	}
	return err
}
