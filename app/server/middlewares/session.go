package middlewares

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/RahulIB5/zblog/app/server/actions"
	"github.com/RahulIB5/zblog/app/server/constants"
	"github.com/RahulIB5/zblog/app/server/jwt"
	"github.com/RahulIB5/zblog/app/server/models"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"net/http"
	"strings"
)

const contextKeyUser = "user"

// CurrentUser 返回当前请求的用户，未登录时为 nil
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(contextKeyUser).(*models.User)
	return user
}

func extractToken(c echo.Context) string {
	// 优先使用 Authorization 头
	if authHeader := c.Request().Header.Get("Authorization"); authHeader != "" {
		splits := strings.Split(authHeader, " ")
		if len(splits) == 2 && strings.ToLower(splits[0]) == "bearer" {
			return splits[1]
		}
		return ""
	}

	if cookie, err := c.Cookie(constants.AuthTokenCookie); err == nil {
		return cookie.Value
	}

	return ""
}

// Session 解析会话令牌并同步本地用户。
// 没有令牌或令牌无效时按匿名请求继续处理
func Session(j *jwt.JWT, act *actions.Actions, rdb *redis.Client, l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := extractToken(c)
			if tokenString == "" {
				return next(c)
			}

			session, err := j.ParseSession(tokenString)
			if err != nil {
				l.Debug("ignoring invalid session token", zap.Error(err))
				return next(c)
			}

			var user models.User

			rctx := c.Request().Context()

			// 查询缓存
			cacheKey := fmt.Sprintf(constants.CacheKeyUserSession, session.ExternalID)
			if cacheBytes, err := rdb.Get(rctx, cacheKey).Bytes(); err != nil {
				if !errors.Is(err, redis.Nil) {
					l.Error("failed to query cache for session user", zap.String("externalId", session.ExternalID), zap.Error(err))
				}
			} else if err = json.Unmarshal(cacheBytes, &user); err != nil {
				l.Error("failed to unmarshal session user", zap.String("externalId", session.ExternalID), zap.ByteString("cacheBytes", cacheBytes), zap.Error(err))
				// 可能是无效的缓存，清理掉
				rdb.Del(rctx, cacheKey)
			} else {
				c.Set(contextKeyUser, &user)
				return next(c)
			}

			// 首次访问时创建用户
			ensured, err := act.EnsureUser(rctx, session)
			if err != nil {
				l.Error("failed to ensure session user", zap.String("externalId", session.ExternalID), zap.Error(err))
				return c.NoContent(http.StatusInternalServerError)
			}

			// 格式化并加入缓存，方便下一次查询
			if cacheBytes, err := json.Marshal(ensured); err != nil {
				l.Error("failed to marshal session user", zap.String("externalId", session.ExternalID), zap.Error(err))
			} else {
				rdb.Set(rctx, cacheKey, cacheBytes, constants.CacheExpireUserSession)
			}

			c.Set(contextKeyUser, ensured)

			return next(c)
		}
	}
}
