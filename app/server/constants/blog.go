package constants

import "time"

const (
	DefaultPageSize = 3 // 文章列表每页数量
	AuthTokenCookie = "__session"

	SessionClockSkew = 5 * time.Second
)
