package handlers

import "github.com/labstack/echo/v4"

// Register 绑定所有路由， session 解析当前用户， limit 只作用于写操作
func (a *App) Register(e *echo.Echo, session echo.MiddlewareFunc, limit echo.MiddlewareFunc) {
	e.GET("/api/healthcheck", a.HealthCheck)

	api := e.Group("/api", session)

	// 页面数据
	api.GET("/home", a.Home)
	api.GET("/articles", a.ArticleList)
	api.GET("/articles/:id", a.ArticleDetail)
	api.GET("/dashboard", a.Dashboard)
	api.GET("/dashboard/articles/:id", a.DashboardArticle)
	api.GET("/users/me", a.UserMe)

	// 写操作
	api.POST("/articles", a.ArticleCreate, limit)
	api.PUT("/articles/:id", a.ArticleUpdate, limit)
	api.DELETE("/articles/:id", a.ArticleDelete, limit)
	api.POST("/articles/:id/like", a.LikeToggle, limit)
	api.POST("/articles/:id/comments", a.CommentCreate, limit)
}
