package constants

import "time"

const (
	CacheKeyArticleListGeneration = "blog:articles:list:generation"
	CacheKeyArticleList           = "blog:articles:list:%d:%016x:%d:%d" // generation, search hash, skip, take
	CacheKeyUserSession           = "blog:user:session:%s"              // external id
)

const (
	CacheExpireUserSession = 10 * time.Minute
)
