package config

import "time"

type Config struct {
	System struct {
		IsProd                bool     // 是否为生产环境
		Listen                string   // 监听地址
		DBDriver              string   // 数据库类型： postgres / mysql / sqlite
		DBConnectionString    string   // 数据库的连接字符串
		RedisConnectionString string   // Redis 数据库的连接字符串
		CORSOrigins           []string // 允许跨域访问的前端地址
		RateLimit             float64  // 写操作每秒允许的请求数（按 IP ）， 0 表示不限制
	}
	Security struct {
		SessionSecretKey string // 身份提供方签发会话令牌使用的密钥（ HS256 ）
		SignInURL        string // 未登录时前端跳转的登录地址
	}
	Blog struct {
		PageSize    int           // 文章列表每页数量
		TopArticles int           // 首页推荐文章数量
		CacheTTL    time.Duration // 列表缓存时间
	}
	Events struct {
		Driver string // 事件投递方式： none / rabbitmq / kafka
		URL    string // RabbitMQ 连接地址，或逗号分隔的 Kafka broker 列表
		Topic  string // RabbitMQ 队列名或 Kafka topic
	}
}
