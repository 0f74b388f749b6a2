package jwt

import (
	"errors"
	"fmt"
	"github.com/RahulIB5/zblog/app/server/constants"
	"github.com/golang-jwt/jwt/v5"
	"time"
)

type JWT struct {
	key []byte
}

// Session 是身份提供方签发的会话信息
type Session struct {
	ExternalID string // sub
	Name       string
	Email      string
	ImageURL   string // picture
	Expires    int64  // Unix second
}

type sessionClaims struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

func New(key string) (*JWT, error) {
	if len(key) == 0 {
		return nil, errors.New("key is empty")
	}

	return &JWT{key: []byte(key)}, nil
}

func (j *JWT) ParseSession(tokenString string) (*Session, error) {
	// 检查是否有效
	if len(tokenString) == 0 {
		return nil, errors.New("token string is empty")
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return j.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(constants.SessionClockSkew),
	)
	if err != nil {
		return nil, fmt.Errorf("parse jwt failed: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("invalid token")
	}

	// 映射字段
	return &Session{
		ExternalID: claims.Subject,
		Name:       claims.Name,
		Email:      claims.Email,
		ImageURL:   claims.Picture,
		Expires:    claims.ExpiresAt.Unix(),
	}, nil
}

// SignSession 签发会话令牌，供开发环境和测试使用
func (j *JWT) SignSession(session *Session) (string, error) {
	// 创建声明
	claims := &sessionClaims{
		Name:    session.Name,
		Email:   session.Email,
		Picture: session.ImageURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.ExternalID,
			ExpiresAt: jwt.NewNumericDate(time.Unix(session.Expires, 0)),
		},
	}

	// 创建令牌
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// 签名并返回
	return token.SignedString(j.key)
}
