// Package store 是对关系数据库的唯一访问入口，所有查询都经由共享的 *gorm.DB 连接池
package store

import "gorm.io/gorm"

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}
