// Package storetest 为测试提供独立的内存 sqlite 数据库
package storetest

import (
	"github.com/RahulIB5/zblog/app/server/inits"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"testing"
)

func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}

	// 每个连接都是独立的内存库，只保留一个
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err = inits.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}
