package inits

import (
	"fmt"
	"github.com/RahulIB5/zblog/app/server/models"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func DB(driver string, conn string) (db *gorm.DB, err error) {
	// 选择方言
	var dialector gorm.Dialector
	switch driver {
	case "postgres", "":
		dialector = postgres.Open(conn)
	case "mysql":
		dialector = mysql.Open(conn)
	case "sqlite":
		dialector = sqlite.Open(conn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	// 打开连接
	if db, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// sqlite 只允许单个写连接
	if driver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql db: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	// 迁移
	if err = Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// 返回
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Article{},
		&models.Comment{},
		&models.Like{},
	); err != nil {
		return err
	}
	return backfillSearchText(db)
}

// backfillSearchText 为新增 search_text 列之前写入的文章补齐搜索文本
func backfillSearchText(db *gorm.DB) error {
	var articles []models.Article
	return db.Select("id", "title", "category", "content").
		Where("search_text IS NULL OR search_text = ?", "").
		FindInBatches(&articles, 100, func(*gorm.DB, int) error {
			for i := range articles {
				articles[i].RefreshSearchText()
				if err := db.Model(&articles[i]).UpdateColumn("search_text", articles[i].SearchText).Error; err != nil {
					return fmt.Errorf("failed to backfill search text for article %s: %w", articles[i].ID, err)
				}
			}
			return nil
		}).Error
}
