package handlers

import (
	"github.com/RahulIB5/zblog/app/server/models"
	"github.com/RahulIB5/zblog/app/server/types"
)

func toArticleSummaries(articles []models.Article) []types.ArticleSummary {
	res := make([]types.ArticleSummary, 0, len(articles))
	for _, article := range articles {
		res = append(res, types.ArticleSummary{
			ID:            article.ID,
			Title:         article.Title,
			Category:      article.Category,
			Content:       article.Content,
			FeaturedImage: article.FeaturedImage,
			CreatedAt:     article.CreatedAt,
			Author:        article.Author.Public(),
		})
	}
	return res
}

func toArticleDetail(article *models.Article) types.ArticleDetail {
	return types.ArticleDetail{
		ID:            article.ID,
		Title:         article.Title,
		Category:      article.Category,
		Content:       article.Content,
		FeaturedImage: article.FeaturedImage,
		CreatedAt:     article.CreatedAt,
		UpdatedAt:     article.UpdatedAt,
		Author:        article.Author.Public(),
	}
}

func toCommentInfo(comment *models.Comment) types.CommentInfo {
	return types.CommentInfo{
		ID:        comment.ID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
		Author:    comment.Author.Public(),
	}
}
