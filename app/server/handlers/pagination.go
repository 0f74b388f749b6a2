package handlers

import (
	"math"
	"strconv"
)

// parsePage 页码从 1 开始，缺失、非数字或小于 1 时视为 1
func (a *App) parsePage(pageStr string) int {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return 1
	}
	if page > math.MaxInt32 {
		// 避免计算偏移量时溢出
		return math.MaxInt32
	}
	return page
}

func (a *App) calcMaxPage(count int64, limit int) int64 {
	pageMax := count / int64(limit)
	if (count % int64(limit)) != 0 {
		pageMax++
	}
	return pageMax
}
