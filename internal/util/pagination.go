package util

import "github.com/SeakMengs/FacultyCert/internal/constant"

func CalculateTotalPage(totalItems int64, pageSize uint) int {
	if pageSize <= 0 {
		pageSize = constant.DefaultPageSize
	}
	if totalItems == 0 {
		return 1
	}
	totalPage := int(totalItems / int64(pageSize))
	if totalItems%int64(pageSize) != 0 {
		totalPage++
	}
	return totalPage
}

// NormalizePage clamps page and page size to the allowed range.
func NormalizePage(page, pageSize uint) (uint, uint) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = constant.DefaultPageSize
	}
	if pageSize > constant.MaxPageSize {
		pageSize = constant.MaxPageSize
	}
	return page, pageSize
}

func PageOffset(page, pageSize uint) int {
	page, pageSize = NormalizePage(page, pageSize)
	return int((page - 1) * pageSize)
}
