// Package handler 提供 HTTP 处理器
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/puzzlecollector/LinkPepper/internal/dto"
	"github.com/puzzlecollector/LinkPepper/internal/repository"
)

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessPaged 分页成功响应
func SuccessPaged(c *gin.Context, items interface{}, p *repository.Pagination) {
	c.JSON(http.StatusOK, dto.NewPagedResponse(items, p.Total, p.Page, p.PageSize))
}

// Fail 错误响应: 业务错误按其 HTTP 状态返回, 其余按内部错误处理
func Fail(c *gin.Context, err error) {
	var bizErr *dto.BizError
	if errors.As(err, &bizErr) {
		c.JSON(bizErr.HTTPStatus, dto.NewErrorResponse(bizErr))
		return
	}
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.ErrInternalError))
}

// BadRequest 参数绑定失败响应
func BadRequest(c *gin.Context, err error) {
	biz := dto.ErrInvalidParams
	if err != nil {
		biz = biz.WithMessage("invalid params: " + err.Error())
	}
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(biz))
}

// bindPagination 从查询参数解析分页
func bindPagination(c *gin.Context) *repository.Pagination {
	var p repository.Pagination
	p.Page = intQuery(c, "page", 1)
	p.PageSize = intQuery(c, "page_size", 20)
	return &p
}

// intQuery 解析整型查询参数
func intQuery(c *gin.Context, key string, defaultValue int) int {
	if v := c.Query(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

// int64Query 解析 int64 查询参数
func int64Query(c *gin.Context, key string, defaultValue int64) int64 {
	if v := c.Query(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

// int64Param 解析 int64 路径参数
func int64Param(c *gin.Context, key string) (int64, error) {
	return strconv.ParseInt(c.Param(key), 10, 64)
}
