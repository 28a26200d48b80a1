package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一API响应结构
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ResponseWithPagination 带分页的API响应结构
type ResponseWithPagination struct {
	Code        int    `json:"code"`
	Message     string `json:"message"`
	Data        any    `json:"data"`
	TotalCount  int    `json:"totalCount"`
	CurrentPage int    `json:"currentPage"`
	PageSize    int    `json:"pageSize"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Code: status, Message: message, Data: data})
}

// Success 返回成功响应
func Success(c *gin.Context, data any) {
	respond(c, http.StatusOK, "success", data)
}

// SuccessWithPagination 返回带分页的成功响应
func SuccessWithPagination(c *gin.Context, data any, totalCount, currentPage, pageSize int) {
	c.JSON(http.StatusOK, ResponseWithPagination{
		Code:        http.StatusOK,
		Message:     "success",
		Data:        data,
		TotalCount:  totalCount,
		CurrentPage: currentPage,
		PageSize:    pageSize,
	})
}

// Created 返回创建成功响应
func Created(c *gin.Context, data any) {
	respond(c, http.StatusCreated, "created", data)
}

func BadRequest(c *gin.Context, message string) {
	respond(c, http.StatusBadRequest, message, nil)
}

func Unauthorized(c *gin.Context, message string) {
	respond(c, http.StatusUnauthorized, message, nil)
}

func NotFound(c *gin.Context, message string) {
	respond(c, http.StatusNotFound, message, nil)
}

func Conflict(c *gin.Context, message string) {
	respond(c, http.StatusConflict, message, nil)
}

func InternalServerError(c *gin.Context, message string) {
	respond(c, http.StatusInternalServerError, message, nil)
}

// ServiceUnavailable 未配置数据库时返回
func ServiceUnavailable(c *gin.Context, message string) {
	respond(c, http.StatusServiceUnavailable, message, nil)
}
