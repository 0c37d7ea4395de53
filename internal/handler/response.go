package handler

import (
	"errors"
	"net/http"

	"yunke_visitor_server/pkg/errorx"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ResponseData 统一响应结构体
type ResponseData struct {
	Code    int  `json:"code"`           // 业务响应状态码
	Success bool `json:"success"`        // 是否成功
	Msg     any  `json:"msg"`            // 提示信息
	Data    any  `json:"data,omitempty"` // 数据
}

// httpStatusOf 业务错误码到 HTTP 状态码的映射
// 未识别的业务码一律按 500 处理
func httpStatusOf(code int) int {
	switch code {
	case errorx.CodeInvalidParam:
		return http.StatusBadRequest
	case errorx.CodeUnauthorized, errorx.CodeInvalidPassword:
		return http.StatusUnauthorized
	case errorx.CodeForbidden:
		return http.StatusForbidden
	case errorx.CodeNotFound, errorx.CodeRecordNotExist:
		return http.StatusNotFound
	case errorx.CodeConflict, errorx.CodeRecordExist:
		return http.StatusConflict
	case errorx.CodeTooManyRequest:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// HandleSuccess 返回成功响应
func HandleSuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, ResponseData{
		Code:    errorx.CodeSuccess,
		Success: true,
		Msg:     "success",
		Data:    data,
	})
}

// HandleError 通用错误处理方法
// 自动识别 errorx.CodeError 类型的业务错误，或者将系统错误转换为 CodeServerBusy
// 使用示例：
//
//	if err := svc.DoSomething(); err != nil {
//	    HandleError(c, err)
//	    return
//	}
func HandleError(c *gin.Context, err error) {
	// 1. 尝试断言为 *errorx.CodeError 类型
	var codeErr *errorx.CodeError
	if errors.As(err, &codeErr) {
		// 业务错误：直接返回携带的错误码和消息
		c.JSON(httpStatusOf(codeErr.Code), ResponseData{
			Code:    codeErr.Code,
			Success: false,
			Msg:     codeErr.Msg,
		})
		return
	}

	// 2. 系统错误或未知错误：记录日志并返回服务繁忙
	zap.L().Error("system error",
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, ResponseData{
		Code:    errorx.ErrServerBusy.Code,
		Success: false,
		Msg:     errorx.ErrServerBusy.Msg,
	})
}

// HandleParamError 处理参数绑定错误（带 validator 翻译支持）
// 自动识别 validator.ValidationErrors 类型并进行翻译
func HandleParamError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		// 翻译后去除结构体名前缀
		translatedErrs := RemoveTopStruct(validationErrs.Translate(Trans))
		c.JSON(http.StatusBadRequest, ResponseData{
			Code:    errorx.ErrInvalidParam.Code,
			Success: false,
			Msg:     translatedErrs,
		})
		return
	}

	// 非 validator 错误（如 JSON 格式错误）
	zap.L().Error("param bind error", zap.Error(err))
	c.JSON(http.StatusBadRequest, ResponseData{
		Code:    errorx.ErrInvalidParam.Code,
		Success: false,
		Msg:     errorx.ErrInvalidParam.Msg,
	})
}
