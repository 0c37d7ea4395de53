package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yunke_visitor_server/pkg/errorx"
)

func performError(t *testing.T, err error) (*httptest.ResponseRecorder, ResponseData) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/test", func(c *gin.Context) {
		HandleError(c, err)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	engine.ServeHTTP(w, req)

	var body ResponseData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHandleErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"参数错误", errorx.New(errorx.CodeInvalidParam, "参数错误"), http.StatusBadRequest, errorx.CodeInvalidParam},
		{"未授权", errorx.New(errorx.CodeUnauthorized, "未授权"), http.StatusUnauthorized, errorx.CodeUnauthorized},
		{"密码错误", errorx.New(errorx.CodeInvalidPassword, "密码错误"), http.StatusUnauthorized, errorx.CodeInvalidPassword},
		{"无权限", errorx.New(errorx.CodeForbidden, "无权限"), http.StatusForbidden, errorx.CodeForbidden},
		{"不存在", errorx.New(errorx.CodeNotFound, "不存在"), http.StatusNotFound, errorx.CodeNotFound},
		{"状态冲突", errorx.New(errorx.CodeConflict, "状态冲突"), http.StatusConflict, errorx.CodeConflict},
		{"记录已存在", errorx.New(errorx.CodeRecordExist, "记录已存在"), http.StatusConflict, errorx.CodeRecordExist},
		{"限流", errorx.New(errorx.CodeTooManyRequest, "请求过于频繁"), http.StatusTooManyRequests, errorx.CodeTooManyRequest},
		{"未知错误按500", errors.New("boom"), http.StatusInternalServerError, errorx.CodeServerBusy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := performError(t, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.False(t, body.Success)
		})
	}
}

func TestHandleSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/test", func(c *gin.Context) {
		HandleSuccess(c, gin.H{"hello": "world"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body ResponseData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, errorx.CodeSuccess, body.Code)
	assert.True(t, body.Success)
	assert.NotNil(t, body.Data)
}

// 包了一层 Wrap 的底层错误也要按业务码映射
func TestHandleErrorWrapped(t *testing.T) {
	inner := errors.New("record not found")
	w, body := performError(t, errorx.Wrap(inner, errorx.CodeNotFound, "访客不存在"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, errorx.CodeNotFound, body.Code)
	assert.Equal(t, "访客不存在", body.Msg)
}
