package errors

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// ErrorCode 错误码类型
type ErrorCode int

// 错误码定义（按模块分组）
const (
	// 通用错误 (1000-1999)
	ErrUnknown      ErrorCode = 1000
	ErrInvalidParam ErrorCode = 1001
	ErrNotFound     ErrorCode = 1002
	ErrTimeout      ErrorCode = 1003

	// 会话错误 (2000-2999)
	ErrSessionNotFound   ErrorCode = 2000
	ErrAlreadyStarted    ErrorCode = 2001
	ErrSessionFull       ErrorCode = 2002
	ErrDuplicateUsername ErrorCode = 2003
	ErrNotEnoughPlayers  ErrorCode = 2004
	ErrGameFinished      ErrorCode = 2005
	ErrPlayerNotFound    ErrorCode = 2006
	ErrCodeExhausted     ErrorCode = 2007

	// 回合错误 (3000-3999)
	ErrNotYourTurn     ErrorCode = 3000
	ErrAlreadyBankrupt ErrorCode = 3001
	ErrInvalidState    ErrorCode = 3002

	// 资产错误 (4000-4999)
	ErrInsufficientFunds ErrorCode = 4000
	ErrPropertyOwned     ErrorCode = 4001
	ErrNotOwner          ErrorCode = 4002
	ErrAlreadyMortgaged  ErrorCode = 4003
	ErrNotMortgaged      ErrorCode = 4004
	ErrPropertyDeveloped ErrorCode = 4005
	ErrBankSupply        ErrorCode = 4006
	ErrUnevenBuild       ErrorCode = 4007
	ErrNotBuildable      ErrorCode = 4008
	ErrNoMonopoly        ErrorCode = 4009

	// 数据库错误 (5000-5999)
	ErrDatabaseConnect ErrorCode = 5000
	ErrDatabaseQuery   ErrorCode = 5001
	ErrDatabaseInsert  ErrorCode = 5002

	// 配置错误 (6000-6999)
	ErrConfigLoad     ErrorCode = 6000
	ErrConfigParse    ErrorCode = 6001
	ErrConfigValidate ErrorCode = 6002
)

// 错误码消息映射
var errorMessages = map[ErrorCode]string{
	// 通用错误
	ErrUnknown:      "未知错误",
	ErrInvalidParam: "无效的参数",
	ErrNotFound:     "资源未找到",
	ErrTimeout:      "操作超时",

	// 会话错误
	ErrSessionNotFound:   "游戏会话不存在",
	ErrAlreadyStarted:    "游戏已经开始",
	ErrSessionFull:       "游戏人数已满",
	ErrDuplicateUsername: "玩家已在该游戏中",
	ErrNotEnoughPlayers:  "玩家人数不足",
	ErrGameFinished:      "游戏已结束",
	ErrPlayerNotFound:    "玩家不存在",
	ErrCodeExhausted:     "无法生成唯一的加入码",

	// 回合错误
	ErrNotYourTurn:     "还没轮到你行动",
	ErrAlreadyBankrupt: "玩家已破产",
	ErrInvalidState:    "当前状态不允许该操作",

	// 资产错误
	ErrInsufficientFunds: "现金不足",
	ErrPropertyOwned:     "地产已被购买",
	ErrNotOwner:          "你不是该地产的所有者",
	ErrAlreadyMortgaged:  "地产已被抵押",
	ErrNotMortgaged:      "地产未被抵押",
	ErrPropertyDeveloped: "地产上有建筑，无法抵押",
	ErrBankSupply:        "银行建筑存量不足",
	ErrUnevenBuild:       "必须均衡建造",
	ErrNotBuildable:      "该格子不能建造",
	ErrNoMonopoly:        "未垄断该颜色组，不能建造",

	// 数据库错误
	ErrDatabaseConnect: "数据库连接失败",
	ErrDatabaseQuery:   "数据库查询失败",
	ErrDatabaseInsert:  "数据库插入失败",

	// 配置错误
	ErrConfigLoad:     "配置加载失败",
	ErrConfigParse:    "配置解析失败",
	ErrConfigValidate: "配置验证失败",
}

// AppError 应用错误结构
type AppError struct {
	Code    ErrorCode    `json:"code"`    // 错误码
	Message string       `json:"message"` // 错误消息
	Details string       `json:"details"` // 详细信息
	Cause   error        `json:"-"`       // 原始错误
	Stack   []StackFrame `json:"stack,omitempty"`
}

// StackFrame 调用栈帧
type StackFrame struct {
	Function string `json:"function"`
	File     string `json:"file"`
	Line     int    `json:"line"`
}

// Error 实现error接口
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%d] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 返回原始错误
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails 添加详细信息
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// New 创建新的应用错误
func New(code ErrorCode, details ...string) *AppError {
	message, ok := errorMessages[code]
	if !ok {
		message = errorMessages[ErrUnknown]
	}

	err := &AppError{
		Code:    code,
		Message: message,
	}

	if len(details) > 0 {
		err.Details = strings.Join(details, "; ")
	}

	err.captureStack(2)

	return err
}

// Newf 创建格式化的应用错误
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	details := fmt.Sprintf(format, args...)
	return New(code, details)
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, details ...string) *AppError {
	if err == nil {
		return nil
	}

	// 如果已经是AppError，保留原始错误码
	if appErr, ok := err.(*AppError); ok {
		if len(details) > 0 {
			appErr.Details = strings.Join(details, "; ") + "; " + appErr.Details
		}
		return appErr
	}

	appErr := New(code, details...)
	appErr.Cause = err
	if appErr.Details == "" {
		appErr.Details = err.Error()
	}

	return appErr
}

// Is 判断错误是否为指定错误码
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}

// GetCode 获取错误码
func GetCode(err error) ErrorCode {
	if err == nil {
		return 0
	}

	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}

	return ErrUnknown
}

// captureStack 捕获调用栈
func (e *AppError) captureStack(skip int) {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip+1, pcs)

	if n > 0 {
		frames := runtime.CallersFrames(pcs[:n])
		for {
			frame, more := frames.Next()

			// 跳过runtime和本包的调用
			if strings.Contains(frame.Function, "runtime.") ||
				strings.Contains(frame.Function, "github.com/wfunc/monopoly-game/internal/errors") {
				if !more {
					break
				}
				continue
			}

			e.Stack = append(e.Stack, StackFrame{
				Function: frame.Function,
				File:     frame.File,
				Line:     frame.Line,
			})

			if !more {
				break
			}

			// 只保留前10个栈帧
			if len(e.Stack) >= 10 {
				break
			}
		}
	}
}

// HTTPStatus 返回对应的HTTP状态码
func (e *AppError) HTTPStatus() int {
	switch {
	case e.Code == ErrInvalidParam:
		return 400 // Bad Request
	case e.Code == ErrNotFound,
		e.Code == ErrSessionNotFound,
		e.Code == ErrPlayerNotFound:
		return 404 // Not Found
	case e.Code >= 2001 && e.Code <= 2999:
		return 409 // Conflict
	case e.Code >= 3000 && e.Code <= 4999:
		return 409 // Conflict（规则冲突，动作被拒绝）
	case e.Code >= 5000 && e.Code <= 5999:
		return 503 // Service Unavailable
	default:
		return 500 // Internal Server Error
	}
}

// ErrorResponse API错误响应结构
type ErrorResponse struct {
	Success   bool      `json:"success"`
	Error     *AppError `json:"error,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp int64     `json:"timestamp"`
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(err *AppError, requestID string) *ErrorResponse {
	return &ErrorResponse{
		Success:   false,
		Error:     err,
		RequestID: requestID,
		Timestamp: time.Now().Unix(),
	}
}
