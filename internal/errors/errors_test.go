package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

// ErrorsTestSuite 错误包测试套件
type ErrorsTestSuite struct {
	suite.Suite
}

// 测试创建新错误
func (suite *ErrorsTestSuite) TestNew() {
	// 测试基本错误创建
	err := New(ErrInvalidParam)
	suite.NotNil(err)
	suite.Equal(ErrInvalidParam, err.Code)
	suite.Equal("无效的参数", err.Message)
	suite.Empty(err.Details)

	// 测试带详情的错误
	err = New(ErrSessionNotFound, "加入码: 123456")
	suite.NotNil(err)
	suite.Equal(ErrSessionNotFound, err.Code)
	suite.Equal("游戏会话不存在", err.Message)
	suite.Equal("加入码: 123456", err.Details)

	// 测试多个详情
	err = New(ErrDatabaseConnect, "连接失败", "主机: localhost", "端口: 3306")
	suite.Equal("连接失败; 主机: localhost; 端口: 3306", err.Details)
}

// 测试格式化错误创建
func (suite *ErrorsTestSuite) TestNewf() {
	err := Newf(ErrInsufficientFunds, "需要 %d，现金 %d", 200, 50)
	suite.NotNil(err)
	suite.Equal(ErrInsufficientFunds, err.Code)
	suite.Equal("需要 200，现金 50", err.Details)
}

// 测试错误包装
func (suite *ErrorsTestSuite) TestWrap() {
	// 包装标准错误
	originalErr := errors.New("原始错误")
	wrappedErr := Wrap(originalErr, ErrDatabaseQuery)
	suite.NotNil(wrappedErr)
	suite.Equal(ErrDatabaseQuery, wrappedErr.Code)
	suite.Equal("原始错误", wrappedErr.Details)
	suite.Equal(originalErr, wrappedErr.Cause)

	// 包装nil错误
	nilErr := Wrap(nil, ErrUnknown)
	suite.Nil(nilErr)

	// 包装已有的AppError，保留原始错误码
	appErr := New(ErrNotYourTurn, "当前玩家: p1")
	wrappedAppErr := Wrap(appErr, ErrInvalidParam, "额外信息")
	suite.Equal(ErrNotYourTurn, wrappedAppErr.Code)
	suite.Contains(wrappedAppErr.Details, "额外信息")
}

// 测试错误码判断
func (suite *ErrorsTestSuite) TestIs() {
	err := New(ErrAlreadyBankrupt)
	suite.True(Is(err, ErrAlreadyBankrupt))
	suite.False(Is(err, ErrNotFound))
	suite.False(Is(nil, ErrAlreadyBankrupt))

	// 标准错误没有错误码
	standardErr := errors.New("标准错误")
	suite.False(Is(standardErr, ErrUnknown))
}

// 测试获取错误码
func (suite *ErrorsTestSuite) TestGetCode() {
	appErr := New(ErrSessionFull)
	suite.Equal(ErrSessionFull, GetCode(appErr))

	standardErr := errors.New("标准错误")
	suite.Equal(ErrUnknown, GetCode(standardErr))

	suite.Equal(ErrorCode(0), GetCode(nil))
}

// 测试HTTP状态码映射
func (suite *ErrorsTestSuite) TestHTTPStatus() {
	suite.Equal(400, New(ErrInvalidParam).HTTPStatus())
	suite.Equal(404, New(ErrSessionNotFound).HTTPStatus())
	suite.Equal(404, New(ErrPlayerNotFound).HTTPStatus())
	suite.Equal(409, New(ErrNotYourTurn).HTTPStatus())
	suite.Equal(409, New(ErrInsufficientFunds).HTTPStatus())
	suite.Equal(409, New(ErrAlreadyStarted).HTTPStatus())
	suite.Equal(503, New(ErrDatabaseConnect).HTTPStatus())
	suite.Equal(500, New(ErrUnknown).HTTPStatus())
}

// 测试错误消息格式
func (suite *ErrorsTestSuite) TestErrorString() {
	err := New(ErrNotYourTurn)
	suite.Equal("[3000] 还没轮到你行动", err.Error())

	err = New(ErrNotYourTurn, "当前玩家: p2")
	suite.Equal("[3000] 还没轮到你行动: 当前玩家: p2", err.Error())
}

// 测试Unwrap
func (suite *ErrorsTestSuite) TestUnwrap() {
	originalErr := errors.New("底层错误")
	wrappedErr := Wrap(originalErr, ErrDatabaseInsert)
	suite.Equal(originalErr, errors.Unwrap(wrappedErr))
	suite.True(errors.Is(wrappedErr, originalErr))
}

// TestErrorsTestSuite 运行测试套件
func TestErrorsTestSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}
