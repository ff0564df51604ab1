package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wfunc/monopoly-game/internal/errors"
	"github.com/wfunc/monopoly-game/internal/game"
	"go.uber.org/zap"
)

// GameHandler 游戏处理器
type GameHandler struct {
	manager *game.Manager
	logger  *zap.Logger
}

// NewGameHandler 创建游戏处理器
func NewGameHandler(manager *game.Manager, logger *zap.Logger) *GameHandler {
	return &GameHandler{
		manager: manager,
		logger:  logger,
	}
}

// respondError 把应用错误映射为HTTP响应
func (h *GameHandler) respondError(c *gin.Context, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.Wrap(err, errors.ErrUnknown)
	}

	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}

	c.JSON(appErr.HTTPStatus(), errors.NewErrorResponse(appErr, requestID))
}

// bindJSON 解析请求体，失败时返回参数错误
func (h *GameHandler) bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.respondError(c, errors.New(errors.ErrInvalidParam, err.Error()))
		return false
	}
	return true
}

// CreateGame 创建游戏
// @Summary 创建游戏
// @Description 创建新的游戏会话，返回游戏ID与6位加入码
// @Tags Game
// @Accept json
// @Produce json
// @Param request body game.CreateGameRequest true "创建游戏请求"
// @Success 200 {object} game.CreateResult
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/v1/games [post]
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req game.CreateGameRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.manager.CreateGame(req.CreatorUsername, req.MaxPlayers)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(200, result)
}

// JoinGame 加入游戏
// @Summary 加入游戏
// @Description 通过加入码加入等待中的游戏
// @Tags Game
// @Accept json
// @Produce json
// @Param request body game.JoinGameRequest true "加入游戏请求"
// @Success 200 {object} game.JoinResult
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/v1/games/join [post]
func (h *GameHandler) JoinGame(c *gin.Context) {
	var req game.JoinGameRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.manager.JoinGame(req.Username, req.GameCode)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(200, result)
}

// StartGame 开始游戏
// @Summary 开始游戏
// @Description 打乱回合顺序并进入进行中状态
// @Tags Game
// @Produce json
// @Param id path string true "游戏ID"
// @Success 200 {object} game.StartResult
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/v1/games/{id}/start [post]
func (h *GameHandler) StartGame(c *gin.Context) {
	result, err := h.manager.StartGame(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(200, result)
}

// GetGame 查询游戏状态
// @Summary 游戏状态
// @Description 获取游戏当前状态的完整视图
// @Tags Game
// @Produce json
// @Param id path string true "游戏ID"
// @Success 200 {object} game.GameView
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/games/{id} [get]
func (h *GameHandler) GetGame(c *gin.Context) {
	view, err := h.manager.GetState(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(200, view)
}

// RollDice 掷骰
// @Summary 掷骰
// @Description 当前玩家掷骰并移动，自动结算落点效果
// @Tags Action
// @Accept json
// @Produce json
// @Param id path string true "游戏ID"
// @Param request body game.PlayerActionRequest true "玩家动作请求"
// @Success 200 {object} game.RollResult
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/v1/games/{id}/roll [post]
func (h *GameHandler) RollDice(c *gin.Context) {
	var req game.PlayerActionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.manager.RollDice(c.Param("id"), req.PlayerID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(200, result)
}

// BuyProperty 购买地产
// @Summary 购买地产
// @Description 购买当前所在格的无主地产
// @Tags Action
// @Accept json
// @Produce json
// @Param id path string true "游戏ID"
// @Param request body game.PropertyActionRequest true "地产动作请求"
// @Success 200 {object} game.BuyResult
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/v1/games/{id}/buy [post]
func (h *GameHandler) BuyProperty(c *gin.Context) {
	var req game.PropertyActionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.manager.BuyProperty(c.Param("id"), req.PlayerID, req.Position)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(200, result)
}

// MortgageProperty 抵押地产
// @Summary 抵押地产
// @Description 抵押名下无建筑的地产换取现金
// @Tags Action
// @Accept json
// @Produce json
// @Param id path string true "游戏ID"
// @Param request body game.PropertyActionRequest true "地产动作请求"
// @Success 200 {object} game.MortgageResult
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/v1/games/{id}/mortgage [post]
func (h *GameHandler) MortgageProperty(c *gin.Context) {
	var req game.PropertyActionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.manager.MortgageProperty(c.Param("id"), req.PlayerID, req.Position)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(200, result)
}

// UnmortgageProperty 赎回地产
// @Summary 赎回地产
// @Description 支付抵押价的110%赎回地产
// @Tags Action
// @Accept json
// @Produce json
// @Param id path string true "游戏ID"
// @Param request body game.PropertyActionRequest true "地产动作请求"
// @Success 200 {object} game.MortgageResult
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/v1/games/{id}/unmortgage [post]
func (h *GameHandler) UnmortgageProperty(c *gin.Context) {
	var req game.PropertyActionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.manager.UnmortgageProperty(c.Param("id"), req.PlayerID, req.Position)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(200, result)
}

// Build 建造房屋
// @Summary 建造房屋
// @Description 在垄断颜色组的地产上建造房屋，满4栋升级为酒店
// @Tags Action
// @Accept json
// @Produce json
// @Param id path string true "游戏ID"
// @Param request body game.PropertyActionRequest true "地产动作请求"
// @Success 200 {object} game.BuildResult
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/v1/games/{id}/build [post]
func (h *GameHandler) Build(c *gin.Context) {
	var req game.PropertyActionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.manager.Build(c.Param("id"), req.PlayerID, req.Position)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(200, result)
}

// EndTurn 结束回合
// @Summary 结束回合
// @Description 移交给下一位未破产的玩家
// @Tags Action
// @Accept json
// @Produce json
// @Param id path string true "游戏ID"
// @Param request body game.PlayerActionRequest true "玩家动作请求"
// @Success 200 {object} game.EndTurnResult
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/v1/games/{id}/end-turn [post]
func (h *GameHandler) EndTurn(c *gin.Context) {
	var req game.PlayerActionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.manager.EndTurn(c.Param("id"), req.PlayerID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(200, result)
}
