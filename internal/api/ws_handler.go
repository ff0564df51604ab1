package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/wfunc/monopoly-game/internal/errors"
	"github.com/wfunc/monopoly-game/internal/game"
	"go.uber.org/zap"
)

// WSHandler WebSocket动作通道处理器。
// 同一条连接上按请求/响应方式执行与REST相同的游戏动作。
type WSHandler struct {
	manager  *game.Manager
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewWSHandler 创建WebSocket处理器
func NewWSHandler(manager *game.Manager, logger *zap.Logger) *WSHandler {
	return &WSHandler{
		manager: manager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				// 在生产环境中应该检查Origin
				return true
			},
		},
		logger: logger,
	}
}

// wsRequest WebSocket动作请求
type wsRequest struct {
	Action   string `json:"action"`
	PlayerID string `json:"player_id,omitempty"`
	Position int    `json:"position,omitempty"`
}

// wsResponse WebSocket动作响应
type wsResponse struct {
	Success bool             `json:"success"`
	Action  string           `json:"action"`
	Data    interface{}      `json:"data,omitempty"`
	Error   *errors.AppError `json:"error,omitempty"`
}

// GameChannel 游戏动作通道
func (h *WSHandler) GameChannel(c *gin.Context) {
	gameID := c.Param("id")

	// 先确认游戏存在再升级连接
	if _, err := h.manager.GetState(gameID); err != nil {
		h.logger.Warn("WebSocket连接被拒绝",
			zap.String("game_id", gameID),
			zap.Error(err))
		c.JSON(404, gin.H{"error": err.Error()})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("WebSocket升级失败",
			zap.String("game_id", gameID),
			zap.Error(err))
		return
	}
	defer conn.Close()

	h.logger.Info("WebSocket连接建立",
		zap.String("game_id", gameID),
		zap.String("remote", conn.RemoteAddr().String()))

	for {
		var req wsRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket读取失败",
					zap.String("game_id", gameID),
					zap.Error(err))
			}
			return
		}

		resp := h.dispatch(gameID, &req)
		if err := conn.WriteJSON(resp); err != nil {
			h.logger.Warn("WebSocket写入失败",
				zap.String("game_id", gameID),
				zap.Error(err))
			return
		}
	}
}

// dispatch 执行单个动作并构造响应
func (h *WSHandler) dispatch(gameID string, req *wsRequest) *wsResponse {
	var (
		data interface{}
		err  error
	)

	switch req.Action {
	case "state":
		data, err = h.manager.GetState(gameID)
	case "roll":
		data, err = h.manager.RollDice(gameID, req.PlayerID)
	case "buy":
		data, err = h.manager.BuyProperty(gameID, req.PlayerID, req.Position)
	case "mortgage":
		data, err = h.manager.MortgageProperty(gameID, req.PlayerID, req.Position)
	case "unmortgage":
		data, err = h.manager.UnmortgageProperty(gameID, req.PlayerID, req.Position)
	case "build":
		data, err = h.manager.Build(gameID, req.PlayerID, req.Position)
	case "end_turn":
		data, err = h.manager.EndTurn(gameID, req.PlayerID)
	default:
		err = errors.New(errors.ErrInvalidParam, "未知动作: "+req.Action)
	}

	if err != nil {
		appErr, ok := err.(*errors.AppError)
		if !ok {
			appErr = errors.Wrap(err, errors.ErrUnknown)
		}
		return &wsResponse{Success: false, Action: req.Action, Error: appErr}
	}

	return &wsResponse{Success: true, Action: req.Action, Data: data}
}
