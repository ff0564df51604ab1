package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wfunc/monopoly-game/internal/config"
	"github.com/wfunc/monopoly-game/internal/errors"
	"github.com/wfunc/monopoly-game/internal/game/board"
	"go.uber.org/zap"
)

// codeAttempts 生成唯一加入码的最大尝试次数
const codeAttempts = 100

// Manager 游戏会话管理器，负责多局并发游戏的生命周期
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	codes    map[string]string // 加入码 -> 游戏ID

	cfg    *config.GameConfig
	logger *zap.Logger
	roller DiceRoller
	mirror Mirror

	chanceDeck    []board.Card
	communityDeck []board.Card

	rngMu sync.Mutex
	rng   *rand.Rand
}

// ManagerConfig 管理器配置
type ManagerConfig struct {
	Game   *config.GameConfig
	Logger *zap.Logger
	Roller DiceRoller
	Mirror Mirror
}

// NewManager 创建游戏会话管理器
func NewManager(cfg *ManagerConfig) *Manager {
	roller := cfg.Roller
	if roller == nil {
		roller = NewRandomRoller()
	}
	mirror := cfg.Mirror
	if mirror == nil {
		mirror = NopMirror{}
	}

	return &Manager{
		sessions:      make(map[string]*Session),
		codes:         make(map[string]string),
		cfg:           cfg.Game,
		logger:        cfg.Logger,
		roller:        roller,
		mirror:        mirror,
		chanceDeck:    board.ChanceCards(),
		communityDeck: board.CommunityChestCards(),
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// randInt 返回[0,n)的随机数
func (m *Manager) randInt(n int) int {
	m.rngMu.Lock()
	defer m.rngMu.Unlock()
	return m.rng.Intn(n)
}

// shuffle 打乱字符串切片
func (m *Manager) shuffle(items []string) {
	m.rngMu.Lock()
	defer m.rngMu.Unlock()
	m.rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// CreateGame 创建新游戏
func (m *Manager) CreateGame(creatorUsername string, maxPlayers int) (*CreateResult, error) {
	if maxPlayers <= 0 {
		maxPlayers = m.cfg.MaxPlayers
	}
	if maxPlayers < 2 || maxPlayers > m.cfg.MaxPlayers {
		return nil, errors.Newf(errors.ErrInvalidParam, "max_players 必须在 2-%d 之间", m.cfg.MaxPlayers)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cfg.MaxSessions > 0 && len(m.sessions) >= m.cfg.MaxSessions {
		return nil, errors.New(errors.ErrSessionFull, "游戏局数已达上限")
	}

	code, err := m.generateCode()
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:              uuid.NewString(),
		Code:            code,
		Creator:         creatorUsername,
		Status:          StatusWaiting,
		MaxPlayers:      maxPlayers,
		Properties:      make(map[int]*PropertyState),
		HousesRemaining: board.TotalHouses,
		HotelsRemaining: board.TotalHotels,
		CreatedAt:       time.Now(),
	}

	m.sessions[session.ID] = session
	m.codes[code] = session.ID

	m.appendLog(session, "", "create", fmt.Sprintf("游戏由 %s 创建", creatorUsername))

	m.logger.Info("创建游戏",
		zap.String("game_id", session.ID),
		zap.String("code", code),
		zap.String("creator", creatorUsername),
		zap.Int("max_players", maxPlayers))

	m.mirror.GameCreated(session)

	return &CreateResult{GameID: session.ID, Code: code}, nil
}

// generateCode 生成唯一的6位数字加入码，调用方需持有管理器写锁
func (m *Manager) generateCode() (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code := fmt.Sprintf("%06d", 100000+m.randInt(900000))
		if _, exists := m.codes[code]; !exists {
			return code, nil
		}
	}
	return "", errors.New(errors.ErrCodeExhausted)
}

// JoinGame 加入游戏
func (m *Manager) JoinGame(username, code string) (*JoinResult, error) {
	session, err := m.findByCode(code)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.Status != StatusWaiting {
		return nil, errors.New(errors.ErrAlreadyStarted)
	}
	if len(session.Players) >= session.MaxPlayers {
		return nil, errors.New(errors.ErrSessionFull)
	}
	for _, p := range session.Players {
		if p.Username == username {
			return nil, errors.New(errors.ErrDuplicateUsername, "用户名: "+username)
		}
	}

	player := &Player{
		ID:       uuid.NewString(),
		Username: username,
		Color:    playerColors[len(session.Players)],
		Position: board.StartPosition,
		Money:    m.cfg.StartingCash,
	}

	session.Players = append(session.Players, player)
	session.TurnOrder = append(session.TurnOrder, player.ID)

	m.appendLog(session, player.ID, "join", fmt.Sprintf("%s 加入了游戏", username))

	m.logger.Info("玩家加入游戏",
		zap.String("game_id", session.ID),
		zap.String("player_id", player.ID),
		zap.String("username", username))

	m.mirror.PlayerJoined(session, player)

	return &JoinResult{GameID: session.ID, PlayerID: player.ID, Color: player.Color}, nil
}

// StartGame 开始游戏，打乱回合顺序
func (m *Manager) StartGame(gameID string) (*StartResult, error) {
	session, err := m.session(gameID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.Status != StatusWaiting {
		return nil, errors.New(errors.ErrAlreadyStarted)
	}
	if len(session.Players) < 2 {
		return nil, errors.Newf(errors.ErrNotEnoughPlayers, "当前玩家数: %d", len(session.Players))
	}

	m.shuffle(session.TurnOrder)
	session.Status = StatusActive
	session.CurrentIndex = 0
	session.StartedAt = time.Now()

	m.appendLog(session, "", "start", "游戏开始")

	m.logger.Info("游戏开始",
		zap.String("game_id", session.ID),
		zap.Int("players", len(session.Players)))

	m.mirror.GameUpdated(session)

	return &StartResult{
		CurrentPlayerID: session.TurnOrder[0],
		TurnOrder:       append([]string(nil), session.TurnOrder...),
	}, nil
}

// GetState 获取游戏状态视图
func (m *Manager) GetState(gameID string) (*GameView, error) {
	session, err := m.session(gameID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	view := &GameView{
		ID:              session.ID,
		Code:            session.Code,
		Status:          session.Status,
		MaxPlayers:      session.MaxPlayers,
		CurrentIndex:    session.CurrentIndex,
		HousesRemaining: session.HousesRemaining,
		HotelsRemaining: session.HotelsRemaining,
		WinnerID:        session.WinnerID,
		Properties:      make(map[int]PropertyState, len(session.Properties)),
	}

	if session.Status == StatusActive && len(session.TurnOrder) > 0 {
		view.CurrentPlayerID = session.TurnOrder[session.CurrentIndex]
	}

	for _, p := range session.Players {
		cp := *p
		cp.Properties = append([]int(nil), p.Properties...)
		view.Players = append(view.Players, cp)
	}
	for pos, ps := range session.Properties {
		view.Properties[pos] = *ps
	}

	// 只返回最近的若干条日志
	viewLen := m.cfg.LogView
	if viewLen <= 0 || viewLen > len(session.Log) {
		viewLen = len(session.Log)
	}
	view.Log = append([]LogEntry(nil), session.Log[len(session.Log)-viewLen:]...)

	return view, nil
}

// ActiveSessions 当前会话数
func (m *Manager) ActiveSessions() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// session 按游戏ID查找会话
func (m *Manager) session(gameID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[gameID]
	if !exists {
		return nil, errors.New(errors.ErrSessionNotFound, "游戏ID: "+gameID)
	}
	return session, nil
}

// findByCode 按加入码查找会话
func (m *Manager) findByCode(code string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	gameID, exists := m.codes[code]
	if !exists {
		return nil, errors.New(errors.ErrSessionNotFound, "加入码: "+code)
	}
	return m.sessions[gameID], nil
}

// appendLog 追加游戏日志并裁剪到保留上限，调用方需持有会话锁
func (m *Manager) appendLog(session *Session, playerID, actionType, message string) {
	entry := LogEntry{
		Timestamp:  time.Now(),
		PlayerID:   playerID,
		ActionType: actionType,
		Message:    message,
	}
	session.Log = append(session.Log, entry)

	retention := m.cfg.LogRetention
	if retention > 0 && len(session.Log) > retention {
		session.Log = session.Log[len(session.Log)-retention:]
	}

	m.mirror.ActionLogged(session.ID, playerID, actionType, message)
}
