package game

import (
	"fmt"
	"testing"

	"github.com/wfunc/monopoly-game/internal/config"
	"github.com/wfunc/monopoly-game/internal/errors"
	"go.uber.org/zap"
)

// scriptedRoller 按给定序列出骰，超出后重复最后一组
type scriptedRoller struct {
	rolls [][2]int
	idx   int
}

func (r *scriptedRoller) Roll() (int, int) {
	if r.idx >= len(r.rolls) {
		last := r.rolls[len(r.rolls)-1]
		return last[0], last[1]
	}
	roll := r.rolls[r.idx]
	r.idx++
	return roll[0], roll[1]
}

func testGameConfig() *config.GameConfig {
	return &config.GameConfig{
		MaxPlayers:     6,
		StartingCash:   1500,
		PassStartBonus: 200,
		JailFine:       50,
		LogRetention:   100,
		LogView:        20,
		MaxSessions:    100,
	}
}

func newTestManager(rolls ...[2]int) *Manager {
	cfg := &ManagerConfig{
		Game:   testGameConfig(),
		Logger: zap.NewNop(),
	}
	if len(rolls) > 0 {
		cfg.Roller = &scriptedRoller{rolls: rolls}
	}
	return NewManager(cfg)
}

// setupActiveGame 创建游戏并让指定数量的玩家加入开局，
// 返回游戏ID和按回合顺序排列的玩家ID
func setupActiveGame(t *testing.T, m *Manager, playerCount int) (string, []string) {
	t.Helper()

	created, err := m.CreateGame("creator", 6)
	if err != nil {
		t.Fatalf("创建游戏失败: %v", err)
	}

	for i := 0; i < playerCount; i++ {
		if _, err := m.JoinGame(fmt.Sprintf("player%d", i+1), created.Code); err != nil {
			t.Fatalf("加入游戏失败: %v", err)
		}
	}

	started, err := m.StartGame(created.GameID)
	if err != nil {
		t.Fatalf("开始游戏失败: %v", err)
	}

	return created.GameID, started.TurnOrder
}

// mustSession 直接取内存会话用于布置测试场景
func mustSession(t *testing.T, m *Manager, gameID string) *Session {
	t.Helper()
	session, err := m.session(gameID)
	if err != nil {
		t.Fatalf("获取会话失败: %v", err)
	}
	return session
}

func TestCreateGame(t *testing.T) {
	m := newTestManager()

	result, err := m.CreateGame("alice", 4)
	if err != nil {
		t.Fatalf("创建游戏失败: %v", err)
	}
	if result.GameID == "" {
		t.Error("缺少游戏ID")
	}
	if len(result.Code) != 6 {
		t.Errorf("加入码长度 = %d, 期望 6", len(result.Code))
	}

	view, err := m.GetState(result.GameID)
	if err != nil {
		t.Fatalf("获取状态失败: %v", err)
	}
	if view.Status != StatusWaiting {
		t.Errorf("新游戏状态 = %s, 期望 waiting", view.Status)
	}
	if view.HousesRemaining != 32 || view.HotelsRemaining != 12 {
		t.Errorf("银行存量 = %d房/%d店, 期望 32/12", view.HousesRemaining, view.HotelsRemaining)
	}
}

func TestCreateGameInvalidMaxPlayers(t *testing.T) {
	m := newTestManager()

	if _, err := m.CreateGame("alice", 1); !errors.Is(err, errors.ErrInvalidParam) {
		t.Errorf("max_players=1 的错误 = %v, 期望 ErrInvalidParam", err)
	}
	if _, err := m.CreateGame("alice", 7); !errors.Is(err, errors.ErrInvalidParam) {
		t.Errorf("max_players=7 的错误 = %v, 期望 ErrInvalidParam", err)
	}
}

func TestJoinGame(t *testing.T) {
	m := newTestManager()
	created, _ := m.CreateGame("alice", 2)

	joined, err := m.JoinGame("alice", created.Code)
	if err != nil {
		t.Fatalf("加入游戏失败: %v", err)
	}
	if joined.PlayerID == "" {
		t.Error("缺少玩家ID")
	}
	if joined.Color != "red" {
		t.Errorf("第一名玩家颜色 = %s, 期望 red", joined.Color)
	}

	// 重复用户名
	if _, err := m.JoinGame("alice", created.Code); !errors.Is(err, errors.ErrDuplicateUsername) {
		t.Errorf("重复用户名的错误 = %v, 期望 ErrDuplicateUsername", err)
	}

	// 人数已满
	if _, err := m.JoinGame("bob", created.Code); err != nil {
		t.Fatalf("加入游戏失败: %v", err)
	}
	if _, err := m.JoinGame("carol", created.Code); !errors.Is(err, errors.ErrSessionFull) {
		t.Errorf("满员加入的错误 = %v, 期望 ErrSessionFull", err)
	}

	// 未知加入码
	if _, err := m.JoinGame("dave", "000000"); !errors.Is(err, errors.ErrSessionNotFound) {
		t.Errorf("未知加入码的错误 = %v, 期望 ErrSessionNotFound", err)
	}
}

func TestStartGame(t *testing.T) {
	m := newTestManager()
	created, _ := m.CreateGame("alice", 4)

	// 玩家不足
	m.JoinGame("alice", created.Code)
	if _, err := m.StartGame(created.GameID); !errors.Is(err, errors.ErrNotEnoughPlayers) {
		t.Errorf("单人开局的错误 = %v, 期望 ErrNotEnoughPlayers", err)
	}

	m.JoinGame("bob", created.Code)
	started, err := m.StartGame(created.GameID)
	if err != nil {
		t.Fatalf("开始游戏失败: %v", err)
	}
	if len(started.TurnOrder) != 2 {
		t.Errorf("回合顺序人数 = %d, 期望 2", len(started.TurnOrder))
	}
	if started.CurrentPlayerID != started.TurnOrder[0] {
		t.Error("当前玩家应为回合顺序的第一位")
	}

	// 重复开始
	if _, err := m.StartGame(created.GameID); !errors.Is(err, errors.ErrAlreadyStarted) {
		t.Errorf("重复开始的错误 = %v, 期望 ErrAlreadyStarted", err)
	}

	// 开始后不能再加入
	if _, err := m.JoinGame("carol", created.Code); !errors.Is(err, errors.ErrAlreadyStarted) {
		t.Errorf("开始后加入的错误 = %v, 期望 ErrAlreadyStarted", err)
	}
}

func TestGetStateLogView(t *testing.T) {
	m := newTestManager()
	gameID, order := setupActiveGame(t, m, 2)

	session := mustSession(t, m, gameID)

	// 制造大量日志
	session.mu.Lock()
	for i := 0; i < 150; i++ {
		m.appendLog(session, order[0], "roll", fmt.Sprintf("动作 %d", i))
	}
	logLen := len(session.Log)
	session.mu.Unlock()

	// 内存日志裁剪到保留上限
	if logLen != 100 {
		t.Errorf("内存日志条数 = %d, 期望 100", logLen)
	}

	// 视图只返回最近20条
	view, err := m.GetState(gameID)
	if err != nil {
		t.Fatalf("获取状态失败: %v", err)
	}
	if len(view.Log) != 20 {
		t.Errorf("视图日志条数 = %d, 期望 20", len(view.Log))
	}
	if view.Log[19].Message != "动作 149" {
		t.Errorf("最后一条日志 = %s, 期望 动作 149", view.Log[19].Message)
	}
}

func TestMaxSessions(t *testing.T) {
	m := newTestManager()
	m.cfg.MaxSessions = 2

	if _, err := m.CreateGame("a", 2); err != nil {
		t.Fatal(err)
	}
	if _, err := m.CreateGame("b", 2); err != nil {
		t.Fatal(err)
	}
	if _, err := m.CreateGame("c", 2); !errors.Is(err, errors.ErrSessionFull) {
		t.Errorf("超过局数上限的错误 = %v, 期望 ErrSessionFull", err)
	}
}
