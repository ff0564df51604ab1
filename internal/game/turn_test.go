package game

import (
	"testing"

	"github.com/wfunc/monopoly-game/internal/errors"
	"github.com/wfunc/monopoly-game/internal/game/board"
)

func TestRollDiceMovement(t *testing.T) {
	m := newTestManager([2]int{2, 3})
	gameID, order := setupActiveGame(t, m, 2)

	result, err := m.RollDice(gameID, order[0])
	if err != nil {
		t.Fatalf("掷骰失败: %v", err)
	}
	if result.Total != 5 {
		t.Errorf("点数 = %d, 期望 5", result.Total)
	}
	if result.NewPosition != 5 {
		t.Errorf("新位置 = %d, 期望 5", result.NewPosition)
	}
	if result.PassedStart {
		t.Error("首轮不应经过起点")
	}
	if result.ExtraTurn {
		t.Error("非双数不应有额外回合")
	}
}

func TestRollDiceNotYourTurn(t *testing.T) {
	m := newTestManager([2]int{2, 3})
	gameID, order := setupActiveGame(t, m, 2)

	if _, err := m.RollDice(gameID, order[1]); !errors.Is(err, errors.ErrNotYourTurn) {
		t.Errorf("非当前玩家掷骰的错误 = %v, 期望 ErrNotYourTurn", err)
	}
}

func TestPassStartBonus(t *testing.T) {
	// 位置35掷出6，应停在位置1并获得经过起点奖励
	m := newTestManager([2]int{2, 4})
	gameID, order := setupActiveGame(t, m, 2)

	session := mustSession(t, m, gameID)
	session.mu.Lock()
	player := session.player(order[0])
	player.Position = 35
	session.mu.Unlock()

	result, err := m.RollDice(gameID, order[0])
	if err != nil {
		t.Fatalf("掷骰失败: %v", err)
	}
	if result.NewPosition != 1 {
		t.Errorf("新位置 = %d, 期望 1", result.NewPosition)
	}
	if !result.PassedStart {
		t.Error("应判定经过起点")
	}

	session.mu.Lock()
	money := player.Money
	session.mu.Unlock()
	if money != 1700 {
		t.Errorf("现金 = %d, 期望 1700", money)
	}
	if result.Landing == nil || result.Landing.Action != "can_buy" {
		t.Errorf("落点动作 = %+v, 期望 can_buy", result.Landing)
	}
}

func TestThreeDoublesSendToJail(t *testing.T) {
	// (4,4)落在8号地产，(6,6)落在20号免费停车，第三次双数直接入狱
	m := newTestManager([2]int{4, 4}, [2]int{6, 6}, [2]int{1, 1})
	gameID, order := setupActiveGame(t, m, 2)

	first, err := m.RollDice(gameID, order[0])
	if err != nil {
		t.Fatal(err)
	}
	if !first.ExtraTurn {
		t.Fatal("双数应有额外回合")
	}

	second, err := m.RollDice(gameID, order[0])
	if err != nil {
		t.Fatal(err)
	}
	if !second.ExtraTurn {
		t.Fatal("双数应有额外回合")
	}

	third, err := m.RollDice(gameID, order[0])
	if err != nil {
		t.Fatal(err)
	}
	if !third.SentToJail {
		t.Error("第三次双数应入狱")
	}
	if third.ExtraTurn {
		t.Error("入狱后不应有额外回合")
	}
	// 第二次双数后位于20号，入狱结果应报告真实位移
	if third.OldPosition != 20 {
		t.Errorf("原位置 = %d, 期望 20", third.OldPosition)
	}
	if third.NewPosition != board.JailPosition {
		t.Errorf("新位置 = %d, 期望 %d", third.NewPosition, board.JailPosition)
	}

	session := mustSession(t, m, gameID)
	session.mu.Lock()
	player := session.player(order[0])
	if player.Position != board.JailPosition {
		t.Errorf("位置 = %d, 期望 %d", player.Position, board.JailPosition)
	}
	if !player.InJail {
		t.Error("玩家应处于监狱状态")
	}
	if player.ConsecutiveDoubles != 0 {
		t.Errorf("双数连击 = %d, 期望 0", player.ConsecutiveDoubles)
	}
	session.mu.Unlock()
}

func TestJailReleaseByDouble(t *testing.T) {
	// 监狱中掷出(3,3)：出狱，从10前进6格到16并结算落点
	m := newTestManager([2]int{3, 3})
	gameID, order := setupActiveGame(t, m, 2)

	session := mustSession(t, m, gameID)
	session.mu.Lock()
	player := session.player(order[0])
	player.InJail = true
	player.Position = board.JailPosition
	player.JailTurns = 1
	session.mu.Unlock()

	result, err := m.RollDice(gameID, order[0])
	if err != nil {
		t.Fatalf("掷骰失败: %v", err)
	}
	if !result.FreedFromJail {
		t.Error("双数应出狱")
	}
	if result.NewPosition != 16 {
		t.Errorf("新位置 = %d, 期望 16", result.NewPosition)
	}
	if result.Landing == nil || result.Landing.Action != "can_buy" {
		t.Errorf("出狱移动应结算落点, 实际 %+v", result.Landing)
	}
	if !result.ExtraTurn {
		t.Error("出狱双数应有额外回合")
	}

	session.mu.Lock()
	if player.InJail {
		t.Error("玩家不应仍在监狱")
	}
	if player.ConsecutiveDoubles != 1 {
		t.Errorf("双数连击 = %d, 期望 1", player.ConsecutiveDoubles)
	}
	session.mu.Unlock()
}

func TestJailStay(t *testing.T) {
	m := newTestManager([2]int{1, 2})
	gameID, order := setupActiveGame(t, m, 2)

	session := mustSession(t, m, gameID)
	session.mu.Lock()
	player := session.player(order[0])
	player.InJail = true
	player.Position = board.JailPosition
	session.mu.Unlock()

	result, err := m.RollDice(gameID, order[0])
	if err != nil {
		t.Fatal(err)
	}
	if !result.StillInJail {
		t.Error("非双数应留在监狱")
	}
	if result.AttemptsLeft != 2 {
		t.Errorf("剩余尝试次数 = %d, 期望 2", result.AttemptsLeft)
	}
	if result.NewPosition != board.JailPosition {
		t.Errorf("位置 = %d, 期望仍在 %d", result.NewPosition, board.JailPosition)
	}
}

func TestJailForcedRelease(t *testing.T) {
	// 第三次尝试失败，强制缴纳50元罚金
	m := newTestManager([2]int{1, 2})
	gameID, order := setupActiveGame(t, m, 2)

	session := mustSession(t, m, gameID)
	session.mu.Lock()
	player := session.player(order[0])
	player.InJail = true
	player.Position = board.JailPosition
	player.JailTurns = 2
	session.mu.Unlock()

	result, err := m.RollDice(gameID, order[0])
	if err != nil {
		t.Fatal(err)
	}
	if !result.ForcedRelease {
		t.Error("第三次失败应强制释放")
	}
	if result.AmountPaid != 50 {
		t.Errorf("罚金 = %d, 期望 50", result.AmountPaid)
	}

	session.mu.Lock()
	if player.InJail {
		t.Error("玩家不应仍在监狱")
	}
	if player.Money != 1450 {
		t.Errorf("现金 = %d, 期望 1450", player.Money)
	}
	if player.Position != board.JailPosition {
		t.Errorf("强制释放不应移动, 位置 = %d", player.Position)
	}
	session.mu.Unlock()
}

func TestJailFineBankruptcy(t *testing.T) {
	// 付不起罚金时破产，剩下的对手获胜
	m := newTestManager([2]int{1, 2})
	gameID, order := setupActiveGame(t, m, 2)

	session := mustSession(t, m, gameID)
	session.mu.Lock()
	player := session.player(order[0])
	player.InJail = true
	player.Position = board.JailPosition
	player.JailTurns = 2
	player.Money = 30
	session.mu.Unlock()

	result, err := m.RollDice(gameID, order[0])
	if err != nil {
		t.Fatal(err)
	}
	if !result.Bankrupted {
		t.Error("付不起罚金应破产")
	}
	if result.Landing == nil || result.Landing.Shortfall != 20 {
		t.Errorf("差额 = %+v, 期望 20", result.Landing)
	}
	if result.AmountPaid != 30 {
		t.Errorf("实际支付 = %d, 期望 30", result.AmountPaid)
	}

	// 剩余现金与租金破产时一样全部上缴
	session.mu.Lock()
	if player.Money != 0 {
		t.Errorf("破产后现金 = %d, 期望 0", player.Money)
	}
	session.mu.Unlock()

	view, _ := m.GetState(gameID)
	if view.Status != StatusFinished {
		t.Errorf("游戏状态 = %s, 期望 finished", view.Status)
	}
	if view.WinnerID != order[1] {
		t.Errorf("胜者 = %s, 期望 %s", view.WinnerID, order[1])
	}
}

func TestJailCardAutoConsumed(t *testing.T) {
	// 持有出狱卡时下一次监狱掷骰自动使用，无需付款
	m := newTestManager([2]int{1, 2})
	gameID, order := setupActiveGame(t, m, 2)

	session := mustSession(t, m, gameID)
	session.mu.Lock()
	player := session.player(order[0])
	player.InJail = true
	player.Position = board.JailPosition
	player.HasGetOutCard = true
	session.mu.Unlock()

	result, err := m.RollDice(gameID, order[0])
	if err != nil {
		t.Fatal(err)
	}
	if !result.UsedJailCard || !result.FreedFromJail {
		t.Errorf("应使用出狱卡出狱, 实际 %+v", result)
	}
	if result.NewPosition != 13 {
		t.Errorf("新位置 = %d, 期望 13", result.NewPosition)
	}

	session.mu.Lock()
	if player.HasGetOutCard {
		t.Error("出狱卡应被消耗")
	}
	if player.Money != 1500 {
		t.Errorf("使用出狱卡不应扣款, 现金 = %d", player.Money)
	}
	session.mu.Unlock()
}

func TestGoToJailSquare(t *testing.T) {
	// 从26掷出(1,3)落在30号进监狱格
	m := newTestManager([2]int{1, 3})
	gameID, order := setupActiveGame(t, m, 2)

	session := mustSession(t, m, gameID)
	session.mu.Lock()
	session.player(order[0]).Position = 26
	session.mu.Unlock()

	result, err := m.RollDice(gameID, order[0])
	if err != nil {
		t.Fatal(err)
	}
	if !result.SentToJail {
		t.Error("落在进监狱格应入狱")
	}
	if result.NewPosition != board.JailPosition {
		t.Errorf("新位置 = %d, 期望 %d", result.NewPosition, board.JailPosition)
	}

	session.mu.Lock()
	player := session.player(order[0])
	if player.Position != board.JailPosition || !player.InJail {
		t.Errorf("玩家应在监狱, 位置 = %d", player.Position)
	}
	session.mu.Unlock()
}

func TestCardMoveUpdatesRollPosition(t *testing.T) {
	// 从15掷出(3,4)落在22号机会格，卡片移动后掷骰结果应报告最终位置
	m := newTestManager([2]int{3, 4})
	m.chanceDeck = []board.Card{
		{Text: "前进到起点，获得200元", Action: board.ActionMoveTo, Target: 0, Amount: 200},
	}
	gameID, order := setupActiveGame(t, m, 2)

	session := mustSession(t, m, gameID)
	session.mu.Lock()
	player := session.player(order[0])
	player.Position = 15
	session.mu.Unlock()

	result, err := m.RollDice(gameID, order[0])
	if err != nil {
		t.Fatalf("掷骰失败: %v", err)
	}
	if result.OldPosition != 15 {
		t.Errorf("原位置 = %d, 期望 15", result.OldPosition)
	}
	if result.NewPosition != 0 {
		t.Errorf("新位置 = %d, 期望 0", result.NewPosition)
	}
	if result.Landing == nil || result.Landing.Action != "card" {
		t.Errorf("落点 = %+v, 期望抽卡", result.Landing)
	}

	session.mu.Lock()
	if player.Position != 0 {
		t.Errorf("位置 = %d, 期望 0", player.Position)
	}
	// 卡片移动跨过起点同样发放奖励
	if player.Money != 1700 {
		t.Errorf("现金 = %d, 期望 1700", player.Money)
	}
	session.mu.Unlock()
}

func TestEndTurn(t *testing.T) {
	m := newTestManager([2]int{1, 2})
	gameID, order := setupActiveGame(t, m, 3)

	result, err := m.EndTurn(gameID, order[0])
	if err != nil {
		t.Fatalf("结束回合失败: %v", err)
	}
	if result.NextPlayerID != order[1] {
		t.Errorf("下一位玩家 = %s, 期望 %s", result.NextPlayerID, order[1])
	}

	// 非当前玩家不能结束回合
	if _, err := m.EndTurn(gameID, order[0]); !errors.Is(err, errors.ErrNotYourTurn) {
		t.Errorf("非当前玩家结束回合的错误 = %v, 期望 ErrNotYourTurn", err)
	}
}

func TestEndTurnSkipsBankrupt(t *testing.T) {
	m := newTestManager([2]int{1, 2})
	gameID, order := setupActiveGame(t, m, 3)

	session := mustSession(t, m, gameID)
	session.mu.Lock()
	session.player(order[1]).Bankrupt = true
	session.mu.Unlock()

	result, err := m.EndTurn(gameID, order[0])
	if err != nil {
		t.Fatal(err)
	}
	if result.NextPlayerID != order[2] {
		t.Errorf("应跳过破产座位, 下一位 = %s, 期望 %s", result.NextPlayerID, order[2])
	}
}

func TestActionsAfterFinish(t *testing.T) {
	m := newTestManager([2]int{1, 2})
	gameID, order := setupActiveGame(t, m, 2)

	session := mustSession(t, m, gameID)
	session.mu.Lock()
	session.Status = StatusFinished
	session.mu.Unlock()

	if _, err := m.RollDice(gameID, order[0]); !errors.Is(err, errors.ErrGameFinished) {
		t.Errorf("结束后掷骰的错误 = %v, 期望 ErrGameFinished", err)
	}
	if _, err := m.EndTurn(gameID, order[0]); !errors.Is(err, errors.ErrGameFinished) {
		t.Errorf("结束后结束回合的错误 = %v, 期望 ErrGameFinished", err)
	}
}
