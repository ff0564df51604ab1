package game

import (
	"fmt"

	"github.com/wfunc/monopoly-game/internal/errors"
	"github.com/wfunc/monopoly-game/internal/game/board"
	"go.uber.org/zap"
)

// maxJailTurns 第3次掷骰失败后强制处理
const maxJailTurns = 3

// checkTurn 校验玩家是否可以行动，调用方需持有会话锁
func (m *Manager) checkTurn(session *Session, playerID string) (*Player, error) {
	switch session.Status {
	case StatusWaiting:
		return nil, errors.New(errors.ErrInvalidState, "游戏尚未开始")
	case StatusFinished:
		return nil, errors.New(errors.ErrGameFinished)
	}

	player := session.player(playerID)
	if player == nil {
		return nil, errors.New(errors.ErrPlayerNotFound, "玩家ID: "+playerID)
	}
	if player.Bankrupt {
		return nil, errors.New(errors.ErrAlreadyBankrupt)
	}
	if !session.isPlayerTurn(playerID) {
		current := session.player(session.TurnOrder[session.CurrentIndex])
		return nil, errors.New(errors.ErrNotYourTurn, "当前玩家: "+current.Username)
	}
	return player, nil
}

// RollDice 掷骰并移动
func (m *Manager) RollDice(gameID, playerID string) (*RollResult, error) {
	session, err := m.session(gameID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	player, err := m.checkTurn(session, playerID)
	if err != nil {
		return nil, err
	}

	dice1, dice2 := m.roller.Roll()
	total := dice1 + dice2
	isDouble := dice1 == dice2

	msg := fmt.Sprintf("%s 掷出了 %d + %d = %d", player.Username, dice1, dice2, total)
	if isDouble {
		msg += "（双数！）"
	}
	m.appendLog(session, playerID, "roll", msg)

	result := &RollResult{
		Dice1:    dice1,
		Dice2:    dice2,
		Total:    total,
		IsDouble: isDouble,
	}

	// 监狱内的掷骰走单独流程
	if player.InJail {
		m.resolveJailRoll(session, player, result)
		m.mirror.GameUpdated(session)
		return result, nil
	}

	// 双数连击处理
	if isDouble {
		player.ConsecutiveDoubles++
		if player.ConsecutiveDoubles >= 3 {
			// 连续三次双数直接进监狱
			result.OldPosition = player.Position
			m.sendToJail(session, player, "连续三次双数")
			result.NewPosition = player.Position
			result.SentToJail = true
			m.mirror.GameUpdated(session)
			return result, nil
		}
	} else {
		player.ConsecutiveDoubles = 0
	}

	// 正常移动
	result.OldPosition = player.Position
	result.NewPosition, result.PassedStart = m.movePlayer(session, player, total)

	landing := m.resolveLanding(session, player, result.NewPosition, total)
	result.Landing = landing
	// 卡片移动或进监狱会再次改变位置，以玩家实际位置为准
	result.NewPosition = player.Position
	result.SentToJail = landing.SentToJail
	result.Bankrupted = landing.Bankrupted

	result.ExtraTurn = isDouble && !landing.SentToJail && !player.Bankrupt

	m.mirror.GameUpdated(session)
	return result, nil
}

// resolveJailRoll 处理监狱中的掷骰，调用方需持有会话锁
func (m *Manager) resolveJailRoll(session *Session, player *Player, result *RollResult) {
	isDouble := result.Dice1 == result.Dice2
	total := result.Total

	// 持有出狱卡则自动使用，无需付款直接行动
	if player.HasGetOutCard {
		player.HasGetOutCard = false
		player.InJail = false
		player.JailTurns = 0
		if isDouble {
			player.ConsecutiveDoubles = 1
		} else {
			player.ConsecutiveDoubles = 0
		}

		m.appendLog(session, player.ID, "jail",
			fmt.Sprintf("%s 使用出狱卡离开监狱", player.Username))

		result.UsedJailCard = true
		result.FreedFromJail = true
		result.OldPosition = player.Position
		result.NewPosition, result.PassedStart = m.movePlayer(session, player, total)
		result.Landing = m.resolveLanding(session, player, result.NewPosition, total)
		result.NewPosition = player.Position
		result.SentToJail = result.Landing.SentToJail
		result.Bankrupted = result.Landing.Bankrupted
		result.ExtraTurn = isDouble && !result.SentToJail && !player.Bankrupt
		return
	}

	player.JailTurns++

	if isDouble {
		// 双数出狱，移动并结算落点
		player.InJail = false
		player.JailTurns = 0
		player.ConsecutiveDoubles = 1

		m.appendLog(session, player.ID, "jail",
			fmt.Sprintf("%s 掷出双数离开监狱", player.Username))

		result.FreedFromJail = true
		result.OldPosition = player.Position
		result.NewPosition, result.PassedStart = m.movePlayer(session, player, total)
		result.Landing = m.resolveLanding(session, player, result.NewPosition, total)
		result.NewPosition = player.Position
		result.SentToJail = result.Landing.SentToJail
		result.Bankrupted = result.Landing.Bankrupted
		result.ExtraTurn = !result.SentToJail && !player.Bankrupt
		return
	}

	if player.JailTurns >= maxJailTurns {
		// 第三次失败，强制缴纳罚金。与租金、税款走同一扣款流程
		fine := m.cfg.JailFine
		paid, bankrupted, shortfall := m.chargePlayer(session, player, fine, nil, "出狱罚金")
		result.AmountPaid = paid
		result.OldPosition = player.Position
		result.NewPosition = player.Position

		if bankrupted {
			result.Bankrupted = true
			result.Landing = &LandingResult{Action: "bankrupt", Bankrupted: true, Shortfall: shortfall}
			return
		}

		player.InJail = false
		player.JailTurns = 0

		m.appendLog(session, player.ID, "jail",
			fmt.Sprintf("%s 缴纳%d元罚金离开监狱", player.Username, fine))

		result.ForcedRelease = true
		return
	}

	m.appendLog(session, player.ID, "jail",
		fmt.Sprintf("%s 仍在监狱中（第%d/%d次尝试）", player.Username, player.JailTurns, maxJailTurns))

	result.StillInJail = true
	result.AttemptsLeft = maxJailTurns - player.JailTurns
	result.OldPosition = player.Position
	result.NewPosition = player.Position
}

// movePlayer 前进指定步数，经过起点发放奖励，调用方需持有会话锁
func (m *Manager) movePlayer(session *Session, player *Player, steps int) (newPosition int, passedStart bool) {
	oldPosition := player.Position
	newPosition = (oldPosition + steps) % board.Size
	passedStart = newPosition < oldPosition

	player.Position = newPosition

	if passedStart {
		player.Money += m.cfg.PassStartBonus
		m.appendLog(session, player.ID, "pass_start",
			fmt.Sprintf("%s 经过起点，获得%d元", player.Username, m.cfg.PassStartBonus))
	}

	return newPosition, passedStart
}

// sendToJail 送进监狱，调用方需持有会话锁
func (m *Manager) sendToJail(session *Session, player *Player, reason string) {
	player.Position = board.JailPosition
	player.InJail = true
	player.JailTurns = 0
	player.ConsecutiveDoubles = 0

	m.appendLog(session, player.ID, "jail",
		fmt.Sprintf("%s 被送进监狱：%s", player.Username, reason))

	m.logger.Debug("玩家入狱",
		zap.String("game_id", session.ID),
		zap.String("player_id", player.ID),
		zap.String("reason", reason))
}

// EndTurn 结束回合，跳过已破产的座位
func (m *Manager) EndTurn(gameID, playerID string) (*EndTurnResult, error) {
	session, err := m.session(gameID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if _, err := m.checkTurn(session, playerID); err != nil {
		return nil, err
	}

	next := m.advanceTurn(session)
	if next == nil {
		return nil, errors.New(errors.ErrGameFinished)
	}

	m.appendLog(session, next.ID, "end_turn", fmt.Sprintf("轮到 %s 行动", next.Username))

	m.mirror.GameUpdated(session)

	return &EndTurnResult{
		NextPlayerID:       next.ID,
		NextPlayerUsername: next.Username,
	}, nil
}

// advanceTurn 移动到下一个未破产的玩家，调用方需持有会话锁
func (m *Manager) advanceTurn(session *Session) *Player {
	if session.Status != StatusActive {
		return nil
	}

	for i := 0; i < len(session.TurnOrder); i++ {
		session.CurrentIndex = (session.CurrentIndex + 1) % len(session.TurnOrder)
		next := session.player(session.TurnOrder[session.CurrentIndex])
		if next != nil && !next.Bankrupt {
			return next
		}
	}
	return nil
}
