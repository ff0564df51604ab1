package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// declareBankruptcy 宣告破产：名下地产释放回银行，建筑归还存量。
// 破产玩家是当前行动者时回合自动移交。调用方需持有会话锁
func (m *Manager) declareBankruptcy(session *Session, player *Player, creditor *Player) {
	player.Bankrupt = true
	wasCurrent := session.isPlayerTurn(player.ID)

	// 释放名下全部地产
	for pos, state := range session.Properties {
		if state.OwnerID != player.ID {
			continue
		}
		session.HousesRemaining += state.Houses
		session.HotelsRemaining += state.Hotels
		delete(session.Properties, pos)
	}
	player.Properties = nil

	m.appendLog(session, player.ID, "bankrupt", fmt.Sprintf("%s 破产了！", player.Username))

	creditorName := "银行"
	if creditor != nil {
		creditorName = creditor.Username
	}
	m.logger.Info("玩家破产",
		zap.String("game_id", session.ID),
		zap.String("player_id", player.ID),
		zap.String("creditor", creditorName))

	m.mirror.PlayerBankrupted(session, player)

	// 判断游戏是否结束
	active := session.activePlayers()
	if len(active) <= 1 {
		m.finishGame(session, active)
		return
	}

	if wasCurrent {
		if next := m.advanceTurn(session); next != nil {
			m.appendLog(session, next.ID, "end_turn", fmt.Sprintf("轮到 %s 行动", next.Username))
		}
	}
}

// finishGame 结束游戏。唯一存活者获胜，无人存活则为平局。调用方需持有会话锁
func (m *Manager) finishGame(session *Session, active []*Player) {
	session.Status = StatusFinished
	session.FinishedAt = time.Now()

	if len(active) == 1 {
		session.WinnerID = active[0].ID
		m.appendLog(session, active[0].ID, "finish", fmt.Sprintf("%s 获胜！", active[0].Username))
	} else {
		m.appendLog(session, "", "finish", "所有玩家均已破产，游戏以平局结束")
	}

	m.logger.Info("游戏结束",
		zap.String("game_id", session.ID),
		zap.String("winner_id", session.WinnerID))

	m.mirror.GameUpdated(session)
}
