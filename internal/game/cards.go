package game

import (
	"fmt"

	"github.com/wfunc/monopoly-game/internal/game/board"
)

// resolveCardLanding 抽取并执行卡片，调用方需持有会话锁
func (m *Manager) resolveCardLanding(session *Session, player *Player, deck []board.Card, deckName string) *LandingResult {
	card := deck[m.randInt(len(deck))]

	m.appendLog(session, player.ID, "card",
		fmt.Sprintf("%s 抽到%s卡：%s", player.Username, deckName, card.Text))

	result := &LandingResult{Action: "card", Card: &card}

	switch card.Action {
	case board.ActionMoveTo:
		oldPosition := player.Position
		// 前进到目标格，向前跨过起点时发放奖励
		steps := (card.Target - oldPosition + board.Size) % board.Size
		if steps == 0 {
			steps = board.Size
		}
		m.movePlayer(session, player, steps)
		if card.Target != board.StartPosition {
			inner := m.resolveLanding(session, player, card.Target, 0)
			result.SentToJail = inner.SentToJail
			result.Bankrupted = inner.Bankrupted
			result.Shortfall = inner.Shortfall
		}

	case board.ActionGoToJail:
		m.sendToJail(session, player, "卡片指示")
		result.SentToJail = true

	case board.ActionPay:
		_, bankrupted, shortfall := m.chargePlayer(session, player, card.Amount, nil, card.Text)
		result.Bankrupted = bankrupted
		result.Shortfall = shortfall

	case board.ActionReceive:
		player.Money += card.Amount
		m.appendLog(session, player.ID, "receive",
			fmt.Sprintf("%s 获得%d元", player.Username, card.Amount))

	case board.ActionRepair:
		cost := m.repairCost(session, player, card)
		if cost > 0 {
			_, bankrupted, shortfall := m.chargePlayer(session, player, cost, nil, "房屋维修")
			result.Bankrupted = bankrupted
			result.Shortfall = shortfall
		}

	case board.ActionGetOutOfJail:
		player.HasGetOutCard = true
		m.appendLog(session, player.ID, "card",
			fmt.Sprintf("%s 获得出狱卡", player.Username))
	}

	return result
}

// repairCost 按玩家名下建筑数计算维修费，调用方需持有会话锁
func (m *Manager) repairCost(session *Session, player *Player, card board.Card) int {
	var houses, hotels int
	for _, state := range session.Properties {
		if state.OwnerID != player.ID {
			continue
		}
		houses += state.Houses
		hotels += state.Hotels
	}
	return houses*card.HouseCost + hotels*card.HotelCost
}
