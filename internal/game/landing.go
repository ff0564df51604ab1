package game

import (
	"fmt"

	"github.com/wfunc/monopoly-game/internal/game/board"
)

// resolveLanding 结算落点效果，调用方需持有会话锁
func (m *Manager) resolveLanding(session *Session, player *Player, position, diceTotal int) *LandingResult {
	square := board.Get(position)

	switch square.Kind {
	case board.KindProperty, board.KindRailroad, board.KindUtility:
		return m.resolveOwnableLanding(session, player, square, diceTotal)
	case board.KindTax:
		return m.resolveTaxLanding(session, player, square)
	case board.KindChance:
		return m.resolveCardLanding(session, player, m.chanceDeck, "机会")
	case board.KindCommunityChest:
		return m.resolveCardLanding(session, player, m.communityDeck, "公共基金")
	case board.KindGoToJail:
		m.sendToJail(session, player, "落入进监狱格")
		return &LandingResult{Action: "sent_to_jail", Square: &square, SentToJail: true}
	}

	// 起点、监狱探视、免费停车无效果
	return &LandingResult{Action: "none", Square: &square}
}

// resolveOwnableLanding 结算可购地产的落点，调用方需持有会话锁
func (m *Manager) resolveOwnableLanding(session *Session, player *Player, square board.Square, diceTotal int) *LandingResult {
	state, owned := session.Properties[square.Index]

	if !owned {
		return &LandingResult{Action: "can_buy", Square: &square, Price: square.Price}
	}
	if state.OwnerID == player.ID {
		return &LandingResult{Action: "own_property", Square: &square}
	}
	if state.Mortgaged {
		// 已抵押的地产不收租
		return &LandingResult{Action: "mortgaged_property", Square: &square}
	}

	owner := session.player(state.OwnerID)
	rent := m.calculateRent(session, square, state, diceTotal)

	paid, bankrupted, shortfall := m.chargePlayer(session, player, rent, owner,
		fmt.Sprintf("%s 的租金", square.Name))

	result := &LandingResult{
		Action:     "paid_rent",
		Square:     &square,
		RentPaid:   paid,
		ToPlayer:   owner.Username,
		Bankrupted: bankrupted,
		Shortfall:  shortfall,
	}
	if bankrupted {
		result.Action = "bankrupt"
	}
	return result
}

// resolveTaxLanding 结算税格，调用方需持有会话锁
func (m *Manager) resolveTaxLanding(session *Session, player *Player, square board.Square) *LandingResult {
	paid, bankrupted, shortfall := m.chargePlayer(session, player, square.TaxAmount, nil, square.Name)

	result := &LandingResult{
		Action:     "tax",
		Square:     &square,
		TaxPaid:    paid,
		Bankrupted: bankrupted,
		Shortfall:  shortfall,
	}
	if bankrupted {
		result.Action = "bankrupt"
	}
	return result
}

// chargePlayer 强制扣款。现金不足时将剩余现金转给债权人并触发破产流程。
// 返回实际支付金额、是否破产、差额。调用方需持有会话锁
func (m *Manager) chargePlayer(session *Session, player *Player, amount int, creditor *Player, what string) (paid int, bankrupted bool, shortfall int) {
	if player.Money >= amount {
		player.Money -= amount
		if creditor != nil {
			creditor.Money += amount
			m.appendLog(session, player.ID, "pay",
				fmt.Sprintf("%s 向 %s 支付了%d元（%s）", player.Username, creditor.Username, amount, what))
		} else {
			m.appendLog(session, player.ID, "pay",
				fmt.Sprintf("%s 支付了%d元（%s）", player.Username, amount, what))
		}
		return amount, false, 0
	}

	// 现金不足，剩余现金全部转给债权人后破产
	shortfall = amount - player.Money
	paid = player.Money
	if creditor != nil && paid > 0 {
		creditor.Money += paid
	}
	player.Money = 0

	m.appendLog(session, player.ID, "pay",
		fmt.Sprintf("%s 无法支付%d元（%s），差额%d元", player.Username, amount, what, shortfall))

	m.declareBankruptcy(session, player, creditor)
	return paid, true, shortfall
}
