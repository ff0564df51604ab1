package game

import (
	"fmt"

	"github.com/wfunc/monopoly-game/internal/errors"
	"github.com/wfunc/monopoly-game/internal/game/board"
	"go.uber.org/zap"
)

// calculateRent 计算租金，调用方需持有会话锁
func (m *Manager) calculateRent(session *Session, square board.Square, state *PropertyState, diceTotal int) int {
	switch square.Kind {
	case board.KindRailroad:
		count := m.countOwnedByKind(session, state.OwnerID, board.KindRailroad)
		return board.RailroadRent(count)
	case board.KindUtility:
		count := m.countOwnedByKind(session, state.OwnerID, board.KindUtility)
		return board.UtilityRentMultiplier(count) * diceTotal
	}

	if state.Hotels > 0 {
		return square.Rent[5]
	}
	if state.Houses > 0 {
		return square.Rent[state.Houses]
	}
	// 未开发的垄断地产租金翻倍
	if m.hasMonopoly(session, state.OwnerID, square.Group) {
		return square.Rent[0] * 2
	}
	return square.Rent[0]
}

// countOwnedByKind 统计玩家持有的指定类型格子数，调用方需持有会话锁
func (m *Manager) countOwnedByKind(session *Session, ownerID string, kind board.SquareKind) int {
	count := 0
	for pos, state := range session.Properties {
		if state.OwnerID == ownerID && board.Get(pos).Kind == kind {
			count++
		}
	}
	return count
}

// hasMonopoly 判断玩家是否垄断了整个颜色组，调用方需持有会话锁
func (m *Manager) hasMonopoly(session *Session, playerID string, group board.ColorGroup) bool {
	members := board.GroupMembers(group)
	if len(members) == 0 {
		return false
	}
	for _, pos := range members {
		state, owned := session.Properties[pos]
		if !owned || state.OwnerID != playerID {
			return false
		}
	}
	return true
}

// checkAssetAction 校验资产操作的公共前置条件，调用方需持有会话锁
func (m *Manager) checkAssetAction(session *Session, playerID string) (*Player, error) {
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
	return player, nil
}

// BuyProperty 购买当前所在格的地产
func (m *Manager) BuyProperty(gameID, playerID string, position int) (*BuyResult, error) {
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

	if position < 0 || position >= board.Size {
		return nil, errors.Newf(errors.ErrInvalidParam, "位置: %d", position)
	}
	square := board.Get(position)
	if !square.IsOwnable() {
		return nil, errors.New(errors.ErrInvalidState, square.Name+" 不可购买")
	}
	if player.Position != position {
		return nil, errors.New(errors.ErrInvalidState, "只能购买当前所在格的地产")
	}
	if _, owned := session.Properties[position]; owned {
		return nil, errors.New(errors.ErrPropertyOwned, square.Name)
	}
	if player.Money < square.Price {
		return nil, errors.Newf(errors.ErrInsufficientFunds, "需要 %d，现金 %d", square.Price, player.Money)
	}

	player.Money -= square.Price
	player.Properties = append(player.Properties, position)
	session.Properties[position] = &PropertyState{OwnerID: playerID}

	m.appendLog(session, playerID, "buy",
		fmt.Sprintf("%s 以%d元购买了 %s", player.Username, square.Price, square.Name))

	m.logger.Debug("购买地产",
		zap.String("game_id", session.ID),
		zap.String("player_id", playerID),
		zap.Int("position", position),
		zap.Int("price", square.Price))

	m.mirror.GameUpdated(session)

	return &BuyResult{Position: position, SquareName: square.Name, AmountPaid: square.Price}, nil
}

// MortgageProperty 抵押地产换取现金
func (m *Manager) MortgageProperty(gameID, playerID string, position int) (*MortgageResult, error) {
	session, err := m.session(gameID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	player, err := m.checkAssetAction(session, playerID)
	if err != nil {
		return nil, err
	}

	square := board.Get(position)
	state, err := m.ownedState(session, playerID, position)
	if err != nil {
		return nil, err
	}
	if state.Mortgaged {
		return nil, errors.New(errors.ErrAlreadyMortgaged, square.Name)
	}
	if state.Houses > 0 || state.Hotels > 0 {
		return nil, errors.New(errors.ErrPropertyDeveloped, square.Name)
	}

	player.Money += square.Mortgage
	state.Mortgaged = true

	m.appendLog(session, playerID, "mortgage",
		fmt.Sprintf("%s 抵押了 %s，获得%d元", player.Username, square.Name, square.Mortgage))

	m.mirror.GameUpdated(session)

	return &MortgageResult{Position: position, Amount: square.Mortgage}, nil
}

// UnmortgageProperty 赎回抵押的地产，费用为抵押价的110%（向下取整）
func (m *Manager) UnmortgageProperty(gameID, playerID string, position int) (*MortgageResult, error) {
	session, err := m.session(gameID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	player, err := m.checkAssetAction(session, playerID)
	if err != nil {
		return nil, err
	}

	square := board.Get(position)
	state, err := m.ownedState(session, playerID, position)
	if err != nil {
		return nil, err
	}
	if !state.Mortgaged {
		return nil, errors.New(errors.ErrNotMortgaged, square.Name)
	}

	cost := square.Mortgage * 110 / 100
	if player.Money < cost {
		return nil, errors.Newf(errors.ErrInsufficientFunds, "需要 %d，现金 %d", cost, player.Money)
	}

	player.Money -= cost
	state.Mortgaged = false

	m.appendLog(session, playerID, "unmortgage",
		fmt.Sprintf("%s 以%d元赎回了 %s", player.Username, cost, square.Name))

	m.mirror.GameUpdated(session)

	return &MortgageResult{Position: position, Amount: cost}, nil
}

// ownedState 获取玩家拥有的地产状态，调用方需持有会话锁
func (m *Manager) ownedState(session *Session, playerID string, position int) (*PropertyState, error) {
	if position < 0 || position >= board.Size {
		return nil, errors.Newf(errors.ErrInvalidParam, "位置: %d", position)
	}
	state, owned := session.Properties[position]
	if !owned || state.OwnerID != playerID {
		return nil, errors.New(errors.ErrNotOwner, board.Get(position).Name)
	}
	return state, nil
}

// Build 在地产上建造一栋房屋，满4栋后升级为酒店。
// 要求垄断整个颜色组、组内无抵押、均衡建造且银行存量充足。
func (m *Manager) Build(gameID, playerID string, position int) (*BuildResult, error) {
	session, err := m.session(gameID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	player, err := m.checkAssetAction(session, playerID)
	if err != nil {
		return nil, err
	}

	square := board.Get(position)
	if !square.IsBuildable() {
		return nil, errors.New(errors.ErrNotBuildable, square.Name)
	}

	state, err := m.ownedState(session, playerID, position)
	if err != nil {
		return nil, err
	}
	if state.Mortgaged {
		return nil, errors.New(errors.ErrAlreadyMortgaged, square.Name)
	}
	if state.Hotels > 0 {
		return nil, errors.New(errors.ErrInvalidState, square.Name+" 已建有酒店")
	}
	if !m.hasMonopoly(session, playerID, square.Group) {
		return nil, errors.New(errors.ErrNoMonopoly, string(square.Group))
	}

	// 组内任意地产被抵押时不能建造
	members := board.GroupMembers(square.Group)
	for _, pos := range members {
		if session.Properties[pos].Mortgaged {
			return nil, errors.New(errors.ErrAlreadyMortgaged, board.Get(pos).Name)
		}
	}

	// 均衡建造：本格建筑等级不能超过组内最低等级
	minLevel := buildLevel(session.Properties[members[0]])
	for _, pos := range members[1:] {
		if lv := buildLevel(session.Properties[pos]); lv < minLevel {
			minLevel = lv
		}
	}
	if buildLevel(state) > minLevel {
		return nil, errors.New(errors.ErrUnevenBuild)
	}

	buildHotel := state.Houses == 4

	if buildHotel {
		if session.HotelsRemaining < 1 {
			return nil, errors.New(errors.ErrBankSupply, "酒店已售罄")
		}
	} else {
		if session.HousesRemaining < 1 {
			return nil, errors.New(errors.ErrBankSupply, "房屋已售罄")
		}
	}

	cost := square.HousePrice
	if player.Money < cost {
		return nil, errors.Newf(errors.ErrInsufficientFunds, "需要 %d，现金 %d", cost, player.Money)
	}

	player.Money -= cost
	if buildHotel {
		// 酒店替换4栋房屋，房屋归还银行
		state.Houses = 0
		state.Hotels = 1
		session.HotelsRemaining--
		session.HousesRemaining += 4

		m.appendLog(session, playerID, "build",
			fmt.Sprintf("%s 在 %s 建造了酒店", player.Username, square.Name))
	} else {
		state.Houses++
		session.HousesRemaining--

		m.appendLog(session, playerID, "build",
			fmt.Sprintf("%s 在 %s 建造了第%d栋房屋", player.Username, square.Name, state.Houses))
	}

	m.mirror.GameUpdated(session)

	return &BuildResult{
		Position:        position,
		Houses:          state.Houses,
		Hotels:          state.Hotels,
		AmountPaid:      cost,
		HousesRemaining: session.HousesRemaining,
		HotelsRemaining: session.HotelsRemaining,
		BuiltHotel:      buildHotel,
	}, nil
}

// buildLevel 建筑等级，酒店计为5
func buildLevel(state *PropertyState) int {
	if state.Hotels > 0 {
		return 5
	}
	return state.Houses
}
