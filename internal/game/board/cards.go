package board

// CardAction 卡片动作类型
type CardAction string

const (
	ActionMoveTo       CardAction = "move_to"              // 移动到指定格子
	ActionGoToJail     CardAction = "go_to_jail"           // 直接进监狱
	ActionPay          CardAction = "pay"                  // 付款给银行
	ActionReceive      CardAction = "receive"              // 从银行收款
	ActionRepair       CardAction = "repair"               // 按建筑数量付维修费
	ActionGetOutOfJail CardAction = "get_out_of_jail_card" // 获得出狱卡
)

// Card 机会/公共基金卡片
type Card struct {
	Text      string     `json:"text"`
	Action    CardAction `json:"action"`
	Target    int        `json:"target,omitempty"`     // move_to的目标格子
	Amount    int        `json:"amount,omitempty"`     // pay/receive的金额
	HouseCost int        `json:"house_cost,omitempty"` // repair每栋房屋费用
	HotelCost int        `json:"hotel_cost,omitempty"` // repair每座酒店费用
}

// chanceCards 机会卡牌堆
var chanceCards = []Card{
	{Text: "前进到起点，获得200元", Action: ActionMoveTo, Target: 0, Amount: 200},
	{Text: "直接进监狱，不经过起点", Action: ActionGoToJail},
	{Text: "超速罚款，支付15元", Action: ActionPay, Amount: 15},
	{Text: "获得50元", Action: ActionReceive, Amount: 50},
	{Text: "房屋维修：每栋房屋25元，每座酒店100元", Action: ActionRepair, HouseCost: 25, HotelCost: 100},
	{Text: "出狱许可卡", Action: ActionGetOutOfJail},
}

// communityChestCards 公共基金卡牌堆
var communityChestCards = []Card{
	{Text: "获得遗产100元", Action: ActionReceive, Amount: 100},
	{Text: "银行错误，获得200元", Action: ActionReceive, Amount: 200},
	{Text: "缴纳所得税200元", Action: ActionPay, Amount: 200},
	{Text: "获得股息20元", Action: ActionReceive, Amount: 20},
	{Text: "出狱许可卡", Action: ActionGetOutOfJail},
}

// ChanceCards 返回机会卡牌堆
func ChanceCards() []Card {
	out := make([]Card, len(chanceCards))
	copy(out, chanceCards)
	return out
}

// CommunityChestCards 返回公共基金卡牌堆
func CommunityChestCards() []Card {
	out := make([]Card, len(communityChestCards))
	copy(out, communityChestCards)
	return out
}
