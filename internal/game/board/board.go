package board

// SquareKind 格子类型
type SquareKind string

const (
	KindStart          SquareKind = "start"           // 起点
	KindProperty       SquareKind = "property"        // 普通地产
	KindRailroad       SquareKind = "railroad"        // 车站
	KindUtility        SquareKind = "utility"         // 公用事业
	KindTax            SquareKind = "tax"             // 税
	KindChance         SquareKind = "chance"          // 机会
	KindCommunityChest SquareKind = "community_chest" // 公共基金
	KindJail           SquareKind = "jail"            // 监狱（探视）
	KindFreeParking    SquareKind = "free_parking"    // 免费停车
	KindGoToJail       SquareKind = "go_to_jail"      // 进监狱
)

// ColorGroup 颜色组
type ColorGroup string

const (
	GroupBrown     ColorGroup = "brown"
	GroupLightBlue ColorGroup = "light_blue"
	GroupPink      ColorGroup = "pink"
	GroupOrange    ColorGroup = "orange"
	GroupRed       ColorGroup = "red"
	GroupYellow    ColorGroup = "yellow"
	GroupGreen     ColorGroup = "green"
	GroupBlue      ColorGroup = "blue"
	GroupRailroad  ColorGroup = "railroad"
	GroupUtility   ColorGroup = "utility"
	GroupSpecial   ColorGroup = "special"
)

const (
	// Size 棋盘格子数
	Size = 40
	// JailPosition 监狱格位置
	JailPosition = 10
	// StartPosition 起点位置
	StartPosition = 0
	// TotalHouses 银行房屋总数
	TotalHouses = 32
	// TotalHotels 银行酒店总数
	TotalHotels = 12
)

// Square 棋盘格子（只读目录项）
type Square struct {
	Index      int        `json:"id"`
	Name       string     `json:"name"`
	Kind       SquareKind `json:"type"`
	Group      ColorGroup `json:"group"`
	Price      int        `json:"price,omitempty"`
	Rent       []int      `json:"rent,omitempty"`
	Mortgage   int        `json:"mortgage,omitempty"`
	HousePrice int        `json:"house_price,omitempty"`
	TaxAmount  int        `json:"amount,omitempty"`
}

// IsOwnable 格子是否可被购买
func (s Square) IsOwnable() bool {
	switch s.Kind {
	case KindProperty, KindRailroad, KindUtility:
		return true
	}
	return false
}

// IsBuildable 格子是否可建造房屋
func (s Square) IsBuildable() bool {
	return s.Kind == KindProperty
}

// Get 获取指定位置的格子
func Get(index int) Square {
	return squares[index]
}

// Squares 返回完整棋盘目录
func Squares() []Square {
	out := make([]Square, Size)
	copy(out, squares[:])
	return out
}

// GroupMembers 返回颜色组内所有地产格的位置
func GroupMembers(group ColorGroup) []int {
	var members []int
	for _, sq := range squares {
		if sq.Group == group && sq.Kind == KindProperty {
			members = append(members, sq.Index)
		}
	}
	return members
}

// RailroadPositions 返回所有车站位置
func RailroadPositions() []int {
	var positions []int
	for _, sq := range squares {
		if sq.Kind == KindRailroad {
			positions = append(positions, sq.Index)
		}
	}
	return positions
}

// UtilityPositions 返回所有公用事业位置
func UtilityPositions() []int {
	var positions []int
	for _, sq := range squares {
		if sq.Kind == KindUtility {
			positions = append(positions, sq.Index)
		}
	}
	return positions
}

// railroadRents 车站租金按持有数量递增
var railroadRents = []int{25, 50, 100, 200}

// RailroadRent 车站租金，count为所有者持有的车站数
func RailroadRent(count int) int {
	if count <= 0 {
		return 0
	}
	if count > len(railroadRents) {
		count = len(railroadRents)
	}
	return railroadRents[count-1]
}

// UtilityRentMultiplier 公用事业租金倍数，count为所有者持有的公用事业数
func UtilityRentMultiplier(count int) int {
	if count >= 2 {
		return 10
	}
	if count == 1 {
		return 4
	}
	return 0
}
