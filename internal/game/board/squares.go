package board

// squares 40格棋盘目录，进程内只读
var squares = [Size]Square{
	{Index: 0, Name: "起点", Kind: KindStart, Group: GroupSpecial},
	{Index: 1, Name: "台北路", Kind: KindProperty, Group: GroupBrown, Price: 60, Rent: []int{2, 10, 30, 90, 160, 250}, Mortgage: 30, HousePrice: 50},
	{Index: 2, Name: "公共基金", Kind: KindCommunityChest, Group: GroupSpecial},
	{Index: 3, Name: "重庆路", Kind: KindProperty, Group: GroupBrown, Price: 60, Rent: []int{4, 20, 60, 180, 320, 450}, Mortgage: 30, HousePrice: 50},
	{Index: 4, Name: "所得税", Kind: KindTax, Group: GroupSpecial, TaxAmount: 200},
	{Index: 5, Name: "东站", Kind: KindRailroad, Group: GroupRailroad, Price: 200, Rent: []int{25, 50, 100, 200}, Mortgage: 100},
	{Index: 6, Name: "天津路", Kind: KindProperty, Group: GroupLightBlue, Price: 100, Rent: []int{6, 30, 90, 270, 400, 550}, Mortgage: 50, HousePrice: 50},
	{Index: 7, Name: "机会", Kind: KindChance, Group: GroupSpecial},
	{Index: 8, Name: "广州路", Kind: KindProperty, Group: GroupLightBlue, Price: 100, Rent: []int{6, 30, 90, 270, 400, 550}, Mortgage: 50, HousePrice: 50},
	{Index: 9, Name: "南京路", Kind: KindProperty, Group: GroupLightBlue, Price: 120, Rent: []int{8, 40, 100, 300, 450, 600}, Mortgage: 60, HousePrice: 50},
	{Index: 10, Name: "监狱", Kind: KindJail, Group: GroupSpecial},
	{Index: 11, Name: "成都路", Kind: KindProperty, Group: GroupPink, Price: 140, Rent: []int{10, 50, 150, 450, 625, 750}, Mortgage: 70, HousePrice: 100},
	{Index: 12, Name: "电力公司", Kind: KindUtility, Group: GroupUtility, Price: 150, Mortgage: 75},
	{Index: 13, Name: "杭州路", Kind: KindProperty, Group: GroupPink, Price: 140, Rent: []int{10, 50, 150, 450, 625, 750}, Mortgage: 70, HousePrice: 100},
	{Index: 14, Name: "苏州路", Kind: KindProperty, Group: GroupPink, Price: 160, Rent: []int{12, 60, 180, 500, 700, 900}, Mortgage: 80, HousePrice: 100},
	{Index: 15, Name: "南站", Kind: KindRailroad, Group: GroupRailroad, Price: 200, Rent: []int{25, 50, 100, 200}, Mortgage: 100},
	{Index: 16, Name: "武汉路", Kind: KindProperty, Group: GroupOrange, Price: 180, Rent: []int{14, 70, 200, 550, 750, 950}, Mortgage: 90, HousePrice: 100},
	{Index: 17, Name: "公共基金", Kind: KindCommunityChest, Group: GroupSpecial},
	{Index: 18, Name: "长沙路", Kind: KindProperty, Group: GroupOrange, Price: 180, Rent: []int{14, 70, 200, 550, 750, 950}, Mortgage: 90, HousePrice: 100},
	{Index: 19, Name: "西安路", Kind: KindProperty, Group: GroupOrange, Price: 200, Rent: []int{16, 80, 220, 600, 800, 1000}, Mortgage: 100, HousePrice: 100},
	{Index: 20, Name: "免费停车", Kind: KindFreeParking, Group: GroupSpecial},
	{Index: 21, Name: "青岛路", Kind: KindProperty, Group: GroupRed, Price: 220, Rent: []int{18, 90, 250, 700, 875, 1050}, Mortgage: 110, HousePrice: 150},
	{Index: 22, Name: "机会", Kind: KindChance, Group: GroupSpecial},
	{Index: 23, Name: "大连路", Kind: KindProperty, Group: GroupRed, Price: 220, Rent: []int{18, 90, 250, 700, 875, 1050}, Mortgage: 110, HousePrice: 150},
	{Index: 24, Name: "厦门路", Kind: KindProperty, Group: GroupRed, Price: 240, Rent: []int{20, 100, 300, 750, 925, 1100}, Mortgage: 120, HousePrice: 150},
	{Index: 25, Name: "西站", Kind: KindRailroad, Group: GroupRailroad, Price: 200, Rent: []int{25, 50, 100, 200}, Mortgage: 100},
	{Index: 26, Name: "昆明路", Kind: KindProperty, Group: GroupYellow, Price: 260, Rent: []int{22, 110, 330, 800, 975, 1150}, Mortgage: 130, HousePrice: 150},
	{Index: 27, Name: "桂林路", Kind: KindProperty, Group: GroupYellow, Price: 260, Rent: []int{22, 110, 330, 800, 975, 1150}, Mortgage: 130, HousePrice: 150},
	{Index: 28, Name: "自来水厂", Kind: KindUtility, Group: GroupUtility, Price: 150, Mortgage: 75},
	{Index: 29, Name: "三亚路", Kind: KindProperty, Group: GroupYellow, Price: 280, Rent: []int{24, 120, 360, 850, 1025, 1200}, Mortgage: 140, HousePrice: 150},
	{Index: 30, Name: "进监狱", Kind: KindGoToJail, Group: GroupSpecial},
	{Index: 31, Name: "深圳路", Kind: KindProperty, Group: GroupGreen, Price: 300, Rent: []int{26, 130, 390, 900, 1100, 1275}, Mortgage: 150, HousePrice: 200},
	{Index: 32, Name: "珠海路", Kind: KindProperty, Group: GroupGreen, Price: 300, Rent: []int{26, 130, 390, 900, 1100, 1275}, Mortgage: 150, HousePrice: 200},
	{Index: 33, Name: "公共基金", Kind: KindCommunityChest, Group: GroupSpecial},
	{Index: 34, Name: "天河路", Kind: KindProperty, Group: GroupGreen, Price: 320, Rent: []int{28, 150, 450, 1000, 1200, 1400}, Mortgage: 160, HousePrice: 200},
	{Index: 35, Name: "北站", Kind: KindRailroad, Group: GroupRailroad, Price: 200, Rent: []int{25, 50, 100, 200}, Mortgage: 100},
	{Index: 36, Name: "机会", Kind: KindChance, Group: GroupSpecial},
	{Index: 37, Name: "北京路", Kind: KindProperty, Group: GroupBlue, Price: 350, Rent: []int{35, 175, 500, 1100, 1300, 1500}, Mortgage: 175, HousePrice: 200},
	{Index: 38, Name: "奢侈税", Kind: KindTax, Group: GroupSpecial, TaxAmount: 100},
	{Index: 39, Name: "上海滩", Kind: KindProperty, Group: GroupBlue, Price: 400, Rent: []int{50, 200, 600, 1400, 1700, 2000}, Mortgage: 200, HousePrice: 200},
}
