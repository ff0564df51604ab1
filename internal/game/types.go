package game

import (
	"sync"
	"time"

	"github.com/wfunc/monopoly-game/internal/game/board"
)

// Status 游戏会话状态
type Status string

const (
	StatusWaiting  Status = "waiting"  // 等待玩家加入
	StatusActive   Status = "active"   // 进行中
	StatusFinished Status = "finished" // 已结束
)

// playerColors 玩家颜色按加入顺序分配
var playerColors = []string{"red", "blue", "green", "yellow", "orange", "purple"}

// Player 玩家状态
type Player struct {
	ID                 string `json:"id"`
	Username           string `json:"username"`
	Color              string `json:"color"`
	Position           int    `json:"position"`
	Money              int    `json:"money"`
	InJail             bool   `json:"is_in_jail"`
	JailTurns          int    `json:"jail_turns"`
	ConsecutiveDoubles int    `json:"consecutive_doubles"`
	HasGetOutCard      bool   `json:"has_get_out_card"`
	Bankrupt           bool   `json:"is_bankrupt"`
	Properties         []int  `json:"properties"`
}

// PropertyState 地产的动态状态，key为格子位置
type PropertyState struct {
	OwnerID   string `json:"owner_id"`
	Houses    int    `json:"houses"`
	Hotels    int    `json:"hotels"`
	Mortgaged bool   `json:"mortgaged"`
}

// LogEntry 游戏日志条目
type LogEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	PlayerID   string    `json:"player_id,omitempty"`
	ActionType string    `json:"action_type"`
	Message    string    `json:"message"`
}

// Session 单局游戏，内存中的权威状态
type Session struct {
	mu sync.Mutex

	ID              string
	Code            string
	Creator         string
	Status          Status
	MaxPlayers      int
	CurrentIndex    int
	TurnOrder       []string
	Players         []*Player
	Properties      map[int]*PropertyState
	HousesRemaining int
	HotelsRemaining int
	Log             []LogEntry
	WinnerID        string
	CreatedAt       time.Time
	StartedAt       time.Time
	FinishedAt      time.Time
}

// player 按ID查找玩家，调用方需持有锁
func (s *Session) player(playerID string) *Player {
	for _, p := range s.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// isPlayerTurn 判断是否轮到该玩家，调用方需持有锁
func (s *Session) isPlayerTurn(playerID string) bool {
	if len(s.TurnOrder) == 0 {
		return false
	}
	return s.TurnOrder[s.CurrentIndex] == playerID
}

// activePlayers 未破产的玩家，调用方需持有锁
func (s *Session) activePlayers() []*Player {
	var active []*Player
	for _, p := range s.Players {
		if !p.Bankrupt {
			active = append(active, p)
		}
	}
	return active
}

// CreateResult 创建游戏结果
type CreateResult struct {
	GameID string `json:"game_id"`
	Code   string `json:"game_code"`
}

// JoinResult 加入游戏结果
type JoinResult struct {
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
	Color    string `json:"color"`
}

// StartResult 开始游戏结果
type StartResult struct {
	CurrentPlayerID string   `json:"current_player_id"`
	TurnOrder       []string `json:"turn_order"`
}

// LandingResult 落地结算结果
type LandingResult struct {
	Action     string        `json:"action"` // can_buy, own_property, mortgaged_property, paid_rent, tax, card, sent_to_jail, none...
	Square     *board.Square `json:"square,omitempty"`
	Price      int           `json:"price,omitempty"`
	RentPaid   int           `json:"rent_paid,omitempty"`
	ToPlayer   string        `json:"to_player,omitempty"`
	TaxPaid    int           `json:"tax_paid,omitempty"`
	Card       *board.Card   `json:"card,omitempty"`
	SentToJail bool          `json:"sent_to_jail,omitempty"`
	Bankrupted bool          `json:"bankrupted,omitempty"`
	Shortfall  int           `json:"shortfall,omitempty"`
}

// RollResult 掷骰结果
type RollResult struct {
	Dice1         int            `json:"dice1"`
	Dice2         int            `json:"dice2"`
	Total         int            `json:"total"`
	IsDouble      bool           `json:"is_double"`
	OldPosition   int            `json:"old_position"`
	NewPosition   int            `json:"new_position"`
	PassedStart   bool           `json:"passed_start"`
	SentToJail    bool           `json:"sent_to_jail,omitempty"`
	FreedFromJail bool           `json:"freed_from_jail,omitempty"`
	UsedJailCard  bool           `json:"used_jail_card,omitempty"`
	ForcedRelease bool           `json:"forced_release,omitempty"`
	StillInJail   bool           `json:"still_in_jail,omitempty"`
	AttemptsLeft  int            `json:"attempts_left,omitempty"`
	AmountPaid    int            `json:"amount_paid,omitempty"`
	Landing       *LandingResult `json:"landing,omitempty"`
	ExtraTurn     bool           `json:"extra_turn"`
	Bankrupted    bool           `json:"bankrupted,omitempty"`
}

// BuyResult 购买结果
type BuyResult struct {
	Position   int    `json:"position"`
	SquareName string `json:"square_name"`
	AmountPaid int    `json:"amount_paid"`
}

// MortgageResult 抵押/赎回结果
type MortgageResult struct {
	Position int `json:"position"`
	Amount   int `json:"amount"`
}

// BuildResult 建造结果
type BuildResult struct {
	Position        int  `json:"position"`
	Houses          int  `json:"houses"`
	Hotels          int  `json:"hotels"`
	AmountPaid      int  `json:"amount_paid"`
	HousesRemaining int  `json:"houses_remaining"`
	HotelsRemaining int  `json:"hotels_remaining"`
	BuiltHotel      bool `json:"built_hotel"`
}

// EndTurnResult 结束回合结果
type EndTurnResult struct {
	NextPlayerID       string `json:"next_player_id"`
	NextPlayerUsername string `json:"next_player_username"`
}

// GameView 游戏状态视图
type GameView struct {
	ID              string                 `json:"id"`
	Code            string                 `json:"code"`
	Status          Status                 `json:"status"`
	MaxPlayers      int                    `json:"max_players"`
	CurrentIndex    int                    `json:"current_player_index"`
	CurrentPlayerID string                 `json:"current_player_id,omitempty"`
	Players         []Player               `json:"players"`
	Properties      map[int]PropertyState  `json:"properties"`
	HousesRemaining int                    `json:"houses_remaining"`
	HotelsRemaining int                    `json:"hotels_remaining"`
	WinnerID        string                 `json:"winner_id,omitempty"`
	Log             []LogEntry             `json:"game_log"`
}

// CreateGameRequest 创建游戏请求
type CreateGameRequest struct {
	CreatorUsername string `json:"creator_username" binding:"required"`
	MaxPlayers      int    `json:"max_players" binding:"omitempty,min=2,max=6"`
}

// JoinGameRequest 加入游戏请求
type JoinGameRequest struct {
	Username string `json:"username" binding:"required"`
	GameCode string `json:"game_code" binding:"required"`
}

// PlayerActionRequest 玩家动作请求
type PlayerActionRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
}

// PropertyActionRequest 地产动作请求
type PropertyActionRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
	Position int    `json:"position" binding:"min=0,max=39"`
}
