package models

import (
	"time"

	"gorm.io/gorm"
)

// GameRecord 游戏会话记录表
type GameRecord struct {
	BaseModel
	GameID             string     `gorm:"uniqueIndex;size:64;not null" json:"game_id"`
	Code               string     `gorm:"uniqueIndex;size:16;not null" json:"code"`
	CreatorID          string     `gorm:"size:64;not null" json:"creator_id"`
	Status             string     `gorm:"size:20;default:'waiting';index" json:"status"` // waiting, active, finished
	CurrentPlayerIndex int        `gorm:"default:0" json:"current_player_index"`
	MaxPlayers         int        `gorm:"default:6" json:"max_players"`
	WinnerID           string     `gorm:"size:64" json:"winner_id,omitempty"`
	StartedAt          *time.Time `json:"started_at,omitempty"`
	FinishedAt         *time.Time `json:"finished_at,omitempty"`

	// 关联
	Players    []PlayerRecord        `gorm:"foreignKey:GameID;references:GameID" json:"players,omitempty"`
	Properties []PropertyOwnership   `gorm:"foreignKey:GameID;references:GameID" json:"properties,omitempty"`
}

// TableName 指定表名
func (GameRecord) TableName() string {
	return "game_records"
}

// PlayerRecord 玩家记录表
type PlayerRecord struct {
	BaseModel
	PlayerID           string `gorm:"uniqueIndex;size:64;not null" json:"player_id"`
	GameID             string `gorm:"size:64;not null;index" json:"game_id"`
	Username           string `gorm:"size:100;not null" json:"username"`
	Color              string `gorm:"size:20" json:"color"`
	Position           int    `gorm:"default:0" json:"position"`
	Money              int    `gorm:"default:1500" json:"money"`
	IsInJail           bool   `gorm:"default:false" json:"is_in_jail"`
	JailTurns          int    `gorm:"default:0" json:"jail_turns"`
	ConsecutiveDoubles int    `gorm:"default:0" json:"consecutive_doubles"`
	HasGetOutCard      bool   `gorm:"default:false" json:"has_get_out_card"`
	IsBankrupt         bool   `gorm:"default:false" json:"is_bankrupt"`
}

// TableName 指定表名
func (PlayerRecord) TableName() string {
	return "player_records"
}

// PropertyOwnership 地产归属表
type PropertyOwnership struct {
	BaseModel
	GameID       string     `gorm:"size:64;not null;index:idx_ownership_game_square,unique" json:"game_id"`
	SquareIndex  int        `gorm:"not null;index:idx_ownership_game_square,unique" json:"square_index"`
	OwnerID      string     `gorm:"size:64;index" json:"owner_id"`
	Houses       int        `gorm:"default:0" json:"houses"`
	Hotels       int        `gorm:"default:0" json:"hotels"`
	IsMortgaged  bool       `gorm:"default:false" json:"is_mortgaged"`
	MortgagedAt  *time.Time `json:"mortgaged_at,omitempty"`
}

// TableName 指定表名
func (PropertyOwnership) TableName() string {
	return "property_ownership"
}

// GameActionLog 游戏动作日志表
type GameActionLog struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	GameID     string    `gorm:"size:64;not null;index" json:"game_id"`
	PlayerID   string    `gorm:"size:64;index" json:"player_id"`
	ActionType string    `gorm:"size:50;not null;index" json:"action_type"` // roll, buy, rent, mortgage, card, jail, bankrupt...
	Message    string    `gorm:"type:text" json:"message"`
	Data       JSONMap   `gorm:"type:json" json:"data,omitempty"`
}

// TableName 指定表名
func (GameActionLog) TableName() string {
	return "game_action_logs"
}

// BeforeCreate 创建前的钩子
func (l *GameActionLog) BeforeCreate(tx *gorm.DB) error {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	return nil
}
