package game

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/wfunc/monopoly-game/internal/models"
	"github.com/wfunc/monopoly-game/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Mirror 持久化镜像。内存状态是权威，镜像写入尽力而为，
// 失败不会影响游戏动作。
type Mirror interface {
	GameCreated(session *Session)
	PlayerJoined(session *Session, player *Player)
	GameUpdated(session *Session)
	PlayerBankrupted(session *Session, player *Player)
	ActionLogged(gameID, playerID, actionType, message string)
}

// NopMirror 空镜像
type NopMirror struct{}

func (NopMirror) GameCreated(*Session)                     {}
func (NopMirror) PlayerJoined(*Session, *Player)           {}
func (NopMirror) GameUpdated(*Session)                     {}
func (NopMirror) PlayerBankrupted(*Session, *Player)       {}
func (NopMirror) ActionLogged(string, string, string, string) {}

// mirrorTimeout 单次镜像写入的超时
const mirrorTimeout = 3 * time.Second

// trimInterval 每写入多少条日志触发一次裁剪
const trimInterval = 50

// DatabaseMirror 数据库镜像，把会话快照和动作日志写入gorm仓储
type DatabaseMirror struct {
	gameRepo     repository.GameRecordRepository
	logRepo      repository.ActionLogRepository
	logger       *zap.Logger
	logRetention int
	logCount     atomic.Int64
}

// NewDatabaseMirror 创建数据库镜像
func NewDatabaseMirror(db *gorm.DB, logger *zap.Logger, logRetention int) *DatabaseMirror {
	return &DatabaseMirror{
		gameRepo:     repository.NewGameRecordRepository(db),
		logRepo:      repository.NewActionLogRepository(db),
		logger:       logger,
		logRetention: logRetention,
	}
}

// GameCreated 写入新游戏记录
func (dm *DatabaseMirror) GameCreated(session *Session) {
	ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
	defer cancel()

	record := &models.GameRecord{
		GameID:     session.ID,
		Code:       session.Code,
		CreatorID:  session.Creator,
		Status:     string(session.Status),
		MaxPlayers: session.MaxPlayers,
	}
	if err := dm.gameRepo.Create(ctx, record); err != nil {
		dm.logger.Warn("镜像写入游戏记录失败",
			zap.String("game_id", session.ID),
			zap.Error(err))
	}
}

// PlayerJoined 写入玩家记录
func (dm *DatabaseMirror) PlayerJoined(session *Session, player *Player) {
	ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
	defer cancel()

	if err := dm.gameRepo.SavePlayer(ctx, dm.playerRecord(session, player)); err != nil {
		dm.logger.Warn("镜像写入玩家记录失败",
			zap.String("game_id", session.ID),
			zap.String("player_id", player.ID),
			zap.Error(err))
	}
}

// GameUpdated 同步游戏记录、玩家与地产归属快照
func (dm *DatabaseMirror) GameUpdated(session *Session) {
	ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
	defer cancel()

	record, err := dm.gameRepo.FindByGameID(ctx, session.ID)
	if err != nil {
		dm.logger.Warn("镜像读取游戏记录失败",
			zap.String("game_id", session.ID),
			zap.Error(err))
		return
	}

	record.Status = string(session.Status)
	record.CurrentPlayerIndex = session.CurrentIndex
	record.WinnerID = session.WinnerID
	if !session.StartedAt.IsZero() && record.StartedAt == nil {
		t := session.StartedAt
		record.StartedAt = &t
	}
	if !session.FinishedAt.IsZero() && record.FinishedAt == nil {
		t := session.FinishedAt
		record.FinishedAt = &t
	}
	record.Players = nil
	record.Properties = nil

	if err := dm.gameRepo.Update(ctx, record); err != nil {
		dm.logger.Warn("镜像更新游戏记录失败",
			zap.String("game_id", session.ID),
			zap.Error(err))
	}

	for _, player := range session.Players {
		if err := dm.gameRepo.SavePlayer(ctx, dm.playerRecord(session, player)); err != nil {
			dm.logger.Warn("镜像更新玩家记录失败",
				zap.String("game_id", session.ID),
				zap.String("player_id", player.ID),
				zap.Error(err))
		}
	}

	for pos, state := range session.Properties {
		ownership := &models.PropertyOwnership{
			GameID:      session.ID,
			SquareIndex: pos,
			OwnerID:     state.OwnerID,
			Houses:      state.Houses,
			Hotels:      state.Hotels,
			IsMortgaged: state.Mortgaged,
		}
		if err := dm.gameRepo.SaveOwnership(ctx, ownership); err != nil {
			dm.logger.Warn("镜像更新地产归属失败",
				zap.String("game_id", session.ID),
				zap.Int("square_index", pos),
				zap.Error(err))
		}
	}
}

// PlayerBankrupted 清除破产玩家的地产归属并更新玩家记录
func (dm *DatabaseMirror) PlayerBankrupted(session *Session, player *Player) {
	ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
	defer cancel()

	if err := dm.gameRepo.DeleteOwnershipByOwner(ctx, session.ID, player.ID); err != nil {
		dm.logger.Warn("镜像清除地产归属失败",
			zap.String("game_id", session.ID),
			zap.String("player_id", player.ID),
			zap.Error(err))
	}

	if err := dm.gameRepo.SavePlayer(ctx, dm.playerRecord(session, player)); err != nil {
		dm.logger.Warn("镜像更新玩家记录失败",
			zap.String("game_id", session.ID),
			zap.String("player_id", player.ID),
			zap.Error(err))
	}
}

// ActionLogged 写入动作日志，周期性裁剪到保留上限
func (dm *DatabaseMirror) ActionLogged(gameID, playerID, actionType, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
	defer cancel()

	log := &models.GameActionLog{
		GameID:     gameID,
		PlayerID:   playerID,
		ActionType: actionType,
		Message:    message,
	}
	if err := dm.logRepo.Create(ctx, log); err != nil {
		dm.logger.Warn("镜像写入动作日志失败",
			zap.String("game_id", gameID),
			zap.Error(err))
		return
	}

	if dm.logRetention > 0 && dm.logCount.Add(1)%trimInterval == 0 {
		if err := dm.logRepo.TrimByGameID(ctx, gameID, dm.logRetention); err != nil {
			dm.logger.Warn("镜像裁剪动作日志失败",
				zap.String("game_id", gameID),
				zap.Error(err))
		}
	}
}

// playerRecord 构建玩家记录快照
func (dm *DatabaseMirror) playerRecord(session *Session, player *Player) *models.PlayerRecord {
	return &models.PlayerRecord{
		PlayerID:           player.ID,
		GameID:             session.ID,
		Username:           player.Username,
		Color:              player.Color,
		Position:           player.Position,
		Money:              player.Money,
		IsInJail:           player.InJail,
		JailTurns:          player.JailTurns,
		ConsecutiveDoubles: player.ConsecutiveDoubles,
		HasGetOutCard:      player.HasGetOutCard,
		IsBankrupt:         player.Bankrupt,
	}
}
