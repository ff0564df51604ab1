package repository

import (
	"context"

	"github.com/wfunc/monopoly-game/internal/models"
	"gorm.io/gorm"
)

// ActionLogRepository 动作日志仓储接口
type ActionLogRepository interface {
	BaseRepository
	Create(ctx context.Context, log *models.GameActionLog) error
	BatchCreate(ctx context.Context, logs []*models.GameActionLog) error
	FindByGameID(ctx context.Context, gameID string, limit int) ([]*models.GameActionLog, error)
	FindByPlayerID(ctx context.Context, gameID, playerID string, p *Pagination) ([]*models.GameActionLog, error)
	CountByGameID(ctx context.Context, gameID string) (int64, error)
	TrimByGameID(ctx context.Context, gameID string, keep int) error
}

// actionLogRepo 动作日志仓储实现
type actionLogRepo struct {
	*BaseRepo
}

// NewActionLogRepository 创建动作日志仓储
func NewActionLogRepository(db *gorm.DB) ActionLogRepository {
	return &actionLogRepo{
		BaseRepo: NewBaseRepo(db),
	}
}

// Create 创建动作日志
func (r *actionLogRepo) Create(ctx context.Context, log *models.GameActionLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// BatchCreate 批量创建动作日志
func (r *actionLogRepo) BatchCreate(ctx context.Context, logs []*models.GameActionLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(logs, 100).Error
}

// FindByGameID 查找游戏的最近动作日志
func (r *actionLogRepo) FindByGameID(ctx context.Context, gameID string, limit int) ([]*models.GameActionLog, error) {
	var logs []*models.GameActionLog

	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("id desc").
		Limit(limit).
		Find(&logs).Error

	return logs, err
}

// FindByPlayerID 查找玩家的动作日志
func (r *actionLogRepo) FindByPlayerID(ctx context.Context, gameID, playerID string, p *Pagination) ([]*models.GameActionLog, error) {
	var logs []*models.GameActionLog

	// 查询总数
	r.db.WithContext(ctx).
		Model(&models.GameActionLog{}).
		Where("game_id = ? AND player_id = ?", gameID, playerID).
		Count(&p.Total)

	// 查询数据
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND player_id = ?", gameID, playerID).
		Order("id desc").
		Scopes(Paginate(p)).
		Find(&logs).Error

	return logs, err
}

// CountByGameID 统计游戏的日志条数
func (r *actionLogRepo) CountByGameID(ctx context.Context, gameID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.GameActionLog{}).
		Where("game_id = ?", gameID).
		Count(&count).Error
	return count, err
}

// TrimByGameID 裁剪游戏日志，只保留最近的keep条
func (r *actionLogRepo) TrimByGameID(ctx context.Context, gameID string, keep int) error {
	if keep <= 0 {
		return nil
	}

	// 找到保留窗口内最小的ID，删除更早的记录
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.GameActionLog{}).
		Where("game_id = ?", gameID).
		Order("id desc").
		Limit(1).
		Offset(keep - 1).
		Pluck("id", &ids).Error
	if err != nil || len(ids) == 0 {
		return err
	}

	return r.db.WithContext(ctx).
		Where("game_id = ? AND id < ?", gameID, ids[0]).
		Delete(&models.GameActionLog{}).Error
}

// WithTx 使用事务
func (r *actionLogRepo) WithTx(tx *gorm.DB) BaseRepository {
	return &actionLogRepo{
		BaseRepo: &BaseRepo{db: tx},
	}
}
