package repository

import (
	"context"

	"github.com/wfunc/monopoly-game/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GameRecordRepository 游戏记录仓储接口
type GameRecordRepository interface {
	BaseRepository
	Create(ctx context.Context, record *models.GameRecord) error
	FindByGameID(ctx context.Context, gameID string) (*models.GameRecord, error)
	FindByCode(ctx context.Context, code string) (*models.GameRecord, error)
	FindByStatus(ctx context.Context, status string, p *Pagination) ([]*models.GameRecord, error)
	Update(ctx context.Context, record *models.GameRecord) error
	SavePlayer(ctx context.Context, player *models.PlayerRecord) error
	SaveOwnership(ctx context.Context, ownership *models.PropertyOwnership) error
	DeleteOwnershipByOwner(ctx context.Context, gameID, ownerID string) error
	CountActive(ctx context.Context) (int64, error)
}

// gameRecordRepo 游戏记录仓储实现
type gameRecordRepo struct {
	*BaseRepo
}

// NewGameRecordRepository 创建游戏记录仓储
func NewGameRecordRepository(db *gorm.DB) GameRecordRepository {
	return &gameRecordRepo{
		BaseRepo: NewBaseRepo(db),
	}
}

// Create 创建游戏记录
func (r *gameRecordRepo) Create(ctx context.Context, record *models.GameRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindByGameID 根据游戏ID查找
func (r *gameRecordRepo) FindByGameID(ctx context.Context, gameID string) (*models.GameRecord, error) {
	var record models.GameRecord
	err := r.db.WithContext(ctx).
		Preload("Players").
		Preload("Properties").
		Where("game_id = ?", gameID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByCode 根据加入码查找
func (r *gameRecordRepo) FindByCode(ctx context.Context, code string) (*models.GameRecord, error) {
	var record models.GameRecord
	err := r.db.WithContext(ctx).
		Preload("Players").
		Where("code = ?", code).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByStatus 根据状态查找
func (r *gameRecordRepo) FindByStatus(ctx context.Context, status string, p *Pagination) ([]*models.GameRecord, error) {
	var records []*models.GameRecord

	// 查询总数
	r.db.WithContext(ctx).
		Model(&models.GameRecord{}).
		Where("status = ?", status).
		Count(&p.Total)

	// 查询数据
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at desc").
		Scopes(Paginate(p)).
		Find(&records).Error

	return records, err
}

// Update 更新游戏记录
func (r *gameRecordRepo) Update(ctx context.Context, record *models.GameRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// SavePlayer 保存玩家记录（存在则更新）
func (r *gameRecordRepo) SavePlayer(ctx context.Context, player *models.PlayerRecord) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "player_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"position", "money", "is_in_jail", "jail_turns",
				"consecutive_doubles", "has_get_out_card", "is_bankrupt", "updated_at",
			}),
		}).
		Create(player).Error
}

// SaveOwnership 保存地产归属（存在则更新）
func (r *gameRecordRepo) SaveOwnership(ctx context.Context, ownership *models.PropertyOwnership) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "game_id"}, {Name: "square_index"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"owner_id", "houses", "hotels", "is_mortgaged", "mortgaged_at", "updated_at",
			}),
		}).
		Create(ownership).Error
}

// DeleteOwnershipByOwner 删除指定玩家的地产归属（破产时释放）
func (r *gameRecordRepo) DeleteOwnershipByOwner(ctx context.Context, gameID, ownerID string) error {
	return r.db.WithContext(ctx).
		Where("game_id = ? AND owner_id = ?", gameID, ownerID).
		Delete(&models.PropertyOwnership{}).Error
}

// CountActive 统计进行中的游戏数
func (r *gameRecordRepo) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.GameRecord{}).
		Where("status IN ?", []string{"waiting", "active"}).
		Count(&count).Error
	return count, err
}

// WithTx 使用事务
func (r *gameRecordRepo) WithTx(tx *gorm.DB) BaseRepository {
	return &gameRecordRepo{
		BaseRepo: &BaseRepo{db: tx},
	}
}
