package database

import (
	"fmt"

	"github.com/wfunc/monopoly-game/internal/logger"
	"github.com/wfunc/monopoly-game/internal/models"
	"go.uber.org/zap"
)

// AutoMigrate 自动迁移数据库表结构
func AutoMigrate() error {
	if DB == nil {
		return fmt.Errorf("数据库未初始化")
	}

	// 清理过期锁文件
	CleanupStaleLocks()

	// 获取迁移锁，避免多个进程同时迁移
	dbPath := getDBPath()
	if dbPath != "" {
		lockFile, err := acquireMigrationLock(dbPath)
		if err != nil {
			logger.Error("无法获取迁移锁", zap.Error(err))
			return fmt.Errorf("获取迁移锁失败: %w", err)
		}
		defer releaseMigrationLock(lockFile)
	}

	// 定义需要迁移的模型
	migrationModels := []interface{}{
		// 游戏会话相关
		&models.GameRecord{},
		&models.PlayerRecord{},

		// 地产相关
		&models.PropertyOwnership{},

		// 日志相关
		&models.GameActionLog{},
	}

	// 执行迁移
	logger.Info("开始数据库迁移...")

	for _, model := range migrationModels {
		if err := DB.AutoMigrate(model); err != nil {
			logger.Error("迁移失败",
				zap.String("model", fmt.Sprintf("%T", model)),
				zap.Error(err),
			)
			return err
		}
		logger.Debug("迁移成功", zap.String("model", fmt.Sprintf("%T", model)))
	}

	// 创建索引
	if err := createIndexes(); err != nil {
		return err
	}

	logger.Info("数据库迁移完成")
	return nil
}

// createIndexes 创建数据库索引
func createIndexes() error {
	// 游戏记录索引
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_game_records_status ON game_records(status)").Error; err != nil {
		logger.Warn("创建索引失败", zap.String("index", "idx_game_records_status"), zap.Error(err))
	}

	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_game_records_creator_id ON game_records(creator_id)").Error; err != nil {
		logger.Warn("创建索引失败", zap.String("index", "idx_game_records_creator_id"), zap.Error(err))
	}

	// 玩家记录索引
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_player_records_game_id ON player_records(game_id)").Error; err != nil {
		logger.Warn("创建索引失败", zap.String("index", "idx_player_records_game_id"), zap.Error(err))
	}

	// 动作日志索引
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_game_action_logs_game_id ON game_action_logs(game_id)").Error; err != nil {
		logger.Warn("创建索引失败", zap.String("index", "idx_game_action_logs_game_id"), zap.Error(err))
	}

	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_game_action_logs_created_at ON game_action_logs(created_at)").Error; err != nil {
		logger.Warn("创建索引失败", zap.String("index", "idx_game_action_logs_created_at"), zap.Error(err))
	}

	logger.Info("数据库索引创建完成")
	return nil
}

// DropAllTables 删除所有表（仅用于测试环境）
func DropAllTables() error {
	if DB == nil {
		return fmt.Errorf("数据库未初始化")
	}

	// 获取所有表名
	var tables []string
	if err := DB.Raw("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'").Scan(&tables).Error; err != nil {
		return err
	}

	// 删除所有表
	for _, table := range tables {
		if err := DB.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)).Error; err != nil {
			logger.Error("删除表失败", zap.String("table", table), zap.Error(err))
			return err
		}
	}

	logger.Info("所有表已删除")
	return nil
}
