package repository

import (
	"time"

	"github.com/wfunc/monopoly-game/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB 为测试套件设置测试数据库
func SetupTestDB() *gorm.DB {
	// 使用内存数据库进行测试（更快，不需要文件系统，在所有环境中都能工作）
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}

	// 自动迁移所有模型
	err = db.AutoMigrate(
		&models.GameRecord{},
		&models.PlayerRecord{},
		&models.PropertyOwnership{},
		&models.GameActionLog{},
	)
	if err != nil {
		panic(err)
	}

	return db
}

// CleanupTestDB 清理测试数据库
func CleanupTestDB(db *gorm.DB) {
	sqlDB, _ := db.DB()
	if sqlDB != nil {
		sqlDB.Close()
	}
}

// CreateTestGameRecord 创建测试游戏记录
func CreateTestGameRecord(gameID, code string) *models.GameRecord {
	return &models.GameRecord{
		GameID:     gameID,
		Code:       code,
		CreatorID:  "creator_" + gameID,
		Status:     "waiting",
		MaxPlayers: 6,
	}
}

// CreateTestPlayerRecord 创建测试玩家记录
func CreateTestPlayerRecord(playerID, gameID, username string) *models.PlayerRecord {
	return &models.PlayerRecord{
		PlayerID: playerID,
		GameID:   gameID,
		Username: username,
		Color:    "red",
		Position: 0,
		Money:    1500,
	}
}

// CreateTestActionLog 创建测试动作日志
func CreateTestActionLog(gameID, playerID, actionType, message string) *models.GameActionLog {
	return &models.GameActionLog{
		GameID:     gameID,
		PlayerID:   playerID,
		ActionType: actionType,
		Message:    message,
		CreatedAt:  time.Now(),
	}
}
