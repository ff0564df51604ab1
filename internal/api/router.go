package api

import (
	"github.com/gin-gonic/gin"
	"github.com/wfunc/monopoly-game/internal/game"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Router API路由器
type Router struct {
	engine      *gin.Engine
	db          *gorm.DB
	gameHandler *GameHandler
	wsHandler   *WSHandler
	log         *zap.Logger
}

// NewRouter 创建路由器。db可以为nil（纯内存模式）。
func NewRouter(manager *game.Manager, db *gorm.DB, log *zap.Logger) *Router {
	engine := gin.New()

	// 全局中间件
	engine.Use(gin.Recovery())
	engine.Use(gin.Logger())

	router := &Router{
		engine:      engine,
		db:          db,
		gameHandler: NewGameHandler(manager, log),
		wsHandler:   NewWSHandler(manager, log),
		log:         log,
	}

	router.setupRoutes()

	return router
}

// setupRoutes 设置路由
func (r *Router) setupRoutes() {
	// 健康检查
	r.engine.GET("/health", r.healthCheck)

	// API v1路由组
	v1 := r.engine.Group("/api/v1")
	{
		games := v1.Group("/games")
		{
			games.POST("", r.gameHandler.CreateGame)
			games.POST("/join", r.gameHandler.JoinGame)
			games.GET("/:id", r.gameHandler.GetGame)
			games.POST("/:id/start", r.gameHandler.StartGame)

			// 游戏动作
			games.POST("/:id/roll", r.gameHandler.RollDice)
			games.POST("/:id/buy", r.gameHandler.BuyProperty)
			games.POST("/:id/mortgage", r.gameHandler.MortgageProperty)
			games.POST("/:id/unmortgage", r.gameHandler.UnmortgageProperty)
			games.POST("/:id/build", r.gameHandler.Build)
			games.POST("/:id/end-turn", r.gameHandler.EndTurn)
		}
	}

	// WebSocket动作通道
	ws := r.engine.Group("/ws")
	{
		ws.GET("/games/:id", r.wsHandler.GameChannel)
	}

	// API文档
	registerOpenAPIRoutes(r.engine)
	registerSwaggerRoutes(r.engine)

	// 404处理
	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"code":    "NOT_FOUND",
			"message": "接口不存在",
		})
	})
}

// healthCheck 健康检查
func (r *Router) healthCheck(c *gin.Context) {
	if r.db != nil {
		sqlDB, err := r.db.DB()
		if err != nil {
			c.JSON(500, gin.H{
				"status":  "unhealthy",
				"message": "数据库连接失败",
			})
			return
		}
		if err := sqlDB.Ping(); err != nil {
			c.JSON(500, gin.H{
				"status":  "unhealthy",
				"message": "数据库ping失败",
			})
			return
		}
	}

	c.JSON(200, gin.H{
		"status":  "healthy",
		"message": "服务运行正常",
	})
}

// Run 运行服务器
func (r *Router) Run(addr string) error {
	r.log.Info("Starting API server", zap.String("address", addr))
	return r.engine.Run(addr)
}

// GetEngine 获取Gin引擎（用于测试）
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
