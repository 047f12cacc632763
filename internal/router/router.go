package router

import (
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"github.com/a573364948/trainee-evaluation-system-sub001/internal/config"
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/handlers"
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/hub"
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/store"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}
func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.String(429, "Too many requests. Try again later.")
}

// Setup wires middleware, handlers and routes. The engine instances are
// constructed by the caller and shared across all handlers.
func Setup(log *zap.Logger, cfg *config.Config, st *store.Store, h *hub.Hub) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	sessionStore := cookie.NewStore([]byte(cfg.Server.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400,
	})
	router.Use(sessions.Sessions("tes_session", sessionStore))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		err := secureMiddleware.Process(c.Writer, c.Request)
		if err != nil {
			c.Abort()
			return
		}
	})

	// Handlers
	authHandler := handlers.NewAuthHandler(log, st, cfg.Server.AdminPassword)
	candidateHandler := handlers.NewCandidateHandler(log, st)
	judgeHandler := handlers.NewJudgeHandler(log, st)
	rubricHandler := handlers.NewRubricHandler(log, st)
	questionHandler := handlers.NewQuestionHandler(log, st)
	batchHandler := handlers.NewBatchHandler(log, st)
	scoreHandler := handlers.NewScoreHandler(log, st)
	displayHandler := handlers.NewDisplayHandler(log, st)
	timerHandler := handlers.NewTimerHandler(log, st)
	maintenanceHandler := handlers.NewMaintenanceHandler(log, st)
	streamHandler := handlers.NewStreamHandler(log, st, h)

	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 5,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})

	api := router.Group("/api")

	// Auth
	api.POST("/auth/admin-login", limiter, authHandler.AdminLogin)
	api.POST("/auth/judge-login", limiter, authHandler.JudgeLogin)
	api.POST("/auth/logout", authHandler.Logout)

	// Subscription feed; the public display connects without logging in.
	api.GET("/stream", streamHandler.Subscribe)
	api.GET("/ws", streamHandler.SubscribeWS)
	api.POST("/stream/:id/heartbeat", streamHandler.Heartbeat)
	api.GET("/snapshot", streamHandler.Snapshot)
	api.GET("/display", displayHandler.Get)
	api.GET("/timer", timerHandler.Get)

	// Judge console: read the working set and rubric, submit scores.
	scoring := api.Group("/")
	scoring.Use(ScoringRequired())
	{
		scoring.GET("/candidates", candidateHandler.List)
		scoring.GET("/candidates/:id", candidateHandler.Get)
		scoring.GET("/dimensions", rubricHandler.ListDimensions)
		scoring.POST("/scores", scoreHandler.Submit)
	}

	// Operator console
	admin := api.Group("/")
	admin.Use(AdminRequired())
	{
		admin.POST("/candidates", candidateHandler.Create)
		admin.POST("/candidates/import", candidateHandler.Import)
		admin.PUT("/candidates/:id", candidateHandler.Update)
		admin.DELETE("/candidates/:id", candidateHandler.Delete)

		admin.GET("/judges", judgeHandler.List)
		admin.POST("/judges", judgeHandler.Create)
		admin.PUT("/judges/:id", judgeHandler.Update)
		admin.DELETE("/judges/:id", judgeHandler.Delete)

		admin.POST("/dimensions", rubricHandler.CreateDimension)
		admin.PUT("/dimensions/:id", rubricHandler.UpdateDimension)
		admin.DELETE("/dimensions/:id", rubricHandler.DeleteDimension)

		admin.GET("/score-items", rubricHandler.ListScoreItems)
		admin.POST("/score-items", rubricHandler.CreateScoreItem)
		admin.PUT("/score-items/:id", rubricHandler.UpdateScoreItem)
		admin.DELETE("/score-items/:id", rubricHandler.DeleteScoreItem)

		admin.GET("/questions", questionHandler.List)
		admin.POST("/questions", questionHandler.Create)
		admin.PUT("/questions/:id", questionHandler.Update)
		admin.DELETE("/questions/:id", questionHandler.Delete)

		admin.GET("/batches", batchHandler.List)
		admin.POST("/batches", batchHandler.Create)
		admin.GET("/batches/:id", batchHandler.Get)
		admin.PUT("/batches/:id", batchHandler.Update)
		admin.DELETE("/batches/:id", batchHandler.Delete)
		admin.GET("/batches/:id/candidates", batchHandler.Candidates)
		admin.POST("/batches/:id/start", batchHandler.Start)
		admin.POST("/batches/:id/pause", batchHandler.Pause)
		admin.POST("/batches/:id/resume", batchHandler.Resume)
		admin.POST("/batches/:id/complete", batchHandler.Complete)

		admin.POST("/other-scores", scoreHandler.SetOtherScore)

		admin.PUT("/display/stage", displayHandler.SetStage)
		admin.PUT("/display/candidate", displayHandler.SetCandidate)
		admin.PUT("/display/question", displayHandler.SetQuestion)

		admin.PUT("/timer/duration", timerHandler.SetDuration)
		admin.POST("/timer/start", timerHandler.Start)
		admin.POST("/timer/pause", timerHandler.Pause)
		admin.POST("/timer/resume", timerHandler.Resume)
		admin.POST("/timer/reset", timerHandler.Reset)
		admin.POST("/timer/zero", timerHandler.Zero)

		admin.GET("/backups", maintenanceHandler.ListBackups)
		admin.POST("/backups", maintenanceHandler.CreateBackup)
		admin.POST("/backups/restore", maintenanceHandler.RestoreBackup)
		admin.GET("/export", maintenanceHandler.Export)

		admin.GET("/connections", streamHandler.Connections)
	}

	return router
}
