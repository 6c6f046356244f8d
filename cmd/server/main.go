package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"career-autopilot/internal/config"
	"career-autopilot/internal/domain/fiber/handler"
	"career-autopilot/internal/middleware"
	"career-autopilot/internal/model"
	"career-autopilot/internal/repository"
	"career-autopilot/internal/service"
	"career-autopilot/internal/usecase"
	"career-autopilot/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()

	var zlog *zap.Logger
	var err error
	if appConfig.Env == "production" {
		zlog, err = zap.NewProduction()
	} else {
		zlog, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			} else {
				code = util.StatusFromError(err)
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env == "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := ConnectDB()

	jobRepo := repository.NewJobRepository(db)
	packRepo := repository.NewApplyPackRepository(db)
	outreachRepo := repository.NewOutreachRepository(db)
	contactRepo := repository.NewContactRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// The deterministic template drafter is the default; a Gemini API key
	// switches apply-pack cover letters to the LLM backend.
	var drafter service.DrafterInterface = service.NewTemplateDrafter()
	if config.LoadGeminiConfig().APIKey != "" {
		gemini, err := service.NewGeminiDrafter(ctx)
		if err != nil {
			log.Fatal(err)
		}
		drafter = gemini
		zlog.Info("using gemini cover-letter drafter")
	}
	reminders := service.NewReminderService()

	jobUC := usecase.NewJobUsecase(jobRepo, activityRepo, zlog)
	applyUC := usecase.NewApplyPackUsecase(jobRepo, packRepo, profileRepo, activityRepo, drafter, zlog)
	outreachUC := usecase.NewOutreachUsecase(jobRepo, outreachRepo, contactRepo, activityRepo, reminders, zlog)
	summaryUC := usecase.NewSummaryUsecase(jobRepo, packRepo, outreachRepo, activityRepo, zlog)
	profileUC := usecase.NewProfileUsecase(profileRepo)

	handler.NewJobHandler(jobUC).RegisterRoutes(app)
	handler.NewApplyHandler(applyUC).RegisterRoutes(app)
	handler.NewOutreachHandler(outreachUC).RegisterRoutes(app)
	handler.NewSummaryHandler(summaryUC, profileUC).RegisterRoutes(app)

	zlog.Info("server starting", zap.String("port", appConfig.Port))
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	err = db.AutoMigrate(
		&model.Job{},
		&model.ApplyPack{},
		&model.OutreachPlan{},
		&model.Contact{},
		&model.TrackProfile{},
		&model.ActivityEvent{},
	)
	if err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}
