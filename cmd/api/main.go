package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/kintai-assist/kintai-backend-go/internal/config"
	"github.com/kintai-assist/kintai-backend-go/internal/domain/store"
	appHTTP "github.com/kintai-assist/kintai-backend-go/internal/handler/http"
	"github.com/kintai-assist/kintai-backend-go/internal/pkg/cron"
	"github.com/kintai-assist/kintai-backend-go/internal/pkg/database"
	"github.com/kintai-assist/kintai-backend-go/internal/pkg/holidayapi"
	"github.com/kintai-assist/kintai-backend-go/internal/pkg/jwt"
	"github.com/kintai-assist/kintai-backend-go/internal/pkg/sse"
	"github.com/kintai-assist/kintai-backend-go/internal/pkg/teamspirit"
	"github.com/kintai-assist/kintai-backend-go/internal/repository/memory"
	"github.com/kintai-assist/kintai-backend-go/internal/repository/postgresql"
	"github.com/kintai-assist/kintai-backend-go/internal/repository/sqlite"
	attendanceService "github.com/kintai-assist/kintai-backend-go/internal/service/attendance"
	holidayService "github.com/kintai-assist/kintai-backend-go/internal/service/holiday"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	ctx := context.Background()

	var kv store.KVStore
	switch cfg.Storage.Type {
	case "postgres":
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			log.Fatal("Failed to connect to database: ", err)
		}
		kv, err = postgresql.NewKVRepository(ctx, db)
		if err != nil {
			log.Fatal("Failed to initialize postgres storage: ", err)
		}
	case "sqlite":
		db, err := database.NewSQLiteDB(cfg.Storage.SQLitePath)
		if err != nil {
			log.Fatal("Failed to open sqlite database: ", err)
		}
		kv, err = sqlite.NewKVRepository(ctx, db)
		if err != nil {
			log.Fatal("Failed to initialize sqlite storage: ", err)
		}
	case "memory":
		kv = memory.NewKVRepository()
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	agentClient := teamspirit.NewClient(cfg.TeamSpirit.AgentURL, cfg.TeamSpirit.FetchTimeout)
	holidayClient := holidayapi.NewClient(cfg.Holiday.APIURL)

	hub := sse.NewHub()
	JWTService := jwt.NewJWTService(cfg.Auth.Secret, cfg.Auth.AccessExpiration)
	holidaySvc := holidayService.NewHolidayService(ctx, holidayClient, kv, cfg.Holiday.RefreshInterval)
	attendanceSvc := attendanceService.NewAttendanceService(ctx, agentClient, holidaySvc, kv, hub, cfg.Cache.SnapshotTTL)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	eventsHandler := appHTTP.NewEventsHandler(hub, JWTService, cfg.Auth.Enabled)

	router := appHTTP.NewRouter(cfg, JWTService, attendanceHandler, eventsHandler)

	scheduler := cron.NewScheduler()
	cron.NewRefreshJobs(attendanceSvc, holidaySvc, cfg.Cache.RefreshInterval, cfg.Holiday.RefreshInterval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
