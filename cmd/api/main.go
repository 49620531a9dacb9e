package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"

	"github.com/shiftlog-hr/timeclock-backend-go/internal/config"
	appHTTP "github.com/shiftlog-hr/timeclock-backend-go/internal/handler/http"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/pkg/cron"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/pkg/database"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/pkg/jwt"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/repository/postgresql"
	attendanceService "github.com/shiftlog-hr/timeclock-backend-go/internal/service/attendance"
	authService "github.com/shiftlog-hr/timeclock-backend-go/internal/service/auth"
	stampService "github.com/shiftlog-hr/timeclock-backend-go/internal/service/stamp"
	workerService "github.com/shiftlog-hr/timeclock-backend-go/internal/service/worker"
	"github.com/shiftlog-hr/timeclock-backend-go/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	if err := database.Migrate(dsn, migrations.FS); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	workerRepo := postgresql.NewWorkerRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	breakRepo := postgresql.NewBreakRepository(db)
	txManager := postgresql.NewTxManager(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	loc := cfg.App.Timezone
	authSvc := authService.NewAuthService(workerRepo, JWTService)
	workerSvc := workerService.NewWorkerService(workerRepo)
	stampSvc := stampService.NewStampService(txManager, shiftRepo, breakRepo, loc)
	attendanceSvc := attendanceService.NewAttendanceService(txManager, shiftRepo, breakRepo, loc)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc)
	stampHandler := appHTTP.NewStampHandler(stampSvc, loc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, loc)
	workerHandler := appHTTP.NewWorkerHandler(workerSvc)

	scheduler := cron.NewScheduler(slog.Default())
	timeclockJobs := cron.NewTimeclockJobs(txManager, shiftRepo, breakRepo, loc)
	timeclockJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		authHandler,
		stampHandler,
		attendanceHandler,
		workerHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
