package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"smokefree/docs"
	"smokefree/internal/modules/alarm"
	"smokefree/internal/modules/dailylog"
	"smokefree/internal/modules/promo"
	"smokefree/internal/modules/settings"
	"smokefree/internal/modules/stats"
	"smokefree/pkg/lib/jobs"
	"smokefree/pkg/middleware/logger"
	resp "smokefree/pkg/lib/response"

	alarmC "smokefree/internal/modules/alarm/controller"
	alarmDb "smokefree/internal/modules/alarm/repo/database"
	alarmUC "smokefree/internal/modules/alarm/usecase"

	dailyLogC "smokefree/internal/modules/dailylog/controller"
	dailyLogRp "smokefree/internal/modules/dailylog/repo"
	dailyLogDb "smokefree/internal/modules/dailylog/repo/database"
	dailyLogS3 "smokefree/internal/modules/dailylog/repo/s3"
	dailyLogUC "smokefree/internal/modules/dailylog/usecase"

	promoC "smokefree/internal/modules/promo/controller"
	promoDb "smokefree/internal/modules/promo/repo/database"
	promoUC "smokefree/internal/modules/promo/usecase"

	reminderDispatcher "smokefree/internal/modules/reminder/dispatcher"
	reminderUC "smokefree/internal/modules/reminder/usecase"

	settingsC "smokefree/internal/modules/settings/controller"
	settingsRp "smokefree/internal/modules/settings/repo"
	settingsCache "smokefree/internal/modules/settings/repo/cache"
	settingsDb "smokefree/internal/modules/settings/repo/database"
	settingsUC "smokefree/internal/modules/settings/usecase"

	statsC "smokefree/internal/modules/stats/controller"
	statsCache "smokefree/internal/modules/stats/repo/cache"
	statsUC "smokefree/internal/modules/stats/usecase"
)

// apiHandlers are the controllers mounted under /api.
type apiHandlers struct {
	settings       settings.Controller
	logs           dailylog.Controller
	alarms         alarm.Controller
	stats          stats.Controller
	promo          promo.Controller
	health         http.HandlerFunc
	promoRateLimit int
}

func mountAPI(r chi.Router, h apiHandlers) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.health)

		r.Route("/settings", func(r chi.Router) {
			r.Post("/", h.settings.UpsertSettings)
			r.Get("/{deviceId}", h.settings.GetSettings)
			r.Put("/{deviceId}", h.settings.UpdateSettings)
		})

		r.Route("/logs", func(r chi.Router) {
			r.Post("/", h.logs.UpsertDailyLog)
			r.Get("/{deviceId}/{date}", h.logs.GetDailyLog)
			r.Put("/{deviceId}/{date}/increment", h.logs.IncrementDailyLog)
		})

		r.Route("/alarms", func(r chi.Router) {
			r.Post("/", h.alarms.SaveAlarms)
			r.Get("/{deviceId}/{date}", h.alarms.GetAlarms)
		})

		r.Get("/stats/{deviceId}", h.stats.GetStatistics)

		r.Group(func(r chi.Router) {
			limit := h.promoRateLimit
			if limit <= 0 {
				limit = 10
			}
			r.Use(httprate.Limit(limit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
			r.Post("/promo/validate", h.promo.ValidatePromo)
		})
	})
}

func (app *App) SetupRoutes() error {
	cfg := app.Cfg.HttpServerConfig

	app.Router.Use(
		middleware.Recoverer,
		middleware.RequestID,
		middleware.RealIP,
		logger.New(app.Log),
		cors.Handler(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"X-Request-Id"},
			MaxAge:         300,
		}),
	)

	scheme := "http"
	if cfg.TLS.Enabled {
		scheme = "https"
	}
	docs.SwaggerInfo.Host = swaggerHost(cfg.Address)
	docs.SwaggerInfo.Schemes = []string{scheme}
	app.Router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("%s://%s/swagger/doc.json", scheme, docs.SwaggerInfo.Host)),
	))

	// --- Settings Module ---
	settingsRepoImpl := settingsRp.NewRepo(
		settingsDb.NewSettingsDatabase(app.Storage.Db, app.Log),
		settingsCache.NewSettingsCache(app.Cache, app.Log),
	)
	settingsUseCase := settingsUC.NewSettingsUseCase(settingsRepoImpl, app.Log)

	// --- Daily Log + Stats Modules ---
	var archive dailyLogRp.DailyLogArchive
	if app.S3 != nil {
		archive = dailyLogS3.NewDailyLogArchive(app.Log, app.S3)
	}
	dailyLogRepoImpl := dailyLogRp.NewRepo(dailyLogDb.NewDailyLogDatabase(app.Storage.Db, app.Log), archive)
	statsUseCase := statsUC.NewStatsUseCase(
		dailyLogRepoImpl,
		statsCache.NewStatsCache(app.Cache, app.Log),
		app.Cfg.StatsConfig.WindowDays,
		app.Log,
	)
	dailyLogUseCase := dailyLogUC.NewDailyLogUseCase(dailyLogRepoImpl, settingsUseCase, statsUseCase, app.Log)

	// --- Alarm Module ---
	alarmUseCase := alarmUC.NewAlarmUseCase(alarmDb.NewAlarmDatabase(app.Storage.Db, app.Log), app.Log)

	// --- Promo Module ---
	promoUseCase := promoUC.NewPromoUseCase(promoDb.NewPromoDatabase(app.Storage.Db, app.Log), settingsUseCase, app.Log)

	mountAPI(app.Router, apiHandlers{
		settings:       settingsC.NewSettingsController(settingsUseCase, app.Log),
		logs:           dailyLogC.NewDailyLogController(dailyLogUseCase, app.Log),
		alarms:         alarmC.NewAlarmController(alarmUseCase, app.Log),
		stats:          statsC.NewStatsController(statsUseCase, app.Log),
		promo:          promoC.NewPromoController(promoUseCase, app.Log),
		health:         app.health,
		promoRateLimit: cfg.PromoRateLimit,
	})

	// --- Scheduled jobs ---
	var archiver jobs.DayArchiver
	if app.S3 != nil {
		archiver = dailyLogUseCase
	}
	var reminders jobs.ReminderProcessor
	if app.Push != nil {
		d := reminderDispatcher.New(app.Push, app.Log)
		app.waitFn = append(app.waitFn, d.Wait)
		reminders = reminderUC.NewReminderUseCase(alarmUseCase, settingsUseCase, d, app.Log)
	}
	svc := jobs.NewService(settingsUseCase, archiver, reminders, app.Log)

	jobsCfg := app.Cfg.JobsConfig
	if _, err := app.Cron.AddFunc(jobsCfg.PremiumExpirySpec, svc.ExpirePremium); err != nil {
		return fmt.Errorf("schedule premium expiry: %w", err)
	}
	if archiver != nil {
		if _, err := app.Cron.AddFunc(jobsCfg.LogArchiveSpec, svc.ArchiveYesterday); err != nil {
			return fmt.Errorf("schedule log archive: %w", err)
		}
	}
	if reminders != nil {
		if _, err := app.Cron.AddFunc(jobsCfg.ReminderSpec, svc.SendDueReminders); err != nil {
			return fmt.Errorf("schedule reminders: %w", err)
		}
	}
	return nil
}

type healthResponse struct {
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

// health
// @Summary Service health
// @Tags health
// @Produce json
// @Success 200 {object} healthResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /health [get]
func (app *App) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := healthResponse{Database: "ok", Cache: "ok"}
	healthy := true

	if sqlDB, err := app.Storage.Db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		status.Database = "unavailable"
		healthy = false
	}
	if err := app.Cache.Client.Ping(ctx).Err(); err != nil {
		status.Cache = "unavailable"
		healthy = false
	}

	if !healthy {
		resp.SendError(w, r, http.StatusServiceUnavailable, fmt.Sprintf("database: %s, cache: %s", status.Database, status.Cache))
		return
	}
	resp.SendSuccess(w, r, http.StatusOK, status)
}

func swaggerHost(addr string) string {
	switch {
	case strings.HasPrefix(addr, "0.0.0.0:"):
		return "localhost" + strings.TrimPrefix(addr, "0.0.0.0")
	case strings.HasPrefix(addr, ":"):
		return "localhost" + addr
	default:
		return addr
	}
}
