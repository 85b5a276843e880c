package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	api "github.com/radprep/trainer/internal/api/http"
	auth "github.com/radprep/trainer/internal/auth/middleware"
	"github.com/radprep/trainer/internal/bank"
	"github.com/radprep/trainer/internal/cache"
	"github.com/radprep/trainer/internal/config"
	"github.com/radprep/trainer/internal/db"
	"github.com/radprep/trainer/internal/grading"
	"github.com/radprep/trainer/internal/pdftext"
	"github.com/radprep/trainer/internal/quiz"
	"github.com/radprep/trainer/internal/rbac"
	"github.com/radprep/trainer/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	questionStore := bank.NewSQLStore(dbh)
	recordStore := quiz.NewSQLRecordStore(dbh)
	ingestor := bank.NewIngestor(pdftext.NewPopplerExtractor(cfg.PdftotextBin), questionStore)

	archive, err := storage.NewFSArchive(cfg.ArchiveDir)
	if err != nil {
		log.Fatalf("archive dir: %v", err)
	}

	// --- Optional leaderboard cache ---
	var board *cache.Leaderboard
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis ping failed: %v", err)
		}
		board = cache.NewLeaderboard(rdb)
	}

	// --- Quiz service ---
	opts := []quiz.Option{quiz.WithSizeBounds(cfg.QuizMinQuestions, cfg.QuizMaxQuestions)}
	if board != nil {
		opts = append(opts, quiz.WithLeaderboard(board))
	}
	quizSvc := quiz.NewService(questionStore, recordStore, grading.NewDefaultGrader(), opts...)

	// --- Auth ---
	authSvc := auth.NewAuthService(cfg.AuthSecret)
	seed := auth.AdminSeed{Username: cfg.AdminUser, PassHash: cfg.AdminPassHash}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, dbh, seed))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		// Admin: PDF import and bank inspection
		pr.With(rbac.Require("bank:import")).
			Post("/bank/import", api.ImportExamHandler(ingestor, archive))
		pr.With(rbac.Require("bank:inspect")).
			Get("/bank/questions", api.ListQuestionsHandler(questionStore))
		pr.With(rbac.Require("bank:inspect")).
			Get("/bank/archive", api.ListArchiveHandler(archive))
		pr.With(rbac.Require("bank:import")).
			Post("/bank/archive/{key}/reingest", api.ReingestExamHandler(ingestor, archive))
		pr.With(rbac.Require("bank:view")).
			Get("/bank/topics", api.TopicsHandler(questionStore))

		// Trainee flow
		pr.With(rbac.Require("quiz:take")).
			Post("/quiz/sessions", api.StartQuizHandler(quizSvc))
		pr.With(rbac.Require("quiz:take")).
			Post("/quiz/sessions/{sessionID}/submit", api.SubmitQuizHandler(quizSvc))
		pr.With(rbac.Require("quiz:take")).
			Post("/practice/answer", api.PracticeAnswerHandler(quizSvc))
		pr.With(rbac.RequireAny("records:view-own", "records:view-all")).
			Get("/records/mistakes", api.MistakesHandler(quizSvc))
		pr.With(rbac.RequireAny("records:view-own", "records:view-all")).
			Get("/records/scores", api.ScoresHandler(quizSvc))

		if board != nil {
			pr.With(rbac.Require("quiz:take")).
				Get("/leaderboard", api.LeaderboardHandler(board))
			pr.With(rbac.Require("quiz:take")).
				Get("/leaderboard/me", api.MyRankHandler(board))
		}

		// Users (admin)
		pr.With(rbac.Require("users:manage")).
			Post("/users", api.CreateUserHandler(dbh))
		pr.With(rbac.Require("users:manage")).
			Get("/users", api.ListUsersHandler(dbh))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (db=%s)", cfg.HTTPAddr, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
