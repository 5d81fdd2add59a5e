package main

import (
	"encoding/json"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"scartix/internal/auth"
	"scartix/internal/calc/plot"
	"scartix/internal/calc/prediction"
	"scartix/internal/calc/recommend"
	"scartix/internal/calc/report"
	"scartix/internal/calc/scaffold"
	"scartix/internal/calc/sweep"
	"scartix/internal/calc/tissue"
	"scartix/internal/config"
	"scartix/internal/logging"
	"scartix/internal/metrics"
	"scartix/internal/notify"
	"scartix/internal/profile"
	"scartix/internal/repo"
	"scartix/internal/support"
)

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+logging.RequestIDHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, cfg config.Config, userRepo repo.Repository, m *metrics.Metrics) {
	authEnv := &auth.Authenv{
		JWTkey:       []byte(cfg.Auth.TokenKey),
		Repo:         userRepo,
		SecureCookie: cfg.Auth.SecureCookie,
	}
	profileH := &profile.ProfileHandler{Repo: userRepo}
	supportH := &support.Handler{Repo: userRepo}
	if cfg.Telegram.Enabled() {
		supportH.Notifier = &notify.TicketNotifier{
			Client: notify.NewClient(cfg.Telegram.BotToken),
			ChatID: cfg.Telegram.AdminChatID,
		}
	}

	mux.Use(logging.Middleware)
	mux.Use(m.Middleware)
	mux.Handle("/metrics", m.Handler()).Methods("GET")

	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.Auth.RateLimit), cfg.Auth.RateBurst)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")
	api.HandleFunc("/logout", authEnv.LogoutHandler).Methods("POST")
	api.Handle("/support", authEnv.OptionalAuth(http.HandlerFunc(supportH.Submit))).Methods("POST")

	tissueH := &tissue.Handler{}
	api.HandleFunc("/tissues", tissueH.List).Methods("GET")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	secureApi.HandleFunc("/profile", profileH.GetProfile).Methods("GET")
	secureApi.HandleFunc("/profile", profileH.UpdateProfile).Methods("PATCH", "PUT")
	secureApi.HandleFunc("/profile/{id:[0-9]+}", profileH.GetProfile).Methods("GET")

	scaffoldH := &scaffold.Handler{}
	predictionH := &prediction.Handler{Repo: userRepo, Metrics: m}
	plotH := &plot.Handler{}
	reportH := &report.Handler{}
	sweepH := &sweep.Handler{}
	recommendH := &recommend.Handler{}

	secureApi.HandleFunc("/tools/scaffold/calc", scaffoldH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/scaffold/table", scaffoldH.Rows).Methods("GET")
	secureApi.HandleFunc("/tools/scaffold/predict", predictionH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/tissue/score", tissueH.Score).Methods("POST")
	secureApi.HandleFunc("/tools/tissue/compare", tissueH.Compare).Methods("POST")
	secureApi.HandleFunc("/tools/recommend/porosity", recommendH.Porosity).Methods("POST")
	secureApi.HandleFunc("/tools/plot/stress-strain.png", plotH.StressStrain).Methods("GET")
	secureApi.HandleFunc("/tools/plot/flow-rate.png", plotH.FlowRate).Methods("GET")
	secureApi.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")
	secureApi.HandleFunc("/tools/sweep/calc", sweepH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/sweep/xlsx", sweepH.XLSX).Methods("POST")
	secureApi.HandleFunc("/tools/sweep/import", sweepH.Import).Methods("POST")
	secureApi.HandleFunc("/history", predictionH.History).Methods("GET")

	secureApi.HandleFunc("/docs/list", docsList(cfg.Server.DocsDir)).Methods("GET")

	static := cfg.Server.StaticDir
	authFileServer := http.FileServer(http.Dir(filepath.Join(static, "auth")))
	mux.PathPrefix("/auth/").
		Handler(authEnv.RedirectIfLoggedIn(http.StripPrefix("/auth", authFileServer)))
	profileFileServer := http.FileServer(http.Dir(filepath.Join(static, "profile")))
	mux.Handle("/profile/{id:[0-9]+}", authEnv.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(static, "profile", "index.html"))
	})))
	mux.PathPrefix("/profile/").
		Handler(authEnv.AuthMiddleware(http.StripPrefix("/profile", profileFileServer)))
	mux.PathPrefix("/docs/").
		Handler(authEnv.AuthMiddleware(http.StripPrefix("/docs", http.FileServer(http.Dir(cfg.Server.DocsDir)))))
	mainFileServer := http.FileServer(http.Dir(filepath.Join(static, "main")))
	mux.PathPrefix("/").
		Handler(mainFileServer)
}

type Doc struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func docsList(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs := []Doc{}
		fs.WalkDir(os.DirFS(dir), ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			docs = append(docs, Doc{Name: d.Name(), Path: path})
			return nil
		})
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(docs)
	}
}
