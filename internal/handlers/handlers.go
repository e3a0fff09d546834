package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/soundvault/vsdwallet/docs"
	"github.com/soundvault/vsdwallet/internal/config"
	authhandlers "github.com/soundvault/vsdwallet/internal/handlers/auth"
	reporthandlers "github.com/soundvault/vsdwallet/internal/handlers/reports"
	trackhandlers "github.com/soundvault/vsdwallet/internal/handlers/tracks"
	wallethandlers "github.com/soundvault/vsdwallet/internal/handlers/wallet"
	"github.com/soundvault/vsdwallet/internal/service"
	"github.com/soundvault/vsdwallet/pkg/auth"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type WalletHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
	ClaimDaily(w http.ResponseWriter, r *http.Request)
	Audit(w http.ResponseWriter, r *http.Request)
}

type TrackHandler interface {
	AddTrack(w http.ResponseWriter, r *http.Request)
	GetCatalog(w http.ResponseWriter, r *http.Request)
	GetMyTracks(w http.ResponseWriter, r *http.Request)
	Purchase(w http.ResponseWriter, r *http.Request)
}

type ReportHandler interface {
	RequestReport(w http.ResponseWriter, r *http.Request)
	GetReports(w http.ResponseWriter, r *http.Request)
	GetReport(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler   AuthHandler
	WalletHandler WalletHandler
	TrackHandler  TrackHandler
	ReportHandler ReportHandler
}

func New(s *service.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		AuthHandler:   authhandlers.New(s.AuthService),
		WalletHandler: wallethandlers.New(s.LedgerService, cfg.DailyReward),
		TrackHandler:  trackhandlers.New(s.TrackService),
		ReportHandler: reporthandlers.New(s.ReportService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Route("/wallet", func(r chi.Router) {
				r.Get("/", h.WalletHandler.GetBalance)
				r.Get("/transactions", h.WalletHandler.GetTransactions)
				r.Post("/claim-daily", h.WalletHandler.ClaimDaily)
				r.Get("/audit", h.WalletHandler.Audit)
			})
			r.Route("/tracks", func(r chi.Router) {
				r.Post("/", h.TrackHandler.AddTrack)
				r.Get("/", h.TrackHandler.GetCatalog)
				r.Get("/mine", h.TrackHandler.GetMyTracks)
				r.Post("/{trackID}/purchase", h.TrackHandler.Purchase)
			})
			r.Route("/reports", func(r chi.Router) {
				r.Post("/", h.ReportHandler.RequestReport)
				r.Get("/", h.ReportHandler.GetReports)
				r.Get("/{reportID}", h.ReportHandler.GetReport)
			})
		})
	})

	return r
}
