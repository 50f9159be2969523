package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/sdh-lhota/duty-roster/backend/internal/config"
	"github.com/sdh-lhota/duty-roster/backend/internal/repository"
	"github.com/sdh-lhota/duty-roster/backend/internal/watch"
)

type Handler struct {
	validate     *validator.Validate
	config       *config.Config
	repository   *repository.Repository
	translator   ut.Translator
	eventChannel *amqp.Channel
	redisClient  *redis.Client
	hub          *watch.Hub

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, eventCh *amqp.Channel, rdb *redis.Client, hub *watch.Hub) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:     validate,
		config:       cfg,
		repository:   repo,
		translator:   trans,
		eventChannel: eventCh,
		redisClient:  rdb,
		hub:          hub,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// every route requires a verified session from the identity provider
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.identity)

		r.Route("/rosters", func(r chi.Router) {
			r.Post("/confirmations/{token}", h.ResolveConfirmation)

			r.Route("/{month}", func(r chi.Router) {
				r.Use(h.rosterMonth)
				r.Get("/", h.GetRoster)
				r.Get("/live", h.LiveRoster)
				r.Get("/statistics", h.GetStatistics)

				r.Route("/days/{day}", func(r chi.Router) {
					r.Use(h.rosterDay)
					r.Post("/day-shift", h.AddDayShift)
					r.Delete("/day-shift", h.RemoveDayShift)
					r.Post("/shifts/{shift}/slots/{slot}", h.ProposeSlotAction)
					r.Put("/hours/{uid}", h.SetHours)
				})
			})
		})
	})
}
