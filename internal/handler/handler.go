package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/onboarding-companion/backend/internal/config"
	"github.com/sysu-ecnc-dev/onboarding-companion/backend/internal/llm"
	"github.com/sysu-ecnc-dev/onboarding-companion/backend/internal/repository"
	"github.com/sysu-ecnc-dev/onboarding-companion/backend/internal/retriever"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	retriever   *retriever.Retriever
	llmClient   *llm.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client, llmClient *llm.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		retriever:   retriever.New(repo),
		llmClient:   llmClient,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		// 评估与清单
		r.Route("/assessment", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Post("/", h.SubmitAssessment)
			r.Get("/", h.GetMyAssessments)
		})
		r.Route("/my-progress", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyProgress)
			r.Patch("/{milestoneID}", h.ToggleMilestone)
		})
		r.Get("/milestone-templates", h.GetMilestoneTemplates)

		// 知识库与对话
		r.Get("/documents", h.GetDocuments)
		r.With(h.myInfo).Post("/chat", h.Chat)

		// 用户管理
		r.Route("/users", func(r chi.Router) {
			r.With(h.adminOnly).Post("/", h.CreateUser)
			r.With(h.adminOnly).Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.adminOnly)
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).Delete("/", h.DeleteUser)
				r.Patch("/password", h.UpdateUserPassword)
			})
		})
	})
}
