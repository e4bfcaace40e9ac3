package handlers

import (
	"time"

	"housingbuddy/internal/config"
	"housingbuddy/internal/overlay"
	"housingbuddy/internal/repos"
	"housingbuddy/internal/services"
	"housingbuddy/internal/translate"
	"housingbuddy/internal/uistate"

	"github.com/jmoiron/sqlx"
)

// Deps holds the services and handlers shared by every route.
type Deps struct {
	Auth    *services.AuthService
	Gate    *services.AdminGate
	Langs   *translate.Languages
	Overlay *overlay.Registry
	Orch    *overlay.Orchestrator

	AuthHandler      *AuthHandler
	AdminHandler     *AdminHandler
	PropertyHandler  *PropertyHandler
	CommentHandler   *CommentHandler
	FavoriteHandler  *FavoriteHandler
	TranslateHandler *TranslateHandler
	CategoryHandler  *CategoryHandler
	PageHandler      *PageHandler

	CookieSecure bool
}

func NewDeps(db *sqlx.DB, cfg config.Config, store uistate.Store, langs *translate.Languages,
	batcher translate.Batcher, mailer services.Mailer) *Deps {
	userRepo := repos.NewUserRepo(db)
	propRepo := repos.NewPropertyRepo(db)
	commentRepo := repos.NewCommentRepo(db)
	favRepo := repos.NewFavoriteRepo(db)

	gate := &services.AdminGate{Store: store, Sessions: userRepo, Hash: []byte(cfg.AdminPasswordHash)}
	authSvc := &services.AuthService{
		Users:    userRepo,
		Gate:     gate,
		Mailer:   mailer,
		BaseURL:  cfg.PublicBaseURL,
		TokenTTL: 24 * time.Hour,
		Now:      time.Now,
	}
	propSvc := services.NewPropertyService(propRepo)
	commentSvc := services.NewCommentService(commentRepo, propSvc)
	favSvc := &services.FavoriteService{Favs: favRepo, Props: propSvc}
	catSvc := &services.CategoryService{Store: store}

	reg := overlay.NewRegistry(store, langs)
	orch := &overlay.Orchestrator{
		Batcher: batcher,
		Fields:  propSvc,
		Catalog: overlay.UICatalog,
		Langs:   langs,
		Timeout: cfg.TranslateTimeout,
	}

	return &Deps{
		Auth:    authSvc,
		Gate:    gate,
		Langs:   langs,
		Overlay: reg,
		Orch:    orch,

		AuthHandler:      &AuthHandler{Auth: authSvc},
		AdminHandler:     &AdminHandler{Gate: gate, Props: propSvc},
		PropertyHandler:  &PropertyHandler{Props: propSvc, Overlay: reg, Orch: orch},
		CommentHandler:   &CommentHandler{Comments: commentSvc},
		FavoriteHandler:  &FavoriteHandler{Favs: favSvc},
		TranslateHandler: &TranslateHandler{Batcher: batcher, Langs: langs, Overlay: reg, Orch: orch, Timeout: cfg.TranslateTimeout},
		CategoryHandler:  &CategoryHandler{Categories: catSvc},
		PageHandler:      &PageHandler{Props: propSvc, Comments: commentSvc, Overlay: reg, Orch: orch},

		CookieSecure: cfg.CookieSecure,
	}
}
