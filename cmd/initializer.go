package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"ratehubBack/internal/config"
	"ratehubBack/internal/handlers"
	"ratehubBack/internal/repositories"
	"ratehubBack/internal/services"
	"ratehubBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB
	tokens   *utils.Manager

	accessTokenTTL time.Duration

	userRepo *repositories.UserRepository

	templateHandler   *handlers.TemplateHandler
	dataSourceHandler *handlers.DataSourceHandler
	itemHandler       *handlers.ItemHandler
	ratingHandler     *handlers.RatingHandler
	userHandler       *handlers.UserHandler
	uploadHandler     *handlers.UploadHandler
}

func initializeApp(db *sql.DB, rdb *redis.Client, cfg config.Config, errorLog, infoLog *log.Logger) (*application, error) {
	tokens, err := utils.NewManager(cfg.Auth.SigningKey)
	if err != nil {
		return nil, err
	}
	storage, err := utils.NewStorageManager(
		cfg.Storage.AccessKey,
		cfg.Storage.SecretKey,
		cfg.Storage.Region,
		cfg.Storage.Endpoint,
		cfg.Storage.Bucket,
		cfg.Storage.URLExpiry,
	)
	if err != nil {
		return nil, err
	}

	// Repositories
	templateRepo := repositories.TemplateRepository{DB: db}
	dataSourceRepo := repositories.DataSourceRepository{DB: db}
	itemRepo := repositories.ItemRepository{DB: db}
	ratingRepo := repositories.RatingRepository{DB: db}
	userRepo := repositories.UserRepository{DB: db}

	// Services
	templateService := &services.TemplateService{
		TemplateRepo: &templateRepo,
		Cache:        rdb,
		CacheTTL:     cfg.Cache.TemplateTTL,
	}
	dataSourceService := &services.DataSourceService{DataSourceRepo: &dataSourceRepo}
	itemService := &services.ItemService{
		Templates: templateService,
		ItemRepo:  &itemRepo,
	}
	ratingService := &services.RatingService{
		RatingRepo: &ratingRepo,
		Items:      &itemRepo,
		Users:      &userRepo,
	}
	userService := &services.UserService{
		UserRepo:        &userRepo,
		RatingRepo:      &ratingRepo,
		Templates:       &templateRepo,
		Items:           &itemRepo,
		Tokens:          tokens,
		Cache:           rdb,
		AccessTokenTTL:  cfg.Auth.AccessTokenTTL,
		RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
	}

	return &application{
		errorLog: errorLog,
		infoLog:  infoLog,
		db:       db,
		tokens:   tokens,
		userRepo: &userRepo,

		accessTokenTTL: cfg.Auth.AccessTokenTTL,

		templateHandler:   &handlers.TemplateHandler{Service: templateService},
		dataSourceHandler: &handlers.DataSourceHandler{Service: dataSourceService},
		itemHandler:       &handlers.ItemHandler{Service: itemService},
		ratingHandler:     &handlers.RatingHandler{Service: ratingService},
		userHandler:       &handlers.UserHandler{Service: userService},
		uploadHandler:     &handlers.UploadHandler{Storage: storage},
	}, nil
}
