package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.jwtMiddleware)

	mux := pat.New()

	// Users
	mux.Post("/user/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/user/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Get("/user/profile", authMiddleware.ThenFunc(app.userHandler.GetProfile))
	mux.Post("/user/request_reset", standardMiddleware.ThenFunc(app.userHandler.RequestPasswordReset))
	mux.Post("/user/reset_password", standardMiddleware.ThenFunc(app.userHandler.ResetPassword))
	mux.Get("/user/ratings", authMiddleware.ThenFunc(app.userHandler.GetUserRatings))

	// Templates
	mux.Get("/templates/dropdown", standardMiddleware.ThenFunc(app.templateHandler.GetTemplatesForDropdown))
	mux.Del("/templates/:id/cache", authMiddleware.ThenFunc(app.templateHandler.InvalidateTemplate))
	mux.Get("/templates/:id", standardMiddleware.ThenFunc(app.templateHandler.GetTemplateByID))

	// Data sources
	mux.Get("/data_sources", standardMiddleware.ThenFunc(app.dataSourceHandler.GetDataSources))
	mux.Get("/data_sources/:id", standardMiddleware.ThenFunc(app.dataSourceHandler.GetDataSourceByID))

	// Items. Fixed paths register before :id so pat never swallows them.
	mux.Post("/items", authMiddleware.ThenFunc(app.itemHandler.CreateItem))
	mux.Post("/items/search", standardMiddleware.ThenFunc(app.itemHandler.SearchItems))
	mux.Get("/items/recommend", standardMiddleware.ThenFunc(app.itemHandler.RecommendByGenre))
	mux.Get("/items/recommend/:template_id", standardMiddleware.ThenFunc(app.itemHandler.RecommendByTemplate))
	mux.Get("/items/slug/:slug", standardMiddleware.ThenFunc(app.itemHandler.GetItemBySlug))
	mux.Get("/items/:id", standardMiddleware.ThenFunc(app.itemHandler.GetItemByID))

	// Ratings
	mux.Post("/ratings", authMiddleware.ThenFunc(app.ratingHandler.RateItem))
	mux.Get("/ratings/item/:item_id", standardMiddleware.ThenFunc(app.ratingHandler.GetRatingsForItem))
	mux.Get("/ratings/item/:item_id/me", authMiddleware.ThenFunc(app.ratingHandler.GetUserRating))

	// Uploads
	mux.Post("/uploads/presign", authMiddleware.ThenFunc(app.uploadHandler.PresignUpload))

	return mux
}
