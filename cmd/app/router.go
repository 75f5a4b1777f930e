package main

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	// auth
	router.HandlerFunc(http.MethodPost, "/register", app.registerHandler)
	router.HandlerFunc(http.MethodPost, "/login", app.loginHandler)
	router.HandlerFunc(http.MethodPost, "/logout", app.requireSession(app.logoutHandler))
	router.HandlerFunc(http.MethodGet, "/check_auth", app.checkAuthHandler)
	router.HandlerFunc(http.MethodGet, "/dashboard", app.requireSession(app.dashboardHandler))

	// blogs
	router.HandlerFunc(http.MethodPost, "/create_blog", app.requireSession(app.createBlogHandler))
	router.HandlerFunc(http.MethodGet, "/blog/:id", app.getBlogHandler)
	router.HandlerFunc(http.MethodDelete, "/blog/:id", app.requireSession(app.deleteBlogHandler))
	router.HandlerFunc(http.MethodGet, "/feed", app.feedHandler)
	router.HandlerFunc(http.MethodGet, "/simple_feed", app.simpleFeedHandler)
	router.HandlerFunc(http.MethodGet, "/minimal_feed", app.minimalFeedHandler)

	// likes and comments
	router.HandlerFunc(http.MethodPost, "/blog/:id/like", app.requireSession(app.toggleLikeHandler))
	router.HandlerFunc(http.MethodGet, "/blog/:id/comments", app.listCommentsHandler)
	router.HandlerFunc(http.MethodPost, "/blog/:id/comment", app.requireSession(app.addCommentHandler))

	// media
	router.HandlerFunc(http.MethodPost, "/upload_media", app.requireSession(app.uploadMediaHandler))
	router.HandlerFunc(http.MethodGet, "/uploads/*filepath", app.serveUploadHandler)

	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthCheckHandler)

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   []string{app.config.FrontendOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	})

	return app.recoverPanic(app.logRequest(corsHandler(app.authenticate(router))))
}
