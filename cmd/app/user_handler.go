package main

import (
	"errors"
	"net/http"

	"github.com/mirrelia/quillpost/internal/blogservice"
	"github.com/mirrelia/quillpost/internal/common"
	"github.com/mirrelia/quillpost/internal/sessionservice"
	"github.com/mirrelia/quillpost/internal/userservice"
)

type registerUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (app *application) registerHandler(w http.ResponseWriter, r *http.Request) {
	var input registerUserRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	_, err = app.userService.Register(r.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrDuplicateUsername):
			app.conflictErrorResponse(w, r, "username already exists")
		case errors.Is(err, userservice.ErrDuplicateEmail):
			app.conflictErrorResponse(w, r, "email already exists")
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"message": "user created successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type loginUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var input loginUserRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user, err := app.userService.Login(r.Context(), input.Username, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrAuthenticationFailure):
			app.invalidCredentialsErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			app.invalidCredentialsErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	token, err := app.sessionService.Create(r.Context(), &sessionservice.Session{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.setSessionCookie(w, token)

	err = app.writeJSON(w, http.StatusOK, envelope{
		"message":  "login successful",
		"user_id":  user.ID,
		"username": user.Username,
		"email":    user.Email,
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err == nil {
		if err := app.sessionService.Destroy(r.Context(), cookie.Value); err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
	}

	// expire the cookie client-side as well
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "logged out successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) checkAuthHandler(w http.ResponseWriter, r *http.Request) {
	session := app.getSessionContext(r)

	var env envelope
	if session == nil {
		env = envelope{"authenticated": false}
	} else {
		env = envelope{
			"authenticated": true,
			"user_id":       session.UserID,
			"username":      session.Username,
		}
	}

	err := app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	session := app.getSessionContext(r)

	user, err := app.userService.GetUserByID(r.Context(), session.UserID)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	blogs, err := app.blogService.GetBlogsByUserID(r.Context(), session.UserID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if blogs == nil {
		blogs = []blogservice.Blog{}
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"user": user, "blogs": blogs}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}
