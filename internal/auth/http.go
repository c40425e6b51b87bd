// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lehoangduc/mangamirror/internal/platform/middleware"
	requestutil "github.com/lehoangduc/mangamirror/internal/platform/request"
	"github.com/lehoangduc/mangamirror/internal/platform/respond"
	"github.com/lehoangduc/mangamirror/internal/platform/validate"
)

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// RegisterRoutes mounts the account endpoints on the given router.
//
// # Endpoints
//   - POST /register : Creates a new account.
//   - POST /login    : Authenticates and returns a signed token.
//   - POST /logout   : Stateless no-op (client discards its token).
//   - GET  /me       : Current user profile (authenticated).
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.me)
	})
}

// # Request Payloads

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse carries the signed token plus the public user profile.
type loginResponse struct {
	Result  string `json:"result"`
	Message string `json:"message"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}

/*
register handles the creation of a new user account.

POST /register

Response:
  - 201: Account created.
  - 400: Bad input or validation failure.
  - 409: Username or email already exists.
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("username", input.Username).
		MinLen("username", input.Username, 3).
		Required("email", input.Email).
		Email("email", input.Email).
		Required("password", input.Password).
		MinLen("password", input.Password, 8)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	_, err := handler.authService.Register(request.Context(), RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Registration successful. Please log in.")
}

/*
login authenticates a user and issues a session token.

POST /login

Response:
  - 200: Signed token and user profile.
  - 401: Invalid credentials (generic message).
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("username", input.Username)
	validator.Required("password", input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, loginResponse{
		Result:  "ok",
		Message: "Login successful",
		Token:   session.Token,
		User:    session.User,
	})
}

// logout is a stateless no-op: the session lives entirely in the signed
// token, so the client simply discards it.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	respond.Message(writer, "Logged out (client should discard its token)")
}

// me returns the authenticated user's profile.
//
// GET /me
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.CurrentUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
