package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"flight-finder/internal/flightdata"
	"flight-finder/internal/repository"
	"flight-finder/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users      service.UserService
	flights    flightdata.Fetcher
	clientPath string
	logger     logrus.FieldLogger
}

func NewHandler(users service.UserService, flights flightdata.Fetcher, clientPath string, logger logrus.FieldLogger) *Handler {
	return &Handler{
		users:      users,
		flights:    flights,
		clientPath: clientPath,
		logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	router.GET("/flights/:flightNumber/:flightDate/:departureAirport", bearerAuth(h.users), h.flightLookup)
	router.GET("/find/cookie/:accessToken", h.cookieLogin)
	router.POST("/fblogin", h.facebookLogin)
	router.POST("/login", h.login)
	router.POST("/signup", h.signup)
	router.POST("/logout", bearerAuth(h.users), h.logout)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	if h.clientPath != "" {
		router.Static("/static", h.clientPath)
		router.StaticFile("/", h.clientPath+"/index.html")
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type facebookLoginRequest struct {
	Profile struct {
		Email string `json:"email"`
		Name  string `json:"name"`
		ID    string `json:"id"`
	} `json:"profile"`
	TokenDetail struct {
		AccessToken string `json:"accessToken"`
	} `json:"tokenDetail"`
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"displayMessage": err.Error()})
		return
	}

	if verr := service.CheckSignup(req.Name, req.Email, req.Password); verr != nil {
		c.JSON(verr.Status, gin.H{"displayMessage": verr.Message})
		return
	}

	user, err := h.users.SignUp(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFacebookAccount):
			c.JSON(http.StatusConflict, gin.H{"displayMessage": "This account was registered with Facebook. Please use the Facebook login option."})
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"displayMessage": "That email address is already on file. Try logging in."})
		default:
			h.logger.WithError(err).Error("signup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, user.Summary())
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"displayMessage": err.Error()})
		return
	}

	if verr := service.CheckLogin(req.Email, req.Password); verr != nil {
		c.JSON(verr.Status, gin.H{"displayMessage": verr.Message})
		return
	}

	user, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailNotRegistered):
			c.JSON(http.StatusUnauthorized, gin.H{"displayMessage": "The email address you entered is not registered with us."})
		case errors.Is(err, service.ErrIncorrectPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"displayMessage": "The password you entered is incorrect."})
		default:
			h.logger.WithError(err).Error("login failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, user.Summary())
}

func (h *Handler) facebookLogin(c *gin.Context) {
	var req facebookLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"displayMessage": err.Error()})
		return
	}

	profile := service.FacebookProfile{
		ID:    req.Profile.ID,
		Name:  req.Profile.Name,
		Email: req.Profile.Email,
	}
	user, err := h.users.FacebookLogin(c.Request.Context(), profile, req.TokenDetail.AccessToken)
	if err != nil {
		h.logger.WithError(err).Error("facebook login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user.Summary())
}

// cookieLogin restores a session after a client reload: the client presents
// the token it kept in a cookie and gets its user summary back.
func (h *Handler) cookieLogin(c *gin.Context) {
	token := c.Param("accessToken")

	user, err := h.users.FindByAccessToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"displayMessage": "User not found"})
			return
		}
		h.logger.WithError(err).Error("cookie login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user.Summary())
}

func (h *Handler) flightLookup(c *gin.Context) {
	flightNumber := c.Param("flightNumber")
	flightDate := c.Param("flightDate")
	departureAirport := c.Param("departureAirport")

	info, err := h.flights.FlightInfo(c.Request.Context(), flightNumber, flightDate, departureAirport)
	if err != nil {
		h.logger.WithError(err).Warn("flight lookup failed")
		c.JSON(http.StatusNotFound, gin.H{"displayMessage": "Information for that flight not found."})
		return
	}

	c.JSON(http.StatusOK, info)
}

// logout acknowledges the request; the stored token stays valid and the
// client clears its own state.
func (h *Handler) logout(c *gin.Context) {
	if user, ok := currentUser(c); ok {
		h.logger.WithField("user", user.ID).Info("user logged out")
	}
	c.Status(http.StatusOK)
}
