package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/bblair321/TeamChat/internal/auth"
	"github.com/bblair321/TeamChat/internal/store"
)

// APIHandlers provides HTTP handlers for the REST endpoints. These are plain
// record management around the real-time core: token issuance, channel
// listing and message history.
type APIHandlers struct {
	authService *auth.Service
	store       store.Store
	log         *zerolog.Logger
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(authService *auth.Service, st store.Store, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{
		authService: authService,
		store:       st,
		log:         logger,
	}
}

// RegisterRequest represents the registration request body.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents the authentication response body.
type AuthResponse struct {
	Token string `json:"token"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ChannelRequest represents the channel creation request body.
type ChannelRequest struct {
	Name string `json:"name" binding:"required,min=1,max=80"`
}

// ChannelResponse represents a channel in list/create responses.
type ChannelResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MessageResponse represents one history entry.
type MessageResponse struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	User    string `json:"user"`
	Time    string `json:"time"`
}

// Register handles user registration.
// POST /auth/register
func (h *APIHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid register request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	token, err := h.authService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "user already exists"})
			return
		}
		h.log.Error().Err(err).Str("username", req.Username).Msg("failed to register user")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	h.log.Info().Str("username", req.Username).Msg("user registered successfully")
	c.JSON(http.StatusCreated, AuthResponse{Token: token})
}

// Login handles user login.
// POST /auth/login
func (h *APIHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid login request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
			return
		}
		h.log.Error().Err(err).Str("username", req.Username).Msg("failed to login user")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	h.log.Info().Str("username", req.Username).Msg("user logged in successfully")
	c.JSON(http.StatusOK, AuthResponse{Token: token})
}

// ListChannels returns all channels.
// GET /chat/channels
func (h *APIHandlers) ListChannels(c *gin.Context) {
	channels, err := h.store.ListChannels(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list channels")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	resp := make([]ChannelResponse, 0, len(channels))
	for _, ch := range channels {
		resp = append(resp, ChannelResponse{ID: ch.ID, Name: ch.Name})
	}
	c.JSON(http.StatusOK, resp)
}

// CreateChannel creates a new channel.
// POST /chat/channels
func (h *APIHandlers) CreateChannel(c *gin.Context) {
	var req ChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid channel request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if _, err := h.store.GetChannelByName(c.Request.Context(), req.Name); err == nil {
		c.JSON(http.StatusConflict, ErrorResponse{Error: "channel already exists"})
		return
	}

	ch, err := h.store.CreateChannel(c.Request.Context(), req.Name)
	if err != nil {
		h.log.Error().Err(err).Str("name", req.Name).Msg("failed to create channel")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	h.log.Info().Str("name", ch.Name).Int64("channel_id", ch.ID).Msg("channel created")
	c.JSON(http.StatusCreated, ChannelResponse{ID: ch.ID, Name: ch.Name})
}

// ListMessages returns a channel's message history in timestamp order.
// GET /chat/messages/:channel_id
func (h *APIHandlers) ListMessages(c *gin.Context) {
	channelID, err := strconv.ParseInt(c.Param("channel_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid channel id"})
		return
	}

	messages, err := h.store.ListMessages(c.Request.Context(), channelID)
	if err != nil {
		h.log.Error().Err(err).Int64("channel_id", channelID).Msg("failed to list messages")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	names := make(map[int64]string)
	resp := make([]MessageResponse, 0, len(messages))
	for _, msg := range messages {
		name, ok := names[msg.UserID]
		if !ok {
			user, err := h.store.GetUserByID(c.Request.Context(), msg.UserID)
			if err != nil {
				name = "unknown"
			} else {
				name = user.Username
			}
			names[msg.UserID] = name
		}
		resp = append(resp, MessageResponse{
			ID:      msg.ID,
			Content: msg.Content,
			User:    name,
			Time:    msg.CreatedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, resp)
}
