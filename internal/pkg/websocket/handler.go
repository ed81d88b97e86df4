package websocket

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/coursesched/internal/app/models/dto"
)

// Handler upgrades calendar feed requests
type Handler struct {
	hub    *Hub
	logger zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger,
	}
}

// ClientsCount reports how many calendar subscribers are connected
func (h *Handler) ClientsCount() int {
	return h.hub.ClientsCount()
}

// HandleConnection godoc
// @Summary Subscribe to the live calendar feed
// @Description Upgrades to a WebSocket that streams session, enrollment and course events. The optional topic query parameter is a comma separated list of all, course:<id>, room:<id> or lecturer:<id>.
// @Tags calendar, websocket
// @Param topic query string false "Topics to subscribe to" default(all)
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 400 {object} dto.APIResponse "Invalid topic"
// @Router /ws/calendar [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	topics := strings.Split(c.DefaultQuery("topic", TopicAll), ",")
	for i, t := range topics {
		topics[i] = strings.TrimSpace(t)
		if err := ValidateTopic(topics[i]); err != nil {
			c.JSON(http.StatusBadRequest, dto.APIResponse{
				Error:     dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error()).WithField("topic"),
				Timestamp: time.Now(),
			})
			return
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := newClient(h.hub, conn, topics, h.logger.With().Str("remoteAddr", conn.RemoteAddr().String()).Logger())
	h.hub.register <- client

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Strs("topics", topics).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
