package handlers

import (
	"errors"
	"strings"

	"finanzas-chat/internal/dto"
	"finanzas-chat/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatHandler struct {
	session *service.Session
	logger  *zap.Logger
}

func NewChatHandler(session *service.Session, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		session: session,
		logger:  logger,
	}
}

// SendMessage godoc
// @Summary Send a chat message
// @Description Logs an expense when the message describes one ("Gasté 10 soles en taxi"), otherwise answers it as a conversation
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Chat message"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /chat [post]
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if strings.TrimSpace(req.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message is required",
		})
	}

	turn, err := h.session.Send(c.UserContext(), req.Message)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Message is required",
			})
		}
		h.logger.Error("Failed to process message", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process message",
		})
	}

	return c.JSON(dto.ChatResponse{
		UserMessage:      dto.NewMessageResponse(turn.User),
		AssistantMessage: dto.NewMessageResponse(turn.Assistant),
		Expense:          dto.NewExpenseResponse(turn.Expense),
	})
}

// ListMessages godoc
// @Summary Chat transcript
// @Description Get every message of the session in order, starting with the welcome message
// @Tags chat
// @Produce json
// @Success 200 {array} dto.MessageResponse
// @Router /messages [get]
func (h *ChatHandler) ListMessages(c *fiber.Ctx) error {
	messages := h.session.Messages()

	response := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		response = append(response, dto.NewMessageResponse(m))
	}

	return c.JSON(response)
}
