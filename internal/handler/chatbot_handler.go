package handler

import (
	"go-toko-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ChatbotHandler struct {
	service service.ChatbotService
}

func NewChatbotHandler(s service.ChatbotService) *ChatbotHandler {
	return &ChatbotHandler{service: s}
}

// ChatRequest represents the chatbot request body
type ChatRequest struct {
	Message string `json:"message"`
}

// Chat answers an admin question about purchase data
// POST /chatbot
func (h *ChatbotHandler) Chat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Message == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Message is required"})
	}

	reply := h.service.Answer(c.UserContext(), req.Message)
	return c.JSON(fiber.Map{"reply": reply})
}
