package handlers

import (
	"net/http"
	"strings"

	"barangay_portal_go/services"

	"github.com/labstack/echo/v4"
)

type chatbotRequest struct {
	Message string `json:"message"`
}

type chatbotResponse struct {
	Response string `json:"response"`
}

// ChatbotHandler answers a resident question as JSON
func ChatbotHandler(c echo.Context) error {
	var req chatbotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Message is required")
	}

	chatbot := services.NewChatbotService(getConfig(c))
	reply := chatbot.Reply(c.Request().Context(), message)
	return c.JSON(http.StatusOK, chatbotResponse{Response: reply})
}
