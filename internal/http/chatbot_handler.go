package http

import (
	"encoding/json"
	"net/http"

	"github.com/devaraji08/HarvestHubFinal/internal/chatbot"
)

type ChatbotHandler struct {
	bot *chatbot.Bot
}

func NewChatbotHandler(bot *chatbot.Bot) *ChatbotHandler {
	return &ChatbotHandler{bot: bot}
}

type ChatRequestDTO struct {
	Message string `json:"message"`
}

type ChatResponseDTO struct {
	Reply string `json:"reply"`
}

func (h *ChatbotHandler) Greeting(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, ChatResponseDTO{Reply: h.bot.Greeting()})
}

func (h *ChatbotHandler) Message(w http.ResponseWriter, r *http.Request) {
	var req ChatRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Message == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "message is required")
		return
	}

	respondJSON(w, http.StatusOK, ChatResponseDTO{Reply: h.bot.Reply(req.Message)})
}
