package assistant

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"velour/models"
	"velour/utils"

	"github.com/julienschmidt/httprouter"
)

// Generator produces one assistant turn. The primary (external model) and
// the deterministic rule set both implement it; selection is by
// availability, with the rule set as the hard fallback.
type Generator interface {
	Available() bool
	Generate(req models.ChatRequest) (models.ChatReply, error)
}

var (
	primary  Generator = &llmGenerator{}
	fallback Generator = &ruleGenerator{}
)

// Reply runs one stateless request/reply turn.
func Reply(req models.ChatRequest) models.ChatReply {
	if primary.Available() {
		if reply, err := primary.Generate(req); err == nil {
			return reply
		} else {
			log.Printf("assistant: primary generator failed, using rules: %v", err)
		}
	}
	reply, _ := fallback.Generate(req)
	return reply
}

// ChatHandler serves POST /api/chat.
func ChatHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Message is required")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, Reply(req))
}
