package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/lazypower/petd/internal/game"
	"github.com/lazypower/petd/internal/llm"
	"github.com/lazypower/petd/internal/pet"
)

// maxAudioBytes caps uploads to /api/stt.
const maxAudioBytes = 25 << 20

type chatResponse struct {
	Response *llm.ChatResult `json:"response"`
	Profile  *pet.Profile    `json:"profile"`
}

func (s *Server) requireCompanion(w http.ResponseWriter) bool {
	if s.companion == nil {
		writeErrorMsg(w, http.StatusServiceUnavailable, "chat not configured")
		return false
	}
	return true
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Messages []llm.Message `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Messages) == 0 {
		writeErrorMsg(w, http.StatusBadRequest, "messages required")
		return
	}
	if !s.requireCompanion(w) {
		return
	}

	ctx := r.Context()
	p, err := s.game.Fetch(ctx, s.now())
	if err != nil {
		writeError(w, err)
		return
	}
	result, err := s.companion.Reply(ctx, p, req.Messages)
	if err != nil {
		writeError(w, err)
		return
	}

	p, err = s.game.ApplyDecision(ctx, game.Decision{
		Action: result.Action,
		Equip:  result.ItemIDs(),
	}, s.now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Response: result, Profile: p})
}

func (s *Server) handleActionFeedback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid json")
		return
	}
	action, err := pet.ParseAction(req.Action)
	if err != nil {
		writeError(w, err)
		return
	}
	s.reply(w, r, func(*pet.Profile) llm.Message {
		return llm.ActionFeedbackMessage(action)
	})
}

func (s *Server) handleReminder(w http.ResponseWriter, r *http.Request) {
	s.reply(w, r, llm.ReminderMessage)
}

// reply asks the companion for a one-off message. The model's decision is
// not applied.
func (s *Server) reply(w http.ResponseWriter, r *http.Request, prompt func(*pet.Profile) llm.Message) {
	if !s.requireCompanion(w) {
		return
	}
	ctx := r.Context()
	p, err := s.game.Fetch(ctx, s.now())
	if err != nil {
		writeError(w, err)
		return
	}
	result, err := s.companion.Reply(ctx, p, []llm.Message{prompt(p)})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Response: result, Profile: p})
}

func (s *Server) requireVoice(w http.ResponseWriter) bool {
	if s.voice == nil {
		writeErrorMsg(w, http.StatusServiceUnavailable, "voice not configured")
		return false
	}
	return true
}

func writeAudio(w http.ResponseWriter, audio []byte) {
	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	w.Write(audio)
}

func (s *Server) handleTTS(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid json")
		return
	}
	if !s.requireVoice(w) {
		return
	}
	audio, err := s.voice.TextToSpeech(r.Context(), req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeAudio(w, audio)
}

func (s *Server) handleSFX(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid json")
		return
	}
	if !s.requireVoice(w) {
		return
	}
	audio, err := s.voice.SoundEffect(r.Context(), req.Prompt)
	if err != nil {
		writeError(w, err)
		return
	}
	writeAudio(w, audio)
}

func (s *Server) handleSTT(w http.ResponseWriter, r *http.Request) {
	if !s.requireVoice(w) {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxAudioBytes)
	f, hdr, err := r.FormFile("audio")
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "audio file required")
		return
	}
	defer f.Close()

	audio, err := io.ReadAll(f)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "read audio failed")
		return
	}
	text, err := s.voice.SpeechToText(r.Context(), audio, hdr.Filename)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}
