package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/abhisek/mathwhiz/internal/llm"
	"github.com/abhisek/mathwhiz/internal/round"
	"github.com/abhisek/mathwhiz/internal/verify"
)

// AnswerRequest is the body of POST /api/round/answer.
type AnswerRequest struct {
	UserSum *Number `json:"userSum"`
}

// VerifyRequest is the body of POST /api/verify.
type VerifyRequest struct {
	Num1    *Number `json:"num1"`
	Num2    *Number `json:"num2"`
	UserSum *Number `json:"userSum"`
}

// FailureResponse is returned with 502 when the model could not verify.
type FailureResponse struct {
	Error  string       `json:"error"`
	Notice round.Notice `json:"notice"`
}

// getRound handles GET /api/round
func (s *Server) getRound(w http.ResponseWriter, r *http.Request) {
	sess, rd := s.loadRound(r)
	if rd == nil {
		rd = round.New(s.gen)
	}
	if !s.persist(w, r, sess, rd) {
		return
	}
	writeJSON(w, http.StatusOK, rd)
}

// newRound handles POST /api/round
func (s *Server) newRound(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.loadRound(r)
	rd := round.New(s.gen)
	if !s.persist(w, r, sess, rd) {
		return
	}
	writeJSON(w, http.StatusOK, rd)
}

// answer handles POST /api/round/answer
func (s *Server) answer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserSum == nil {
		writeError(w, http.StatusBadRequest, "userSum is required")
		return
	}

	sess, rd := s.loadRound(r)
	if rd == nil {
		writeError(w, http.StatusConflict, "no round in progress")
		return
	}

	ctx := llm.WithRound(r.Context(), rd.ID)
	err := rd.Verify(ctx, s.verifier, req.UserSum.Int())
	if errors.Is(err, round.ErrInFlight) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	if !s.persist(w, r, sess, rd) {
		return
	}
	if err != nil {
		log.Printf("verify round %s: %v", rd.ID, err)
		writeJSON(w, http.StatusBadGateway, rd)
		return
	}
	writeJSON(w, http.StatusOK, rd)
}

// verify handles POST /api/verify
func (s *Server) verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Num1 == nil || req.Num2 == nil || req.UserSum == nil {
		writeError(w, http.StatusBadRequest, "num1, num2 and userSum are required")
		return
	}

	a := verify.Attempt{Num1: req.Num1.Int(), Num2: req.Num2.Int(), UserSum: req.UserSum.Int()}
	res, err := s.verifier.Verify(r.Context(), a)
	if err != nil {
		log.Printf("verify %d + %d: %v", a.Num1, a.Num2, err)
		writeJSON(w, http.StatusBadGateway, FailureResponse{
			Error:  verify.ErrFailed.Error(),
			Notice: round.FailureNotice,
		})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// persist saves the round and answers 500 if it could not be stored.
func (s *Server) persist(w http.ResponseWriter, r *http.Request, sess *sessions.Session, rd *round.Round) bool {
	if err := s.saveRound(w, r, sess, rd); err != nil {
		log.Printf("session save error: %v", err)
		writeError(w, http.StatusInternalServerError, "could not save round")
		return false
	}
	return true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
