package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemo-app/mnemo/pkg/domain/model"
	"github.com/mnemo-app/mnemo/pkg/domain/types"
	"github.com/mnemo-app/mnemo/pkg/usecase"
	"github.com/mnemo-app/mnemo/pkg/utils/errutil"
)

// chatRequest is the JSON envelope of POST /api/chat
type chatRequest struct {
	UserID   string              `json:"user_id"`
	UserName string              `json:"user_name"`
	Email    string              `json:"email,omitempty"`
	Mode     string              `json:"mode,omitempty"`
	Messages []model.ChatMessage `json:"messages"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func chatHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid chat request body"), http.StatusBadRequest)
			return
		}
		if len(req.Messages) == 0 {
			errutil.HandleHTTP(ctx, w, goerr.New("messages are required"), http.StatusBadRequest)
			return
		}

		reply, err := uc.Chat(ctx, usecase.ChatInput{
			UserID:   types.UserID(req.UserID),
			UserName: req.UserName,
			Email:    req.Email,
			Messages: req.Messages,
			Mode:     req.Mode,
		})
		if err != nil {
			// A failed main-model call is the only user-visible error class;
			// the client gets a generic failure, never provider detail.
			errutil.HandleHTTP(ctx, w, err, http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(chatResponse{Reply: reply}); err != nil {
			errutil.Handle(ctx, err, "failed to encode chat response")
		}
	}
}
