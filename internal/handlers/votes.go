package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/factfeed/backend/internal/middleware"
	"github.com/emilythestrangee/factfeed/backend/internal/votes"
)

type VoteHandler struct {
	ledger *votes.Ledger
	scores *votes.Aggregator
}

func NewVoteHandler(ledger *votes.Ledger, scores *votes.Aggregator) *VoteHandler {
	return &VoteHandler{ledger: ledger, scores: scores}
}

// voteRequest keeps value raw so that "1", 1 and 1.0 are all accepted while
// true, null and 0.5 are not.
type voteRequest struct {
	UserID json.RawMessage `json:"user_id"`
	Value  json.RawMessage `json:"value"`
}

// targetRef reads :type and :id. The kind is checked before the id so an
// unknown type is always reported as such.
func targetRef(c *gin.Context) (votes.Ref, bool) {
	kind, err := votes.ParseKind(c.Param("type"))
	if err != nil {
		respondError(c, err)
		return votes.Ref{}, false
	}
	id, ok := paramID(c, "id")
	if !ok {
		return votes.Ref{}, false
	}
	return votes.Ref{Kind: kind, ID: id}, true
}

// GetVotes returns the like/dislike tally of a target.
func (h *VoteHandler) GetVotes(c *gin.Context) {
	ref, ok := targetRef(c)
	if !ok {
		return
	}

	tally, err := h.scores.Tally(c.Request.Context(), ref)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tally)
}

// CastVote records, changes or retracts the caller's vote on a target.
func (h *VoteHandler) CastVote(c *gin.Context) {
	voterID, ok := extractUserID(c)
	if !ok {
		return
	}
	ref, ok := targetRef(c)
	if !ok {
		return
	}

	var input voteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	if len(input.Value) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value is required"})
		return
	}
	if !sameVoter(input.UserID, voterID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only vote as yourself"})
		return
	}

	value, err := votes.CoerceValue(input.Value)
	if err != nil {
		respondError(c, err)
		return
	}

	outcome, err := h.ledger.CastVote(c.Request.Context(), voterID, ref, value)
	if err != nil {
		respondError(c, err)
		return
	}
	slog.Info("vote cast",
		"voter_id", voterID,
		"target", ref.String(),
		"value", int(value),
		"outcome", string(outcome),
		"request_id", c.GetString(middleware.RequestIDKey),
	)

	tally, err := h.scores.Tally(c.Request.Context(), ref)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":       "vote recorded",
		"votable_type": ref.Kind,
		"votable_id":   ref.ID,
		"value":        int(value),
		"likes":        tally.Likes,
		"dislikes":     tally.Dislikes,
	})
}

// GetMyVote returns the caller's current vote on a target, 0 when none.
func (h *VoteHandler) GetMyVote(c *gin.Context) {
	voterID, ok := extractUserID(c)
	if !ok {
		return
	}
	ref, ok := targetRef(c)
	if !ok {
		return
	}

	value, err := h.ledger.GetVote(c.Request.Context(), voterID, ref)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"votable_type": ref.Kind,
		"votable_id":   ref.ID,
		"value":        int(value),
	})
}

// sameVoter reports whether an optional user_id from the body names the
// authenticated caller. Absent or null means the caller.
func sameVoter(raw json.RawMessage, voterID int) bool {
	if len(raw) == 0 || string(raw) == "null" {
		return true
	}
	var claimed any
	if err := json.Unmarshal(raw, &claimed); err != nil {
		return false
	}
	switch v := claimed.(type) {
	case float64:
		return v == float64(voterID)
	case string:
		n, err := strconv.Atoi(v)
		return err == nil && n == voterID
	}
	return false
}
