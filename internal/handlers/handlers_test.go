package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/emilythestrangee/factfeed/backend/internal/auth"
	"github.com/emilythestrangee/factfeed/backend/internal/content"
	"github.com/emilythestrangee/factfeed/backend/internal/ranking"
	"github.com/emilythestrangee/factfeed/backend/internal/votes"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: \"Poll\"", votes.ErrInvalidTargetKind), http.StatusBadRequest},
		{votes.ErrInvalidVoteValue, http.StatusBadRequest},
		{ranking.ErrUnsupportedSortType, http.StatusBadRequest},
		{content.ErrInvalidLevel, http.StatusBadRequest},
		{auth.ErrWeakPassword, http.StatusBadRequest},
		{fmt.Errorf("wrap: %w", votes.ErrTargetNotFound), http.StatusNotFound},
		{fmt.Errorf("article 3: %w", content.ErrNotFound), http.StatusNotFound},
		{votes.ErrPersistenceConflict, http.StatusConflict},
		{gorm.ErrDuplicatedKey, http.StatusConflict},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		status, msg := statusFor(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		if status == http.StatusInternalServerError {
			assert.NotContains(t, msg, "disk")
		}
	}
}

func TestSameVoter(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"", true},
		{"null", true},
		{"7", true},
		{"7.0", true},
		{`"7"`, true},
		{"8", false},
		{`"seven"`, false},
		{"true", false},
		{"{}", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sameVoter(json.RawMessage(tt.raw), 7), tt.raw)
	}
}
