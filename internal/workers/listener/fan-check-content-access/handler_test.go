package fancheckcontentaccess

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fanclub/internal/common/errors"
	"fanclub/internal/common/logger"
	"fanclub/internal/common/validation"
	"fanclub/internal/store/storetest"
)

func createTestHandler(t *testing.T) *Handler {
	t.Helper()
	return NewHandler(DefaultConfig(), storetest.New(t), logger.NewTestLogger(t))
}

func TestHandler_Execute_SingleContent(t *testing.T) {
	h := createTestHandler(t)

	tests := []struct {
		name      string
		input     Input
		hasAccess bool
	}{
		{"tier in access list", Input{ContentID: "content-luna-studio-clip"}, true},
		{"tier not in access list", Input{ContentID: "content-luna-merch"}, false},
		{"canceled subscription", Input{ContentID: "content-owls-pick"}, false},
		{"other user, lowest tier", Input{UserID: "user-2", ContentID: "content-luna-voice-note"}, true},
		{"other user, locked", Input{UserID: "user-2", ContentID: "content-luna-playlist"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := h.Execute(context.Background(), &tt.input)
			require.NoError(t, err)
			require.NotNil(t, out.HasAccess)
			assert.Equal(t, tt.hasAccess, *out.HasAccess)
		})
	}
}

func TestHandler_Execute_ArtistListing(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{ArtistID: "artist-1"})
	require.NoError(t, err)
	assert.Nil(t, out.HasAccess)
	assert.ElementsMatch(t, []string{"content-luna-voice-note", "content-luna-studio-clip", "content-luna-playlist"}, out.Accessible)
	assert.Equal(t, []string{"content-luna-merch"}, out.Locked)

	result, err := validation.ValidateStruct(out, GetOutputSchema())
	require.NoError(t, err)
	assert.True(t, result.Valid, result.GetErrorMessages())
}

func TestHandler_Execute_Errors(t *testing.T) {
	h := createTestHandler(t)

	tests := []struct {
		name  string
		input Input
		code  errors.ErrorCode
	}{
		{"nothing to check", Input{}, errors.ErrCodeValidationFailed},
		{"unknown content", Input{ContentID: "content-missing"}, errors.ErrCodeContentNotFound},
		{"unknown artist", Input{ArtistID: "artist-99"}, errors.ErrCodeArtistNotFound},
		{"unknown user", Input{UserID: "user-99", ArtistID: "artist-1"}, errors.ErrCodeUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Execute(context.Background(), &tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.CodeOf(err))
		})
	}
}
