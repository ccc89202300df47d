package tournamenttypes

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity_Variants(t *testing.T) {
	anon := AnonymousIdentity("device-1")
	id, ok := anon.Anonymous()
	assert.True(t, ok)
	assert.Equal(t, AnonymousSessionID("device-1"), id)
	_, ok = anon.User()
	assert.False(t, ok)
	assert.Equal(t, "device_id", anon.Column())

	user := UserIdentity("user-9")
	uid, ok := user.User()
	assert.True(t, ok)
	assert.Equal(t, UserID("user-9"), uid)
	assert.Equal(t, "user_id", user.Column())

	assert.ErrorIs(t, Identity{}.Validate(), ErrEmptyIdentity)
	assert.ErrorIs(t, AnonymousIdentity("").Validate(), ErrEmptyIdentity)
}

func TestIdentity_JSON(t *testing.T) {
	data, err := json.Marshal(UserIdentity("user-9"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"user","id":"user-9"}`, string(data))

	var decoded Identity
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, UserIdentity("user-9"), decoded)

	assert.Error(t, json.Unmarshal([]byte(`{"kind":"robot","id":"x"}`), &decoded))
}

func TestPlayer_SetIdentity(t *testing.T) {
	p := &Player{}
	p.SetIdentity(AnonymousIdentity("device-1"))
	require.NotNil(t, p.DeviceID)
	assert.Nil(t, p.UserID)
	assert.Equal(t, AnonymousIdentity("device-1"), p.Identity())

	p.SetIdentity(UserIdentity("user-1"))
	assert.Nil(t, p.DeviceID)
	assert.Equal(t, UserIdentity("user-1"), p.Identity())
}

func TestNormalizeRoomCode(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "abc12", want: "ABC12"},
		{in: " q ", want: "Q"},
		{in: "", wantErr: true},
		{in: "TOOLONG", wantErr: true},
		{in: "AB-1", wantErr: true},
		{in: "ÄB", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeRoomCode(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRoomCode)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
