package types_test

import (
	"encoding/json"
	"testing"

	"github.com/arthur-debert/mcsi/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v uint64) *uint64 { return &v }

func TestResolvedPairSides(t *testing.T) {
	client := types.ReleaseFile{ID: 1, ServerPackFileID: ptr(2)}
	server := types.ReleaseFile{ID: 2, IsServerPack: true, ParentProjectFileID: ptr(1)}

	tests := []struct {
		name       string
		pair       types.ResolvedPair
		wantServer *uint64
		wantClient *uint64
	}{
		{"server primary with client companion", types.ResolvedPair{Primary: server, Companion: &client}, ptr(2), ptr(1)},
		{"client primary with server companion", types.ResolvedPair{Primary: client, Companion: &server}, ptr(2), ptr(1)},
		{"client only", types.ResolvedPair{Primary: types.ReleaseFile{ID: 5}}, nil, ptr(5)},
		{"server only", types.ResolvedPair{Primary: types.ReleaseFile{ID: 6, IsServerPack: true}}, ptr(6), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantServer == nil {
				assert.Nil(t, tt.pair.ServerPack())
			} else {
				require.NotNil(t, tt.pair.ServerPack())
				assert.Equal(t, *tt.wantServer, tt.pair.ServerPack().ID)
			}
			if tt.wantClient == nil {
				assert.Nil(t, tt.pair.ClientPack())
			} else {
				require.NotNil(t, tt.pair.ClientPack())
				assert.Equal(t, *tt.wantClient, tt.pair.ClientPack().ID)
			}
		})
	}
}

func TestClientManifestDecode(t *testing.T) {
	raw := `{
	  "minecraft": {
	    "version": "1.20.1",
	    "modLoaders": [
	      {"id": "forge-46.0.1", "primary": false},
	      {"id": "forge-47.2.0", "primary": true}
	    ]
	  },
	  "manifestType": "minecraftModpack",
	  "manifestVersion": 1,
	  "name": "Example Pack",
	  "files": [
	    {"projectID": 238222, "fileID": 4712866, "required": true},
	    {"projectID": 306612, "fileID": 4596743, "required": false}
	  ],
	  "overrides": "overrides"
	}`

	var m types.ClientManifest
	require.NoError(t, json.Unmarshal([]byte(raw), &m))

	primary, ok := m.PrimaryLoader()
	require.True(t, ok)
	assert.Equal(t, "forge-47.2.0", primary.ID)
	assert.Equal(t, "1.20.1", m.Minecraft.Version)
	assert.Equal(t, []types.ModReference{{ProjectID: 238222, FileID: 4712866, Required: true}}, m.RequiredMods())
	assert.Equal(t, "overrides", m.OverridesDir())
}

func TestClientManifestDefaults(t *testing.T) {
	var m types.ClientManifest
	_, ok := m.PrimaryLoader()
	assert.False(t, ok)
	assert.Equal(t, types.DefaultOverrides, m.OverridesDir())
	assert.Empty(t, m.RequiredMods())
}
