package types

// ClientManifestFile is the name of the manifest every client pack archive
// carries at its root
const ClientManifestFile = "manifest.json"

// DefaultOverrides is the overrides directory used when the manifest names none
const DefaultOverrides = "overrides"

// ClientManifest is the CurseForge client pack manifest
type ClientManifest struct {
	ManifestType    string         `json:"manifestType"`
	ManifestVersion int            `json:"manifestVersion"`
	Name            string         `json:"name"`
	Version         string         `json:"version"`
	Author          string         `json:"author"`
	Minecraft       MinecraftBlock `json:"minecraft"`
	Files           []ModReference `json:"files"`
	Overrides       string         `json:"overrides"`
}

// MinecraftBlock holds the game version and its loaders
type MinecraftBlock struct {
	Version    string           `json:"version"`
	ModLoaders []ModLoaderEntry `json:"modLoaders"`
}

// ModLoaderEntry is one loader listed in a client manifest
type ModLoaderEntry struct {
	ID      string `json:"id"`
	Primary bool   `json:"primary"`
}

// ModReference points at one file of one project
type ModReference struct {
	ProjectID uint64 `json:"projectID"`
	FileID    uint64 `json:"fileID"`
	Required  bool   `json:"required"`
}

// PrimaryLoader returns the loader marked primary, if any
func (m ClientManifest) PrimaryLoader() (ModLoaderEntry, bool) {
	for _, l := range m.Minecraft.ModLoaders {
		if l.Primary {
			return l, true
		}
	}
	return ModLoaderEntry{}, false
}

// OverridesDir returns the overrides directory name
func (m ClientManifest) OverridesDir() string {
	if m.Overrides == "" {
		return DefaultOverrides
	}
	return m.Overrides
}

// RequiredMods returns the references marked required, in manifest order
func (m ClientManifest) RequiredMods() []ModReference {
	var mods []ModReference
	for _, f := range m.Files {
		if f.Required {
			mods = append(mods, f)
		}
	}
	return mods
}
