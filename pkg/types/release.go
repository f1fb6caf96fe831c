package types

import "fmt"

// ReleaseFile is one uploaded build of a modpack.
// A server pack may link back to the client file it was built from
// (ParentProjectFileID); a client file may link forward to its server pack
// (ServerPackFileID).
type ReleaseFile struct {
	ID                  uint64  `json:"id"`
	DisplayName         string  `json:"displayName"`
	FileName            string  `json:"fileName"`
	DownloadURL         string  `json:"downloadUrl"`
	IsServerPack        bool    `json:"isServerPack"`
	ServerPackFileID    *uint64 `json:"serverPackFileId,omitempty"`
	ParentProjectFileID *uint64 `json:"parentProjectFileId,omitempty"`
}

func (f ReleaseFile) String() string {
	return fmt.Sprintf("%s (%d)", f.DisplayName, f.ID)
}

// ResolvedPair is a release together with its companion, if it has one.
// When a pair exists exactly one side is the server pack.
type ResolvedPair struct {
	Primary   ReleaseFile
	Companion *ReleaseFile
}

// ServerPack returns the server side of the pair, or nil
func (p ResolvedPair) ServerPack() *ReleaseFile {
	if p.Primary.IsServerPack {
		return &p.Primary
	}
	if p.Companion != nil && p.Companion.IsServerPack {
		return p.Companion
	}
	return nil
}

// ClientPack returns the client side of the pair, or nil
func (p ResolvedPair) ClientPack() *ReleaseFile {
	if !p.Primary.IsServerPack {
		return &p.Primary
	}
	if p.Companion != nil && !p.Companion.IsServerPack {
		return p.Companion
	}
	return nil
}

// PackInfo is the catalog's description of a project
type PackInfo struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	ClassID    uint64 `json:"classId"`
	MainFileID uint64 `json:"mainFileId"`
}

// Pagination describes one page of a file listing
type Pagination struct {
	Index       int `json:"index"`
	PageSize    int `json:"pageSize"`
	ResultCount int `json:"resultCount"`
	TotalCount  int `json:"totalCount"`
}

// FilesPage is one page of a project's files
type FilesPage struct {
	Files      []ReleaseFile `json:"data"`
	Pagination Pagination    `json:"pagination"`
}
