package model

type ResolveRequest struct {
	Names []string `json:"names"`
}

// CopyRequest starts one copy batch. Names are resolved against the source
// folder; Files carries direct selections from a browsing layer. When both
// are present the direct selection wins, mirroring the original picker flow.
type CopyRequest struct {
	SourceFolderID string     `json:"source_folder_id"`
	DestFolderID   string     `json:"destination_folder_id"`
	Names          []string   `json:"names,omitempty"`
	Files          []FilePair `json:"files,omitempty"`
}

type LoginRequest struct {
	Passphrase string `json:"passphrase"`
}
