package types

// StagingResult describes the output of one staging run
type StagingResult struct {
	TempFolder   string             `json:"temp_folder"`
	UpdatedFiles map[Section]string `json:"updated_files"`
	PDFPath      string             `json:"pdf_path,omitempty"`
	PageCount    int                `json:"page_count,omitempty"`
	Overwrote    bool               `json:"overwrote,omitempty"`
}
