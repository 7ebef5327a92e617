package types

// SectionContent is the best-effort result of reading one section's source file.
// When Available is false, Raw is empty and Reason says why the content could not be read.
type SectionContent struct {
	Path      string `json:"path,omitempty"`
	Raw       string `json:"raw,omitempty"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// RawOrNil returns a pointer to the raw text, or nil when the section is unavailable
func (c SectionContent) RawOrNil() *string {
	if !c.Available {
		return nil
	}
	raw := c.Raw
	return &raw
}

// ExtractedContent maps each section to the text read from the template
type ExtractedContent map[Section]SectionContent

// Get returns the content for a section; a section never extracted is reported as unavailable
func (e ExtractedContent) Get(section Section) SectionContent {
	if c, ok := e[section]; ok {
		return c
	}
	return SectionContent{Reason: "section not extracted"}
}

// TailoredContent maps each section to the rewritten LaTeX returned by the rewrite service.
// A missing or empty entry means the service produced no text for that section.
type TailoredContent map[Section]string
