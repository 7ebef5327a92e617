package templates

import (
	"os"

	"github.com/jonathan/resume-tailor/internal/types"
	"go.uber.org/zap"
)

// Extract reads the raw text of every identified section file.
// Failures never abort: an unset path or unreadable file yields an unavailable section with a reason.
func Extract(assets *types.AssetMap) types.ExtractedContent {
	log := zap.S().Named("templates")
	content := make(types.ExtractedContent, len(types.Sections()))

	for _, section := range types.Sections() {
		path := assets.File(section)
		if path == "" {
			content[section] = types.SectionContent{Reason: "no file identified"}
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			log.Warnw("failed to read section file", "section", section, "path", path, "error", err)
			content[section] = types.SectionContent{Path: path, Reason: err.Error()}
			continue
		}

		content[section] = types.SectionContent{Path: path, Raw: string(data), Available: true}
	}

	return content
}
