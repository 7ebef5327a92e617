package types

import "path/filepath"

// Section identifies a rewritable part of a resume template
type Section string

const (
	// SectionExperience is the work experience block (experience.tex)
	SectionExperience Section = "experience"
	// SectionSkills is the skills/technologies block
	SectionSkills Section = "skills"
)

// Sections returns every section in processing order
func Sections() []Section {
	return []Section{SectionExperience, SectionSkills}
}

// AssetMap identifies a matched template directory and the content files selected inside it.
// An empty file path means no file was identified for that section.
type AssetMap struct {
	Root           string `json:"root"`
	ExperienceFile string `json:"experience_file,omitempty"`
	SkillsFile     string `json:"skills_file,omitempty"`
}

// HasExperience reports whether an experience file was identified
func (a *AssetMap) HasExperience() bool {
	return a.ExperienceFile != ""
}

// HasSkills reports whether a skills file was identified
func (a *AssetMap) HasSkills() bool {
	return a.SkillsFile != ""
}

// File returns the identified file for a section, or "" when unset
func (a *AssetMap) File(section Section) string {
	switch section {
	case SectionExperience:
		return a.ExperienceFile
	case SectionSkills:
		return a.SkillsFile
	default:
		return ""
	}
}

// TemplateName returns the base name of the template directory
func (a *AssetMap) TemplateName() string {
	return filepath.Base(a.Root)
}
