package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"resumeforge/internal/resume"
)

func TestAssess_EmptyContent(t *testing.T) {
	report := Assess(resume.Content{})

	assert.Equal(t, 0, report.Percent)
	assert.Contains(t, report.Missing, "personal_info.full_name")
	assert.Contains(t, report.Missing, "summary")
	assert.Contains(t, report.Missing, "experience")
	assert.Equal(t, 0, report.SummaryWords)
	assert.False(t, report.SummaryTooShort, "empty summary is missing, not short")
}

func TestAssess_ShortSummaryFlagged(t *testing.T) {
	content := resume.Content{Summary: resume.Paragraph("Just a few words")}
	report := Assess(content)

	assert.Equal(t, 4, report.SummaryWords)
	assert.True(t, report.SummaryTooShort)
	assert.False(t, report.SummaryTooLong)
}

func TestAssess_ExperienceNeedsTitleAndCompany(t *testing.T) {
	content := resume.Content{}
	content.Sections.Experience = []resume.Experience{{Title: "Engineer"}}
	assert.Contains(t, Assess(content).Missing, "experience")

	content.Sections.Experience[0].Company = "Acme"
	assert.NotContains(t, Assess(content).Missing, "experience")
}

func TestAssess_FullProfile(t *testing.T) {
	content := resume.Content{
		PersonalInfo: resume.PersonalInfo{
			FullName: "Ada Lovelace",
			JobTitle: "Engineer",
			Email:    "ada@example.com",
			Phone:    "+49 30 1234",
		},
		Summary: resume.Paragraph("Engineer with a decade of experience building data platforms, " +
			"leading small teams and shipping reliable services across three industries, " +
			"with a focus on maintainability and measurable outcomes."),
	}
	content.Sections.Experience = []resume.Experience{{Title: "Engineer", Company: "Acme"}}
	content.Sections.Education = []resume.Education{{School: "TU Berlin"}}
	content.Sections.Skills = []resume.Skill{{Name: "Go"}, {Name: "SQL"}, {Name: "Python"}}

	report := Assess(content)
	assert.Equal(t, 100, report.Percent)
	assert.Empty(t, report.Missing)
}

func TestSuggestedSkills_ExcludesPresent(t *testing.T) {
	content := resume.Content{}
	content.Sections.Skills = []resume.Skill{{Name: "python"}, {Name: "GO"}}

	suggested := SuggestedSkills(content)
	assert.NotContains(t, suggested, "Python")
	assert.NotContains(t, suggested, "Go")
	assert.Contains(t, suggested, "SQL")
}

func TestSuggestedHobbies_ExcludesPresent(t *testing.T) {
	content := resume.Content{}
	content.Sections.Hobbies = []resume.Hobby{{Name: "reading"}}

	suggested := SuggestedHobbies(content)
	assert.NotContains(t, suggested, "Reading")
	assert.Contains(t, suggested, "Chess")
}

func TestHasSkill(t *testing.T) {
	content := resume.Content{}
	content.Sections.Skills = []resume.Skill{{Name: "Data Analysis"}}

	assert.True(t, HasSkill(content, "data analysis"))
	assert.False(t, HasSkill(content, "Rust"))
}
