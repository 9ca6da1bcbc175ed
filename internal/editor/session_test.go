package editor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumeforge/internal/resume"
)

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestSession_AddRemoveRoundTrip(t *testing.T) {
	session := NewSession(resume.Starter(), "classic")
	before := session.Current()

	id, err := session.Apply(Command{
		Section: KindExperience,
		Op:      OpAdd,
		Item:    mustJSON(t, map[string]string{"title": "Engineer", "company": "Acme"}),
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	_, err = session.Apply(Command{Section: KindExperience, Op: OpRemove, ID: id})
	require.NoError(t, err)

	assert.Equal(t, before.Sections, session.Current().Sections)
}

func TestSession_UpdateTouchesOnlyNamedFields(t *testing.T) {
	session := NewSession(resume.Starter(), "classic")

	id, err := session.Apply(Command{
		Section: KindExperience,
		Op:      OpAdd,
		Item: mustJSON(t, map[string]string{
			"title":      "Engineer",
			"company":    "Acme",
			"location":   "Berlin",
			"start_date": "2022-01",
		}),
	})
	require.NoError(t, err)

	_, err = session.Apply(Command{
		Section: KindExperience,
		Op:      OpUpdate,
		ID:      id,
		Patch:   mustJSON(t, map[string]string{"title": "Staff Engineer"}),
	})
	require.NoError(t, err)

	items := session.Current().Sections.Experience
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].ID)
	assert.Equal(t, "Staff Engineer", items[0].Title)
	assert.Equal(t, "Acme", items[0].Company)
	assert.Equal(t, "Berlin", items[0].Location)
	assert.Equal(t, "2022-01", items[0].StartDate)
}

func TestSession_UpdatePreservesOrderAndNeighbors(t *testing.T) {
	session := NewSession(resume.Starter(), "classic")

	var ids []string
	for _, title := range []string{"First", "Second", "Third"} {
		id, err := session.Apply(Command{
			Section: KindExperience,
			Op:      OpAdd,
			Item:    mustJSON(t, map[string]string{"title": title, "company": "Acme"}),
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	_, err := session.Apply(Command{
		Section: KindExperience,
		Op:      OpUpdate,
		ID:      ids[1],
		Patch:   mustJSON(t, map[string]string{"company": "Globex"}),
	})
	require.NoError(t, err)

	items := session.Current().Sections.Experience
	require.Len(t, items, 3)
	assert.Equal(t, []string{ids[0], ids[1], ids[2]}, []string{items[0].ID, items[1].ID, items[2].ID})
	assert.Equal(t, "Acme", items[0].Company)
	assert.Equal(t, "Globex", items[1].Company)
	assert.Equal(t, "Acme", items[2].Company)
}

func TestSession_SkillDedupIsCaseInsensitive(t *testing.T) {
	session := NewSession(resume.Starter(), "classic")

	first, err := session.Apply(Command{
		Section: KindSkills,
		Op:      OpAdd,
		Item:    mustJSON(t, map[string]string{"name": "Python"}),
	})
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := session.Apply(Command{
		Section: KindSkills,
		Op:      OpAdd,
		Item:    mustJSON(t, map[string]string{"name": "python"}),
	})
	require.NoError(t, err)
	assert.Empty(t, second, "duplicate add must be a silent no-op")

	skills := session.Current().Sections.Skills
	require.Len(t, skills, 1)
	assert.Equal(t, "Python", skills[0].Name)
}

func TestSession_HobbyDedupIsCaseInsensitive(t *testing.T) {
	session := NewSession(resume.Starter(), "classic")

	first, err := session.Apply(Command{
		Section: KindHobbies,
		Op:      OpAdd,
		Item:    mustJSON(t, map[string]string{"name": "Reading"}),
	})
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := session.Apply(Command{
		Section: KindHobbies,
		Op:      OpAdd,
		Item:    mustJSON(t, map[string]string{"name": "reading"}),
	})
	require.NoError(t, err)
	assert.Empty(t, second, "duplicate add must be a silent no-op")

	hobbies := session.Current().Sections.Hobbies
	require.Len(t, hobbies, 1)
	assert.Equal(t, "Reading", hobbies[0].Name)
}

func TestSession_LanguageProficiency(t *testing.T) {
	session := NewSession(resume.Starter(), "classic")

	id, err := session.Apply(Command{
		Section: KindLanguages,
		Op:      OpAdd,
		Item:    mustJSON(t, map[string]string{"name": "German"}),
	})
	require.NoError(t, err)

	langs := session.Current().Sections.Languages
	require.Len(t, langs, 1)
	assert.Equal(t, resume.ProficiencyProfessional, langs[0].Proficiency)

	_, err = session.Apply(Command{
		Section: KindLanguages,
		Op:      OpUpdate,
		ID:      id,
		Patch:   mustJSON(t, map[string]string{"proficiency": "native"}),
	})
	require.NoError(t, err)
	assert.Equal(t, resume.ProficiencyNative, session.Current().Sections.Languages[0].Proficiency)

	_, err = session.Apply(Command{
		Section: KindLanguages,
		Op:      OpAdd,
		Item:    mustJSON(t, map[string]string{"name": "French", "proficiency": "superb"}),
	})
	assert.Error(t, err, "proficiency outside the enum must be rejected")
}

func TestSession_UnknownIDIsSilentNoOp(t *testing.T) {
	session := NewSession(resume.Starter(), "classic")

	_, err := session.Apply(Command{
		Section: KindEducation,
		Op:      OpUpdate,
		ID:      "missing",
		Patch:   mustJSON(t, map[string]string{"school": "MIT"}),
	})
	require.NoError(t, err)
	assert.Empty(t, session.Current().Sections.Education)

	_, err = session.Apply(Command{Section: KindEducation, Op: OpRemove, ID: "missing"})
	require.NoError(t, err)
}

func TestSession_UnknownSectionAndOp(t *testing.T) {
	session := NewSession(resume.Starter(), "classic")

	_, err := session.Apply(Command{Section: "portfolio", Op: OpAdd})
	assert.ErrorIs(t, err, ErrUnknownSection)

	_, err = session.Apply(Command{Section: KindSkills, Op: "merge"})
	assert.ErrorIs(t, err, ErrUnknownOp)
}

func TestSession_CurrentReturnsIsolatedCopy(t *testing.T) {
	session := NewSession(resume.Starter(), "classic")

	_, err := session.Apply(Command{
		Section: KindSkills,
		Op:      OpAdd,
		Item:    mustJSON(t, map[string]string{"name": "Go"}),
	})
	require.NoError(t, err)

	snapshot := session.Current()
	snapshot.Sections.Skills[0].Name = "Rust"

	assert.Equal(t, "Go", session.Current().Sections.Skills[0].Name)
}

func TestSession_ReplaceTopLevelFields(t *testing.T) {
	session := NewSession(resume.Starter(), "classic")

	info := resume.PersonalInfo{FullName: "Ada Lovelace", Email: "ada@example.com"}
	session.SetPersonalInfo(info)
	assert.Equal(t, info, session.Current().PersonalInfo)
	assert.True(t, session.Dirty())

	session.MarkSaved()
	settings := session.Current().Settings
	settings.FontFamily = "Georgia"
	settings.ShowPhoto = true
	session.SetSettings(settings)

	got := session.Current().Settings
	assert.Equal(t, "Georgia", got.FontFamily)
	assert.True(t, got.ShowPhoto)
	assert.True(t, session.Dirty())
}

func TestSession_DirtyTracking(t *testing.T) {
	session := NewSession(resume.Starter(), "classic")
	assert.False(t, session.Dirty())

	session.SetSummary(resume.Paragraph("Engineer with ten years of experience."))
	assert.True(t, session.Dirty())

	session.MarkSaved()
	assert.False(t, session.Dirty())
}

func TestSession_TemplateFallback(t *testing.T) {
	session := NewSession(resume.Starter(), "no-such-template")
	assert.NotEmpty(t, session.TemplateID())
	assert.NotEqual(t, "no-such-template", session.TemplateID())

	session.SetTemplate("modern")
	assert.Equal(t, "modern", session.TemplateID())
	assert.True(t, session.Dirty())
}
