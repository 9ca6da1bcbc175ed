package editor

import (
	"encoding/json"
	"fmt"

	"resumeforge/internal/resume"
	"resumeforge/internal/template"
)

// Command 是编辑器发给 Session 的消息：对某分区执行一次 add/update/remove。
type Command struct {
	Section Kind            `json:"section"`
	Op      Op              `json:"op"`
	Item    json.RawMessage `json:"item,omitempty"`
	ID      string          `json:"id,omitempty"`
	Patch   json.RawMessage `json:"patch,omitempty"`
}

// Session 持有"当前正在编辑的简历"，是唯一的状态所有者。
// 所有变更同步应用到内存并置脏；持久化由外部保存动作读取 Current 后整体提交。
type Session struct {
	content    resume.Content
	templateID string
	dirty      bool
}

// NewSession 以给定内容开始编辑；未知模板 ID 回落到默认模板。
func NewSession(content resume.Content, templateID string) *Session {
	return &Session{
		content:    content,
		templateID: template.Get(templateID).ID,
	}
}

// Current 返回当前内容的独立副本，调用方修改副本不会影响会话状态。
func (s *Session) Current() resume.Content {
	data, err := json.Marshal(s.content)
	if err != nil {
		// Content 只含可序列化字段，走到这里说明模型被改坏了。
		panic(fmt.Sprintf("marshal session content: %v", err))
	}
	var copied resume.Content
	if err := json.Unmarshal(data, &copied); err != nil {
		panic(fmt.Sprintf("unmarshal session content: %v", err))
	}
	return copied
}

// TemplateID 返回当前选择的模板。
func (s *Session) TemplateID() string {
	return s.templateID
}

// SetTemplate 切换模板，未知 ID 回落到默认模板。
func (s *Session) SetTemplate(id string) {
	s.templateID = template.Get(id).ID
	s.dirty = true
}

// Dirty 报告是否存在未保存的变更。
func (s *Session) Dirty() bool {
	return s.dirty
}

// MarkSaved 在外部保存成功后清除脏标记。
func (s *Session) MarkSaved() {
	s.dirty = false
}

// SetPersonalInfo 整体替换个人信息。
func (s *Session) SetPersonalInfo(info resume.PersonalInfo) {
	s.content.PersonalInfo = info
	s.dirty = true
}

// SetSummary 整体替换摘要富文本。
func (s *Session) SetSummary(doc resume.Document) {
	s.content.Summary = doc
	s.dirty = true
}

// SetSettings 整体替换展示参数。
func (s *Session) SetSettings(settings resume.Settings) {
	s.content.Settings = settings
	s.dirty = true
}

// Apply 应用一条分区编辑命令，返回 Add 时分配的条目 ID。
// 集合型分区的内容重复 Add、以及 update/remove 的未知 ID 都是静默 no-op。
func (s *Session) Apply(cmd Command) (string, error) {
	sec := &s.content.Sections

	var (
		id  string
		err error
	)
	switch cmd.Section {
	case KindExperience:
		id, err = applySection(&sec.Experience, experienceSchema, cmd)
	case KindEducation:
		id, err = applySection(&sec.Education, educationSchema, cmd)
	case KindSkills:
		id, err = applySection(&sec.Skills, skillSchema, cmd)
	case KindProjects:
		id, err = applySection(&sec.Projects, projectSchema, cmd)
	case KindCertifications:
		id, err = applySection(&sec.Certifications, certificationSchema, cmd)
	case KindLanguages:
		id, err = applySection(&sec.Languages, languageSchema, cmd)
	case KindAwards:
		id, err = applySection(&sec.Awards, awardSchema, cmd)
	case KindCourses:
		id, err = applySection(&sec.Courses, courseSchema, cmd)
	case KindInternships:
		id, err = applySection(&sec.Internships, internshipSchema, cmd)
	case KindVolunteer:
		id, err = applySection(&sec.Volunteer, volunteerSchema, cmd)
	case KindReferences:
		id, err = applySection(&sec.References, referenceSchema, cmd)
	case KindConferences:
		id, err = applySection(&sec.Conferences, conferenceSchema, cmd)
	case KindHobbies:
		id, err = applySection(&sec.Hobbies, hobbySchema, cmd)
	case KindAffiliations:
		id, err = applySection(&sec.Affiliations, affiliationSchema, cmd)
	case KindCustom:
		id, err = applySection(&sec.Custom, customSectionSchema, cmd)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, cmd.Section)
	}

	if err != nil {
		return "", err
	}
	s.dirty = true
	return id, nil
}
