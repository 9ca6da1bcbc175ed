// Package editor 实现分区编辑：各分区共用一个泛型编辑器，
// 差异（去重规则、默认值、归一化）由每个分区的 Schema 描述。
// 编辑器不直接改共享状态，而是把命令交给 Session 统一应用。
package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"resumeforge/internal/resume"
)

// Kind 标识一个可重复分区。
type Kind string

const (
	KindExperience     Kind = "experience"
	KindEducation      Kind = "education"
	KindSkills         Kind = "skills"
	KindProjects       Kind = "projects"
	KindCertifications Kind = "certifications"
	KindLanguages      Kind = "languages"
	KindAwards         Kind = "awards"
	KindCourses        Kind = "courses"
	KindInternships    Kind = "internships"
	KindVolunteer      Kind = "volunteer"
	KindReferences     Kind = "references"
	KindConferences    Kind = "conferences"
	KindHobbies        Kind = "hobbies"
	KindAffiliations   Kind = "affiliations"
	KindCustom         Kind = "custom"
)

// Op 是编辑命令的操作类型。
type Op string

const (
	OpAdd    Op = "add"
	OpUpdate Op = "update"
	OpRemove Op = "remove"
)

var (
	ErrUnknownSection = errors.New("unknown section kind")
	ErrUnknownOp      = errors.New("unknown edit op")
)

// itemPtr 约束条目指针必须携带稳定 ID 的读写方法。
type itemPtr[T any] interface {
	*T
	ItemID() string
	SetItemID(string)
}

// Schema 描述一个分区的编辑规则。
// Key 非空且 SetLike 为真时，内容重复的 Add 是静默 no-op（大小写不敏感）。
type Schema[T any, PT itemPtr[T]] struct {
	Kind      Kind
	SetLike   bool
	Key       func(T) string
	Normalize func(PT) error
}

func normalizedKey(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// addItem 解析并追加条目，分配新 ID；集合型分区的内容重复返回空 ID 且不改动列表。
func addItem[T any, PT itemPtr[T]](list []T, sch Schema[T, PT], raw json.RawMessage) ([]T, string, error) {
	var item T
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &item); err != nil {
			return list, "", fmt.Errorf("decode %s item: %w", sch.Kind, err)
		}
	}

	if sch.SetLike && sch.Key != nil {
		key := normalizedKey(sch.Key(item))
		if key != "" {
			for _, existing := range list {
				if normalizedKey(sch.Key(existing)) == key {
					return list, "", nil
				}
			}
		}
	}

	p := PT(&item)
	p.SetItemID(uuid.NewString())
	if sch.Normalize != nil {
		if err := sch.Normalize(p); err != nil {
			return list, "", fmt.Errorf("%s item: %w", sch.Kind, err)
		}
	}
	return append(list, item), p.ItemID(), nil
}

// updateItem 把补丁中出现的字段合并进匹配条目；ID 缺失时静默忽略。
// 补丁不能改写条目 ID，未触及的条目保持原样与原顺序。
func updateItem[T any, PT itemPtr[T]](list []T, sch Schema[T, PT], id string, patch json.RawMessage) ([]T, error) {
	if len(patch) == 0 {
		return list, nil
	}
	for i := range list {
		if PT(&list[i]).ItemID() != id {
			continue
		}
		merged := list[i]
		if err := json.Unmarshal(patch, PT(&merged)); err != nil {
			return list, fmt.Errorf("merge %s patch: %w", sch.Kind, err)
		}
		PT(&merged).SetItemID(id)
		if sch.Normalize != nil {
			if err := sch.Normalize(PT(&merged)); err != nil {
				return list, fmt.Errorf("%s item: %w", sch.Kind, err)
			}
		}
		list[i] = merged
		return list, nil
	}
	return list, nil
}

// removeItem 删除匹配条目；ID 缺失时静默忽略。
func removeItem[T any, PT itemPtr[T]](list []T, id string) []T {
	for i := range list {
		if PT(&list[i]).ItemID() == id {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

// applySection 在一个分区列表上应用命令，返回 Add 分配的 ID。
func applySection[T any, PT itemPtr[T]](list *[]T, sch Schema[T, PT], cmd Command) (string, error) {
	switch cmd.Op {
	case OpAdd:
		next, id, err := addItem(*list, sch, cmd.Item)
		if err != nil {
			return "", err
		}
		*list = next
		return id, nil
	case OpUpdate:
		next, err := updateItem(*list, sch, cmd.ID, cmd.Patch)
		if err != nil {
			return "", err
		}
		*list = next
		return "", nil
	case OpRemove:
		*list = removeItem[T, PT](*list, cmd.ID)
		return "", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOp, cmd.Op)
	}
}

// 各分区的编辑规则。未列出的分区使用零值规则（有序记录、无去重）。
var (
	experienceSchema    = Schema[resume.Experience, *resume.Experience]{Kind: KindExperience}
	educationSchema     = Schema[resume.Education, *resume.Education]{Kind: KindEducation}
	projectSchema       = Schema[resume.Project, *resume.Project]{Kind: KindProjects}
	certificationSchema = Schema[resume.Certification, *resume.Certification]{Kind: KindCertifications}
	awardSchema         = Schema[resume.Award, *resume.Award]{Kind: KindAwards}
	courseSchema        = Schema[resume.Course, *resume.Course]{Kind: KindCourses}
	internshipSchema    = Schema[resume.Internship, *resume.Internship]{Kind: KindInternships}
	volunteerSchema     = Schema[resume.Volunteer, *resume.Volunteer]{Kind: KindVolunteer}
	referenceSchema     = Schema[resume.Reference, *resume.Reference]{Kind: KindReferences}
	conferenceSchema    = Schema[resume.Conference, *resume.Conference]{Kind: KindConferences}
	affiliationSchema   = Schema[resume.Affiliation, *resume.Affiliation]{Kind: KindAffiliations}
	customSectionSchema = Schema[resume.CustomSection, *resume.CustomSection]{Kind: KindCustom}

	skillSchema = Schema[resume.Skill, *resume.Skill]{
		Kind:    KindSkills,
		SetLike: true,
		Key:     func(s resume.Skill) string { return s.Name },
	}

	hobbySchema = Schema[resume.Hobby, *resume.Hobby]{
		Kind:    KindHobbies,
		SetLike: true,
		Key:     func(h resume.Hobby) string { return h.Name },
	}

	languageSchema = Schema[resume.Language, *resume.Language]{
		Kind: KindLanguages,
		Normalize: func(l *resume.Language) error {
			if l.Proficiency == "" {
				l.Proficiency = resume.ProficiencyProfessional
				return nil
			}
			if !resume.ValidProficiency(l.Proficiency) {
				return fmt.Errorf("invalid proficiency %q", l.Proficiency)
			}
			return nil
		},
	}
)
