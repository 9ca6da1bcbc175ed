package editor

import (
	"resumeforge/internal/resume"
)

// 建议目录与模板目录一样在进程启动时固定，运行期只读。
var skillCatalog = []string{
	"Communication",
	"Teamwork",
	"Problem Solving",
	"Project Management",
	"Leadership",
	"Time Management",
	"Python",
	"JavaScript",
	"Go",
	"SQL",
	"Data Analysis",
	"Cloud Computing",
	"UI/UX Design",
	"Public Speaking",
	"Customer Service",
	"Agile Methodologies",
}

var hobbyCatalog = []string{
	"Reading",
	"Photography",
	"Hiking",
	"Cooking",
	"Traveling",
	"Chess",
	"Running",
	"Music",
	"Volunteering",
	"Gardening",
	"Cycling",
	"Painting",
}

func subtractPresent(catalog []string, present map[string]struct{}) []string {
	out := make([]string, 0, len(catalog))
	for _, name := range catalog {
		if _, ok := present[normalizedKey(name)]; ok {
			continue
		}
		out = append(out, name)
	}
	return out
}

// SuggestedSkills 返回尚未添加的建议技能（大小写不敏感比较）。
func SuggestedSkills(content resume.Content) []string {
	present := make(map[string]struct{}, len(content.Sections.Skills))
	for _, s := range content.Sections.Skills {
		present[normalizedKey(s.Name)] = struct{}{}
	}
	return subtractPresent(skillCatalog, present)
}

// SuggestedHobbies 返回尚未添加的建议爱好（大小写不敏感比较）。
func SuggestedHobbies(content resume.Content) []string {
	present := make(map[string]struct{}, len(content.Sections.Hobbies))
	for _, h := range content.Sections.Hobbies {
		present[normalizedKey(h.Name)] = struct{}{}
	}
	return subtractPresent(hobbyCatalog, present)
}

// HasSkill 判断技能是否已存在（大小写不敏感）。
func HasSkill(content resume.Content, name string) bool {
	key := normalizedKey(name)
	for _, s := range content.Sections.Skills {
		if normalizedKey(s.Name) == key {
			return true
		}
	}
	return false
}
