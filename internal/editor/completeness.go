package editor

import (
	"strings"

	"resumeforge/internal/resume"
)

// 摘要字数的建议区间。超出区间只给提示，不阻止保存。
const (
	summaryMinWords = 30
	summaryMaxWords = 100
)

// Report 是建议性的完整度报告。缺失字段只作为 UI 提示展示，
// 任何情况下都不会阻止保存（部分填写的分区允许持久化）。
type Report struct {
	Percent         int      `json:"percent"`
	Missing         []string `json:"missing,omitempty"`
	SummaryWords    int      `json:"summary_words"`
	SummaryTooShort bool     `json:"summary_too_short"`
	SummaryTooLong  bool     `json:"summary_too_long"`
}

type check struct {
	name string
	ok   bool
}

// Assess 汇总推荐字段的填写情况并统计摘要字数。
func Assess(content resume.Content) Report {
	info := content.PersonalInfo
	words := content.Summary.WordCount()

	checks := []check{
		{"personal_info.full_name", strings.TrimSpace(info.FullName) != ""},
		{"personal_info.job_title", strings.TrimSpace(info.JobTitle) != ""},
		{"personal_info.email", strings.TrimSpace(info.Email) != ""},
		{"personal_info.phone", strings.TrimSpace(info.Phone) != ""},
		{"summary", !content.Summary.IsEmpty()},
		{"experience", hasCompleteExperience(content.Sections.Experience)},
		{"education", len(content.Sections.Education) > 0},
		{"skills", len(content.Sections.Skills) >= 3},
	}

	passed := 0
	missing := make([]string, 0, len(checks))
	for _, c := range checks {
		if c.ok {
			passed++
			continue
		}
		missing = append(missing, c.name)
	}

	return Report{
		Percent:         passed * 100 / len(checks),
		Missing:         missing,
		SummaryWords:    words,
		SummaryTooShort: words > 0 && words < summaryMinWords,
		SummaryTooLong:  words > summaryMaxWords,
	}
}

func hasCompleteExperience(items []resume.Experience) bool {
	for _, item := range items {
		if strings.TrimSpace(item.Title) != "" && strings.TrimSpace(item.Company) != "" {
			return true
		}
	}
	return false
}
