// Package resume 定义简历内容的规范结构。
// Content 与视觉模板无关，以 JSONB 整体存入简历行。
package resume

// PersonalInfo 个人信息，单条记录。
type PersonalInfo struct {
	FullName string `json:"full_name,omitempty"`
	JobTitle string `json:"job_title,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	City     string `json:"city,omitempty"`
	Country  string `json:"country,omitempty"`
	Website  string `json:"website,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	PhotoKey string `json:"photo_key,omitempty"`
}

// Sections 汇总全部可重复分区。每个分区是有序条目序列，
// 条目以插入时分配的稳定 ID 作为 update/remove 的唯一键。
type Sections struct {
	Experience     []Experience    `json:"experience,omitempty"`
	Education      []Education     `json:"education,omitempty"`
	Skills         []Skill         `json:"skills,omitempty"`
	Projects       []Project       `json:"projects,omitempty"`
	Certifications []Certification `json:"certifications,omitempty"`
	Languages      []Language      `json:"languages,omitempty"`
	Awards         []Award         `json:"awards,omitempty"`
	Courses        []Course        `json:"courses,omitempty"`
	Internships    []Internship    `json:"internships,omitempty"`
	Volunteer      []Volunteer     `json:"volunteer,omitempty"`
	References     []Reference     `json:"references,omitempty"`
	Conferences    []Conference    `json:"conferences,omitempty"`
	Hobbies        []Hobby         `json:"hobbies,omitempty"`
	Affiliations   []Affiliation   `json:"affiliations,omitempty"`
	Custom         []CustomSection `json:"custom,omitempty"`
}

// Settings 控制渲染时的展示参数。
type Settings struct {
	FontFamily   string   `json:"font_family,omitempty"`
	FontSizePt   int      `json:"font_size_pt,omitempty"`
	LineSpacing  float64  `json:"line_spacing,omitempty"`
	ColorScheme  string   `json:"color_scheme,omitempty"`
	SectionOrder []string `json:"section_order,omitempty"`
	ShowIcons    bool     `json:"show_icons,omitempty"`
	ShowPhoto    bool     `json:"show_photo,omitempty"`
}

// Content 是一份简历的完整结构化内容。
type Content struct {
	PersonalInfo PersonalInfo `json:"personal_info"`
	Summary      Document     `json:"summary,omitempty"`
	Sections     Sections     `json:"sections"`
	Settings     Settings     `json:"settings"`
}

// DefaultSectionOrder 是新建简历的分区展示顺序。
var DefaultSectionOrder = []string{
	"experience",
	"education",
	"skills",
	"projects",
	"certifications",
	"languages",
	"awards",
	"courses",
	"internships",
	"volunteer",
	"references",
	"conferences",
	"hobbies",
	"affiliations",
	"custom",
}

// Starter 返回新建简历的初始内容：空分区加默认展示参数。
func Starter() Content {
	order := make([]string, len(DefaultSectionOrder))
	copy(order, DefaultSectionOrder)
	return Content{
		Settings: Settings{
			FontFamily:   "Arial",
			FontSizePt:   10,
			LineSpacing:  1.15,
			ColorScheme:  "default",
			SectionOrder: order,
			ShowIcons:    true,
		},
	}
}
