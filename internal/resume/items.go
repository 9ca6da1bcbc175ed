package resume

// SectionItem 为所有可重复条目提供稳定的唯一标识。
// ID 在插入时分配，重排与编辑都不会改变，是 update/remove 的唯一键。
type SectionItem struct {
	ID string `json:"id"`
}

// ItemID 返回条目标识。
func (s SectionItem) ItemID() string { return s.ID }

// SetItemID 设置条目标识。
func (s *SectionItem) SetItemID(id string) { s.ID = id }

// Proficiency 是语言水平的五级封闭枚举。
type Proficiency string

const (
	ProficiencyBasic          Proficiency = "basic"
	ProficiencyConversational Proficiency = "conversational"
	ProficiencyProfessional   Proficiency = "professional"
	ProficiencyFluent         Proficiency = "fluent"
	ProficiencyNative         Proficiency = "native"
)

// ValidProficiency 判断给定值是否属于枚举。
func ValidProficiency(p Proficiency) bool {
	switch p {
	case ProficiencyBasic, ProficiencyConversational, ProficiencyProfessional,
		ProficiencyFluent, ProficiencyNative:
		return true
	}
	return false
}

// 日期字段统一用 "YYYY-MM" 字符串；结束日期为空表示"至今"，
// 渲染层据此决定是否显示 Present。

// Experience 工作经历。
type Experience struct {
	SectionItem
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location,omitempty"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	Description Document `json:"description,omitempty"`
}

// Education 教育经历。
type Education struct {
	SectionItem
	School      string   `json:"school"`
	Degree      string   `json:"degree,omitempty"`
	Field       string   `json:"field,omitempty"`
	Location    string   `json:"location,omitempty"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	Description Document `json:"description,omitempty"`
}

// Skill 技能条目，名称大小写不敏感唯一。
type Skill struct {
	SectionItem
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

// Project 项目经历。
type Project struct {
	SectionItem
	Name        string   `json:"name"`
	URL         string   `json:"url,omitempty"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	Description Document `json:"description,omitempty"`
}

// Certification 证书。
type Certification struct {
	SectionItem
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
	URL    string `json:"url,omitempty"`
}

// Language 语言能力，水平为五级枚举，默认 professional。
type Language struct {
	SectionItem
	Name        string      `json:"name"`
	Proficiency Proficiency `json:"proficiency,omitempty"`
}

// Award 获奖记录。
type Award struct {
	SectionItem
	Title       string   `json:"title"`
	Issuer      string   `json:"issuer,omitempty"`
	Date        string   `json:"date,omitempty"`
	Description Document `json:"description,omitempty"`
}

// Course 课程培训。
type Course struct {
	SectionItem
	Name        string `json:"name"`
	Institution string `json:"institution,omitempty"`
	Date        string `json:"date,omitempty"`
}

// Internship 实习经历。
type Internship struct {
	SectionItem
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location,omitempty"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	Description Document `json:"description,omitempty"`
}

// Volunteer 志愿服务。
type Volunteer struct {
	SectionItem
	Role         string   `json:"role"`
	Organization string   `json:"organization"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Description  Document `json:"description,omitempty"`
}

// Reference 推荐人。
type Reference struct {
	SectionItem
	Name     string `json:"name"`
	Company  string `json:"company,omitempty"`
	Position string `json:"position,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Conference 参与的会议或演讲。
type Conference struct {
	SectionItem
	Name        string   `json:"name"`
	Role        string   `json:"role,omitempty"`
	Date        string   `json:"date,omitempty"`
	Description Document `json:"description,omitempty"`
}

// Hobby 兴趣爱好，名称大小写不敏感唯一。
type Hobby struct {
	SectionItem
	Name string `json:"name"`
}

// Affiliation 组织任职。
type Affiliation struct {
	SectionItem
	Organization string `json:"organization"`
	Role         string `json:"role,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
}

// CustomSectionItem 自定义分区里的单条记录。
type CustomSectionItem struct {
	SectionItem
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Date        string   `json:"date,omitempty"`
	Description Document `json:"description,omitempty"`
}

// CustomSection 用户自定义的分区，整体作为一个可重复条目管理。
type CustomSection struct {
	SectionItem
	Title string              `json:"title"`
	Items []CustomSectionItem `json:"items,omitempty"`
}
