// Package template 提供内置简历模板目录。
// 目录在进程启动时固定，运行期只读，按 ID 查找，未知 ID 回落到首个模板。
package template

// Layout 是模板版式的封闭枚举。
type Layout string

const (
	LayoutSingleColumn Layout = "single-column"
	LayoutTwoColumn    Layout = "two-column"
	LayoutModern       Layout = "modern"
)

// Palette 描述模板的六个命名颜色。
type Palette struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
	Muted      string `json:"muted"`
}

// FontPair 描述标题与正文字体。
type FontPair struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Config 是单个模板的静态配置。
type Config struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Palette     Palette  `json:"palette"`
	Fonts       FontPair `json:"fonts"`
	Layout      Layout   `json:"layout"`
	ATSFriendly bool     `json:"ats_friendly"`
}

// catalog 的顺序即对外展示顺序，首个模板同时充当默认模板。
var catalog = []Config{
	{
		ID:          "classic",
		Name:        "Classic",
		Description: "传统单栏版式，层次清晰，适合大多数行业投递。",
		Palette: Palette{
			Primary:    "#1f2937",
			Secondary:  "#4b5563",
			Accent:     "#2563eb",
			Background: "#ffffff",
			Text:       "#111827",
			Muted:      "#9ca3af",
		},
		Fonts:       FontPair{Heading: "Georgia", Body: "Arial"},
		Layout:      LayoutSingleColumn,
		ATSFriendly: true,
	},
	{
		ID:          "executive",
		Name:        "Executive",
		Description: "双栏版式，左侧集中技能与联系信息，突出管理经验。",
		Palette: Palette{
			Primary:    "#0f172a",
			Secondary:  "#334155",
			Accent:     "#b45309",
			Background: "#f8fafc",
			Text:       "#0f172a",
			Muted:      "#94a3b8",
		},
		Fonts:       FontPair{Heading: "Playfair Display", Body: "Source Sans Pro"},
		Layout:      LayoutTwoColumn,
		ATSFriendly: true,
	},
	{
		ID:          "modern",
		Name:        "Modern",
		Description: "强调色块与图标的现代版式，适合设计与互联网岗位。",
		Palette: Palette{
			Primary:    "#312e81",
			Secondary:  "#4f46e5",
			Accent:     "#f59e0b",
			Background: "#ffffff",
			Text:       "#1e1b4b",
			Muted:      "#a5b4fc",
		},
		Fonts:       FontPair{Heading: "Montserrat", Body: "Inter"},
		Layout:      LayoutModern,
		ATSFriendly: false,
	},
	{
		ID:          "minimal",
		Name:        "Minimal",
		Description: "留白充分的极简单栏版式，内容优先。",
		Palette: Palette{
			Primary:    "#18181b",
			Secondary:  "#3f3f46",
			Accent:     "#0d9488",
			Background: "#ffffff",
			Text:       "#18181b",
			Muted:      "#a1a1aa",
		},
		Fonts:       FontPair{Heading: "Helvetica Neue", Body: "Helvetica Neue"},
		Layout:      LayoutSingleColumn,
		ATSFriendly: true,
	},
	{
		ID:          "graphite",
		Name:        "Graphite",
		Description: "深色侧栏的双栏版式，正文保持高对比度。",
		Palette: Palette{
			Primary:    "#111827",
			Secondary:  "#1f2937",
			Accent:     "#10b981",
			Background: "#f9fafb",
			Text:       "#111827",
			Muted:      "#6b7280",
		},
		Fonts:       FontPair{Heading: "Roboto Slab", Body: "Roboto"},
		Layout:      LayoutTwoColumn,
		ATSFriendly: false,
	},
}

// List 返回全部模板，顺序固定。
func List() []Config {
	out := make([]Config, len(catalog))
	copy(out, catalog)
	return out
}

// Get 按 ID 返回模板；未知 ID 回落到首个模板，永不失败。
func Get(id string) Config {
	for _, c := range catalog {
		if c.ID == id {
			return c
		}
	}
	return catalog[0]
}

// Default 返回默认模板（目录首个）。
func Default() Config {
	return catalog[0]
}
