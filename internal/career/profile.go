package career

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Nationwide is the location sentinel meaning "no location restriction"
const Nationwide = "全国"

// Profile is a static career direction
type Profile struct {
	CareerName       string   `toml:"career" json:"career"`
	Tags             []string `toml:"tags" json:"tags"`
	AllowedLocations []string `toml:"locations" json:"allowed_locations,omitempty"`
	Skills           []string `toml:"skills" json:"skills"`
	SalaryRange      string   `toml:"salary" json:"salary_range"`
	EmployerExamples string   `toml:"companies" json:"employer_examples"`
	IsStrategic      bool     `toml:"strategic" json:"is_strategic"`
	StrategicField   string   `toml:"strategic_field" json:"strategic_field,omitempty"`
}

// Unrestricted reports whether the profile accepts any location
func (p Profile) Unrestricted() bool {
	for _, loc := range p.AllowedLocations {
		if loc = strings.TrimSpace(loc); loc != "" && loc != Nationwide {
			return false
		}
	}
	return true
}

// AllowsLocation reports whether the profile lists loc explicitly
func (p Profile) AllowsLocation(loc string) bool {
	for _, l := range p.AllowedLocations {
		if strings.TrimSpace(l) == loc {
			return true
		}
	}
	return false
}

// Table is the set of career profiles a Matcher ranks
type Table []Profile

type tableFile struct {
	Careers []Profile `toml:"careers"`
}

// LoadTable reads a career table from a TOML file with [[careers]] entries
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read career table: %w", err)
	}

	var f tableFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse career table: %w", err)
	}

	for i, p := range f.Careers {
		if strings.TrimSpace(p.CareerName) == "" {
			return nil, fmt.Errorf("career table entry %d has no career name", i)
		}
	}

	return Table(f.Careers), nil
}

// DefaultTable returns the built-in career table
func DefaultTable() Table {
	return Table{
		{
			CareerName:       "后端工程师",
			Tags:             []string{"Python开发", "后端", "Web开发"},
			Skills:           []string{"Python/Java", "数据库", "Linux", "API 设计"},
			SalaryRange:      "12k-25k/月",
			EmployerExamples: "互联网大厂、中小型互联网公司",
		},
		{
			CareerName:       "数据分析师",
			Tags:             []string{"数据分析", "Python开发", "机器学习"},
			AllowedLocations: []string{"北京", "上海", "深圳", "广州", "杭州"},
			Skills:           []string{"SQL", "Python", "Excel", "可视化"},
			SalaryRange:      "12k-22k/月",
			EmployerExamples: "互联网、消费、金融、咨询",
		},
		{
			CareerName:       "机器学习工程师",
			Tags:             []string{"机器学习", "深度学习", "算法", "Python开发"},
			AllowedLocations: []string{"北京", "上海", "深圳", "杭州", "广州"},
			Skills:           []string{"Python", "PyTorch", "TensorFlow", "Linux"},
			SalaryRange:      "20k-35k/月",
			EmployerExamples: "互联网大厂、AI 公司、独角兽",
		},
		{
			CareerName:       "算法工程师",
			Tags:             []string{"机器学习", "算法", "数据挖掘"},
			AllowedLocations: []string{"北京", "上海", "深圳", "杭州", "南京", "成都"},
			Skills:           []string{"Python", "C++", "数据结构与算法", "线性代数"},
			SalaryRange:      "18k-30k/月",
			EmployerExamples: "互联网大厂、广告平台、金融科技",
		},
		{
			CareerName:       "前端工程师",
			Tags:             []string{"前端", "Web开发"},
			Skills:           []string{"JavaScript/TypeScript", "HTML/CSS", "前端框架"},
			SalaryRange:      "10k-22k/月",
			EmployerExamples: "大部分互联网公司",
		},
		{
			CareerName:       "芯片设计工程师（国家战略）",
			Tags:             []string{"嵌入式", "算法", "硬件"},
			AllowedLocations: []string{"北京", "上海", "深圳", "成都", "西安", "杭州"},
			Skills:           []string{"数字电路", "Verilog/VHDL", "芯片架构", "EDA 工具"},
			SalaryRange:      "20k-40k/月",
			EmployerExamples: "华为海思、中芯国际、紫光展锐、龙芯中科",
			IsStrategic:      true,
			StrategicField:   "芯片自主",
		},
		{
			CareerName:       "网络安全工程师（国家战略）",
			Tags:             []string{"网络安全", "后端", "算法"},
			AllowedLocations: []string{"北京", "上海", "深圳", "杭州", "成都"},
			Skills:           []string{"渗透测试", "密码学", "安全协议", "Python/C++"},
			SalaryRange:      "18k-35k/月",
			EmployerExamples: "360、绿盟科技、启明星辰、奇安信",
			IsStrategic:      true,
			StrategicField:   "网络安全",
		},
		{
			CareerName:       "航天软件工程师（国家战略）",
			Tags:             []string{"嵌入式", "算法", "后端"},
			AllowedLocations: []string{"北京", "西安", "上海", "成都"},
			Skills:           []string{"C/C++", "实时操作系统", "卫星通信", "软件测试"},
			SalaryRange:      "15k-30k/月",
			EmployerExamples: "中国航天科技集团、中国航天科工集团、航天科技控股",
			IsStrategic:      true,
			StrategicField:   "航天科技",
		},
		{
			CareerName:       "智慧电网工程师（国家战略）",
			Tags:             []string{"嵌入式", "后端", "物联网"},
			AllowedLocations: []string{"北京", "上海", "南京", "武汉", "成都"},
			Skills:           []string{"电力系统", "物联网", "大数据分析", "Python"},
			SalaryRange:      "12k-25k/月",
			EmployerExamples: "国家电网、南方电网、许继电气、国电南瑞",
			IsStrategic:      true,
			StrategicField:   "能源电力",
		},
		{
			CareerName:       "乡村振兴信息化工程师（国家战略）",
			Tags:             []string{"后端", "前端", "数据分析"},
			AllowedLocations: []string{Nationwide},
			Skills:           []string{"Web 开发", "数据库", "云计算", "物联网"},
			SalaryRange:      "10k-20k/月",
			EmployerExamples: "政府信息化部门、农业科技公司、电商平台",
			IsStrategic:      true,
			StrategicField:   "乡村振兴",
		},
	}
}
