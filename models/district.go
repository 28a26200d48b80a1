package models

// Vulnerability 干旱脆弱性等级
type Vulnerability string

const (
	VulnerabilityVeryHigh Vulnerability = "Very High"
	VulnerabilityHigh     Vulnerability = "High"
	VulnerabilityModerate Vulnerability = "Moderate"
	VulnerabilityLow      Vulnerability = "Low"
	VulnerabilityVeryLow  Vulnerability = "Very Low"
)

// VulnerabilityLevels 由高到低排列的全部等级
var VulnerabilityLevels = []Vulnerability{
	VulnerabilityVeryHigh,
	VulnerabilityHigh,
	VulnerabilityModerate,
	VulnerabilityLow,
	VulnerabilityVeryLow,
}

var districts = []string{
	"Bagalkote", "Ballari", "Belagavi", "Bengaluru Rural", "Bengaluru Urban",
	"Bidar", "Chamarajanagar", "Chikballapur", "Chikkamagaluru", "Chitradurga",
	"Dakshina Kannada", "Davanagere", "Dharwad", "Gadag", "Hassan",
	"Haveri", "Kalaburagi", "Kodagu", "Kolar", "Koppal",
	"Mandya", "Mysuru", "Raichur", "Ramanagara", "Shivamogga",
	"Tumakuru", "Udupi", "Uttara Kannada", "Vijayanagara", "Vijayapura",
	"Yadgir",
}

// 数据来源: KSNDMC 干旱脆弱性分级
var droughtVulnerability = map[string]Vulnerability{
	"Bagalkote":        VulnerabilityHigh,
	"Ballari":          VulnerabilityHigh,
	"Belagavi":         VulnerabilityModerate,
	"Bengaluru Rural":  VulnerabilityLow,
	"Bengaluru Urban":  VulnerabilityLow,
	"Bidar":            VulnerabilityHigh,
	"Chamarajanagar":   VulnerabilityModerate,
	"Chikballapur":     VulnerabilityHigh,
	"Chikkamagaluru":   VulnerabilityLow,
	"Chitradurga":      VulnerabilityHigh,
	"Dakshina Kannada": VulnerabilityVeryLow,
	"Davanagere":       VulnerabilityModerate,
	"Dharwad":          VulnerabilityModerate,
	"Gadag":            VulnerabilityHigh,
	"Hassan":           VulnerabilityModerate,
	"Haveri":           VulnerabilityModerate,
	"Kalaburagi":       VulnerabilityVeryHigh,
	"Kodagu":           VulnerabilityLow,
	"Kolar":            VulnerabilityHigh,
	"Koppal":           VulnerabilityVeryHigh,
	"Mandya":           VulnerabilityModerate,
	"Mysuru":           VulnerabilityModerate,
	"Raichur":          VulnerabilityVeryHigh,
	"Ramanagara":       VulnerabilityModerate,
	"Shivamogga":       VulnerabilityLow,
	"Tumakuru":         VulnerabilityModerate,
	"Udupi":            VulnerabilityVeryLow,
	"Uttara Kannada":   VulnerabilityLow,
	"Vijayanagara":     VulnerabilityHigh,
	"Vijayapura":       VulnerabilityHigh,
	"Yadgir":           VulnerabilityVeryHigh,
}

var droughtCrops = map[Vulnerability][]string{
	VulnerabilityVeryHigh: {"Pigeonpeas", "Blackgram", "Mothbeans", "Chickpea"},
	VulnerabilityHigh:     {"Maize", "Cotton", "Jowar", "Groundnut"},
	VulnerabilityModerate: {"Sugarcane", "Banana", "Turmeric", "Sunflower"},
	VulnerabilityLow:      {"Paddy (Rice)", "Arecanut", "Vegetables"},
	VulnerabilityVeryLow:  {"Coconut", "Banana", "Coffee"},
}

// Districts 返回全部地区名称（副本）
func Districts() []string {
	out := make([]string, len(districts))
	copy(out, districts)
	return out
}

// DistrictVulnerability 查询地区的干旱脆弱性，未知地区按 Moderate 处理
func DistrictVulnerability(district string) Vulnerability {
	if v, ok := droughtVulnerability[district]; ok {
		return v
	}
	return VulnerabilityModerate
}

// RecommendedCrops 返回该等级推荐的作物列表（副本），未知等级返回空列表
func RecommendedCrops(level Vulnerability) []string {
	crops := droughtCrops[level]
	out := make([]string, len(crops))
	copy(out, crops)
	return out
}
