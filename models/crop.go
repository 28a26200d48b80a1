package models

import "strings"

// UnknownCrop 分类序号不在作物表中时返回的名称
const UnknownCrop = "Unknown"

// cropNames 分类序号 -> 作物名称，序号与训练器的标签编码一致
var cropNames = map[int]string{
	1: "Rice", 2: "Maize", 3: "Jute", 4: "Cotton", 5: "Coconut",
	6: "Papaya", 7: "Orange", 8: "Apple", 9: "Muskmelon", 10: "Watermelon",
	11: "Grapes", 12: "Mango", 13: "Banana", 14: "Pomegranate",
	15: "Lentil", 16: "Blackgram", 17: "Mungbean", 18: "Mothbeans",
	19: "Pigeonpeas", 20: "Kidneybeans", 21: "Chickpea", 22: "Coffee",
}

// CropClassCount 作物表的条目数
const CropClassCount = 22

// CropName 根据分类序号返回作物名称
func CropName(index int) string {
	if name, ok := cropNames[index]; ok {
		return name
	}
	return UnknownCrop
}

// CropIndex 根据作物名称（不区分大小写）返回分类序号
func CropIndex(name string) (int, bool) {
	name = strings.TrimSpace(name)
	for idx, n := range cropNames {
		if strings.EqualFold(n, name) {
			return idx, true
		}
	}
	return 0, false
}

// CropProfile 作物对比用的静态属性
type CropProfile struct {
	Temp     string `json:"Temp"`
	Rainfall string `json:"Rainfall"`
	Soil     string `json:"Soil"`
}

var cropProfiles = map[string]CropProfile{
	"Rice":      {Temp: "20–35°C", Rainfall: "150–250mm", Soil: "Clay"},
	"Maize":     {Temp: "18–27°C", Rainfall: "50–100mm", Soil: "Loamy"},
	"Cotton":    {Temp: "21–30°C", Rainfall: "75–150mm", Soil: "Black Soil"},
	"Mothbeans": {Temp: "24–32°C", Rainfall: "30–50mm", Soil: "Sandy"},
	"Wheat":     {Temp: "10–20°C", Rainfall: "50–120mm", Soil: "Loamy"},
}

// LookupCropProfile 查询作物属性，名称需完全匹配
func LookupCropProfile(name string) (CropProfile, bool) {
	p, ok := cropProfiles[name]
	return p, ok
}
