package i18n

// Dictionary keys referenced from Go code. Pure UI labels are only looked up
// by the frontend and have no constant.
const (
	KeyEqualWeight    = "equalWeight"
	KeyClimberHeavier = "climberHeavier"
	KeyBelayerHeavier = "belayerHeavier"
	KeySafe           = "safe"
	KeyCaution        = "caution"
	KeyUnsafe         = "unsafe"
	KeyUseOhm         = "useOhm"
)

var dictionaries = map[Language]map[string]string{
	English: {
		"title":           "Lead Climbing Safety Calculator",
		"description":     "Check if climber and belayer weights are compatible for safe lead climbing",
		"climberWeight":   "Climber Weight",
		"belayerWeight":   "Belayer Weight",
		"kg":              "kg",
		"lbs":             "lbs",
		"calculate":       "Calculate Safety",
		"results":         "Safety Assessment",
		KeySafe:           "✅ Safe Combination",
		KeyCaution:        "⚠️ Use with Caution",
		KeyUnsafe:         "❌ Not Recommended",
		"device":          "Belay Device",
		"experience":      "Belayer Experience",
		"beginner":        "Beginner",
		"intermediate":    "Intermediate",
		"advanced":        "Advanced",
		"manual":          "Manual (tube style)",
		"assistedPassive": "Assisted braking (passive)",
		"assistedActive":  "Assisted braking (active cam)",
		"grigri":          "Petzl GriGri",
		"atc":             "Black Diamond ATC",
		"megajul":         "Edelrid Mega Jul",
		"reverso":         "Petzl Reverso",
		KeyUseOhm:         "Using Edelrid Ohm",
		"recommendations": "Recommendations",
		"safetyTips":      "Safety Tips",
		"commonPairs":     "Common Pairs",
		"save":            "Save Pair",
		"clear":           "Clear All",
		"weightDiff":      "Weight Difference",
		KeyEqualWeight:    "Climber and belayer weigh the same",
		KeyClimberHeavier: "Climber is heavier",
		KeyBelayerHeavier: "Belayer is heavier",
		"language":        "Language",
		"whatsNew":        "What's New?",
		"gotIt":           "Got It!",
		"installTitle":    "Install the app",
		"installBody":     "Add the calculator to your home screen for quick offline access.",
		"install":         "Install",
		"notNow":          "Not now",
		"changelog":       "Changelog",
		"offlineTitle":    "You are offline",
		"offlineBody":     "The calculator still works. Saved pairs will sync when you reconnect.",
	},
	Malay: {
		"title":           "Kalkulator Keselamatan Panjat Tebing",
		"description":     "Periksa sama ada berat pemanjat dan belayer sesuai untuk panjat tebing yang selamat",
		"climberWeight":   "Berat Pemanjat",
		"belayerWeight":   "Berat Belayer",
		"kg":              "kg",
		"lbs":             "lbs",
		"calculate":       "Kira Keselamatan",
		"results":         "Penilaian Keselamatan",
		KeySafe:           "✅ Kombinasi Selamat",
		KeyCaution:        "⚠️ Guna dengan Berhati-hati",
		KeyUnsafe:         "❌ Tidak Disyorkan",
		"device":          "Peranti Belay",
		"experience":      "Pengalaman Belayer",
		"beginner":        "Pemula",
		"intermediate":    "Pertengahan",
		"advanced":        "Mahir",
		"manual":          "Manual (jenis tiub)",
		"assistedPassive": "Brek berbantu (pasif)",
		"assistedActive":  "Brek berbantu (sesondol aktif)",
		"grigri":          "Petzl GriGri",
		"atc":             "Black Diamond ATC",
		"megajul":         "Edelrid Mega Jul",
		"reverso":         "Petzl Reverso",
		KeyUseOhm:         "Menggunakan Edelrid Ohm",
		"recommendations": "Cadangan",
		"safetyTips":      "Tips Keselamatan",
		"commonPairs":     "Pasangan Biasa",
		"save":            "Simpan Pasangan",
		"clear":           "Padam Semua",
		"weightDiff":      "Perbezaan Berat",
		KeyEqualWeight:    "Pemanjat dan belayer sama berat",
		KeyClimberHeavier: "Pemanjat lebih berat",
		KeyBelayerHeavier: "Belayer lebih berat",
		"language":        "Bahasa",
		"whatsNew":        "Apa yang Baharu?",
		"gotIt":           "Faham!",
		"installTitle":    "Pasang aplikasi",
		"installBody":     "Tambah kalkulator ke skrin utama untuk akses pantas tanpa talian.",
		"install":         "Pasang",
		"notNow":          "Bukan sekarang",
		"changelog":       "Log Perubahan",
		"offlineTitle":    "Anda di luar talian",
	},
	Chinese: {
		"title":           "攀岩安全计算器",
		"description":     "检查攀岩者和确保者的体重是否适合安全的先锋攀登",
		"climberWeight":   "攀岩者体重",
		"belayerWeight":   "确保者体重",
		"kg":              "公斤",
		"lbs":             "磅",
		"calculate":       "计算安全性",
		"results":         "安全评估",
		KeySafe:           "✅ 安全组合",
		KeyCaution:        "⚠️ 谨慎使用",
		KeyUnsafe:         "❌ 不推荐",
		"device":          "确保器",
		"experience":      "确保者经验",
		"beginner":        "初学者",
		"intermediate":    "中级",
		"advanced":        "高级",
		"manual":          "手动（管式）",
		"assistedPassive": "辅助制动（被动）",
		"assistedActive":  "辅助制动（主动凸轮）",
		"grigri":          "Petzl GriGri",
		"atc":             "Black Diamond ATC",
		"megajul":         "Edelrid Mega Jul",
		"reverso":         "Petzl Reverso",
		KeyUseOhm:         "使用 Edelrid Ohm",
		"recommendations": "建议",
		"safetyTips":      "安全提示",
		"commonPairs":     "常用配对",
		"save":            "保存配对",
		"clear":           "清除所有",
		"weightDiff":      "体重差异",
		KeyEqualWeight:    "攀岩者与确保者体重相同",
		KeyClimberHeavier: "攀岩者更重",
		KeyBelayerHeavier: "确保者更重",
		"language":        "语言",
		"whatsNew":        "新功能",
		"gotIt":           "知道了！",
		"installTitle":    "安装应用",
		"installBody":     "将计算器添加到主屏幕，离线也能快速使用。",
		"install":         "安装",
		"notNow":          "暂不",
		"changelog":       "更新日志",
	},
}
