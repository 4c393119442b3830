package belay

import "github.com/yanqian/belaycheck/internal/domain/i18n"

type recommendationKey int

const (
	recBelayerHeavier recommendationKey = iota
	recBelayerMuchHeavier
	recClimberSafe
	recClimberCaution
	recClimberUnsafe
)

var recommendations = map[i18n.Language]map[recommendationKey]string{
	i18n.English: {
		recBelayerHeavier:     "Belayer is heavier than the climber. This is a safe configuration. The belayer should focus on providing a dynamic catch to prevent a hard fall for the climber.",
		recBelayerMuchHeavier: "Belayer is significantly heavier. A dynamic belay is crucial to prevent a hard catch and potential injury to the climber.",
		recClimberSafe:        "Weight difference is acceptable. Maintain proper belay technique and awareness.",
		recClimberCaution:     "Climber is heavier than the belayer. Belayer must use proper technique and positioning to manage falls. Consider a ground anchor.",
		recClimberUnsafe:      "Climber is significantly heavier than the belayer. High risk of belayer being pulled hard into the wall or first anchor. A ground anchor is strongly recommended.",
	},
	i18n.Malay: {
		recBelayerHeavier:     "Belayer lebih berat daripada pemanjat. Ini adalah konfigurasi yang selamat. Belayer perlu memberi tangkapan dinamik untuk mengelakkan jatuhan keras bagi pemanjat.",
		recBelayerMuchHeavier: "Belayer jauh lebih berat. Belay dinamik amat penting untuk mengelakkan tangkapan keras dan kecederaan pada pemanjat.",
		recClimberSafe:        "Perbezaan berat boleh diterima. Kekalkan teknik belay yang betul dan sentiasa berwaspada.",
		recClimberCaution:     "Pemanjat lebih berat daripada belayer. Belayer mesti menggunakan teknik dan kedudukan yang betul untuk mengawal jatuhan. Pertimbang sauh tanah.",
		recClimberUnsafe:      "Pemanjat jauh lebih berat daripada belayer. Risiko tinggi belayer ditarik kuat ke dinding atau sauh pertama. Sauh tanah amat disyorkan.",
	},
	i18n.Chinese: {
		recBelayerHeavier:     "确保者比攀岩者重。这是安全的组合。确保者应注重动态保护，避免攀岩者坠落时受到硬冲击。",
		recBelayerMuchHeavier: "确保者明显更重。动态保护至关重要，以避免硬冲击导致攀岩者受伤。",
		recClimberSafe:        "体重差异在可接受范围内。保持正确的确保技术和警觉。",
		recClimberCaution:     "攀岩者比确保者重。确保者必须使用正确的技术和站位来控制坠落。考虑使用地锚。",
		recClimberUnsafe:      "攀岩者明显比确保者重。确保者极有可能被猛拉撞向岩壁或第一个保护点。强烈建议使用地锚。",
	},
}

func recommendationFor(v Verdict) recommendationKey {
	if !v.IsHeavierClimber {
		if v.SignificantlyHeavierBelayer {
			return recBelayerMuchHeavier
		}
		return recBelayerHeavier
	}
	switch v.Safety {
	case Unsafe:
		return recClimberUnsafe
	case Caution:
		return recClimberCaution
	default:
		return recClimberSafe
	}
}

func recommendationText(lang i18n.Language, key recommendationKey) string {
	if text, ok := recommendations[lang][key]; ok {
		return text
	}
	return recommendations[i18n.Fallback][key]
}

func comparisonKey(v Verdict) string {
	switch {
	case v.EqualWeight:
		return i18n.KeyEqualWeight
	case v.IsHeavierClimber:
		return i18n.KeyClimberHeavier
	default:
		return i18n.KeyBelayerHeavier
	}
}
