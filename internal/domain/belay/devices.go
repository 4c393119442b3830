package belay

import (
	"strings"

	"github.com/yanqian/belaycheck/internal/domain/i18n"
)

// Device identifies a belay device. The set is closed; anything else is
// rejected before classification.
type Device string

const (
	Manual          Device = "manual"
	AssistedPassive Device = "assistedPassive"
	AssistedActive  Device = "assistedActive"

	// Devices from the first release of the form. They stay accepted so pairs
	// saved back then still classify.
	GriGri  Device = "grigri"
	ATC     Device = "atc"
	MegaJul Device = "megajul"
	Reverso Device = "reverso"
)

// Devices lists every device in selector order, current ones first.
var Devices = []Device{Manual, AssistedPassive, AssistedActive, GriGri, ATC, MegaJul, Reverso}

// ParseDevice resolves a device id; empty means Manual.
func ParseDevice(raw string) (Device, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Manual, true
	}
	for _, d := range Devices {
		if strings.EqualFold(string(d), trimmed) {
			return d, true
		}
	}
	return "", false
}

// Thresholds are percentage points of the belayer's effective weight.
type Thresholds struct {
	Max float64
	Min float64
}

// DeviceProfile is the static configuration of a device.
type DeviceProfile struct {
	Category Device
	Legacy   bool
	Base     Thresholds
	// Ohm replaces Base when an Ohm is in use. Nil means the device has no
	// Ohm specific thresholds.
	Ohm  *Thresholds
	Tips map[i18n.Language][]string
}

// Profile returns the device configuration.
func (d Device) Profile() (DeviceProfile, bool) {
	switch d {
	case Manual:
		return manualProfile, true
	case AssistedPassive:
		return assistedPassiveProfile, true
	case AssistedActive:
		return assistedActiveProfile, true
	case GriGri:
		return grigriProfile, true
	case ATC:
		return atcProfile, true
	case MegaJul:
		return megajulProfile, true
	case Reverso:
		return reversoProfile, true
	default:
		return DeviceProfile{}, false
	}
}

// TipsFor returns the device tips for lang, falling back to English.
func (p DeviceProfile) TipsFor(lang i18n.Language) []string {
	if tips, ok := p.Tips[lang]; ok && len(tips) > 0 {
		return append([]string(nil), tips...)
	}
	return append([]string(nil), p.Tips[i18n.Fallback]...)
}

func (p DeviceProfile) thresholds(useOhm bool) Thresholds {
	if useOhm && p.Ohm != nil {
		return *p.Ohm
	}
	return p.Base
}

var (
	manualProfile = DeviceProfile{
		Category: Manual,
		Base:     Thresholds{Max: 25, Min: 15},
		Ohm:      &Thresholds{Max: 40, Min: 25},
		Tips: map[i18n.Language][]string{
			i18n.English: {"Keep the brake hand on the rope at all times", "Consider a ground anchor when the climber is heavier", "Practice soft, dynamic catches"},
			i18n.Malay:   {"Sentiasa kekalkan tangan brek pada tali", "Pertimbang sauh tanah jika pemanjat lebih berat", "Latih tangkapan dinamik yang lembut"},
			i18n.Chinese: {"制动手始终握住绳子", "攀岩者更重时考虑使用地锚", "练习柔和的动态保护"},
		},
	}
	assistedPassiveProfile = DeviceProfile{
		Category: AssistedPassive,
		Base:     Thresholds{Max: 35, Min: 10},
		Ohm:      &Thresholds{Max: 50, Min: 20},
		Tips: map[i18n.Language][]string{
			i18n.English: {"Learn the correct feeding technique for your device", "The brake hand stays on the rope even with assisted braking", "Check the device locks before each climb"},
			i18n.Malay:   {"Pelajari teknik suapan yang betul untuk peranti anda", "Tangan brek kekal pada tali walaupun dengan brek berbantu", "Periksa peranti mengunci sebelum setiap pendakian"},
			i18n.Chinese: {"学习该装置正确的送绳技巧", "即使有辅助制动，制动手也不能离开绳子", "每次攀登前检查装置能否锁定"},
		},
	}
	assistedActiveProfile = DeviceProfile{
		Category: AssistedActive,
		Base:     Thresholds{Max: 40, Min: 10},
		Ohm:      &Thresholds{Max: 55, Min: 20},
		Tips: map[i18n.Language][]string{
			i18n.English: {"Test that the cam engages before every climb", "Never hold the cam open while lowering", "Keep the brake hand on the rope"},
			i18n.Malay:   {"Uji sesondol berfungsi sebelum setiap pendakian", "Jangan tahan sesondol terbuka semasa menurunkan", "Kekalkan tangan brek pada tali"},
			i18n.Chinese: {"每次攀登前测试凸轮能否咬合", "下放时切勿强行按住凸轮", "制动手始终握住绳子"},
		},
	}

	grigriProfile = DeviceProfile{
		Category: AssistedActive,
		Legacy:   true,
		Base:     Thresholds{Max: 40, Min: 10},
		Tips: map[i18n.Language][]string{
			i18n.English: {"Always test the brake position", "Practice proper hand placement", "Never let go of the brake hand"},
			i18n.Malay:   {"Sentiasa uji kedudukan brek", "Latih penempatan tangan yang betul", "Jangan lepaskan tangan brek"},
			i18n.Chinese: {"始终测试制动位置", "练习正确的手部放置", "永远不要松开制动手"},
		},
	}
	atcProfile = DeviceProfile{
		Category: Manual,
		Legacy:   true,
		Base:     Thresholds{Max: 25, Min: 15},
		Tips: map[i18n.Language][]string{
			i18n.English: {"Requires more attention to brake hand", "Consider using in guide mode", "Practice dynamic belaying"},
			i18n.Malay:   {"Memerlukan lebih perhatian pada tangan brek", "Pertimbang guna dalam mod panduan", "Latih belay dinamik"},
			i18n.Chinese: {"需要更多注意制动手", "考虑使用指导模式", "练习动态确保"},
		},
	}
	megajulProfile = DeviceProfile{
		Category: AssistedPassive,
		Legacy:   true,
		Base:     Thresholds{Max: 35, Min: 10},
		Tips: map[i18n.Language][]string{
			i18n.English: {"Assisted braking device", "Good for weight differences", "Learn proper feeding technique"},
			i18n.Malay:   {"Peranti brek berbantu", "Baik untuk perbezaan berat", "Pelajari teknik suapan yang betul"},
			i18n.Chinese: {"辅助制动装置", "适合体重差异", "学习正确的送绳技巧"},
		},
	}
	reversoProfile = DeviceProfile{
		Category: Manual,
		Legacy:   true,
		Base:     Thresholds{Max: 30, Min: 15},
		Tips: map[i18n.Language][]string{
			i18n.English: {"Versatile device", "Can be used in guide mode", "Practice smooth rope feeding"},
			i18n.Malay:   {"Peranti serbaguna", "Boleh guna dalam mod panduan", "Latih suapan tali yang lancar"},
			i18n.Chinese: {"多功能装置", "可用于指导模式", "练习流畅的送绳"},
		},
	}
)
