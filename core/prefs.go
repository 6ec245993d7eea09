package core

import (
	"fmt"

	"github.com/rushteam/feedkit/pkg/duration"
)

// 各偏好轴都是封闭枚举，零值 = 未设置/不限（any）。
// 协作方（偏好存储）给出的字符串在边界处用 Validate 校验，引擎内部不再防御。

// Mood 是情绪轴。
type Mood string

const (
	MoodAny       Mood = ""
	MoodRelax     Mood = "relax"
	MoodEnergetic Mood = "energetic"
)

// Depth 是内容深度轴。
type Depth string

const (
	DepthAny   Depth = ""
	DepthDeep  Depth = "deep"
	DepthLight Depth = "light"
)

// Vocal 是人声/器乐轴。
type Vocal string

const (
	VocalAny          Vocal = ""
	VocalVocal        Vocal = "vocal"
	VocalInstrumental Vocal = "instrumental"
)

// Era 是年代轴。
type Era string

const (
	EraAny     Era = ""
	EraNew     Era = "new"
	EraClassic Era = "classic"
)

// Region 是地域轴。
type Region string

const (
	RegionAny      Region = ""
	RegionDomestic Region = "domestic"
	RegionOverseas Region = "overseas"
)

// LiveStyle 是现场/剪辑轴。
type LiveStyle string

const (
	LiveAny    LiveStyle = ""
	LiveLive   LiveStyle = "live"
	LiveEdited LiveStyle = "edited"
)

// InfoStyle 是信息/娱乐轴。
type InfoStyle string

const (
	InfoAny           InfoStyle = ""
	InfoInformative   InfoStyle = "info"
	InfoEntertainment InfoStyle = "entertainment"
)

// Pacing 是节奏轴。
type Pacing string

const (
	PacingAny  Pacing = ""
	PacingFast Pacing = "fast"
	PacingSlow Pacing = "slow"
)

// Visual 是画面风格轴。
type Visual string

const (
	VisualAny        Visual = ""
	VisualAnime      Visual = "anime"
	VisualLiveAction Visual = "live_action"
)

// Collab 是单人/合作轴。
type Collab string

const (
	CollabAny    Collab = ""
	CollabSolo   Collab = "solo"
	CollabCollab Collab = "collab"
)

// Freshness 是新鲜度轴：偏好新上传内容还是热门内容。
type Freshness string

const (
	FreshnessAny     Freshness = ""
	FreshnessNew     Freshness = "new"
	FreshnessPopular Freshness = "popular"
)

// Discovery 是探索模式轴：利用（订阅/历史驱动）与探索（新来源）的取舍。
type Discovery string

const (
	// DiscoveryStandard 默认：历史、订阅、显式偏好都参与生成查询。
	DiscoveryStandard Discovery = ""
	// DiscoveryPure 纯探索：跳过历史与订阅种子，只用显式偏好与通用种子。
	DiscoveryPure Discovery = "pure"
)

// Preferences 是用户的显式分类偏好，Profile Builder 原样透传，
// 只被 Query Generator（上下文后缀）与 Scorer（扁平加分）直接消费。
type Preferences struct {
	Mood      Mood
	Depth     Depth
	Vocal     Vocal
	Era       Era
	Region    Region
	Live      LiveStyle
	Info      InfoStyle
	Pacing    Pacing
	Visual    Visual
	Collab    Collab
	Freshness Freshness
	Discovery Discovery

	// Durations 是偏好的时长分桶（可多选）。
	Durations []duration.Bucket
}

// Validate 在边界处校验协作方给出的偏好值，未知值返回错误而不是静默吞掉。
func (p *Preferences) Validate() error {
	checks := []struct {
		axis  string
		value string
		valid []string
	}{
		{"mood", string(p.Mood), []string{"", "relax", "energetic"}},
		{"depth", string(p.Depth), []string{"", "deep", "light"}},
		{"vocal", string(p.Vocal), []string{"", "vocal", "instrumental"}},
		{"era", string(p.Era), []string{"", "new", "classic"}},
		{"region", string(p.Region), []string{"", "domestic", "overseas"}},
		{"live", string(p.Live), []string{"", "live", "edited"}},
		{"info", string(p.Info), []string{"", "info", "entertainment"}},
		{"pacing", string(p.Pacing), []string{"", "fast", "slow"}},
		{"visual", string(p.Visual), []string{"", "anime", "live_action"}},
		{"collab", string(p.Collab), []string{"", "solo", "collab"}},
		{"freshness", string(p.Freshness), []string{"", "new", "popular"}},
		{"discovery", string(p.Discovery), []string{"", "pure"}},
	}
	for _, c := range checks {
		ok := false
		for _, v := range c.valid {
			if c.value == v {
				ok = true
				break
			}
		}
		if !ok {
			return NewDomainError(ModuleEngine, ErrorCodeInvalidInput,
				fmt.Sprintf("invalid %s preference: %q", c.axis, c.value))
		}
	}
	for _, b := range p.Durations {
		switch b {
		case duration.BucketShort, duration.BucketMedium, duration.BucketLong:
		default:
			return NewDomainError(ModuleEngine, ErrorCodeInvalidInput,
				fmt.Sprintf("invalid duration bucket: %q", b))
		}
	}
	return nil
}
