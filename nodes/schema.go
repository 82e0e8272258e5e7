package nodes

// 输入字段类型，对应宿主的端口类型标签.
const (
	TypeClip   = "CLIP"
	TypeString = "STRING"
	TypeInt    = "INT"
	TypeFloat  = "FLOAT"
)

// InputSpec 单个输入字段的声明元数据.
// 数值范围与默认值仅供宿主 UI 使用，节点逻辑不做校验.
type InputSpec struct {
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Multiline      bool    `json:"multiline,omitempty"`
	DynamicPrompts bool    `json:"dynamic_prompts,omitempty"`
	Default        float64 `json:"default,omitempty"`
	Min            float64 `json:"min,omitempty"`
	Max            float64 `json:"max,omitempty"`
	Step           float64 `json:"step,omitempty"`
}

// NodeSpec 节点的完整声明：类名、展示名、分类与输入列表.
type NodeSpec struct {
	Class       string      `json:"class"`
	DisplayName string      `json:"display_name"`
	Category    string      `json:"category"`
	Inputs      []InputSpec `json:"inputs"`
	Returns     []string    `json:"returns"`
}

func clipInput() InputSpec {
	return InputSpec{Name: "clip", Type: TypeClip}
}

func textInput(name string) InputSpec {
	return InputSpec{Name: name, Type: TypeString, Multiline: true, DynamicPrompts: true}
}

func cacheLimitInput() InputSpec {
	return InputSpec{Name: "cache_limit", Type: TypeInt, Default: 10, Min: 1, Max: 100}
}

func guidanceInput() InputSpec {
	return InputSpec{Name: "guidance", Type: TypeFloat, Default: 3.5, Min: 0.0, Max: 100.0, Step: 0.1}
}
