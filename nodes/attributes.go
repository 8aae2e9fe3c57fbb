package nodes

type Attributes map[string]any

const (
	StartLine     = "startLine"
	EndLine       = "endLine"
	StartTokenPos = "startTokenPos"
	EndTokenPos   = "endTokenPos"
	StartFilePos  = "startFilePos"
	EndFilePos    = "endFilePos"
	CommentsKey   = "comments"

	KindKey              = "kind"
	RawValueKey          = "rawValue"
	DocLabelKey          = "docLabel"
	DocIndentationKey    = "docIndentation"
	HasLeadingNewlineKey = "hasLeadingNewline"
)

// Int returns an integer attribute, or -1 when it is absent.
func (a Attributes) Int(key string) int {
	v, ok := a[key]
	if !ok {
		return -1
	}
	switch v := v.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return -1
}

func (a Attributes) String(key string) string {
	s, _ := a[key].(string)
	return s
}

func (a Attributes) Bool(key string) bool {
	b, _ := a[key].(bool)
	return b
}

// Clone returns a shallow copy.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	ret := make(Attributes, len(a))
	for k, v := range a {
		ret[k] = v
	}
	return ret
}

// AttributeSet selects which attributes the parser materializes.
type AttributeSet uint

const (
	CaptureComments AttributeSet = 1 << iota
	CaptureStartLine
	CaptureEndLine
	CaptureStartTokenPos
	CaptureEndTokenPos
	CaptureStartFilePos
	CaptureEndFilePos

	CaptureAll = CaptureComments | CaptureStartLine | CaptureEndLine |
		CaptureStartTokenPos | CaptureEndTokenPos |
		CaptureStartFilePos | CaptureEndFilePos
	CaptureLines = CaptureComments | CaptureStartLine | CaptureEndLine
)

func (s AttributeSet) Has(a AttributeSet) bool {
	return s&a == a
}

var attributeSetNames = []struct {
	Name string
	Set  AttributeSet
}{
	{CommentsKey, CaptureComments},
	{StartLine, CaptureStartLine},
	{EndLine, CaptureEndLine},
	{StartTokenPos, CaptureStartTokenPos},
	{EndTokenPos, CaptureEndTokenPos},
	{StartFilePos, CaptureStartFilePos},
	{EndFilePos, CaptureEndFilePos},
}

// ParseAttributeSet maps attribute names to a set. Unknown names are reported.
func ParseAttributeSet(names []string) (AttributeSet, []string) {
	var set AttributeSet
	var unknown []string
loop:
	for _, name := range names {
		if name == "all" {
			set |= CaptureAll
			continue
		}
		for _, info := range attributeSetNames {
			if info.Name == name {
				set |= info.Set
				continue loop
			}
		}
		unknown = append(unknown, name)
	}
	return set, unknown
}
