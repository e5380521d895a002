package story

// Length is the requested size category of a story.
type Length string

const (
	Short  Length = "short"
	Medium Length = "medium"
	Long   Length = "long"
)

// ParseLength maps a request value to a Length. Anything unrecognised,
// including the empty string, is Medium.
func ParseLength(s string) Length {
	switch Length(s) {
	case Short, Medium, Long:
		return Length(s)
	default:
		return Medium
	}
}

// WordRange is the target word count written into the prompt.
func (l Length) WordRange() string {
	switch l {
	case Short:
		return "50-100 words"
	case Long:
		return "200-300 words"
	default:
		return "100-200 words"
	}
}
