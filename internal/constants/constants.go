package constants

// DefaultModel is the chat model used for story generation when LLM_MODEL is not set.
const DefaultModel = "gpt-3.5-turbo"

// Fixed generation parameters for every story request.
const (
	StoryTemperature = 0.8
	StoryMaxTokens   = 500
	StoryChoices     = 1
)

// MaskedKeyPrefix is how many leading characters of a credential may appear in logs.
const MaskedKeyPrefix = 7
