package domain

// GeneratedContent holds the blog materials produced for one topic.
type GeneratedContent struct {
	Titles          []string `json:"titles"`
	MetaDescription string   `json:"meta_description"`
	Keywords        []string `json:"keywords"`
	DraftContent    string   `json:"draft_content"`
	ImagePrompt     string   `json:"image_prompt"`
}

// GroundingChunkWeb points at the web page a citation came from.
type GroundingChunkWeb struct {
	URI   string `json:"uri,omitempty"`
	Title string `json:"title,omitempty"`
}

// GroundingChunk is a citation returned alongside a search-grounded reply.
type GroundingChunk struct {
	Web GroundingChunkWeb `json:"web"`
}

// HasLink reports whether the chunk can be rendered as a link.
func (c GroundingChunk) HasLink() bool {
	return c.Web.URI != ""
}

// Label returns the text to display for the chunk.
func (c GroundingChunk) Label() string {
	if c.Web.Title != "" {
		return c.Web.Title
	}
	return c.Web.URI
}

// TrendingTopicsResult is the outcome of a trending topics lookup.
type TrendingTopicsResult struct {
	Topics  []string         `json:"topics"`
	Sources []GroundingChunk `json:"sources"`
	// Partial is set when topic titles could not be extracted but
	// citations were found; Topics then holds a single placeholder.
	Partial bool `json:"partial,omitempty"`
}

// Placeholder and error strings shown in place of topic suggestions.
// Front-ends must not treat these as selectable topics.
const (
	PlaceholderSourcesOnly       = "Could not extract topic titles, but sources were found."
	PlaceholderNoTopics          = "Could not fetch trending topics. The model might be unable to find current trends or there was an issue. Please try again or use a manual topic."
	PlaceholderTopicsFailed      = "Failed to load topics."
	PlaceholderMissingCredential = "API key not detected. Please ensure it's configured to fetch trending topics."
)

// Placeholders returns every built-in placeholder suggestion.
func Placeholders() []string {
	return []string{
		PlaceholderSourcesOnly,
		PlaceholderNoTopics,
		PlaceholderTopicsFailed,
		PlaceholderMissingCredential,
	}
}
