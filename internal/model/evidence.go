package model

// SnippetPreviewLen is the maximum length, in runes, of a stored source
// snippet. Longer snippets are truncated at normalization time.
const SnippetPreviewLen = 200

// Source is one evidence-search result record.
type Source struct {
	URL     string `json:"url"`               // Full result URL
	Title   string `json:"title,omitempty"`   // Result title, if the search backend returned one
	Snippet string `json:"snippet,omitempty"` // Content preview, truncated to SnippetPreviewLen
	Domain  string `json:"domain,omitempty"`  // Lower-cased hostname, www. stripped
}

// EvidenceSet is the outcome of searching for one claim: every retained
// result in All, with the allow-listed subset repeated in Authoritative.
// Authoritative is always a subset of All by URL membership.
type EvidenceSet struct {
	Claim         string   `json:"claim"`                  // The claim text used as the search query
	Authoritative []Source `json:"authoritative_sources"`  // Results whose domain matched the allow-list
	All           []Source `json:"all_sources"`            // Every URL-bearing result
	Err           string   `json:"search_error,omitempty"` // Set when the search call failed; sources are empty
}

// AuthoritativeCount returns the number of allow-listed sources.
func (e EvidenceSet) AuthoritativeCount() int { return len(e.Authoritative) }

// TotalCount returns the number of retained sources of any kind.
func (e EvidenceSet) TotalCount() int { return len(e.All) }

// TruncateSnippet shortens s to SnippetPreviewLen runes.
func TruncateSnippet(s string) string {
	runes := []rune(s)
	if len(runes) <= SnippetPreviewLen {
		return s
	}
	return string(runes[:SnippetPreviewLen])
}
