package search

import (
	"github.com/clariview/clariview/internal/model"
	"github.com/clariview/clariview/internal/sources"
)

// The search backend has returned its result list under several shapes:
// a bare list, a mapping with the list under a conventional key, or (in
// the degenerate case) a single record. Each shape gets an extraction
// strategy; the first one that matches wins, and nothing here ever
// panics on an unexpected shape.

// Container keys tried, in order, when the response is a mapping.
var containerKeys = []string{"results", "data", "items", "search_results"}

// URL field names accepted on a result record, in preference order.
var urlKeys = []string{"url", "link", "href", "website"}

type extractStrategy func(raw any) ([]map[string]any, bool)

var strategies = []extractStrategy{
	extractDirectList,
	extractKeyedContainer,
	extractSingleRecord,
}

// Records normalizes a raw search response into a flat list of result
// records. Unrecognized shapes yield an empty list.
func Records(raw any) []map[string]any {
	for _, strategy := range strategies {
		if records, ok := strategy(raw); ok {
			return records
		}
	}
	return nil
}

// extractDirectList matches a response that is already a list.
func extractDirectList(raw any) ([]map[string]any, bool) {
	list, ok := raw.([]any)
	if !ok {
		return nil, false
	}
	return recordsFromList(list), true
}

// extractKeyedContainer matches a mapping holding the list under one of
// the conventional keys.
func extractKeyedContainer(raw any) ([]map[string]any, bool) {
	mapping, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	for _, key := range containerKeys {
		if list, ok := mapping[key].([]any); ok {
			return recordsFromList(list), true
		}
	}
	return nil, false
}

// extractSingleRecord matches a mapping that is itself one URL-bearing
// record.
func extractSingleRecord(raw any) ([]map[string]any, bool) {
	mapping, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	for _, key := range urlKeys {
		if _, ok := mapping[key].(string); ok {
			return []map[string]any{mapping}, true
		}
	}
	return nil, false
}

func recordsFromList(list []any) []map[string]any {
	records := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if record, ok := item.(map[string]any); ok {
			records = append(records, record)
		}
	}
	return records
}

// SourceFromRecord converts one record into a Source. Records without
// an extractable URL are rejected; everything else is best-effort.
func SourceFromRecord(record map[string]any) (model.Source, bool) {
	var url string
	for _, key := range urlKeys {
		if v, ok := record[key].(string); ok && v != "" {
			url = v
			break
		}
	}
	if url == "" {
		return model.Source{}, false
	}

	title, _ := record["title"].(string)

	snippet, _ := record["content"].(string)
	if snippet == "" {
		snippet, _ = record["snippet"].(string)
	}

	return model.Source{
		URL:     url,
		Title:   title,
		Snippet: model.TruncateSnippet(snippet),
		Domain:  sources.Domain(url),
	}, true
}
