package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/clariview/clariview/internal/model"
)

// Renderer writes run results as JSON, Markdown, and a stdout summary.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full result to path.
func (r *Renderer) RenderJSON(result *model.RunResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report to path.
func (r *Renderer) RenderMarkdown(result *model.RunResult, path string) error {
	var b strings.Builder

	title := "Verification Report"
	if result.Article != nil && result.Article.Title != "" {
		title = result.Article.Title
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if result.Article != nil {
		fmt.Fprintf(&b, "- **URL**: %s\n", result.Article.URL)
		if result.Article.Author != "" {
			fmt.Fprintf(&b, "- **Author**: %s\n", result.Article.Author)
		}
		if result.Article.PublishedAt != "" {
			fmt.Fprintf(&b, "- **Published**: %s\n", result.Article.PublishedAt)
		}
	}
	fmt.Fprintf(&b, "- **Status**: %s\n\n", result.Status)

	switch result.Status {
	case model.StatusFailed:
		fmt.Fprintf(&b, "**Failure reason**: %s\n", result.Reason)

	case model.StatusLowAuthenticity:
		r.writeReportSection(&b, result.Report)
		fmt.Fprintf(&b, "## Warning\n\n%s\n", result.Warning)

	case model.StatusVerified:
		r.writeReportSection(&b, result.Report)
		b.WriteString("## Opposing Viewpoints\n\n")
		if len(result.OpposingURLs) == 0 {
			b.WriteString("No opposing viewpoint articles found.\n")
		}
		for i, url := range result.OpposingURLs {
			fmt.Fprintf(&b, "%d. %s\n", i+1, url)
		}
	}

	if r.includeFooter {
		b.WriteString("\n---\n*Generated by ClariView. Verdicts describe evidence support from allow-listed sources, not ground truth.*\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (r *Renderer) writeReportSection(b *strings.Builder, report *model.AuthenticityReport) {
	if report == nil {
		return
	}

	fmt.Fprintf(b, "## Authenticity: %.1f%%\n\n", report.Score)
	fmt.Fprintf(b, "| Verdict | Count |\n|---|---|\n")
	fmt.Fprintf(b, "| ✅ Authentic | %d |\n", report.Authentic)
	fmt.Fprintf(b, "| ❌ Fake | %d |\n", report.Fake)
	fmt.Fprintf(b, "| ⚠️ Suspicious | %d |\n", report.Suspicious)
	fmt.Fprintf(b, "| ❓ Unverifiable | %d |\n\n", report.Unverifiable)

	b.WriteString("## Claims\n\n")
	for i, claim := range report.Claims {
		fmt.Fprintf(b, "### %d. %s %s\n\n", i+1, claim.Verdict.Icon(), claim.Claim.Text)
		if claim.Judgment.Reasoning != "" {
			fmt.Fprintf(b, "%s\n\n", claim.Judgment.Reasoning)
		}
		fmt.Fprintf(b, "Authoritative sources: %d of %d results (confidence %d/10)\n\n",
			claim.Evidence.AuthoritativeCount(), claim.Evidence.TotalCount(), claim.Judgment.Confidence)
		for _, source := range claim.Evidence.Authoritative {
			fmt.Fprintf(b, "- [%s](%s)\n", source.Domain, source.URL)
		}
		if len(claim.Evidence.Authoritative) > 0 {
			b.WriteString("\n")
		}
	}
}

// RenderSummary prints the terminal outcome to stdout.
func (r *Renderer) RenderSummary(result *model.RunResult) {
	fmt.Println()
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("  ClariView Verdict")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	if result.Report != nil {
		fmt.Printf("  Authenticity score: %.1f%%\n", result.Report.Score)
		fmt.Printf("  Claims: %d  (✅ %d  ❌ %d  ⚠️ %d  ❓ %d)\n\n",
			result.Report.TotalClaims, result.Report.Authentic, result.Report.Fake,
			result.Report.Suspicious, result.Report.Unverifiable)
	}

	switch result.Status {
	case model.StatusFailed:
		fmt.Printf("  ❌ Analysis failed: %s\n", result.Reason)

	case model.StatusLowAuthenticity:
		fmt.Println(result.Warning)

	case model.StatusVerified:
		if len(result.OpposingURLs) == 0 {
			fmt.Println("  ✅ NEWS VERIFIED but no opposing viewpoints found.")
			break
		}
		fmt.Println("  ✅ NEWS VERIFIED! Opposing viewpoint articles for balanced reading:")
		fmt.Println()
		for i, url := range result.OpposingURLs {
			fmt.Printf("  %2d. %s\n", i+1, url)
		}
	}

	fmt.Println()
}
