package doi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
)

// Validator checks DOIs against the CrossRef works API. Results are cached
// in-memory so reprocessing the same document never re-hits CrossRef.
type Validator struct {
	BaseURL   string
	UserAgent string
	client    *http.Client
	cache     *cache.Cache
}

// ValidationResult carries CrossRef's answer for one DOI.
type ValidationResult struct {
	Valid     bool
	DOI       string
	Title     *string
	Authors   []string
	Publisher *string
	Error     string
}

func NewValidator(timeout time.Duration) *Validator {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Validator{
		BaseURL:   "https://api.crossref.org",
		UserAgent: "ResearchPaperAnalysis/1.0 (mailto:researcher@example.com)",
		client:    &http.Client{Timeout: timeout},
		cache:     cache.New(24*time.Hour, 1*time.Hour),
	}
}

type crossrefResponse struct {
	Message struct {
		Title  []string `json:"title"`
		Author []struct {
			Given  string `json:"given"`
			Family string `json:"family"`
		} `json:"author"`
		Publisher string `json:"publisher"`
	} `json:"message"`
}

// Validate queries CrossRef for one DOI. Network and HTTP failures come back
// as invalid results, never as errors: a DOI that cannot be validated is
// treated as not found.
func (v *Validator) Validate(ctx context.Context, doi string) ValidationResult {
	if hit, found := v.cache.Get(doi); found {
		return hit.(ValidationResult)
	}

	result := v.query(ctx, doi)
	v.cache.Set(doi, result, cache.DefaultExpiration)
	return result
}

func (v *Validator) query(ctx context.Context, doi string) ValidationResult {
	url := fmt.Sprintf("%s/works/%s", v.BaseURL, doi)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ValidationResult{Valid: false, DOI: doi, Error: err.Error()}
	}
	req.Header.Set("User-Agent", v.UserAgent)

	resp, err := v.client.Do(req)
	if err != nil {
		return ValidationResult{Valid: false, DOI: doi, Error: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ValidationResult{Valid: false, DOI: doi, Error: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return ValidationResult{Valid: false, DOI: doi, Error: err.Error()}
	}

	var cr crossrefResponse
	if err := json.Unmarshal(bodyBytes, &cr); err != nil {
		return ValidationResult{Valid: false, DOI: doi, Error: err.Error()}
	}

	result := ValidationResult{Valid: true, DOI: doi}
	if len(cr.Message.Title) > 0 {
		result.Title = &cr.Message.Title[0]
	}
	for _, a := range cr.Message.Author {
		name := a.Given
		if a.Family != "" {
			if name != "" {
				name += " "
			}
			name += a.Family
		}
		if name != "" {
			result.Authors = append(result.Authors, name)
		}
	}
	if cr.Message.Publisher != "" {
		result.Publisher = &cr.Message.Publisher
	}
	return result
}

// ExtractAndValidate finds the first DOI in text that passes validation.
// When every candidate fails validation the first extracted one is still
// returned: a lexically valid DOI is better than nothing, and CrossRef
// outages must not blank the field. Returns nil when no DOI is present.
func (v *Validator) ExtractAndValidate(ctx context.Context, text string, validate bool) *string {
	dois := Extract(text)
	if len(dois) == 0 {
		return nil
	}
	if !validate {
		return &dois[0]
	}
	for i := range dois {
		if v.Validate(ctx, dois[i]).Valid {
			return &dois[i]
		}
	}
	return &dois[0]
}
