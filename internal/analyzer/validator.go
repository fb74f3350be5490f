package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/janetyc/citecheck/internal/ratelimit"
	"github.com/janetyc/citecheck/internal/resolver"
	"github.com/janetyc/citecheck/pkg/identifiers"
)

// retryWithGET lists the HEAD statuses that warrant one GET retry: sites
// that forbid or misimplement HEAD often answer a plain GET.
var retryWithGET = map[int]bool{403: true, 405: true, 406: true}

// Validator checks one reference's identifier against the outside world,
// under per-domain rate budgets.
type Validator struct {
	resolver resolver.Resolver
	limiter  *ratelimit.Limiter
}

// NewValidator wires a validator. A nil resolver disables network
// checks; every result then comes back ResolutionSkipped.
func NewValidator(r resolver.Resolver, l *ratelimit.Limiter) *Validator {
	if l == nil {
		l = ratelimit.New()
	}
	return &Validator{resolver: r, limiter: l}
}

// Validate applies the identifier policy to a reference, in order:
//
//  1. A dl.acm.org URL in a known permalink shape is accepted on format
//     alone; ACM blocks crawlers too aggressively to probe.
//  2. An explicit DOI is resolved through doi.org.
//  3. Otherwise the first non-resolver URL is probed with HEAD, falling
//     back to GET when the site rejects HEAD.
//  4. With nothing to check, the reference is reported as unresolved
//     with kind "none".
//
// Transport failures mark the reference unresolved; they never abort
// the run.
func (v *Validator) Validate(ctx context.Context, reference string) ValidationResult {
	result := ValidationResult{
		IdentifierKind: KindNone,
		Resolution:     ResolutionUnresolved,
		ScholarURL:     identifiers.ScholarSearchURL(reference),
		CheckedAt:      time.Now(),
	}

	urls := identifiers.ExtractURLs(reference)

	for _, u := range urls {
		if identifiers.IsACMFormat(u) {
			result.IdentifierKind = KindURL
			result.Identifier = u
			result.Resolution = ResolutionResolved
			result.Message = "accepted on ACM permalink format"
			return result
		}
	}

	if doi := identifiers.ExtractReferenceDOI(reference); doi != "" {
		result.IdentifierKind = KindDOI
		result.Identifier = doi
		v.checkDOI(ctx, doi, &result)
		return result
	}

	if u := firstProbeableURL(urls); u != "" {
		result.IdentifierKind = KindURL
		result.Identifier = u
		v.checkURL(ctx, u, &result)
		return result
	}

	result.Message = "no DOI or URL found for validation"
	return result
}

func (v *Validator) checkDOI(ctx context.Context, doi string, result *ValidationResult) {
	if v.resolver == nil {
		result.Resolution = ResolutionSkipped
		return
	}
	if !v.limiter.Allow("doi.org") {
		result.Resolution = ResolutionRateLimited
		result.Message = "doi.org request budget exhausted"
		return
	}

	status, err := v.resolver.Get(ctx, "https://doi.org/"+doi)
	if err != nil {
		result.Message = fmt.Sprintf("DOI resolution failed: %v", err)
		return
	}
	result.StatusCode = status
	if isSuccess(status) {
		result.Resolution = ResolutionResolved
	} else {
		result.Message = fmt.Sprintf("DOI does not resolve (status %d)", status)
	}
}

func (v *Validator) checkURL(ctx context.Context, u string, result *ValidationResult) {
	if v.resolver == nil {
		result.Resolution = ResolutionSkipped
		return
	}
	domain := identifiers.Domain(u)
	if !v.limiter.Allow(domain) {
		result.Resolution = ResolutionRateLimited
		result.Message = fmt.Sprintf("%s request budget exhausted", domain)
		return
	}

	status, err := v.resolver.Head(ctx, u)
	if err == nil && retryWithGET[status] {
		status, err = v.resolver.Get(ctx, u)
	}
	if err != nil {
		result.Message = fmt.Sprintf("URL check failed: %v", err)
		return
	}
	result.StatusCode = status
	if isSuccess(status) {
		result.Resolution = ResolutionResolved
	} else {
		result.Message = fmt.Sprintf("URL not reachable (status %d)", status)
	}
}

// firstProbeableURL picks the first URL worth a direct probe, skipping
// DOI resolver links, which the DOI path already covers.
func firstProbeableURL(urls []string) string {
	for _, u := range urls {
		domain := identifiers.Domain(u)
		if domain == "doi.org" || domain == "dx.doi.org" {
			continue
		}
		if strings.Contains(u, "scholar.google.com") {
			continue
		}
		return u
	}
	return ""
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
