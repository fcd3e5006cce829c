package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/models"
)

// Patterns are tried in slice order. For price and date the first match wins;
// a price match followed by a duration or percentage is skipped.
var (
	pricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:total|price|cost)\s*:?\s*\$?\s*(\d[\d,]*(?:\.\d+)?)`),
		regexp.MustCompile(`\$\s*(\d[\d,]*(?:\.\d+)?)`),
	}
	currencyPattern     = regexp.MustCompile(`\b(USD|EUR|GBP|INR|CAD|AUD)\b`)
	nonPriceUnitPattern = regexp.MustCompile(`(?i)^\s*(?:%|percent\b|(?:business\s+)?(?:days?|weeks?|months?|years?|hours?)\b)`)

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:delivery|deadline|due|completion)(?:\s+date)?\s*:?\s*(\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}/\d{4})`),
		regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`),
		regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`),
	}
	leadTimePattern = regexp.MustCompile(`(?i)\b(\d+)\s*(days?|weeks?|months?)\b`)

	paymentTermsPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)payment\s+terms?\s*:\s*([^\n.;]+)`),
		regexp.MustCompile(`(?i)\b(net\s*\d+)\b`),
	}
	warrantyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(\d+)[\s-]*(years?|months?)\s+warranty\b`),
		regexp.MustCompile(`(?i)\bwarranty(?:\s+period)?\s*:?\s*(?:of\s+)?(\d+)\s*(years?|months?)\b`),
	}

	certificationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bISO\s?\d+\b`),
		regexp.MustCompile(`\bSOC\s?\d+\b`),
		regexp.MustCompile(`(?i)\bGDPR\b`),
		regexp.MustCompile(`(?i)\bHIPAA\b`),
	}
)

var technologyKeywords = []string{
	"React", "Angular", "Vue.js", "Node.js", "Python", "Java", "JavaScript", "TypeScript",
	"Golang", "Ruby", "PHP", ".NET", "AWS", "Azure", "GCP", "Docker", "Kubernetes",
	"MongoDB", "PostgreSQL", "MySQL", "Redis", "GraphQL", "REST API", "Microservices",
	"Terraform", "Salesforce", "Machine Learning",
}

// ExtractFields pulls pricing, timeline, terms, certifications and
// technologies out of free text. It never fails: a category that does not
// match is left nil.
func ExtractFields(text string) models.ExtractedFields {
	var fields models.ExtractedFields

	fields.Pricing = extractPricing(text)
	fields.Timeline = extractTimeline(text)
	fields.Terms = extractTerms(text)

	if certs := extractCertifications(text); len(certs) > 0 {
		fields.Compliance = &models.Compliance{Certifications: certs}
	}
	if techs := extractTechnologies(text); len(techs) > 0 {
		fields.Technical = &models.Technical{Technologies: techs}
	}

	return fields
}

func extractPricing(text string) *models.Pricing {
	for _, pattern := range pricePatterns {
		for _, loc := range pattern.FindAllStringSubmatchIndex(text, -1) {
			// "Total: 3 weeks" or "price: 10%" is not an amount.
			if nonPriceUnitPattern.MatchString(text[loc[1]:]) {
				continue
			}

			total, err := strconv.ParseFloat(strings.ReplaceAll(text[loc[2]:loc[3]], ",", ""), 64)
			if err != nil || total < 0 {
				continue
			}

			currency := "USD"
			if c := currencyPattern.FindString(text); c != "" {
				currency = c
			}
			return &models.Pricing{Total: total, Currency: currency}
		}
	}
	return nil
}

func extractTimeline(text string) *models.Timeline {
	var timeline *models.Timeline
	for _, pattern := range datePatterns {
		if match := pattern.FindStringSubmatch(text); match != nil {
			timeline = &models.Timeline{DeliveryDate: match[1]}
			break
		}
	}

	// A bare duration without any date is not enough to build a timeline.
	if timeline == nil {
		return nil
	}

	if match := leadTimePattern.FindStringSubmatch(text); match != nil {
		timeline.LeadTime = fmt.Sprintf("%s %s", match[1], strings.ToLower(match[2]))
	}
	return timeline
}

func extractTerms(text string) *models.Terms {
	var terms models.Terms

	for _, pattern := range paymentTermsPatterns {
		if match := pattern.FindStringSubmatch(text); match != nil {
			terms.PaymentTerms = strings.TrimSpace(match[1])
			break
		}
	}

	for _, pattern := range warrantyPatterns {
		if match := pattern.FindStringSubmatch(text); match != nil {
			terms.Warranty = fmt.Sprintf("%s %s", match[1], strings.ToLower(match[2]))
			break
		}
	}

	if terms.PaymentTerms == "" && terms.Warranty == "" {
		return nil
	}
	return &terms
}

func extractCertifications(text string) []string {
	var certs []string
	seen := make(map[string]bool)

	for _, pattern := range certificationPatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			cert := strings.ToUpper(strings.Join(strings.Fields(match), ""))
			if seen[cert] {
				continue
			}
			seen[cert] = true
			certs = append(certs, cert)
		}
	}
	return certs
}

func extractTechnologies(text string) []string {
	lower := strings.ToLower(text)

	var techs []string
	seen := make(map[string]bool)
	for _, keyword := range technologyKeywords {
		if seen[keyword] || !strings.Contains(lower, strings.ToLower(keyword)) {
			continue
		}
		seen[keyword] = true
		techs = append(techs, keyword)
	}
	return techs
}

// MergeExtracted folds override onto base. A sub-object from override wins
// when it is present and carries data; otherwise the base value is kept.
func MergeExtracted(base, override models.ExtractedFields) models.ExtractedFields {
	merged := base

	if p := override.Pricing; p != nil && p.Total >= 0 && (p.Total > 0 || p.Currency != "") {
		pricing := *p
		if pricing.Currency == "" {
			pricing.Currency = "USD"
		}
		merged.Pricing = &pricing
	}
	if t := override.Timeline; t != nil && (t.DeliveryDate != "" || t.LeadTime != "") {
		merged.Timeline = t
	}
	if t := override.Terms; t != nil && (t.PaymentTerms != "" || t.Warranty != "") {
		merged.Terms = t
	}
	if c := override.Compliance; c != nil && len(c.Certifications) > 0 {
		merged.Compliance = c
	}
	if t := override.Technical; t != nil && len(t.Technologies) > 0 {
		merged.Technical = t
	}

	return merged
}
