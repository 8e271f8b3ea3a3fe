package extractor

import (
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// SiteRule maps a hostname substring to a profile.
type SiteRule struct {
	Pattern string `json:"pattern"`
	Site    Site   `json:"site"`
}

// siteRules is checked in order; the first substring match wins.
var siteRules = []SiteRule{
	{Pattern: "sciencedirect.com", Site: SiteScienceDirect},
	{Pattern: "ieeexplore.ieee.org", Site: SiteIEEE},
	{Pattern: "springer.com", Site: SiteSpringer},
	{Pattern: "nature.com", Site: SiteNature},
	{Pattern: "arxiv.org", Site: SiteArxiv},
}

var profiles = map[Site]Profile{
	SiteScienceDirect: ScienceDirect{},
	SiteIEEE:          IEEE{},
	SiteSpringer:      Springer{},
	SiteNature:        Nature{},
	SiteArxiv:         Arxiv{},
	SiteGeneric:       Generic{},
}

// Sites returns the dispatch rules in priority order.
func Sites() []SiteRule {
	rules := make([]SiteRule, len(siteRules))
	copy(rules, siteRules)
	return rules
}

// Detect picks the profile for a hostname.
func Detect(hostname string) Site {
	hostname = strings.ToLower(hostname)
	for _, rule := range siteRules {
		if strings.Contains(hostname, rule.Pattern) {
			return rule.Site
		}
	}
	return SiteGeneric
}

// ProfileFor returns the profile registered for site, or the generic one.
func ProfileFor(site Site) Profile {
	if p, ok := profiles[site]; ok {
		return p
	}
	return profiles[SiteGeneric]
}

// Hostname returns the lower-cased host of locationURL, or "" if it does not
// parse.
func Hostname(locationURL string) string {
	u, err := url.Parse(locationURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

type Extractor struct {
	logger *zap.Logger
}

type Option func(*Extractor)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

func New(opts ...Option) *Extractor {
	e := &Extractor{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract builds the record for doc, loaded from locationURL. It never fails:
// selectors that miss leave their field empty.
func (e *Extractor) Extract(doc Document, locationURL string) PaperMetadata {
	host := Hostname(locationURL)
	site := Detect(host)
	e.logger.Debug("extracting paper metadata",
		zap.String("url", locationURL),
		zap.String("host", host),
		zap.String("site", string(site)),
	)
	return Normalize(ProfileFor(site).Extract(doc), locationURL)
}

// Extract runs a default Extractor.
func Extract(doc Document, locationURL string) PaperMetadata {
	return New().Extract(doc, locationURL)
}

// Normalize applies the invariants every record must satisfy: link set,
// whitespace collapsed, year reduced to four digits, bare DOI, bounded
// abstract and a default type.
func Normalize(m PaperMetadata, link string) PaperMetadata {
	m.Link = link
	m.Title = CollapseSpaces(m.Title)
	m.Authors = CollapseSpaces(m.Authors)
	m.Year = FirstYear(m.Year)
	m.Abstract = TruncateAbstract(CollapseSpaces(m.Abstract))
	m.DOI = NormalizeDOI(m.DOI)
	m.Venue = CollapseSpaces(m.Venue)
	if m.Type == "" {
		m.Type = TypeArticle
	}
	return m
}
