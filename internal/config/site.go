package config

// File is the root of the .sitescout YAML configuration file.
// It holds per-domain overrides for sites whose layout the fixed
// discovery defaults handle poorly.
type File struct {
	// Sites maps a hostname to its overrides.
	Sites map[string]SiteConfig `yaml:"sites"`
}

// SiteConfig holds discovery overrides for one domain.
//
// Example:
//
//	sites:
//	  example.com:
//	    extra_sitemaps:
//	      - /sitemap/pages.xml
//	    subdomains: [www, shop]
//	    skip_probe: false
type SiteConfig struct {
	// ExtraSitemaps are additional well-known paths to probe on this
	// domain, relative to each origin.
	ExtraSitemaps []string `yaml:"extra_sitemaps"`

	// Subdomains replaces the default subdomain label list for this
	// domain. Empty means use the defaults.
	Subdomains []string `yaml:"subdomains"`

	// SkipProbe disables subdomain probing for this domain.
	SkipProbe bool `yaml:"skip_probe"`
}

// ForHost returns the SiteConfig for the given hostname and whether one
// is configured.
func (f *File) ForHost(host string) (SiteConfig, bool) {
	if f == nil || f.Sites == nil {
		return SiteConfig{}, false
	}
	sc, ok := f.Sites[host]
	return sc, ok
}
