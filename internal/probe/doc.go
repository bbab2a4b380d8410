// Package probe checks common subdomains of a company's base domain for
// liveness.
//
// Discovery starts from one root origin, but company content often
// lives on conventional subdomains (www, blog, careers, shop, ...).
// The prober reduces the root host to its registrable domain and issues
// lightweight HEAD requests against a fixed label list; live origins
// feed back into sitemap location. Everything here is best-effort: any
// failure simply means "not that subdomain".
package probe
