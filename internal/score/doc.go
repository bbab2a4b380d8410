// Package score ranks discovered pages by how useful they are to a
// directory visitor researching a company.
//
// The model is a flat additive heuristic: a base from the sitemap's
// declared priority, boosts and penalties from an ordered path-keyword
// rule table, per-token rewards for company-name overlap, and a recency
// adjustment from lastmod. Scores are floored at zero and rounded to
// one decimal. Sorting is stable on descending score so ties keep their
// discovery order.
package score
