// Package services – MatchService
//
// This file implements provider matching: given a task's category and area,
// return the Active providers whose category set AND area set both contain
// the (normalized) values. Absence of matches is a normal business outcome,
// never an error.
package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/kaunkarega/taskmatch-backend/internal/repo"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ProviderMatch is the slim view of a matched provider handed to the
// notification fan-out and back to the task-create caller.
type ProviderMatch struct {
	ProviderID string `json:"providerId"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
}

// MatchService answers category+area lookups over the provider directory.
type MatchService struct {
	// DB is the GORM handle used for directory reads.
	DB *gorm.DB
}

var titleCaser = cases.Title(language.English)

// NormalizeTerm title-cases and trims a category or area so that "plumber",
// "PLUMBER", and " Plumber " all compare equal. Exported because
// registration writes the same normalized form the matcher reads.
func NormalizeTerm(s string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(s)))
}

// Find returns every Active provider whose category set contains category
// AND whose area set contains area (conjunction, not union). Matching is a
// case-insensitive exact membership test over the provider's comma-separated
// sets. An empty result, never an error, is returned when nobody
// qualifies.
func (s *MatchService) Find(ctx context.Context, category, area string) ([]ProviderMatch, error) {
	providers, err := repo.ListActiveProviders(ctx, s.DB)
	if err != nil {
		return nil, err
	}

	wantCategory := strings.ToLower(NormalizeTerm(category))
	wantArea := strings.ToLower(NormalizeTerm(area))

	matches := []ProviderMatch{}
	for _, p := range providers {
		if setContains(p.Categories, wantCategory) && setContains(p.Areas, wantArea) {
			matches = append(matches, ProviderMatch{
				ProviderID: p.Phone,
				Name:       p.Name,
				Phone:      p.Phone,
			})
		}
	}
	return matches, nil
}

// setContains reports whether the comma-separated set contains want
// (lower-cased exact membership).
func setContains(set, want string) bool {
	for _, item := range strings.Split(set, ",") {
		if strings.ToLower(strings.TrimSpace(item)) == want {
			return true
		}
	}
	return false
}

// JoinTerms normalizes and joins a list of categories or areas into the
// stored comma-separated form.
func JoinTerms(items []string) string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if t := NormalizeTerm(it); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, ", ")
}
