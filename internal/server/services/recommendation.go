package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/dramahub/internal/server/models"
)

var quotedTitle = regexp.MustCompile(`"(.*?)"`)

var slugStrip = strings.NewReplacer("?", "", "!", "")

// BuildPrompt renders the text generator prompt for a preference set.
func BuildPrompt(p models.PreferenceRequest) string {
	popularity := "be popular"
	if p.Gems {
		popularity = "be hidden gems"
	}
	return fmt.Sprintf(
		"Recommend me 3 %s K-Dramas with %s episodes. They should have a %s and %s. "+
			"Recommend K-Dramas using this format: put each title inside double quotes, "+
			"followed by a short one-sentence explanation why you recommended it, "+
			"and then the next recommendation in a new line. No stars or bold formatting. No extra sentences",
		p.Genre, p.Length, p.Mood, popularity,
	)
}

// ParseRecommendation extracts every double-quoted title from text in
// order of appearance. It never fails: text without quotes yields an
// empty title list. The full text is always returned.
func ParseRecommendation(text string) models.Recommendation {
	titles := make([]models.Title, 0)
	for _, m := range quotedTitle.FindAllStringSubmatch(text, -1) {
		titles = append(titles, models.Title{Name: m[1], Slug: Slugify(m[1])})
	}
	return models.Recommendation{Text: text, Titles: titles}
}

// Slugify lower-cases title, turns spaces into hyphens and drops ? and !.
func Slugify(title string) string {
	return slugStrip.Replace(strings.ReplaceAll(strings.ToLower(title), " ", "-"))
}
