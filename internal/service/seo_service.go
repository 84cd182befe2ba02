package service

import (
	"strings"

	"socialdesk/internal/models"
)

type SEOService interface {
	GenerateHashtags(industry, platform string) []string
	GenerateKeywords(content string) []string
	OptimizeCaption(content, industry string) string
}

type seoService struct {
	industryHashtags map[string][]string
	trendingKeywords []string
}

func NewSEOService() SEOService {
	return &seoService{
		industryHashtags: map[string][]string{
			"Fashion": {"#FashionIndia", "#OOTDIndia", "#DesiSwag", "#StyleInspo", "#TrendingNow"},
			"Tech":    {"#TechIndia", "#DigitalIndia", "#StartupLife", "#Innovation", "#Gadgets"},
			"Food":    {"#FoodieIndia", "#DesiFood", "#StreetFoodIndia", "#Yummy", "#FoodPorn"},
			"Travel":  {"#IncredibleIndia", "#TravelDiaries", "#Wanderlust", "#ExploreIndia"},
			"General": {"#India", "#Trending", "#Viral", "#Explore"},
		},
		trendingKeywords: []string{"Viral", "New", "Exclusive", "MustWatch", "India"},
	}
}

// GenerateHashtags picks the industry's tag set, falling back to the
// General bucket, then applies per-platform adjustments.
func (s *seoService) GenerateHashtags(industry, platform string) []string {
	key := "General"
	if _, ok := s.industryHashtags[industry]; ok {
		key = industry
	}

	tags := make([]string, len(s.industryHashtags[key]))
	copy(tags, s.industryHashtags[key])

	switch platform {
	case models.PlatformLinkedin:
		for i, t := range tags {
			tags[i] = strings.Replace(t, "#", "#Professional", 1)
		}
		tags = append(tags, "#Business", "#Growth", "#Career")
	case models.PlatformInstagram:
		tags = append(tags, "#InstaDaily", "#IGers")
	case models.PlatformTwitter:
		// Twitter wants fewer tags.
		return tags[:3]
	}

	return tags
}

func (s *seoService) GenerateKeywords(content string) []string {
	seen := make(map[string]bool)
	var keywords []string

	for _, w := range strings.Split(content, " ") {
		if len(w) <= 4 || seen[w] {
			continue
		}
		seen[w] = true
		keywords = append(keywords, w)
	}
	for _, w := range s.trendingKeywords {
		if seen[w] {
			continue
		}
		seen[w] = true
		keywords = append(keywords, w)
	}

	return keywords
}

func (s *seoService) OptimizeCaption(content, industry string) string {
	keywords := s.GenerateKeywords(content)
	return content + "\n\nKeywords: " + strings.Join(keywords, ", ")
}
