// Package dsa holds the static practice catalogue of DSA topics and company
// problem lists, and derives a user's progress from their solved problems.
package dsa

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
)

const (
	recentTopics    = 2
	recentCompanies = 1
)

var ErrUnknownProblem = errors.New("unknown DSA problem")

//go:embed catalog.yaml
var catalogYAML []byte

type Problem struct {
	ID         string `yaml:"id" json:"id"`
	Title      string `yaml:"title" json:"title"`
	Difficulty string `yaml:"difficulty" json:"difficulty"`
}

// List is a topic or a company with the problems filed under it.
type List struct {
	ID       string   `yaml:"id" json:"id"`
	Title    string   `yaml:"title" json:"title"`
	Problems []string `yaml:"problems" json:"problems"`
}

type Catalog struct {
	Problems  []Problem `yaml:"problems" json:"problems"`
	Topics    []List    `yaml:"topics" json:"topics"`
	Companies []List    `yaml:"companies" json:"companies"`

	byID map[string]Problem
}

// Load parses the catalogue shipped with the binary.
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

// Parse decodes a catalogue and checks that every list entry names a known
// problem.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse DSA catalogue: %w", err)
	}

	c.byID = make(map[string]Problem, len(c.Problems))
	for _, p := range c.Problems {
		if p.ID == "" {
			return nil, fmt.Errorf("DSA problem %q has no id", p.Title)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate DSA problem %q", p.ID)
		}
		c.byID[p.ID] = p
	}

	for _, lists := range [][]List{c.Topics, c.Companies} {
		for _, l := range lists {
			for _, id := range l.Problems {
				if _, ok := c.byID[id]; !ok {
					return nil, fmt.Errorf("list %q: %w: %s", l.ID, ErrUnknownProblem, id)
				}
			}
		}
	}

	return &c, nil
}

func (c *Catalog) Problem(id string) (Problem, error) {
	p, ok := c.byID[id]
	if !ok {
		return Problem{}, fmt.Errorf("%w: %s", ErrUnknownProblem, id)
	}
	return p, nil
}

// Progress derives per-list and overall progress from the solved rows.
// Rows naming problems no longer in the catalogue are ignored. Recent
// activity holds the topics and the company with the latest solves, filled
// up in catalogue order.
func (c *Catalog) Progress(solved []models.DSASolvedProblem) models.DSAProgress {
	solvedAt := make(map[string]time.Time, len(solved))
	for _, s := range solved {
		if _, ok := c.byID[s.ProblemID]; !ok {
			continue
		}
		if at, seen := solvedAt[s.ProblemID]; !seen || s.CreatedAt.After(at) {
			solvedAt[s.ProblemID] = s.CreatedAt
		}
	}

	out := models.DSAProgress{}
	var topicLatest, companyLatest []time.Time
	out.Topics, topicLatest = c.summarize(c.Topics, models.DSAItemTopic, solvedAt)
	out.Companies, companyLatest = c.summarize(c.Companies, models.DSAItemCompany, solvedAt)

	for _, t := range out.Topics {
		out.TopicProblems += t.Total
		out.TopicSolved += t.Solved
	}
	for _, co := range out.Companies {
		out.CompanyProblems += co.Total
		out.CompanySolved += co.Solved
	}
	out.TotalProblems = out.TopicProblems + out.CompanyProblems
	out.TotalSolved = out.TopicSolved + out.CompanySolved
	out.Percentage = percent(out.TotalSolved, out.TotalProblems)

	out.RecentActivity = append(
		mostRecent(out.Topics, topicLatest, recentTopics),
		mostRecent(out.Companies, companyLatest, recentCompanies)...,
	)

	return out
}

func (c *Catalog) summarize(lists []List, kind string, solvedAt map[string]time.Time) ([]models.DSAItemProgress, []time.Time) {
	items := make([]models.DSAItemProgress, 0, len(lists))
	latest := make([]time.Time, 0, len(lists))

	for _, l := range lists {
		item := models.DSAItemProgress{Type: kind, ID: l.ID, Name: l.Title, Total: len(l.Problems)}
		var last time.Time
		for _, id := range l.Problems {
			at, ok := solvedAt[id]
			if !ok {
				continue
			}
			item.Solved++
			if at.After(last) {
				last = at
			}
		}
		item.Progress = percent(item.Solved, item.Total)
		items = append(items, item)
		latest = append(latest, last)
	}

	return items, latest
}

// mostRecent picks n items, latest solve first. Untouched lists keep
// catalogue order.
func mostRecent(items []models.DSAItemProgress, latest []time.Time, n int) []models.DSAItemProgress {
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return latest[idx[a]].After(latest[idx[b]])
	})

	if n > len(idx) {
		n = len(idx)
	}
	out := make([]models.DSAItemProgress, 0, n)
	for _, i := range idx[:n] {
		out = append(out, items[i])
	}
	return out
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
