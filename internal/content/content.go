// Package content loads the static page copy (home, about, contact)
// from a YAML file so the marketing pages can be edited without a
// rebuild.
package content

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Site struct {
	Name    string `yaml:"name" json:"name"`
	Tagline string `yaml:"tagline" json:"tagline"`
}

type Interest struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

type Home struct {
	HeroTitle    string     `yaml:"hero_title" json:"hero_title"`
	HeroSubtitle string     `yaml:"hero_subtitle" json:"hero_subtitle"`
	Interests    []Interest `yaml:"interests" json:"interests"`
}

type Achievement struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Period      string `yaml:"period" json:"period"`
}

type About struct {
	Heading      string        `yaml:"heading" json:"heading"`
	Intro        string        `yaml:"intro" json:"intro"`
	Location     string        `yaml:"location" json:"location"`
	Skills       []string      `yaml:"skills" json:"skills"`
	Achievements []Achievement `yaml:"achievements" json:"achievements"`
}

type Social struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

type Contact struct {
	Heading string   `yaml:"heading" json:"heading"`
	Intro   string   `yaml:"intro" json:"intro"`
	Email   string   `yaml:"email" json:"email"`
	Website string   `yaml:"website" json:"website"`
	Socials []Social `yaml:"socials" json:"socials"`
}

// Pages holds the full static copy of the site.
type Pages struct {
	Site    Site    `yaml:"site" json:"site"`
	Home    Home    `yaml:"home" json:"home"`
	About   About   `yaml:"about" json:"about"`
	Contact Contact `yaml:"contact" json:"contact"`
}

// Load reads and parses the page copy at path. The file is loaded once
// at startup; a broken file fails the boot instead of serving empty
// pages.
func Load(path string) (*Pages, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}
	return Parse(data)
}

// Parse decodes page copy from raw YAML.
func Parse(data []byte) (*Pages, error) {
	var pages Pages
	if err := yaml.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("failed to parse content file: %w", err)
	}
	if err := pages.validate(); err != nil {
		return nil, err
	}
	return &pages, nil
}

func (p *Pages) validate() error {
	if p.Site.Name == "" {
		return fmt.Errorf("content file is missing site.name")
	}
	if p.Home.HeroTitle == "" {
		return fmt.Errorf("content file is missing home.hero_title")
	}
	if p.About.Heading == "" {
		return fmt.Errorf("content file is missing about.heading")
	}
	if p.Contact.Heading == "" {
		return fmt.Errorf("content file is missing contact.heading")
	}
	return nil
}
