package api

import (
	"sort"
	"strings"
)

// Site is the static data every page is rendered with.
type Site struct {
	BaseURL string
	Title   string
	Profile Profile
}

type Profile struct {
	Name         string
	Handle       string
	Tagline      string
	Location     string
	WorkName     string
	WorkURL      string
	Contacts     []Contact
	Email        string
	SideProjects []SideProject
}

type Contact struct {
	Key   string
	Label string
	URL   string
}

// SideProject is a hand-maintained link shown next to the fetched projects.
type SideProject struct {
	Name        string
	Description string
	URL         string
}

const emailKey = "email"

var contactKinds = []struct {
	key     string
	aliases []string
	label   string
	prefix  string
}{
	{"github", nil, "GitHub", "https://github.com/"},
	{"facebook", nil, "Facebook", "https://www.facebook.com/"},
	{"x", []string{"twitter"}, "X", "https://x.com/"},
	{"linkedin", nil, "LinkedIn", "https://www.linkedin.com/in/"},
}

// ContactLinks turns handle-style contacts (github: fuongz) into links. Known networks
// come first in a fixed order; anything else keeps its value as the URL, sorted by key.
// An alias (twitter for x) is used only when the main key is unset. Email is left out;
// see ContactEmail.
func ContactLinks(contacts map[string]string) []Contact {
	links := make([]Contact, 0, len(contacts))
	known := map[string]bool{emailKey: true}

	for _, kind := range contactKinds {
		known[kind.key] = true
		handle := strings.TrimSpace(contacts[kind.key])
		for _, alias := range kind.aliases {
			known[alias] = true
			if handle == "" {
				handle = strings.TrimSpace(contacts[alias])
			}
		}
		if handle == "" {
			continue
		}
		url := handle
		if !strings.HasPrefix(handle, "http://") && !strings.HasPrefix(handle, "https://") {
			url = kind.prefix + handle
		}
		links = append(links, Contact{Key: kind.key, Label: kind.label, URL: url})
	}

	var others []string
	for key, value := range contacts {
		if !known[key] && strings.TrimSpace(value) != "" {
			others = append(others, key)
		}
	}
	sort.Strings(others)
	for _, key := range others {
		links = append(links, Contact{Key: key, Label: strings.ToUpper(key[:1]) + key[1:], URL: contacts[key]})
	}

	return links
}

// ContactEmail returns the bare address from the email contact, "" when unset.
func ContactEmail(contacts map[string]string) string {
	return strings.TrimPrefix(strings.TrimSpace(contacts[emailKey]), "mailto:")
}
