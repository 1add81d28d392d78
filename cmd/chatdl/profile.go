package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is the optional --profile YAML file: a reusable bundle of
// the cookie/browser and abort-condition settings an operator would
// otherwise retype on every invocation for the same channel, the way
// the teacher's config.Loader layers a file-backed default under
// flag/env overrides.
type Profile struct {
	Cookies         string   `yaml:"cookies"`
	SaveCookies     string   `yaml:"save_cookies"`
	AbortConditions []string `yaml:"abort_conditions"`
}

// loadProfile reads and parses a --profile file.
func loadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	return &p, nil
}

// applyProfile seeds opts from p wherever the CLI left the
// corresponding field at its zero value, so an explicit flag always
// takes precedence over the profile's default.
func applyProfile(opts *Options, p *Profile) {
	if opts.Cookies == "" {
		opts.Cookies = p.Cookies
	}
	if opts.SaveCookies == "" {
		opts.SaveCookies = p.SaveCookies
	}
	if len(opts.AbortConditions) == 0 {
		opts.AbortConditions = p.AbortConditions
	}
}
