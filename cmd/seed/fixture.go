package main

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultFixture []byte

// fixture is the YAML document describing the catalog to seed.
type fixture struct {
	Artists []artistFixture `yaml:"artists"`
	Users   []userFixture   `yaml:"users"`
}

type artistFixture struct {
	Name   string         `yaml:"name"`
	Bio    string         `yaml:"bio"`
	Albums []albumFixture `yaml:"albums"`
}

type albumFixture struct {
	Title       string        `yaml:"title"`
	ReleaseYear int           `yaml:"release_year"`
	Songs       []songFixture `yaml:"songs"`
}

type songFixture struct {
	Title    string `yaml:"title"`
	Duration int    `yaml:"duration"`
}

type userFixture struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// loadFixture reads a fixture file, or the embedded demo catalog when path is empty.
func loadFixture(path string) (*fixture, error) {
	if path == "" {
		return decodeFixture(bytes.NewReader(defaultFixture))
	}

	fd, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer fd.Close()

	return decodeFixture(fd)
}

func decodeFixture(r io.Reader) (*fixture, error) {
	var f fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}
