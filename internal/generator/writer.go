package generator

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/benefits-advisor/internal/types"
	"golang.org/x/sync/errgroup"
)

// DefaultOutputDir is where sample profiles are written
const DefaultOutputDir = "sample_csvs"

// DefaultPeople are the sample personas shipped with the tool
var DefaultPeople = []types.Person{
	{Name: "Alice Johnson", Age: 30},
	{Name: "Bob Smith", Age: 42},
	{Name: "Carol Lee", Age: 28},
}

// FileName returns the sample file name for a person, e.g. "alice_johnson_profile.csv"
func FileName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "_")) + "_profile.csv"
}

// WriteProfile renders a profile and writes it to dir/FileName(name).
// The directory is created if needed; an existing directory is not an error.
func WriteProfile(dir string, name string, age int, tier Tier) (path string, err error) {
	content, err := Render(name, age, tier)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &WriteError{Path: dir, Cause: err}
	}

	path = filepath.Join(dir, FileName(name))
	f, err := os.Create(path)
	if err != nil {
		return "", &WriteError{Path: path, Cause: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			path, err = "", &WriteError{Path: path, Cause: cerr}
		}
	}()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString(content); err != nil {
		return "", &WriteError{Path: path, Cause: err}
	}
	if err := w.Flush(); err != nil {
		return "", &WriteError{Path: path, Cause: err}
	}

	return path, nil
}

// WriteSamples writes one profile per person into dir and returns the written paths
// in the same order as people. Files are written concurrently.
func WriteSamples(ctx context.Context, dir string, people []types.Person, tier Tier) ([]string, error) {
	for i := range people {
		if err := people[i].Validate(); err != nil {
			return nil, &InvalidArgumentError{
				Field:   fmt.Sprintf("people[%d]", i),
				Message: err.Error(),
			}
		}
	}

	// create once up front so the workers never race on MkdirAll
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &WriteError{Path: dir, Cause: err}
	}

	paths := make([]string, len(people))
	g, gCtx := errgroup.WithContext(ctx)
	for i, p := range people {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			path, err := WriteProfile(dir, p.Name, p.Age, tier)
			if err != nil {
				return fmt.Errorf("failed to write profile for %s: %w", p.Name, err)
			}
			log.Printf("[generator] Generated CSV for %s -> %s", p.Name, path)
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
