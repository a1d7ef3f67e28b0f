// Package filesystem routes every file access through a swappable afero backend,
// so tests can run against memory instead of the user's disk.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active backend.
func API() afero.Afero {
	return backend
}

// Use replaces the backend with fs.
func Use(fs afero.Fs) {
	backend = afero.Afero{Fs: fs}
}

// SetOsFs switches to the operating system's filesystem.
func SetOsFs() {
	Use(afero.NewOsFs())
}

// SetMemMapFs switches to a fresh in-memory filesystem.
func SetMemMapFs() {
	Use(afero.NewMemMapFs())
}
