// Package state materializes the caller-owned installation plan as a YAML
// snapshot the CLI and tests can load, mutate, and write back.
package state

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/hardenctl/hardenctl/internal/rules"
	"gopkg.in/yaml.v3"
)

var _ rules.SystemState = (*Snapshot)(nil)

// Snapshot is one installation plan: the planned storage layout plus the
// planned package selection. It satisfies rules.SystemState.
type Snapshot struct {
	Storage  StorageSnapshot `yaml:"storage" json:"storage"`
	Packages PackageSnapshot `yaml:"packages" json:"packages"`
}

// StorageSnapshot maps mount-point paths to their planned filesystems.
type StorageSnapshot struct {
	MountPoints map[string]*MountSpec `yaml:"mountpoints" json:"mountpoints"`
}

// MountSpec is the planned filesystem for one mount point. Opts keeps the
// comma-separated form installer configs use; the ordered list view the
// engine consumes is derived from it.
type MountSpec struct {
	Device string `yaml:"device,omitempty" json:"device,omitempty"`
	FSType string `yaml:"fstype,omitempty" json:"fstype,omitempty"`
	Opts   string `yaml:"options,omitempty" json:"options,omitempty"`
}

// Options returns the mount options as an ordered list.
func (m *MountSpec) Options() []string {
	if m.Opts == "" {
		return nil
	}
	return strings.Split(m.Opts, ",")
}

// AddOptions appends options to the comma-joined string. The caller is
// expected to pass only options not already present.
func (m *MountSpec) AddOptions(opts []string) {
	for _, opt := range opts {
		if m.Opts == "" {
			m.Opts = opt
		} else {
			m.Opts += "," + opt
		}
	}
}

// PackageSnapshot carries the two planned package lists.
type PackageSnapshot struct {
	Install []string `yaml:"install" json:"install"`
	Exclude []string `yaml:"exclude" json:"exclude"`
}

// MountPoint implements rules.StorageState.
func (s *Snapshot) MountPoint(path string) (rules.MountSpec, bool) {
	spec, ok := s.Storage.MountPoints[path]
	if !ok {
		return nil, false
	}
	return spec, true
}

// Installing implements rules.PackageState.
func (s *Snapshot) Installing(name string) bool {
	return containsString(s.Packages.Install, name)
}

// Excluding implements rules.PackageState.
func (s *Snapshot) Excluding(name string) bool {
	return containsString(s.Packages.Exclude, name)
}

// AddInstall implements rules.PackageState.
func (s *Snapshot) AddInstall(name string) {
	s.Packages.Install = append(s.Packages.Install, name)
}

// AddExclude implements rules.PackageState.
func (s *Snapshot) AddExclude(name string) {
	s.Packages.Exclude = append(s.Packages.Exclude, name)
}

// Clone deep-copies the snapshot so apply mode can be previewed without
// touching the original.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Storage: StorageSnapshot{
			MountPoints: make(map[string]*MountSpec, len(s.Storage.MountPoints)),
		},
		Packages: PackageSnapshot{
			Install: slices.Clone(s.Packages.Install),
			Exclude: slices.Clone(s.Packages.Exclude),
		},
	}
	for path, spec := range s.Storage.MountPoints {
		copied := *spec
		out.Storage.MountPoints[path] = &copied
	}
	return out
}

// Load reads a snapshot from a YAML file.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read state snapshot: %w", err)
	}

	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse state snapshot: %w", err)
	}

	if snap.Storage.MountPoints == nil {
		snap.Storage.MountPoints = make(map[string]*MountSpec)
	}

	return &snap, nil
}

// Save writes the snapshot back as YAML.
func (s *Snapshot) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal state snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state snapshot: %w", err)
	}

	return nil
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
