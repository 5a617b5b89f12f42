package rules

// MountSpec is the planned filesystem for one mount point. The engine sees
// mount options as an ordered list; the comma-joined string form is a
// serialization detail owned by the storage collaborator.
type MountSpec interface {
	Options() []string
	AddOptions(opts []string)
}

// StorageState exposes the planned storage layout.
type StorageState interface {
	MountPoint(path string) (MountSpec, bool)
}

// PackageState exposes the planned package selection: two ordered
// collections supporting membership test and append.
type PackageState interface {
	Installing(name string) bool
	Excluding(name string) bool
	AddInstall(name string)
	AddExclude(name string)
}

// SystemState is the caller-owned installation plan the engine evaluates
// against and, in apply mode, mutates. The engine never shares it across
// goroutines; a host that does must serialize access itself.
type SystemState interface {
	StorageState
	PackageState
}
