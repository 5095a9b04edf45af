package bootstrap

// Host exposes the capabilities the surrounding application provides: where
// bundled resources live and where application data belongs. Both are
// treated as opaque; the orchestrator never guesses platform conventions
// itself.
type Host interface {
	// ResourceDir resolves the directory containing files bundled with the
	// host application at packaging time.
	ResourceDir() (string, error)
	// AppDataDir resolves the platform application-data directory.
	AppDataDir() (string, error)
}

// HostFuncs adapts two closures into a Host.
type HostFuncs struct {
	Resource func() (string, error)
	AppData  func() (string, error)
}

func (h HostFuncs) ResourceDir() (string, error) { return h.Resource() }

func (h HostFuncs) AppDataDir() (string, error) { return h.AppData() }
