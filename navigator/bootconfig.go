package navigator

import "sync"

// The build-injected configuration reaches the navigator without a direct
// call chain: the annotator's bootstrap snippet fills a single well-known
// slot, and Activate reads it once. The Go rendition is an explicit
// package-level slot with init-once semantics rather than an ambient global.

var buildConfig = struct {
	sync.Mutex
	cfg Config
	set bool
}{}

// SetBuildConfig stores the build-injected default configuration. The first
// call wins; later calls are no-ops returning false, matching the guarded
// bootstrap snippet emitted into every annotated file.
func SetBuildConfig(cfg Config) bool {
	buildConfig.Lock()
	defer buildConfig.Unlock()
	if buildConfig.set {
		return false
	}
	buildConfig.cfg = cfg
	buildConfig.set = true
	return true
}

// BuildConfig returns the build-injected configuration, if one was set.
func BuildConfig() (Config, bool) {
	buildConfig.Lock()
	defer buildConfig.Unlock()
	return buildConfig.cfg, buildConfig.set
}

// resetBuildConfig clears the slot; tests only.
func resetBuildConfig() {
	buildConfig.Lock()
	defer buildConfig.Unlock()
	buildConfig.cfg = Config{}
	buildConfig.set = false
}
