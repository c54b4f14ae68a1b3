// Package version reports the build identity of the opflow binary.
//
// Version and BuildTime are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/opflow/version.Version=1.2.0" ./cmd/opflow
//
// The commit and dirty flag come from the module's VCS build settings.
package version
