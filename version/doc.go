// Package version reports the poetry-auto-export build version.
//
// Values injected at build time take precedence:
//
//	-ldflags "-X github.com/dendrascience/poetry-auto-export/version.Version=v1.0.0 -X github.com/dendrascience/poetry-auto-export/version.Commit=abc123"
//
// Otherwise the module version and VCS settings recorded by the Go toolchain
// are used, falling back to development defaults.
package version
