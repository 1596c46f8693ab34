// Package vendorrefresh regenerates a vendored dependency tree, runs code
// generation against a source path, and commits the result when the staged
// tree changed. Running it again without source changes is a no-op.
package vendorrefresh
