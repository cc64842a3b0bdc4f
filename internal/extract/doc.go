// Package extract turns parsed upstream pages into the proxy's records. Every
// field is read through an ordered selector cascade; a field that no selector
// matches is the empty string.
package extract
