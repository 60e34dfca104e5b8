// Package process stops headless browser process trees left behind after
// PDF rendering.
package process
