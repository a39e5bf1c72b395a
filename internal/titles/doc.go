// Package titles turns free-text game titles into the normalized keys
// and filename-stem candidates used for media lookup on disk.
package titles
