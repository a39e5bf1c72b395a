// package media locates cover art, icons, backgrounds, screenshots,
// videos and manuals for a game inside a LaunchBox media tree.
package media
