// package library parses LaunchBox export descriptors (platform game
// lists, playlists, Parents.xml) and builds the output folder tree.
package library
