// Package paths resolves fuxi's own directories and maps tracked source
// paths to their location inside the backup repository.
//
// # Environment Variables
//
//   - FUXI_CONFIG_DIR: directory holding config.toml (default: $XDG_CONFIG_HOME/fuxi)
//   - FUXI_STATE_DIR: directory holding fuxi.log (default: $XDG_STATE_HOME/fuxi)
//
// # Repository layout
//
// A source path S tracked by profile P is stored at ToRepoRelative(P, S):
// the profile name followed by the segments of the cleaned absolute path,
// slash separated. "/home/u/.zshrc" in profile "main" becomes
// "main/home/u/.zshrc". On Windows the volume is kept as a leading "@C"
// segment since "C:" is not a valid path component. ToSource is the exact
// inverse for every clean absolute path.
package paths
