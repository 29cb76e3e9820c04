// Package config loads user defaults for tokensplit from
// ~/.tokensplit/config.yaml. Missing files are not an error; flags always
// override what the file provides.
package config
